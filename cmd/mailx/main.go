package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/reusee/dscope"
	"github.com/reusee/mailx/asks"
	"github.com/reusee/mailx/cmds"
	"github.com/reusee/mailx/generators"
	"github.com/reusee/mailx/logs"
	"github.com/reusee/mailx/mailconfigs"
	"github.com/reusee/mailx/modes"
	"github.com/reusee/mailx/server"
	"github.com/reusee/mailx/storages"
	"golang.org/x/term"
)

var (
	askArg      = cmds.Var[string]("ask")
	serveAddr   = cmds.Var[string]("serve")
	importPath  = cmds.Var[string]("import")
	summaryFlag = cmds.Switch("summary")
	replFlag    = cmds.Switch("repl")
)

func main() {
	loaded, err := mailconfigs.LoadEnv()
	ce(err)
	cmds.Execute(os.Args[1:])

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dscope.New(
		new(Module),
		modes.ForProduction(),
	).Call(func(
		logger logs.Logger,
		openStore storages.OpenStore,
		newSession asks.NewSession,
		newServer server.NewServer,
		geminiClients *generators.GeminiClients,
	) {
		defer func() {
			if err := geminiClients.Close(); err != nil {
				logger.Warn("close gemini clients", "error", err)
			}
		}()

		for _, path := range loaded {
			logger.Info("env loaded", "path", path)
		}

		store, err := openStore(ctx)
		ce(err)
		defer store.Close()

		switch {

		case *importPath != "":
			n, err := importMessages(ctx, store, *importPath)
			ce(err)
			fmt.Printf("imported %d messages\n", n)

		case *summaryFlag:
			ce(printSummary(ctx, store, os.Stdout, term.IsTerminal(int(os.Stdout.Fd()))))

		case *serveAddr != "":
			ce(newServer(store).ListenAndServe(ctx, *serveAddr))

		default:
			color := term.IsTerminal(int(os.Stdout.Fd()))
			session, err := newSession(store, color)
			ce(err)

			query := joinNonEmpty(*askArg, string(getStdinContent()))
			if query != "" {
				ce(ask(ctx, session, query, os.Stdout))
				if !*replFlag {
					return
				}
			}
			ce(repl(ctx, session, os.Stdin, os.Stdout))
		}
	})
}

func ask(ctx context.Context, session *asks.Session, query string, w io.Writer) error {
	answer, err := session.Ask(ctx, query)
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, answer.Output)
	return err
}

func repl(ctx context.Context, session *asks.Session, r io.Reader, w io.Writer) error {
	scanner := bufio.NewScanner(r)
	for {
		fmt.Fprint(w, "> ")
		if !scanner.Scan() {
			fmt.Fprintln(w)
			return scanner.Err()
		}
		line := strings.TrimSpace(scanner.Text())
		switch line {
		case "":
			continue
		case "exit", "quit":
			return nil
		}
		if err := ask(ctx, session, line, w); err != nil {
			// a failed generation ends the question, not the session
			fmt.Fprintf(w, "error: %v\n", err)
		}
		if ctx.Err() != nil {
			return nil
		}
	}
}

func joinNonEmpty(parts ...string) string {
	var ret []string
	for _, part := range parts {
		if part = strings.TrimSpace(part); part != "" {
			ret = append(ret, part)
		}
	}
	return strings.Join(ret, "\n")
}

func getStdinContent() (ret []byte) {
	if term.IsTerminal(int(os.Stdin.Fd())) || *replFlag {
		return nil
	}
	ret, err := io.ReadAll(os.Stdin)
	ce(err)
	return
}

func ce(err error) {
	if err != nil {
		panic(err)
	}
}
