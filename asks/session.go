package asks

import (
	"bytes"
	"context"
	"strings"

	"github.com/reusee/mailx/conversations"
	"github.com/reusee/mailx/debugs"
	"github.com/reusee/mailx/logs"
	"github.com/reusee/mailx/mailconfigs"
	"github.com/reusee/mailx/render"
	"github.com/reusee/mailx/sandbox"
	"github.com/reusee/mailx/scripts"
	"github.com/reusee/mailx/syncs"
)

// Answer is everything one question produced. Only a generation failure is
// returned as an error; script problems are carried here.
type Answer struct {
	Query      string `json:"query"`
	Message    string `json:"message"`
	Script     string `json:"script,omitempty"`
	Diagnostic string `json:"diagnostic,omitempty"`
	Rewritten  int    `json:"rewritten,omitempty"`
	Output     string `json:"output"`
	ExecErr    string `json:"exec_error,omitempty"`
}

// Session is one conversation over the archive. It handles one question at a time.
type Session struct {
	sem       syncs.Semaphore
	generator *scripts.Generator
	opener    sandbox.Opener
	color     bool

	newExecutor  sandbox.NewExecutorFunc
	excludeTerms []string
	newSpan      logs.NewSpan
	tap          debugs.Tap
	logger       logs.Logger
}

type NewSession func(opener sandbox.Opener, color bool) (*Session, error)

func (Module) NewSession(
	newGenerator scripts.NewSessionGenerator,
	newExecutor sandbox.NewExecutorFunc,
	excludeTerms mailconfigs.ExcludeTerms,
	newSpan logs.NewSpan,
	tap debugs.Tap,
	logger logs.Logger,
) NewSession {
	return func(opener sandbox.Opener, color bool) (*Session, error) {
		generator, err := newGenerator(conversations.New())
		if err != nil {
			return nil, err
		}
		return &Session{
			sem:          syncs.NewSemaphore(1),
			generator:    generator,
			opener:       opener,
			color:        color,
			newExecutor:  newExecutor,
			excludeTerms: excludeTerms,
			newSpan:      newSpan,
			tap:          tap,
			logger:       logger,
		}, nil
	}
}

func (s *Session) Conversation() *conversations.Conversation {
	return s.generator.Conversation()
}

// Ask runs query through generation, validation, rewriting and execution.
func (s *Session) Ask(ctx context.Context, query string) (*Answer, error) {
	if err := s.sem.Acquire(ctx); err != nil {
		return nil, err
	}
	defer s.sem.Release()

	ctx, _ = s.newSpan(ctx, "")
	answer := &Answer{
		Query: query,
	}
	buf := new(bytes.Buffer)
	renderer := render.NewRenderer(buf, s.color)
	defer func() {
		answer.Output = buf.String()
	}()

	if strings.TrimSpace(query) == "" {
		return answer, nil
	}

	if isCalendarRequest(query) {
		s.logger.InfoContext(ctx, "calendar request", "query", query)
		answer.Message = CalendarReply
		renderer.Success(CalendarReply)
		return answer, nil
	}

	result, err := s.generator.Generate(ctx, query)
	if err != nil {
		s.logger.ErrorContext(ctx, "generate script", "error", err)
		return nil, err
	}
	answer.Message = strings.TrimSpace(result.Message)
	renderer.Message(answer.Message)
	if result.Script == nil {
		return answer, nil
	}

	script := result.Script
	answer.Script = script.Source
	if !script.Valid {
		answer.Diagnostic = script.Diagnostic
		renderer.Script(script.Source, script.Diagnostic)
		return answer, nil
	}

	source, n := scripts.Rewrite(script.Source, s.excludeTerms)
	answer.Rewritten = n
	if n > 0 {
		s.logger.DebugContext(ctx, "rewrote query lines", "lines", n)
	}

	executor := s.newExecutor(renderer.Namespace(), sandbox.WithPrint(renderer.Print))
	outcome := executor.Run(ctx, source, s.opener)
	if !outcome.OK() {
		answer.ExecErr = outcome.Message
		renderer.Failure(outcome.Message, script.Source)
		globals := map[string]any{
			"script": script.Source,
			"error":  outcome.Message,
		}
		for name, value := range outcome.Globals {
			if name == sandbox.HandleName {
				continue
			}
			globals[name] = value
		}
		s.tap(ctx, "script failed", globals)
	}

	return answer, nil
}
