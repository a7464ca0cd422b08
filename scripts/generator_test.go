package scripts

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/reusee/dscope"
	"github.com/reusee/mailx/conversations"
	"github.com/reusee/mailx/generators"
	"github.com/reusee/mailx/modes"
	"github.com/reusee/mailx/prompts"
)

type scriptedBackend struct {
	replies []string
	err     error
	seen    [][]generators.Turn
}

var _ generators.Generator = new(scriptedBackend)

func (s *scriptedBackend) Args() generators.GeneratorArgs {
	return generators.GeneratorArgs{
		Provider: "fake",
		Model:    "fake-1",
	}
}

func (s *scriptedBackend) Generate(ctx context.Context, turns []generators.Turn, temperature float32) (string, error) {
	s.seen = append(s.seen, turns)
	if s.err != nil {
		return "", s.err
	}
	reply := s.replies[0]
	s.replies = s.replies[1:]
	return reply, nil
}

func newTestGenerator(t *testing.T, backend generators.Generator) (*Generator, string) {
	logPath := filepath.Join(t.TempDir(), "logs.jsonl")
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	gen := NewGenerator(
		conversations.New(),
		backend,
		generators.NewSessionLog(logPath, logger),
		func() []generators.Turn {
			return prompts.Turns("me@example.com", time.Now())
		},
		logger,
	)
	return gen, logPath
}

func TestGenerateTurnCount(t *testing.T) {
	backend := &scriptedBackend{
		replies: []string{
			"Counting.\n@@\nwrite(1)\n@@",
			"Just a chat reply.",
			"Broken.\n@@\nif x\n@@",
		},
	}
	gen, _ := newTestGenerator(t, backend)

	for n := 1; n <= 3; n++ {
		if _, err := gen.Generate(t.Context(), "question"); err != nil {
			t.Fatal(err)
		}
		if got := gen.Conversation().Len(); got != 4+2*n {
			t.Fatalf("after %d: got %d turns", n, got)
		}
	}

	turns := gen.Conversation().Turns()
	systems := 0
	for _, turn := range turns {
		if turn.Role == generators.RoleSystem {
			systems++
		}
	}
	if systems != 4 {
		t.Fatalf("got %d system turns", systems)
	}
	for i := 4; i < len(turns); i += 2 {
		if turns[i].Role != generators.RoleUser || turns[i+1].Role != generators.RoleAssistant {
			t.Fatalf("bad order at %d", i)
		}
	}

	// each request carries the full history up to and including the user turn
	for i, seen := range backend.seen {
		if len(seen) != 4+2*i+1 {
			t.Fatalf("request %d: got %d turns", i, len(seen))
		}
	}
}

func TestGenerateResults(t *testing.T) {
	backend := &scriptedBackend{
		replies: []string{
			"Counting.\n@@\npython\nwrite(1)\n@@\nignored",
			"No script here.",
			"Broken.\n@@\nif x\n@@",
			"Empty.\n@@\n\n@@",
		},
	}
	gen, _ := newTestGenerator(t, backend)

	res, err := gen.Generate(t.Context(), "q1")
	if err != nil {
		t.Fatal(err)
	}
	if res.Message != "Counting.\n" || res.Script == nil || !res.Script.Valid || res.Script.Source != "write(1)" {
		t.Fatalf("got %+v", res)
	}
	last, _ := gen.Conversation().Last()
	if last.Content != "Counting.\n\n@@\nwrite(1)\n@@" {
		t.Fatalf("got %q", last.Content)
	}

	res, err = gen.Generate(t.Context(), "q2")
	if err != nil {
		t.Fatal(err)
	}
	if res.Script != nil || res.Message != "No script here." {
		t.Fatalf("got %+v", res)
	}
	last, _ = gen.Conversation().Last()
	if last.Content != "No script here." {
		t.Fatalf("got %q", last.Content)
	}

	res, err = gen.Generate(t.Context(), "q3")
	if err != nil {
		t.Fatal(err)
	}
	if res.Script == nil || res.Script.Valid || res.Script.Diagnostic == "" {
		t.Fatalf("got %+v", res)
	}
	last, _ = gen.Conversation().Last()
	if !strings.Contains(last.Content, "INVALID SCRIPT:") ||
		!strings.HasSuffix(last.Content, "ERROR: "+res.Script.Diagnostic) {
		t.Fatalf("got %q", last.Content)
	}

	res, err = gen.Generate(t.Context(), "q4")
	if err != nil {
		t.Fatal(err)
	}
	if res.Script != nil {
		t.Fatal("blank script should be absent")
	}
}

func TestGenerateBackendError(t *testing.T) {
	backendErr := errors.New("unauthorized")
	gen, logPath := newTestGenerator(t, &scriptedBackend{err: backendErr})

	_, err := gen.Generate(t.Context(), "q")
	if !errors.Is(err, backendErr) {
		t.Fatalf("got %v", err)
	}
	if got := gen.Conversation().Len(); got != 5 {
		t.Fatalf("got %d turns", got)
	}
	last, _ := gen.Conversation().Last()
	if last.Role != generators.RoleUser {
		t.Fatal("assistant turn appended on failure")
	}

	content, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(content), `"error":"unauthorized"`) ||
		!strings.Contains(string(content), `"agent_name":"get_script"`) {
		t.Fatalf("got %s", content)
	}
}

func TestNewSessionGenerator(t *testing.T) {
	t.Setenv("LLM_PROVIDER", "ollama")
	dscope.New(
		modes.ForTest(t),
		new(Module),
	).Call(func(
		newGenerator NewSessionGenerator,
	) {
		gen, err := newGenerator(conversations.New())
		if err != nil {
			t.Fatal(err)
		}
		if gen.backend.Args().Provider != "ollama" {
			t.Fatalf("got %+v", gen.backend.Args())
		}
	})
}
