package main

import (
	"bytes"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/reusee/mailx/storages"
)

func TestImportAndSummary(t *testing.T) {
	dir := t.TempDir()
	store, err := storages.Open(t.Context(), filepath.Join(dir, "mailx.db"), slog.New(slog.NewTextHandler(io.Discard, nil)))
	if err != nil {
		t.Fatal(err)
	}
	defer store.Close()

	path := filepath.Join(dir, "messages.jsonl")
	content := `{"timestamp": "2024-01-01T10:00:00Z", "from_email": "a@b.com", "subject": "one", "links": ["https://x.com"], "message_id": "<1>"}
{"timestamp": "2024-01-02T10:00:00Z", "from_email": "c@d.com", "subject": "two", "message_id": "<2>"}
{"from_email": "a@b.com", "subject": "again", "message_id": "<1>"}
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	n, err := importMessages(t.Context(), store, path)
	if err != nil {
		t.Fatal(err)
	}
	if n != 2 {
		t.Fatalf("got %d", n)
	}

	buf := new(bytes.Buffer)
	if err := printSummary(t.Context(), store, buf, false); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, want := range []string{"Messages: 2", "Senders: 2", "First: 2024-01-01 10:00:00"} {
		if !strings.Contains(out, want) {
			t.Fatalf("missing %q in:\n%s", want, out)
		}
	}
}

func TestImportBadInput(t *testing.T) {
	dir := t.TempDir()
	store, err := storages.Open(t.Context(), filepath.Join(dir, "mailx.db"), slog.New(slog.NewTextHandler(io.Discard, nil)))
	if err != nil {
		t.Fatal(err)
	}
	defer store.Close()

	path := filepath.Join(dir, "bad.jsonl")
	if err := os.WriteFile(path, []byte(`{"subject": 1}`), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := importMessages(t.Context(), store, path); err == nil {
		t.Fatal("expected error")
	}
	if _, err := importMessages(t.Context(), store, filepath.Join(dir, "missing")); err == nil {
		t.Fatal("expected error")
	}
}

func TestJoinNonEmpty(t *testing.T) {
	if got := joinNonEmpty(" a ", "", "  ", "b"); got != "a\nb" {
		t.Fatalf("got %q", got)
	}
	if got := joinNonEmpty("", " "); got != "" {
		t.Fatalf("got %q", got)
	}
}
