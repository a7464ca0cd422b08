package render

import (
	"bytes"
	"strings"
	"testing"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"
)

func run(t *testing.T, src string) string {
	buf := new(bytes.Buffer)
	r := NewRenderer(buf, false)
	thread := &starlark.Thread{
		Name:  "test",
		Print: r.Print,
	}
	_, err := starlark.ExecFileOptions(&syntax.FileOptions{
		TopLevelControl: true,
	}, thread, "test.star", src, r.Namespace())
	if err != nil {
		t.Fatal(err)
	}
	return buf.String()
}

func TestNamespaceText(t *testing.T) {
	out := run(t, `
title("Message Count")
header("Totals")
write("count", 3, None, [1, 2])
info("note")
success("done")
warning("careful")
error("bad")
metric("Total Messages", 42)
code("x = 1")
print("printed")
`)
	for _, want := range []string{
		"Message Count",
		"Totals",
		"count 3  [1, 2]",
		"note",
		"done",
		"careful",
		"bad",
		"Total Messages: 42",
		"x = 1",
		"printed",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("missing %q in:\n%s", want, out)
		}
	}
	if strings.Contains(out, "\x1b[") {
		t.Fatal("escape sequences in plain output")
	}
}

func TestNamespaceTable(t *testing.T) {
	out := run(t, `
table([[1, "a@b.com"], (2, "c@d.com")], columns = ["ID", "Email"])
table([{"sender": "x@y.com", "n": 3}])
`)
	for _, want := range []string{"ID", "Email", "a@b.com", "c@d.com", "sender", "x@y.com", "3"} {
		if !strings.Contains(out, want) {
			t.Fatalf("missing %q in:\n%s", want, out)
		}
	}
}

func TestNamespaceJSON(t *testing.T) {
	out := run(t, `json({"a": 1, "b": [True, None]})`)
	if !strings.Contains(out, `"a": 1`) || !strings.Contains(out, `null`) {
		t.Fatalf("got:\n%s", out)
	}
}

func TestNamespaceMarkdown(t *testing.T) {
	out := run(t, `markdown("# Heading\n\nsome *text*")`)
	if !strings.Contains(out, "Heading") || !strings.Contains(out, "text") {
		t.Fatalf("got:\n%s", out)
	}
}

func TestNamespaceModules(t *testing.T) {
	out := run(t, `
write(math.floor(2.5))
write(time.parse_time("2024-01-02T00:00:00Z").year)
`)
	if !strings.Contains(out, "2\n") || !strings.Contains(out, "2024") {
		t.Fatalf("got:\n%s", out)
	}
}

func TestNamespaceArgErrors(t *testing.T) {
	r := NewRenderer(new(bytes.Buffer), false)
	for _, src := range []string{
		`metric("x")`,
		`table(1)`,
		`table([], columns = 1)`,
		`write(x = 1)`,
	} {
		_, err := starlark.ExecFileOptions(&syntax.FileOptions{}, new(starlark.Thread), "test.star", src, r.Namespace())
		if err == nil {
			t.Fatalf("%s: expected error", src)
		}
	}
}

func TestResults(t *testing.T) {
	buf := new(bytes.Buffer)
	r := NewRenderer(buf, false)
	r.Message("  Here you go.  ")
	r.Message("   ")
	r.Script("if x", "got newline, want ':'")
	r.Failure("division by zero", "1 / 0")
	out := buf.String()
	for _, want := range []string{"Here you go.", "invalid script", "if x", "want ':'", "error executing script", "division by zero", "1 / 0"} {
		if !strings.Contains(out, want) {
			t.Fatalf("missing %q in:\n%s", want, out)
		}
	}
}
