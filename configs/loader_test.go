package configs

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"
)

var testSchema = `
str?: string
list?: [...int]
`

func writeFile(t *testing.T, name string, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoaderAssignFirst(t *testing.T) {
	loader := NewLoader([]string{
		writeFile(t, "a.cue", `str: "bar", list: [1, 2, 3]`),
	}, testSchema)

	var str string
	if err := loader.AssignFirst("str", &str); err != nil {
		t.Fatal(err)
	}
	if str != "bar" {
		t.Fatalf("got %q", str)
	}

	var list []int
	if err := loader.AssignFirst("list", &list); err != nil {
		t.Fatal(err)
	}
	if str := fmt.Sprintf("%v", list); str != "[1 2 3]" {
		t.Fatalf("got %s", str)
	}

	err := loader.AssignFirst("not", &list)
	if !errors.Is(err, ErrValueNotFound) {
		t.Fatalf("got %v", err)
	}
}

func TestLoaderIterCueValues(t *testing.T) {
	loader := NewLoader([]string{
		writeFile(t, "a.cue", `str: "bar"`),
		writeFile(t, "b.cue", `str: "foo"`),
		writeFile(t, "c.cue", `list: [1]`),
	}, testSchema)

	var strs []string
	for str := range All[string](loader, "str") {
		strs = append(strs, str)
	}
	if str := fmt.Sprintf("%v", strs); str != "[bar foo]" {
		t.Fatalf("got %q", str)
	}

	if got := First[string](loader, "str"); got != "bar" {
		t.Fatalf("got %q", got)
	}
	if got := First[string](NewLoader(nil, testSchema), "str"); got != "" {
		t.Fatalf("got %q", got)
	}

	paths, err := loader.Paths()
	if err != nil {
		t.Fatal(err)
	}
	if len(paths) != 3 {
		t.Fatalf("got %v", paths)
	}
}

func TestUnknownField(t *testing.T) {
	loader := NewLoader([]string{
		writeFile(t, "bad.cue", `unknown_field: "x"`),
	}, testSchema)
	var str string
	if err := loader.AssignFirst("unknown_field", &str); err == nil {
		t.Fatal("should error")
	}
}
