package cmds

import (
	"fmt"
	"testing"
)

func TestVar(t *testing.T) {
	a := Var[int]("TestVar-a")
	b := Var[string]("TestVar-b")
	GlobalExecutor.MustExecute([]string{
		"TestVar-a", "42",
		"TestVar-b", "bar",
	})
	if *a != 42 {
		t.Fatalf("got %d", *a)
	}
	if *b != "bar" {
		t.Fatalf("got %q", *b)
	}
	GlobalExecutor.MustExecute([]string{"TestVar-b."})
	if *b != "" {
		t.Fatalf("got %q", *b)
	}
}

func TestSwitch(t *testing.T) {
	foo := Switch("TestSwitch")
	GlobalExecutor.MustExecute([]string{"TestSwitch"})
	if !*foo {
		t.Fatal("should be set")
	}
	GlobalExecutor.MustExecute([]string{"!TestSwitch"})
	if *foo {
		t.Fatal("should be cleared")
	}
}

func TestCollect(t *testing.T) {
	list := Collect[string]("TestCollect")
	GlobalExecutor.MustExecute([]string{
		"TestCollect", "a",
		"TestCollect", "b",
	})
	if str := fmt.Sprintf("%v", *list); str != "[a b]" {
		t.Fatalf("got %s", str)
	}
}

func TestTypedVar(t *testing.T) {
	type Provider string
	v := Var[Provider]("TestTypedVar")
	GlobalExecutor.MustExecute([]string{
		"TestTypedVar", "gemini",
	})
	if *v != "gemini" {
		t.Fatalf("got %q", *v)
	}
}
