package conversations

import (
	"testing"

	"github.com/reusee/mailx/generators"
)

func TestConversation(t *testing.T) {
	c := New()
	if c.Bootstrapped() {
		t.Fatal("should be empty")
	}
	if _, ok := c.Last(); ok {
		t.Fatal("should have no last turn")
	}

	c.Append(
		generators.Turn{Role: generators.RoleSystem, Content: "a"},
		generators.Turn{Role: generators.RoleUser, Content: "b"},
	)
	snapshot := c.Turns()
	c.Append(generators.Turn{Role: generators.RoleAssistant, Content: "c"})

	if len(snapshot) != 2 {
		t.Fatalf("snapshot changed: %v", snapshot)
	}
	if c.Len() != 3 {
		t.Fatalf("got %d", c.Len())
	}
	snapshot[0].Content = "mutated"
	if c.Turns()[0].Content != "a" {
		t.Fatal("snapshot aliases the log")
	}
	last, ok := c.Last()
	if !ok || last.Content != "c" || last.Role != generators.RoleAssistant {
		t.Fatalf("got %+v", last)
	}
}
