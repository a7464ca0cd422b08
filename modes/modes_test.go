package modes

import (
	"testing"

	"github.com/reusee/dscope"
)

func TestForTest(t *testing.T) {
	dscope.New(ForTest(t)).Call(func(
		got *testing.T,
		mode Mode,
	) {
		if got != t {
			t.Fatal("wrong *testing.T")
		}
		if mode != ModeDevelopment {
			t.Fatalf("got %v", mode)
		}
	})
}

func TestForProduction(t *testing.T) {
	dscope.New(ForProduction()).Call(func(
		mode Mode,
	) {
		if mode != ModeProduction {
			t.Fatalf("got %v", mode)
		}
	})
}
