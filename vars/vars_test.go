package vars

import "testing"

func TestFirstNonZero(t *testing.T) {
	if got := FirstNonZero("", "", "a", "b"); got != "a" {
		t.Fatalf("got %q", got)
	}
	if got := FirstNonZero(0, 0); got != 0 {
		t.Fatalf("got %v", got)
	}
}

func TestStrToBool(t *testing.T) {
	for _, str := range []string{"yes", "Y", "true", " on "} {
		if !StrToBool(str) {
			t.Fatalf("%q should be true", str)
		}
	}
	for _, str := range []string{"no", "", "maybe"} {
		if StrToBool(str) {
			t.Fatalf("%q should be false", str)
		}
	}
}
