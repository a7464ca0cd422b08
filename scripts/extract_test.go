package scripts

import "testing"

func TestExtract(t *testing.T) {
	cases := []struct {
		reply   string
		message string
		script  string
		ok      bool
	}{
		{
			reply:   "Here it is.\n@@\nwrite(1)\n@@\ntrailing",
			message: "Here it is.\n",
			script:  "\nwrite(1)\n",
			ok:      true,
		},
		{
			reply:   "fenced\n```python\nwrite(1)\n```",
			message: "fenced\n",
			script:  "python\nwrite(1)\n",
			ok:      true,
		},
		{
			// one primary delimiter, two fallback ones
			reply:   "a @@ b ```x```",
			message: "a @@ b ",
			script:  "x",
			ok:      true,
		},
		{
			// primary wins when both qualify
			reply:   "m @@s@@ ```f```",
			message: "m ",
			script:  "s",
			ok:      true,
		},
		{
			reply:   "just talking",
			message: "just talking",
		},
		{
			reply:   "three @@ a @@ b @@",
			message: "three @@ a @@ b @@",
		},
		{
			reply:   "",
			message: "",
		},
	}
	for _, c := range cases {
		message, script, ok := Extract(c.reply)
		if message != c.message || script != c.script || ok != c.ok {
			t.Fatalf("%q: got %q %q %v", c.reply, message, script, ok)
		}
	}
}
