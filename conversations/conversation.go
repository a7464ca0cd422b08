package conversations

import (
	"slices"

	"github.com/reusee/mailx/generators"
)

// Conversation is the ordered, append-only turn log of one session.
// It lives in memory for the lifetime of its owner and is never persisted.
type Conversation struct {
	turns []generators.Turn
}

func New() *Conversation {
	return new(Conversation)
}

func (c *Conversation) Append(turns ...generators.Turn) {
	c.turns = append(c.turns, turns...)
}

// Turns returns a snapshot; later appends do not affect it.
func (c *Conversation) Turns() []generators.Turn {
	return slices.Clone(c.turns)
}

func (c *Conversation) Len() int {
	return len(c.turns)
}

// Bootstrapped reports whether any turn has been recorded.
func (c *Conversation) Bootstrapped() bool {
	return len(c.turns) > 0
}

func (c *Conversation) Last() (generators.Turn, bool) {
	if len(c.turns) == 0 {
		return generators.Turn{}, false
	}
	return c.turns[len(c.turns)-1], true
}
