package prompts

import (
	"fmt"
	"os"
	"time"

	"github.com/reusee/mailx/generators"
	"github.com/reusee/mailx/mailconfigs"
)

// Bootstrap returns the fixed system turns that open every conversation:
// instructions, examples, the data access API and tips, in that order.
type Bootstrap func() []generators.Turn

func (Module) Bootstrap(
	email mailconfigs.UserEmail,
) Bootstrap {
	return func() []generators.Turn {
		return Turns(string(email), time.Now())
	}
}

func Turns(userEmail string, now time.Time) []generators.Turn {
	cwd, _ := os.Getwd()
	instructions := fmt.Sprintf(Instructions, now.Format(time.DateOnly), cwd)
	if userEmail != "" {
		instructions += "\nThe customer's email address is " + userEmail
	}
	return []generators.Turn{
		{Role: generators.RoleSystem, Content: instructions},
		{Role: generators.RoleSystem, Content: Examples},
		{Role: generators.RoleSystem, Content: DataAPI},
		{Role: generators.RoleSystem, Content: Tips},
	}
}
