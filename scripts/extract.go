package scripts

import "strings"

const (
	PrimaryDelimiter  = "@@"
	FallbackDelimiter = "```"
)

// Extract splits a model reply into the conversational message and the
// candidate script. A delimiter is used only if it occurs exactly twice,
// the primary one first. Text after the closing delimiter is dropped.
// If no delimiter qualifies, the whole reply is the message.
func Extract(reply string) (message string, script string, ok bool) {
	for _, delim := range []string{PrimaryDelimiter, FallbackDelimiter} {
		if strings.Count(reply, delim) != 2 {
			continue
		}
		parts := strings.SplitN(reply, delim, 3)
		return parts[0], parts[1], true
	}
	return reply, "", false
}
