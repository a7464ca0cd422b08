package scripts

import (
	"encoding/json"
	"fmt"
	"strings"

	"go.starlark.net/syntax"
)

// FileOptions are the dialect options shared by validation and execution.
var FileOptions = &syntax.FileOptions{
	Set:             true,
	While:           true,
	TopLevelControl: true,
	GlobalReassign:  true,
	Recursion:       true,
}

// ScriptName is the file name reported in parse errors and backtraces.
const ScriptName = "script.star"

var languageTags = []string{
	"starlark",
	"python",
	"star",
	"py",
}

// ValidatedScript is a candidate script classified as valid or not.
// Invalid scripts keep their source so the failure can be shown.
type ValidatedScript struct {
	Source     string
	Valid      bool
	Diagnostic string
}

func Validate(candidate string) ValidatedScript {
	source := Normalize(candidate)

	if payload, ok, err := decodePayload(source); ok {
		if err != nil {
			return ValidatedScript{
				Source:     payload,
				Diagnostic: err.Error(),
			}
		}
		source = payload
	}

	if _, err := FileOptions.Parse(ScriptName, source, 0); err != nil {
		return ValidatedScript{
			Source:     source,
			Diagnostic: err.Error(),
		}
	}

	return ValidatedScript{
		Source: source,
		Valid:  true,
	}
}

// Normalize dedents and trims the candidate, then drops a leading language
// tag line and dedents what follows it.
func Normalize(candidate string) string {
	source := strings.TrimSpace(dedent(candidate))
	for _, tag := range languageTags {
		rest, found := strings.CutPrefix(source, tag)
		if !found {
			continue
		}
		if rest == "" || rest[0] == '\n' || rest[0] == '\r' {
			return strings.TrimSpace(dedent(strings.TrimLeft(rest, "\r\n")))
		}
	}
	return source
}

// decodePayload handles candidates that are JSON values rather than code.
// A JSON string is unwrapped and normalized into the script text. Any other JSON value is
// re-encoded and reported as not being a script.
func decodePayload(source string) (payload string, ok bool, err error) {
	var value any
	if json.Unmarshal([]byte(source), &value) != nil {
		return "", false, nil
	}
	if s, isString := value.(string); isString {
		return Normalize(s), true, nil
	}
	encoded, marshalErr := json.Marshal(value)
	if marshalErr != nil {
		return source, true, marshalErr
	}
	return string(encoded), true, fmt.Errorf("structured payload of type %s is not a script", jsonKind(value))
}

func jsonKind(value any) string {
	switch value.(type) {
	case nil:
		return "null"
	case bool:
		return "bool"
	case float64:
		return "number"
	case []any:
		return "array"
	case map[string]any:
		return "object"
	}
	return fmt.Sprintf("%T", value)
}

// Annotate renders the assistant turn recorded in the conversation: the
// message followed by the delimited script, plus the diagnostic when invalid.
func (v ValidatedScript) Annotate(message string) string {
	if v.Valid {
		return message + "\n" + PrimaryDelimiter + "\n" + v.Source + "\n" + PrimaryDelimiter
	}
	return message + "\nINVALID SCRIPT:\n" + PrimaryDelimiter + "\n" + v.Source + "\n" + PrimaryDelimiter +
		"\n\nERROR: " + v.Diagnostic
}
