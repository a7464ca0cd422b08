package vars

import "strings"

// StrToBool parses common yes/no spellings. Unknown strings are false.
func StrToBool(str string) bool {
	switch strings.ToLower(strings.TrimSpace(str)) {
	case "true", "t", "yes", "y", "1", "on":
		return true
	}
	return false
}
