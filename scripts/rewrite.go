package scripts

import (
	"strings"
)

// Rewrite injects subject exclusions into single-line ordered message queries.
// A line qualifies only if it contains SELECT, "FROM messages", WHERE and
// ORDER BY with that exact casing; every WHERE on it, subqueries included,
// gains one "subject NOT LIKE '%term%'" predicate per term. Other lines are returned
// unchanged, including queries split across lines.
func Rewrite(source string, terms []string) (rewritten string, n int) {
	if len(terms) == 0 {
		return source, 0
	}
	predicates := make([]string, 0, len(terms))
	for _, term := range terms {
		predicates = append(predicates, "subject NOT LIKE '%"+strings.ReplaceAll(term, "'", "''")+"%'")
	}
	injected := "WHERE " + strings.Join(predicates, " AND ") + " AND"

	lines := strings.Split(source, "\n")
	for i, line := range lines {
		if !qualifies(line) {
			continue
		}
		lines[i] = strings.ReplaceAll(line, "WHERE", injected)
		n++
	}
	if n == 0 {
		return source, 0
	}
	return strings.Join(lines, "\n"), n
}

func qualifies(line string) bool {
	return strings.Contains(line, "SELECT") &&
		strings.Contains(line, "FROM messages") &&
		strings.Contains(line, "WHERE") &&
		strings.Contains(line, "ORDER BY")
}
