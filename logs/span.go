package logs

// Span identifies one unit of work, typically one question asked.
type Span string

type spanKey struct{}

var SpanKey spanKey
