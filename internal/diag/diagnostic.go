package diag

import "cronac/internal/source"

// Diagnostic is a single reported problem: a severity, a code from the
// closed set, the rendered message, and the primary source location.
type Diagnostic struct {
	Severity Severity
	Code     Code
	Message  string
	Primary  source.Span
}
