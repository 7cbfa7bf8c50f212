package diag

import "cronac/internal/source"

// Reporter is the minimal contract a pass uses to emit diagnostics,
// without needing to know whether they land in a Bag, get relayed across a
// fan-out, or are dropped.
type Reporter interface {
	Report(severity Severity, code Code, primary source.Span)
}

// BagReporter adapts a Bag to the Reporter interface.
type BagReporter struct{ Bag *Bag }

// Report appends a diagnostic built from code's canonical message.
func (r BagReporter) Report(severity Severity, code Code, primary source.Span) {
	if r.Bag == nil {
		return
	}
	r.Bag.Add(Diagnostic{
		Severity: severity,
		Code:     code,
		Message:  code.Message(),
		Primary:  primary,
	})
}

// Fatal reports a semantic error at primary.
func Fatal(r Reporter, code Code, primary source.Span) {
	r.Report(SevFatal, code, primary)
}

// Internal reports an invariant violation at primary.
func Internal(r Reporter, code Code, primary source.Span) {
	r.Report(SevInternal, code, primary)
}
