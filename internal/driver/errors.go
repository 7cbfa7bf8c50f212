package driver

import "fmt"

// InternalError marks an invariant violation in the compiler itself — a
// node with no recorded type reaching lowering, a symbol with no resolved
// type, and the like. It is never caused by user source and is never
// recovered from; the CLI reports it with an "INTERNAL:" prefix and exits
// 1, mirroring the original driver's InternalError exception.
type InternalError struct {
	Msg string
}

func (e *InternalError) Error() string { return fmt.Sprintf("internal error: %s", e.Msg) }

// NewInternalError constructs an InternalError with msg.
func NewInternalError(msg string) *InternalError { return &InternalError{Msg: msg} }
