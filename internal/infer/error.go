// Package infer implements spec.md §4.3–§4.5: the scan pass, the
// inference walker, the constrain subtyping propagator, and the
// polarity-driven coalescer.
package infer

import "fmt"

// InferError is the single error kind the core produces (spec.md §7).
// The driver alone attaches source spans and formats these for
// display; Message is the only field the core contract promises.
type InferError struct {
	Message string
}

func (e *InferError) Error() string { return e.Message }

func newErr(format string, args ...any) *InferError {
	return &InferError{Message: fmt.Sprintf(format, args...)}
}
