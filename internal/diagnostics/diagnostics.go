// Package diagnostics renders core errors with source spans, the way
// the driver wraps internal/infer.InferError per spec.md §6.
package diagnostics

import (
	"fmt"
	"strings"

	"github.com/lumo-lang/lumoc/internal/token"
)

// DiagnosticError is a source-span-annotated error surfaced by the CLI.
type DiagnosticError struct {
	Message string
	Code    string
	Pos     token.Position
}

func (e *DiagnosticError) Error() string {
	return fmt.Sprintf("%d:%d: [%s] %s", e.Pos.Line, e.Pos.Column, e.Code, e.Message)
}

// CodeFor classifies an InferError message by prefix into a short
// machine-readable code, mirroring walker.addError's dedup key in the
// teacher's analyzer ("line:col:code").
func CodeFor(message string) string {
	switch {
	case strings.HasPrefix(message, "There is no"):
		return "err-scope"
	case strings.HasPrefix(message, "cannot transform"):
		return "err-scope"
	case strings.Contains(message, "declared multiple times"):
		return "err-duplicate"
	case strings.Contains(message, "core definition"):
		return "err-overload"
	case strings.HasPrefix(message, "Cannot constraint"):
		return "err-subtype"
	case strings.Contains(message, "not supported yet") || strings.Contains(message, "not implemented yet"):
		return "err-unsupported"
	default:
		return "err-other"
	}
}

// New wraps message/pos into a DiagnosticError with a derived code.
func New(message string, pos token.Position) *DiagnosticError {
	return &DiagnosticError{Message: message, Code: CodeFor(message), Pos: pos}
}

// Set deduplicates diagnostics by "line:col:code", the teacher's
// walker.errorSet scheme.
type Set struct {
	byKey map[string]*DiagnosticError
}

// NewSet returns an empty diagnostic set.
func NewSet() *Set {
	return &Set{byKey: make(map[string]*DiagnosticError)}
}

// Add inserts d, overwriting any prior diagnostic with the same key.
func (s *Set) Add(d *DiagnosticError) {
	key := fmt.Sprintf("%d:%d:%s", d.Pos.Line, d.Pos.Column, d.Code)
	s.byKey[key] = d
}

// All returns the deduplicated diagnostics, sorted by position.
func (s *Set) All() []*DiagnosticError {
	result := make([]*DiagnosticError, 0, len(s.byKey))
	for _, d := range s.byKey {
		result = append(result, d)
	}
	for i := 1; i < len(result); i++ {
		for j := i; j > 0; j-- {
			a, b := result[j-1], result[j]
			if a.Pos.Line < b.Pos.Line || (a.Pos.Line == b.Pos.Line && a.Pos.Column <= b.Pos.Column) {
				break
			}
			result[j-1], result[j] = result[j], result[j-1]
		}
	}
	return result
}
