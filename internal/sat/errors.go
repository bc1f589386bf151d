package sat

import "fmt"

// ParseError reports a malformed DIMACS instance: a bad header, a
// non-integer token, a clause that isn't terminated by 0, or a variable id
// outside [1, N]. It surfaces to the caller before Solve begins.
type ParseError struct {
	Filename string
	Line     int
	Reason   string
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("%s:%d: %s", e.Filename, e.Line, e.Reason)
	}
	return fmt.Sprintf("%s: %s", e.Filename, e.Reason)
}

// InternalError signals that a solver invariant was violated mid-search
// (double assignment, a verifier rejecting a claimed model, an analyzer
// that fails to reduce to a single UIP). It is always fatal: InternalError
// is panicked, never returned as a verdict.
type InternalError struct {
	Invariant string
}

func (e *InternalError) Error() string {
	return fmt.Sprintf("internal error: invariant violated: %s", e.Invariant)
}

func internalErrorf(format string, args ...any) {
	panic(&InternalError{Invariant: fmt.Sprintf(format, args...)})
}
