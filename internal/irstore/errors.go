package irstore

import (
	"errors"
	"fmt"
)

// Kind classifies a mutation failure per the error taxonomy: transaction
// misuse, reference errors against unknown entities, and state violations
// that a structurally valid mutation would still reject.
type Kind string

const (
	TransactionMisuse Kind = "transaction_misuse"
	ReferenceError    Kind = "reference_error"
	StateViolation    Kind = "state_violation"
)

// Error is the mutation-error type every store method returns. Op names the
// failing operation ("create", "bindText", "commit", ...) the way
// [Tx.Commit]-style errors in the reference store package prefix their
// messages with the verb that failed.
type Error struct {
	Kind Kind
	Op   string
	err  error
}

func (e *Error) Error() string {
	if e.err == nil {
		return fmt.Sprintf("%s: %s", e.Op, e.Kind)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.err)
}

func (e *Error) Unwrap() error { return e.err }

func newError(kind Kind, op, detail string) *Error {
	return &Error{Kind: kind, Op: op, err: errors.New(detail)}
}

func wrapError(kind Kind, op string, err error) *Error {
	return &Error{Kind: kind, Op: op, err: err}
}

// IsKind reports whether err is an *Error of the given kind.
func IsKind(err error, kind Kind) bool {
	var e *Error
	if !errors.As(err, &e) {
		return false
	}
	return e.Kind == kind
}
