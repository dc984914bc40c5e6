package errs

import (
	"errors"
	"strings"
)

var (
	// ErrForbidden is the sentinel for operations the caller is not allowed to perform.
	ErrForbidden = errors.New("forbidden")

	// ErrInvalidTransition is the sentinel for status changes outside the transition graph.
	ErrInvalidTransition = errors.New("invalid transition")

	// ErrConflict is the sentinel for operations that clash with the current state of an object.
	ErrConflict = errors.New("conflict")
)

// Kind classifies a failure of a batch operation so callers can map it to a response.
type Kind int

const (
	// KindUnknown is any error that is not one of the classified kinds.
	KindUnknown Kind = iota

	// KindInvalidInput means the request itself is malformed or incomplete.
	KindInvalidInput

	// KindNotFound means one or more referenced objects do not exist.
	KindNotFound

	// KindForbidden means the caller lacks permission for the operation or the objects.
	KindForbidden

	// KindInvalidTransition means the requested status change is not a legal edge.
	KindInvalidTransition

	// KindConflict means the objects are in a state that does not allow the operation.
	KindConflict
)

func (k Kind) String() string {
	switch k {
	case KindInvalidInput:
		return "invalid_input"
	case KindNotFound:
		return "not_found"
	case KindForbidden:
		return "forbidden"
	case KindInvalidTransition:
		return "invalid_transition"
	case KindConflict:
		return "conflict"
	default:
		return "unknown"
	}
}

func (k Kind) sentinel() error {
	switch k {
	case KindInvalidInput:
		return ErrValueIsInvalid
	case KindNotFound:
		return ErrObjectNotFound
	case KindForbidden:
		return ErrForbidden
	case KindInvalidTransition:
		return ErrInvalidTransition
	case KindConflict:
		return ErrConflict
	default:
		return nil
	}
}

// Violation names one offending object of a batch and what is wrong with it.
type Violation struct {
	ID     string
	Detail string
}

func (v Violation) String() string {
	if v.Detail == "" {
		return v.ID
	}
	return v.ID + " (" + v.Detail + ")"
}

// BatchError is returned when a batch operation is rejected as a whole.
// Violations lists every offending object, not just the first one found.
//
// Example:
//
//	err := errs.NewBatchError(errs.KindConflict, "orders are already final",
//	    errs.Violation{ID: id.String(), Detail: "delivered"})
//	errors.Is(err, errs.ErrConflict) // true
type BatchError struct {
	Kind       Kind
	Message    string
	Violations []Violation
}

// NewBatchError creates a BatchError of the given kind.
func NewBatchError(kind Kind, message string, violations ...Violation) *BatchError {
	return &BatchError{
		Kind:       kind,
		Message:    message,
		Violations: violations,
	}
}

func (e *BatchError) Error() string {
	if len(e.Violations) == 0 {
		return e.Message
	}

	parts := make([]string, 0, len(e.Violations))
	for _, v := range e.Violations {
		parts = append(parts, v.String())
	}
	return e.Message + ": " + strings.Join(parts, ", ")
}

func (e *BatchError) Unwrap() error {
	return e.Kind.sentinel()
}

// IDs returns the identifiers of all violations in order.
func (e *BatchError) IDs() []string {
	ids := make([]string, 0, len(e.Violations))
	for _, v := range e.Violations {
		ids = append(ids, v.ID)
	}
	return ids
}

// KindOf classifies err. Typed errors of this package map onto the matching kind,
// everything else is KindUnknown.
func KindOf(err error) Kind {
	if err == nil {
		return KindUnknown
	}

	var batchErr *BatchError
	if errors.As(err, &batchErr) {
		return batchErr.Kind
	}

	switch {
	case errors.Is(err, ErrObjectNotFound):
		return KindNotFound
	case errors.Is(err, ErrForbidden):
		return KindForbidden
	case errors.Is(err, ErrInvalidTransition):
		return KindInvalidTransition
	case errors.Is(err, ErrConflict):
		return KindConflict
	case errors.Is(err, ErrValueIsInvalid),
		errors.Is(err, ErrValueIsRequired),
		errors.Is(err, ErrValueIsOutOfRange):
		return KindInvalidInput
	default:
		return KindUnknown
	}
}
