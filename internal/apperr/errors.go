// Package apperr holds the error taxonomy shared by the repository, service and
// controller layers.
package apperr

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNotFound means a referenced route, stop, driver or catalog row does not exist.
	ErrNotFound = errors.New("not found")
	// ErrConflict means a uniqueness constraint was violated.
	ErrConflict = errors.New("conflict")
)

// Violation is one field-level input problem. Field is a dotted path such as
// "stops.2.dropoff_point_id".
type Violation struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Violations is the list returned by the validation layer.
type Violations []Violation

func (v *Violations) Add(field, message string) {
	*v = append(*v, Violation{Field: field, Message: message})
}

func (v Violations) Empty() bool {
	return len(v) == 0
}

// Has reports whether any violation targets field.
func (v Violations) Has(field string) bool {
	for _, x := range v {
		if x.Field == field {
			return true
		}
	}
	return false
}

// ValidationError carries the violations of a rejected submission.
type ValidationError struct {
	Violations Violations
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Violations))
	for _, v := range e.Violations {
		parts = append(parts, v.Field+": "+v.Message)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Invalid wraps violations into an error, or returns nil when there are none.
func Invalid(v Violations) error {
	if v.Empty() {
		return nil
	}
	return &ValidationError{Violations: v}
}

// TransitionError is returned when a stop status change is not allowed.
type TransitionError struct {
	From string
	To   string
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("status transition %s -> %s is not allowed", e.From, e.To)
}

// PersistenceError wraps a datastore failure. Callers show a generic message and log
// Cause.
type PersistenceError struct {
	Op    string
	Cause error
}

func (e *PersistenceError) Error() string {
	return e.Op + ": " + e.Cause.Error()
}

func (e *PersistenceError) Unwrap() error {
	return e.Cause
}

// Persistence wraps err as a PersistenceError unless it already belongs to the
// taxonomy.
func Persistence(op string, err error) error {
	if err == nil {
		return nil
	}
	var pe *PersistenceError
	if errors.Is(err, ErrNotFound) || errors.Is(err, ErrConflict) || errors.As(err, &pe) {
		return err
	}
	return &PersistenceError{Op: op, Cause: err}
}

// NotFound wraps ErrNotFound with the missing entity.
func NotFound(entity string, id any) error {
	return fmt.Errorf("%s %v: %w", entity, id, ErrNotFound)
}
