package apperrors

import "fmt"

// Entity names the document kind a NotFoundError refers to.
type Entity string

const (
	EntityForm       Entity = "Form"
	EntitySubmission Entity = "Submission"
)

// NotFoundError signals that a referenced id does not exist. Internal
// storage errors are never surfaced separately from this kind.
type NotFoundError struct {
	Entity Entity
	Reason string
}

func (e *NotFoundError) Error() string { return e.Reason }

// ValidationError covers schema/answer mismatches, illegal status targets,
// duplicate item ids and malformed filter lists. The reason string is
// suitable for direct display; the first failing check wins.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string { return e.Reason }

// ForbiddenAccessError signals a failed role or permission gate, distinct
// from validation failures.
type ForbiddenAccessError struct {
	Reason string
}

func (e *ForbiddenAccessError) Error() string { return e.Reason }

// Constructors keep call sites terse.

func NewFormNotFound(reason string) *NotFoundError {
	return &NotFoundError{Entity: EntityForm, Reason: reason}
}

func NewSubmissionNotFound(reason string) *NotFoundError {
	return &NotFoundError{Entity: EntitySubmission, Reason: reason}
}

func NewValidation(format string, args ...any) *ValidationError {
	return &ValidationError{Reason: fmt.Sprintf(format, args...)}
}

func NewForbidden(reason string) *ForbiddenAccessError {
	return &ForbiddenAccessError{Reason: reason}
}
