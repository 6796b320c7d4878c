package service

import "fmt"

// ValidationError is returned when a request is rejected before storage is
// touched, for example when a required field is missing.
type ValidationError struct {
	message string
}

// Error returns the error message for a ValidationError.
func (e ValidationError) Error() string {
	return e.message
}

// NewValidationError returns a new error describing an invalid request.
func NewValidationError(formatString string, a ...interface{}) ValidationError {
	return ValidationError{message: fmt.Sprintf(formatString, a...)}
}

// NotFoundOrForbiddenError is returned when the target notification either
// does not exist or belongs to another user. The two cases deliberately share
// one error so that a caller can't probe for the existence of notifications
// it doesn't own.
type NotFoundOrForbiddenError struct {
	id string
}

// Error returns the error message for a NotFoundOrForbiddenError.
func (e NotFoundOrForbiddenError) Error() string {
	return fmt.Sprintf("notification `%s` not found", e.id)
}

// NewNotFoundOrForbiddenError returns a new error for a notification that the
// requesting user may not see.
func NewNotFoundOrForbiddenError(id string) NotFoundOrForbiddenError {
	return NotFoundOrForbiddenError{id: id}
}

// StorageError wraps a failure reported by the persistence layer. The cause
// is not interpreted here; it's preserved so that the caller can decide what
// to do with it.
type StorageError struct {
	cause error
}

// Error returns the error message for a StorageError.
func (e StorageError) Error() string {
	return fmt.Sprintf("storage failure: %s", e.cause.Error())
}

// Cause returns the underlying storage fault.
func (e StorageError) Cause() error {
	return e.cause
}

// Unwrap returns the underlying storage fault.
func (e StorageError) Unwrap() error {
	return e.cause
}

// NewStorageError wraps an error from the persistence layer.
func NewStorageError(cause error) StorageError {
	return StorageError{cause: cause}
}
