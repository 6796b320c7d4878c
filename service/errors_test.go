package service

import (
	"fmt"
	"testing"

	"github.com/pkg/errors"
)

func TestValidationError(t *testing.T) {
	var err error
	err = NewValidationError("a %s is required", "title")

	// Verify that we got the expected error message.
	if err.Error() != "a title is required" {
		t.Errorf("unexpected error message: %s", err.Error())
	}

	// Verify that a ValidationError was actually returned.
	_, ok := err.(ValidationError)
	if !ok {
		t.Errorf("the error doesn't appear to be a ValidationError")
	}

	// The type must be distinct from the other error kinds.
	_, ok = err.(NotFoundOrForbiddenError)
	if ok {
		t.Errorf("the error appears to be a NotFoundOrForbiddenError")
	}
	_, ok = err.(StorageError)
	if ok {
		t.Errorf("the error appears to be a StorageError")
	}
}

func TestNotFoundOrForbiddenError(t *testing.T) {
	var err error
	err = NewNotFoundOrForbiddenError("2250a4e1-8bb2-46b5-b12f-ce4ed0475dcf")

	// Verify that we got the expected error message.
	expected := "notification `2250a4e1-8bb2-46b5-b12f-ce4ed0475dcf` not found"
	if err.Error() != expected {
		t.Errorf("unexpected error message: %s", err.Error())
	}

	// The message must not reveal whether the notification exists.
	foreign := NewNotFoundOrForbiddenError("2250a4e1-8bb2-46b5-b12f-ce4ed0475dcf")
	if err.Error() != foreign.Error() {
		t.Errorf("missing and foreign notifications produce different messages")
	}

	// Verify that a NotFoundOrForbiddenError was actually returned.
	_, ok := err.(NotFoundOrForbiddenError)
	if !ok {
		t.Errorf("the error doesn't appear to be a NotFoundOrForbiddenError")
	}
}

func TestStorageError(t *testing.T) {
	cause := fmt.Errorf("connection refused")
	var err error
	err = NewStorageError(cause)

	// Verify that we got the expected error message.
	if err.Error() != "storage failure: connection refused" {
		t.Errorf("unexpected error message: %s", err.Error())
	}

	// The cause must be preserved for both error packages.
	if errors.Cause(err) != cause {
		t.Errorf("errors.Cause didn't return the storage fault")
	}
	if errors.Unwrap(err) != cause {
		t.Errorf("errors.Unwrap didn't return the storage fault")
	}

	// Verify that a StorageError was actually returned.
	_, ok := err.(StorageError)
	if !ok {
		t.Errorf("the error doesn't appear to be a StorageError")
	}
}
