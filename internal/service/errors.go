package service

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// Service level errors, mapped to HTTP statuses by the handlers
var (
	ErrNotFound      = errors.New("resource not found")
	ErrNotAuthorized = errors.New("not authorized")
	ErrConflict      = errors.New("conflict with current state")
	ErrInvalidInput  = errors.New("invalid input")
)

func notFound(what string, id interface{}) error {
	return fmt.Errorf("%w: %s %v", ErrNotFound, what, id)
}

func invalidInput(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}

// lookupErr turns a missing record into ErrNotFound and wraps anything else
func lookupErr(err error, what string, id interface{}) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return notFound(what, id)
	}
	return fmt.Errorf("failed to get %s %v: %w", what, id, err)
}
