package domain

import (
	"errors"
	"strings"
)

var (
	ErrNotFound = errors.New("cv record not found")
	ErrInvalid  = errors.New("invalid cv record")
)

// ValidationError lists every problem found in one record.
type ValidationError struct {
	Errors []string
}

func (e *ValidationError) Error() string {
	return "invalid cv record: " + strings.Join(e.Errors, "; ")
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalid
}
