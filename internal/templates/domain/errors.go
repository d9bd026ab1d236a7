package domain

import (
	"errors"
	"strings"
)

var (
	ErrNotFound        = errors.New("template not found")
	ErrInUse           = errors.New("template is used by portfolios")
	ErrInvalidTemplate = errors.New("invalid template")
)

// ValidationError carries the validator messages for rejected component code.
type ValidationError struct {
	Errors []string
}

func (e *ValidationError) Error() string {
	return "invalid template: " + strings.Join(e.Errors, "; ")
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidTemplate
}
