package domain

import "errors"

var (
	ErrPreviewNotFound = errors.New("preview not found")
	ErrInvalidHandle   = errors.New("invalid preview handle")
)
