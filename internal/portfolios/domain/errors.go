package domain

import "errors"

var (
	ErrNotFound              = errors.New("portfolio not found")
	ErrSlugTaken             = errors.New("slug already taken")
	ErrInvalidSlug           = errors.New("invalid slug")
	ErrInvalidCustomizations = errors.New("invalid customizations")
	ErrTemplateUnavailable   = errors.New("template unavailable")
)
