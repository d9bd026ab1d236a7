package domain

import (
	"fmt"
	"regexp"
	"unicode/utf8"
)

const (
	MaxCustomizationFields = 200
	MaxFieldValueLen       = 20000
)

var fieldNameRe = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_.-]{0,63}$`)

// Validate rejects maps the render engine should never see: bad field
// names, oversized values or invalid UTF-8.
func (c Customizations) Validate() error {
	if len(c) > MaxCustomizationFields {
		return fmt.Errorf("%w: at most %d fields", ErrInvalidCustomizations, MaxCustomizationFields)
	}
	for k, v := range c {
		if !fieldNameRe.MatchString(k) {
			return fmt.Errorf("%w: field name %q", ErrInvalidCustomizations, k)
		}
		if len(v) > MaxFieldValueLen {
			return fmt.Errorf("%w: value of %q is too long", ErrInvalidCustomizations, k)
		}
		if !utf8.ValidString(v) {
			return fmt.Errorf("%w: value of %q is not valid UTF-8", ErrInvalidCustomizations, k)
		}
	}
	return nil
}
