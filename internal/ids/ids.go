// Package ids checks resource ids taken from URLs and request bodies before
// they reach a uuid column.
package ids

import "github.com/google/uuid"

// Canonical returns id in lowercase hyphenated form. ok is false for
// anything that is not a plain 36 character uuid.
func Canonical(id string) (canonical string, ok bool) {
	if len(id) != 36 {
		return "", false
	}
	u, err := uuid.Parse(id)
	if err != nil {
		return "", false
	}
	return u.String(), true
}
