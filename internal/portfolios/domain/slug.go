package domain

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"regexp"
	"strings"
)

const (
	MinSlugLen = 3
	MaxSlugLen = 64
)

var (
	slugRe     = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)
	nonSlugRun = regexp.MustCompile(`[^a-z0-9]+`)
)

func ValidSlug(s string) bool {
	return len(s) >= MinSlugLen && len(s) <= MaxSlugLen && slugRe.MatchString(s)
}

// Slugify lowercases s and collapses everything that is not [a-z0-9] into
// single dashes. The result may still be shorter than MinSlugLen.
func Slugify(s string) string {
	s = nonSlugRun.ReplaceAllString(strings.ToLower(s), "-")
	s = strings.Trim(s, "-")
	if len(s) > MaxSlugLen-6 {
		s = strings.TrimRight(s[:MaxSlugLen-6], "-")
	}
	return s
}

// SuffixedSlug appends a random 5 digit suffix, e.g. "jane-doe-48213".
func SuffixedSlug(base string) (string, error) {
	n, err := randInt(10000, 99999)
	if err != nil {
		return "", err
	}
	if base == "" {
		base = "portfolio"
	}
	return fmt.Sprintf("%s-%05d", base, n), nil
}

func randInt(min, max int64) (int64, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(max-min+1))
	if err != nil {
		return 0, err
	}
	return min + n.Int64(), nil
}
