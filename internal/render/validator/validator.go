// Package validator scans template component source for constructs that must
// never reach a rendered document. It is a denylist over raw text, not a
// sandbox: obfuscated code (string concatenation, bracket access) passes.
package validator

import (
	"regexp"
	"strings"

	"github.com/foliocraft/foliocraft-backend/internal/render/domain"
)

const (
	MsgEmptyCode  = "Component code is empty"
	MsgMustReturn = "Component must return JSX"
)

// Rule pairs a forbidden pattern with the message reported when it matches.
type Rule struct {
	Pattern *regexp.Regexp
	Message string
}

// DefaultRules is evaluated in declaration order; messages are reported in
// this order regardless of where in the source each pattern matched.
var DefaultRules = []Rule{
	{Pattern: regexp.MustCompile(`\bfetch\s*\(`), Message: "Network requests (fetch) are not allowed"},
	{Pattern: regexp.MustCompile(`\bnew\s+XMLHttpRequest\b`), Message: "XMLHttpRequest is not allowed"},
	{Pattern: regexp.MustCompile(`\beval\s*\(`), Message: "eval() is not allowed"},
	{Pattern: regexp.MustCompile(`\bFunction\s*\(`), Message: "Dynamic Function construction is not allowed"},
	{Pattern: regexp.MustCompile(`\brequire\s*\(`), Message: "require() is not allowed"},
}

type Validator struct {
	rules []Rule
}

// New returns a Validator running DefaultRules followed by extra.
func New(extra ...Rule) *Validator {
	rules := make([]Rule, 0, len(DefaultRules)+len(extra))
	rules = append(rules, DefaultRules...)
	rules = append(rules, extra...)
	return &Validator{rules: rules}
}

// Validate never fails; a non-empty Errors slice is the failure signal.
func (v *Validator) Validate(code string) domain.ValidationResult {
	if strings.TrimSpace(code) == "" {
		return domain.ValidationResult{IsValid: false, Errors: []string{MsgEmptyCode}}
	}

	errs := make([]string, 0)
	for _, r := range v.rules {
		if r.Pattern.MatchString(code) {
			errs = append(errs, r.Message)
		}
	}

	// heuristic only: no parse is done to check what is returned
	if !strings.Contains(code, "return") && !strings.Contains(code, "jsx") {
		errs = append(errs, MsgMustReturn)
	}

	return domain.ValidationResult{IsValid: len(errs) == 0, Errors: errs}
}

var std = New()

// Validate runs the default rule set.
func Validate(code string) domain.ValidationResult {
	return std.Validate(code)
}
