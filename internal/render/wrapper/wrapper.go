// Package wrapper normalises template component source so that it defines a
// single entry point, PortfolioComponent, which the document mounts.
package wrapper

import (
	"regexp"
	"strings"
)

const (
	EntryPoint  = "PortfolioComponent"
	DefaultName = "Component"
)

// Wrapper rewrites component source. Implementations never fail: the result
// may be syntactically invalid when the input was.
type Wrapper interface {
	Wrap(code string) string
}

var (
	exportDefaultRe = regexp.MustCompile(`export\s+default\b\s*`)
	declNameRe      = regexp.MustCompile(`(?:function|const)\s+([A-Za-z_$][\w$]*)`)
)

// Regex is the text matching strategy stored templates were written against.
type Regex struct{}

func (Regex) Wrap(code string) string {
	return Wrap(code)
}

// Wrap applies, first match wins:
//  1. "export default X" becomes "const PortfolioComponent = X"
//  2. a function or const declaration gets "const PortfolioComponent = NAME;" appended
//  3. anything else is treated as an expression and assigned in parentheses
func Wrap(code string) string {
	if loc := exportDefaultRe.FindStringIndex(code); loc != nil {
		return code[:loc[0]] + "const " + EntryPoint + " = " + code[loc[1]:]
	}

	if strings.Contains(code, "function") || strings.Contains(code, "const") {
		name := DefaultName
		if m := declNameRe.FindStringSubmatch(code); m != nil {
			name = m[1]
		}
		return code + "\n\nconst " + EntryPoint + " = " + name + ";"
	}

	return "const " + EntryPoint + " = (" + trimExpression(code) + ");"
}

// ForStrategy returns the wrapper for a RENDER_WRAP_STRATEGY value.
func ForStrategy(name string) Wrapper {
	if name == "ast" {
		return NewAST()
	}
	return Regex{}
}

func trimExpression(code string) string {
	return strings.TrimRight(strings.TrimSpace(code), "; \t\r\n")
}
