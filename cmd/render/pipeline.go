package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/foliocraft/foliocraft-backend/internal/render"
	"github.com/foliocraft/foliocraft-backend/internal/render/document"
	"github.com/foliocraft/foliocraft-backend/internal/render/domain"
	"github.com/foliocraft/foliocraft-backend/internal/render/validator"
	"github.com/foliocraft/foliocraft-backend/internal/render/wrapper"
)

var errInvalidComponent = errors.New("component failed validation")

// buildOptions is shared by build and watch.
type buildOptions struct {
	customizations string
	output         string
}

func newEngine(strategy string) *render.Engine {
	gen := document.New(document.WithWrapper(wrapper.ForStrategy(strategy)))
	return render.NewEngine(validator.New(), gen, nil, nil)
}

// loadCustomizations reads a flat YAML mapping. Scalars of any type are kept
// as their string form.
func loadCustomizations(path string) (map[string]string, error) {
	if path == "" {
		return map[string]string{}, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	out := map[string]string{}
	if err := yaml.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return out, nil
}

func formatErrors(res domain.ValidationResult) string {
	var b strings.Builder
	for _, e := range res.Errors {
		b.WriteString("  - ")
		b.WriteString(e)
		b.WriteByte('\n')
	}
	return b.String()
}

// build renders file into opts.output, or returns the document when output
// is empty.
func build(e *render.Engine, file string, opts buildOptions) (string, domain.ValidationResult, error) {
	code, err := os.ReadFile(file)
	if err != nil {
		return "", domain.ValidationResult{}, err
	}
	custom, err := loadCustomizations(opts.customizations)
	if err != nil {
		return "", domain.ValidationResult{}, err
	}

	doc, res, err := e.Document(domain.RenderContext{ComponentCode: string(code), Customizations: custom})
	if err != nil {
		return "", res, err
	}
	if !res.IsValid {
		return "", res, errInvalidComponent
	}
	if opts.output != "" {
		if err := os.WriteFile(opts.output, []byte(doc), 0o644); err != nil {
			return "", res, err
		}
	}
	return doc, res, nil
}
