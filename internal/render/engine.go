// Package render runs the template pipeline: validate the component source,
// wrap it, generate the HTML document and publish it as a preview handle.
package render

import (
	"context"

	"go.uber.org/zap"

	"github.com/foliocraft/foliocraft-backend/internal/render/document"
	"github.com/foliocraft/foliocraft-backend/internal/render/domain"
	"github.com/foliocraft/foliocraft-backend/internal/render/preview"
	"github.com/foliocraft/foliocraft-backend/internal/render/validator"
)

// Result of a pipeline run. Handle is nil when validation failed.
type Result struct {
	Validation domain.ValidationResult `json:"validation"`
	Handle     *domain.Handle          `json:"handle,omitempty"`
}

type Engine struct {
	validator *validator.Validator
	generator *document.Generator
	publisher *preview.Publisher
	logger    *zap.Logger
}

func NewEngine(v *validator.Validator, g *document.Generator, p *preview.Publisher, logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{validator: v, generator: g, publisher: p, logger: logger}
}

func (e *Engine) Validate(code string) domain.ValidationResult {
	return e.validator.Validate(code)
}

// Document validates and generates without publishing. The returned string
// is empty when validation failed.
func (e *Engine) Document(rc domain.RenderContext) (string, domain.ValidationResult, error) {
	res := e.validator.Validate(rc.ComponentCode)
	if !res.IsValid {
		return "", res, nil
	}
	doc, err := e.generator.Generate(rc)
	if err != nil {
		return "", res, err
	}
	return doc, res, nil
}

// Render runs the whole pipeline. A failed validation is reported in the
// result, never as an error.
func (e *Engine) Render(ctx context.Context, ownerID string, rc domain.RenderContext) (*Result, error) {
	doc, res, err := e.Document(rc)
	if err != nil {
		return nil, err
	}
	if !res.IsValid {
		e.logger.Debug("component rejected",
			zap.String("owner_id", ownerID),
			zap.Strings("errors", res.Errors))
		return &Result{Validation: res}, nil
	}

	h, err := e.publisher.PublishDocument(ctx, ownerID, doc)
	if err != nil {
		return nil, err
	}
	e.logger.Debug("preview published", zap.String("owner_id", ownerID), zap.String("preview_id", h.ID))
	return &Result{Validation: res, Handle: h}, nil
}

func (e *Engine) Open(ctx context.Context, ref string) (*domain.Blob, error) {
	return e.publisher.Open(ctx, ref)
}

func (e *Engine) Release(ctx context.Context, ownerID, ref string) error {
	return e.publisher.Release(ctx, ownerID, ref)
}

func (e *Engine) ReleaseAll(ctx context.Context, ownerID string) (int, error) {
	return e.publisher.ReleaseAll(ctx, ownerID)
}
