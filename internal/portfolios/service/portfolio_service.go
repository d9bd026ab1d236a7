package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/foliocraft/foliocraft-backend/internal/ids"
	"github.com/foliocraft/foliocraft-backend/internal/portfolios/domain"
	"github.com/foliocraft/foliocraft-backend/internal/render"
	renderdomain "github.com/foliocraft/foliocraft-backend/internal/render/domain"
	templatesdomain "github.com/foliocraft/foliocraft-backend/internal/templates/domain"
)

// Repository is implemented by repository.PortfolioRepository.
type Repository interface {
	Create(ctx context.Context, req *domain.CreatePortfolioRequest) (*domain.Portfolio, error)
	GetForUser(ctx context.Context, userID, id string) (*domain.Portfolio, error)
	GetPublishedBySlug(ctx context.Context, slug string) (*domain.Portfolio, error)
	ListByUser(ctx context.Context, userID string) ([]domain.Portfolio, error)
	Update(ctx context.Context, p *domain.Portfolio) (*domain.Portfolio, error)
	SoftDelete(ctx context.Context, userID, id string) error
	GetCustomizations(ctx context.Context, portfolioID, templateID string) (domain.Customizations, error)
	ReplaceCustomizations(ctx context.Context, portfolioID, templateID string, keys []string, c domain.Customizations) error
}

// TemplateSource is implemented by the templates service.
type TemplateSource interface {
	GetActive(ctx context.Context, id string) (*templatesdomain.Template, error)
}

// Renderer is implemented by render.Engine.
type Renderer interface {
	Render(ctx context.Context, ownerID string, rc renderdomain.RenderContext) (*render.Result, error)
	Document(rc renderdomain.RenderContext) (string, renderdomain.ValidationResult, error)
}

const slugAttempts = 5

type PortfolioService struct {
	repo      Repository
	templates TemplateSource
	renderer  Renderer
}

func NewPortfolioService(repo Repository, templates TemplateSource, renderer Renderer) *PortfolioService {
	return &PortfolioService{repo: repo, templates: templates, renderer: renderer}
}

// Create stores a new portfolio. An explicit slug must be valid and free;
// without one the slug is derived from the title and suffixed until free.
func (s *PortfolioService) Create(ctx context.Context, req *domain.CreatePortfolioRequest) (*domain.Portfolio, error) {
	req.Title = strings.TrimSpace(req.Title)
	req.Slug = strings.TrimSpace(req.Slug)

	if err := s.requireTemplate(ctx, req.TemplateID); err != nil {
		return nil, err
	}

	if req.Slug != "" {
		if !domain.ValidSlug(req.Slug) {
			return nil, domain.ErrInvalidSlug
		}
		return s.repo.Create(ctx, req)
	}

	base := domain.Slugify(req.Title)
	candidate := base
	for i := 0; i < slugAttempts; i++ {
		if i > 0 || !domain.ValidSlug(candidate) {
			var err error
			if candidate, err = domain.SuffixedSlug(base); err != nil {
				return nil, err
			}
		}
		next := *req
		next.Slug = candidate
		p, err := s.repo.Create(ctx, &next)
		if errors.Is(err, domain.ErrSlugTaken) {
			continue
		}
		return p, err
	}
	return nil, fmt.Errorf("failed to generate unique slug: %w", domain.ErrSlugTaken)
}

func (s *PortfolioService) Get(ctx context.Context, userID, id string) (*domain.Portfolio, error) {
	return s.load(ctx, userID, id)
}

// load reads an owned portfolio. Ids that are not uuids read as not found.
func (s *PortfolioService) load(ctx context.Context, userID, id string) (*domain.Portfolio, error) {
	id, ok := ids.Canonical(id)
	if !ok {
		return nil, domain.ErrNotFound
	}
	return s.repo.GetForUser(ctx, userID, id)
}

func (s *PortfolioService) List(ctx context.Context, userID string) ([]domain.Portfolio, error) {
	return s.repo.ListByUser(ctx, userID)
}

func (s *PortfolioService) Update(ctx context.Context, userID, id string, req *domain.UpdatePortfolioRequest) (*domain.Portfolio, error) {
	p, err := s.load(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	if req.TemplateID != nil && *req.TemplateID != p.TemplateID {
		if err := s.requireTemplate(ctx, *req.TemplateID); err != nil {
			return nil, err
		}
		p.TemplateID = *req.TemplateID
	}
	if req.Slug != nil {
		slug := strings.TrimSpace(*req.Slug)
		if !domain.ValidSlug(slug) {
			return nil, domain.ErrInvalidSlug
		}
		p.Slug = slug
	}
	if req.Title != nil {
		p.Title = strings.TrimSpace(*req.Title)
	}
	if req.IsPublished != nil {
		p.IsPublished = *req.IsPublished
	}

	return s.repo.Update(ctx, p)
}

func (s *PortfolioService) Delete(ctx context.Context, userID, id string) error {
	id, ok := ids.Canonical(id)
	if !ok {
		return domain.ErrNotFound
	}
	return s.repo.SoftDelete(ctx, userID, id)
}

// Customizations returns the fields stored for the portfolio's current
// template.
func (s *PortfolioService) Customizations(ctx context.Context, userID, id string) (domain.Customizations, error) {
	p, err := s.load(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	return s.repo.GetCustomizations(ctx, p.ID, p.TemplateID)
}

// ReplaceCustomizations overwrites the fields for the portfolio's current
// template. Fields stored for other templates are kept.
func (s *PortfolioService) ReplaceCustomizations(ctx context.Context, userID, id string, c domain.Customizations) (domain.Customizations, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	p, err := s.load(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		c = domain.Customizations{}
	}
	if err := s.repo.ReplaceCustomizations(ctx, p.ID, p.TemplateID, sortedKeys(c), c); err != nil {
		return nil, err
	}
	return c, nil
}

// Preview publishes the portfolio as a preview handle owned by userID.
// overrides are layered on the stored fields and not persisted; the merged
// map must still pass Validate.
func (s *PortfolioService) Preview(ctx context.Context, userID, id string, overrides domain.Customizations) (*render.Result, error) {
	if err := overrides.Validate(); err != nil {
		return nil, err
	}
	p, err := s.load(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	rc, err := s.renderContext(ctx, p)
	if err != nil {
		return nil, err
	}
	for k, v := range overrides {
		rc.Customizations[k] = v
	}
	if err := domain.Customizations(rc.Customizations).Validate(); err != nil {
		return nil, err
	}
	return s.renderer.Render(ctx, userID, rc)
}

// PublicDocument renders the published portfolio behind slug. Unknown,
// unpublished and broken portfolios all read as ErrNotFound.
func (s *PortfolioService) PublicDocument(ctx context.Context, slug string) (string, error) {
	if !domain.ValidSlug(slug) {
		return "", domain.ErrNotFound
	}
	p, err := s.repo.GetPublishedBySlug(ctx, slug)
	if err != nil {
		return "", err
	}
	rc, err := s.renderContext(ctx, p)
	if errors.Is(err, domain.ErrTemplateUnavailable) {
		return "", domain.ErrNotFound
	}
	if err != nil {
		return "", err
	}

	doc, res, err := s.renderer.Document(rc)
	if err != nil {
		return "", err
	}
	if !res.IsValid {
		return "", domain.ErrNotFound
	}
	return doc, nil
}

func (s *PortfolioService) renderContext(ctx context.Context, p *domain.Portfolio) (renderdomain.RenderContext, error) {
	t, err := s.templates.GetActive(ctx, p.TemplateID)
	if errors.Is(err, templatesdomain.ErrNotFound) {
		return renderdomain.RenderContext{}, domain.ErrTemplateUnavailable
	}
	if err != nil {
		return renderdomain.RenderContext{}, err
	}
	c, err := s.repo.GetCustomizations(ctx, p.ID, p.TemplateID)
	if err != nil {
		return renderdomain.RenderContext{}, err
	}
	if c == nil {
		c = domain.Customizations{}
	}
	return renderdomain.RenderContext{ComponentCode: t.ComponentCode, Customizations: c}, nil
}

func (s *PortfolioService) requireTemplate(ctx context.Context, templateID string) error {
	if _, ok := ids.Canonical(templateID); !ok {
		return domain.ErrTemplateUnavailable
	}
	_, err := s.templates.GetActive(ctx, templateID)
	if errors.Is(err, templatesdomain.ErrNotFound) {
		return domain.ErrTemplateUnavailable
	}
	return err
}

func sortedKeys(c domain.Customizations) []string {
	keys := make([]string, 0, len(c))
	for k := range c {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
