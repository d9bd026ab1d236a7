package service

import (
	"context"
	"strings"

	"github.com/foliocraft/foliocraft-backend/internal/ids"
	renderdomain "github.com/foliocraft/foliocraft-backend/internal/render/domain"
	"github.com/foliocraft/foliocraft-backend/internal/templates/domain"
)

// Repository is implemented by repository.TemplateRepository.
type Repository interface {
	Create(ctx context.Context, req *domain.CreateTemplateRequest) (*domain.Template, error)
	GetByID(ctx context.Context, id string) (*domain.Template, error)
	List(ctx context.Context, f domain.ListFilter) ([]domain.Template, error)
	Update(ctx context.Context, t *domain.Template) (*domain.Template, error)
	Delete(ctx context.Context, id string) error
}

// CodeValidator is implemented by the render validator.
type CodeValidator interface {
	Validate(code string) renderdomain.ValidationResult
}

// TemplateService handles template business logic. Component code is
// validated on every write so stored templates always pass the denylist.
type TemplateService struct {
	repo      Repository
	validator CodeValidator
}

func NewTemplateService(repo Repository, validator CodeValidator) *TemplateService {
	return &TemplateService{repo: repo, validator: validator}
}

func (s *TemplateService) Create(ctx context.Context, req *domain.CreateTemplateRequest) (*domain.Template, error) {
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		return nil, &domain.ValidationError{Errors: []string{"name is required"}}
	}
	if req.Category == "" {
		req.Category = "general"
	}
	if err := s.validate(req.ComponentCode); err != nil {
		return nil, err
	}
	return s.repo.Create(ctx, req)
}

func (s *TemplateService) Get(ctx context.Context, id string) (*domain.Template, error) {
	id, ok := ids.Canonical(id)
	if !ok {
		return nil, domain.ErrNotFound
	}
	return s.repo.GetByID(ctx, id)
}

// GetActive returns the template only when it is active.
func (s *TemplateService) GetActive(ctx context.Context, id string) (*domain.Template, error) {
	t, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !t.IsActive {
		return nil, domain.ErrNotFound
	}
	return t, nil
}

func (s *TemplateService) List(ctx context.Context, f domain.ListFilter) ([]domain.Template, error) {
	return s.repo.List(ctx, f)
}

func (s *TemplateService) Update(ctx context.Context, id string, req *domain.UpdateTemplateRequest) (*domain.Template, error) {
	t, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, &domain.ValidationError{Errors: []string{"name is required"}}
		}
		t.Name = name
	}
	if req.Description != nil {
		t.Description = *req.Description
	}
	if req.Category != nil {
		t.Category = *req.Category
	}
	if req.ThumbnailURL != nil {
		t.ThumbnailURL = *req.ThumbnailURL
	}
	if req.ComponentCode != nil {
		if err := s.validate(*req.ComponentCode); err != nil {
			return nil, err
		}
		t.ComponentCode = *req.ComponentCode
	}
	if req.IsActive != nil {
		t.IsActive = *req.IsActive
	}

	return s.repo.Update(ctx, t)
}

func (s *TemplateService) Delete(ctx context.Context, id string) error {
	id, ok := ids.Canonical(id)
	if !ok {
		return domain.ErrNotFound
	}
	return s.repo.Delete(ctx, id)
}

func (s *TemplateService) validate(code string) error {
	res := s.validator.Validate(code)
	if !res.IsValid {
		return &domain.ValidationError{Errors: res.Errors}
	}
	return nil
}
