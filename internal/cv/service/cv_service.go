package service

import (
	"context"
	"errors"

	"golang.org/x/sync/errgroup"

	"github.com/foliocraft/foliocraft-backend/internal/cv/domain"
	"github.com/foliocraft/foliocraft-backend/internal/cv/repository"
)

// ProfileStore is implemented by repository.CVRepository.
type ProfileStore interface {
	GetProfile(ctx context.Context, userID string) (*domain.Profile, error)
	UpsertProfile(ctx context.Context, p *domain.Profile) (*domain.Profile, error)
}

// DocumentRenderer is implemented by document.Renderer.
type DocumentRenderer interface {
	Render(cv *domain.CV) ([]byte, error)
}

type CVService struct {
	profiles     ProfileStore
	renderer     DocumentRenderer
	Educations   *Entries[*domain.Education]
	Experiences  *Entries[*domain.Experience]
	Skills       *Entries[*domain.Skill]
	Languages    *Entries[*domain.Language]
	Achievements *Entries[*domain.Achievement]
	Projects     *Entries[*domain.Project]
}

func NewCVService(repo *repository.CVRepository, renderer DocumentRenderer) *CVService {
	return &CVService{
		profiles:     repo,
		renderer:     renderer,
		Educations:   NewEntries[*domain.Education](repo.Educations),
		Experiences:  NewEntries[*domain.Experience](repo.Experiences),
		Skills:       NewEntries[*domain.Skill](repo.Skills),
		Languages:    NewEntries[*domain.Language](repo.Languages),
		Achievements: NewEntries[*domain.Achievement](repo.Achievements),
		Projects:     NewEntries[*domain.Project](repo.Projects),
	}
}

func (s *CVService) Profile(ctx context.Context, userID string) (*domain.Profile, error) {
	return s.profiles.GetProfile(ctx, userID)
}

func (s *CVService) SaveProfile(ctx context.Context, userID string, p *domain.Profile) (*domain.Profile, error) {
	p.UserID = userID
	p.Normalize()
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return s.profiles.UpsertProfile(ctx, p)
}

// CV loads every section concurrently. A user without a profile gets a nil
// Profile rather than an error.
func (s *CVService) CV(ctx context.Context, userID string) (*domain.CV, error) {
	var cv domain.CV
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		p, err := s.profiles.GetProfile(gctx, userID)
		if errors.Is(err, domain.ErrNotFound) {
			return nil
		}
		cv.Profile = p
		return err
	})
	g.Go(func() (err error) { cv.Educations, err = s.Educations.List(gctx, userID); return })
	g.Go(func() (err error) { cv.Experiences, err = s.Experiences.List(gctx, userID); return })
	g.Go(func() (err error) { cv.Skills, err = s.Skills.List(gctx, userID); return })
	g.Go(func() (err error) { cv.Languages, err = s.Languages.List(gctx, userID); return })
	g.Go(func() (err error) { cv.Achievements, err = s.Achievements.List(gctx, userID); return })
	g.Go(func() (err error) { cv.Projects, err = s.Projects.List(gctx, userID); return })

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &cv, nil
}

func (s *CVService) HTML(ctx context.Context, userID string) ([]byte, error) {
	cv, err := s.CV(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.renderer.Render(cv)
}
