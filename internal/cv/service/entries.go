package service

import (
	"context"

	"github.com/foliocraft/foliocraft-backend/internal/cv/domain"
	"github.com/foliocraft/foliocraft-backend/internal/ids"
)

// Store is implemented by repository.Table.
type Store[P domain.Entry] interface {
	List(ctx context.Context, userID string) ([]P, error)
	Create(ctx context.Context, userID string, e P) (P, error)
	Update(ctx context.Context, userID, id string, e P) (P, error)
	Delete(ctx context.Context, userID, id string) error
}

// Entries applies normalization and validation in front of a Store.
type Entries[P domain.Entry] struct {
	store Store[P]
}

func NewEntries[P domain.Entry](store Store[P]) *Entries[P] {
	return &Entries[P]{store: store}
}

func (s *Entries[P]) List(ctx context.Context, userID string) ([]P, error) {
	return s.store.List(ctx, userID)
}

func (s *Entries[P]) Create(ctx context.Context, userID string, e P) (P, error) {
	e.Normalize()
	if err := e.Validate(); err != nil {
		var zero P
		return zero, err
	}
	return s.store.Create(ctx, userID, e)
}

func (s *Entries[P]) Update(ctx context.Context, userID, id string, e P) (P, error) {
	id, ok := ids.Canonical(id)
	if !ok {
		var zero P
		return zero, domain.ErrNotFound
	}
	e.Normalize()
	if err := e.Validate(); err != nil {
		var zero P
		return zero, err
	}
	return s.store.Update(ctx, userID, id, e)
}

func (s *Entries[P]) Delete(ctx context.Context, userID, id string) error {
	id, ok := ids.Canonical(id)
	if !ok {
		return domain.ErrNotFound
	}
	return s.store.Delete(ctx, userID, id)
}
