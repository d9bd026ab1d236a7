package preview

import (
	"context"

	"github.com/foliocraft/foliocraft-backend/internal/render/domain"
)

// Store keeps published documents until they are released. Implementations
// must be safe for concurrent use.
type Store interface {
	Put(ctx context.Context, blob *domain.Blob) error
	Get(ctx context.Context, id string) (*domain.Blob, error)
	Delete(ctx context.Context, id string) error
}
