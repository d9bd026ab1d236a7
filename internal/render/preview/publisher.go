// Package preview turns generated documents into handles that a preview pane,
// iframe or download link can dereference. Every handle must be released by
// its owner; stores only apply a safety expiry.
package preview

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/foliocraft/foliocraft-backend/internal/render/domain"
)

// Generator produces the HTML document for a render context.
type Generator interface {
	Generate(rc domain.RenderContext) (string, error)
}

// OwnerIndex is implemented by stores that can enumerate an owner's blobs.
type OwnerIndex interface {
	ListByOwner(ctx context.Context, ownerID string) ([]string, error)
}

const pathPrefix = "/previews/"

type Publisher struct {
	store   Store
	gen     Generator
	baseURL string
	now     func() time.Time
}

// NewPublisher builds handles as baseURL + "/previews/" + id.
func NewPublisher(store Store, gen Generator, baseURL string) *Publisher {
	return &Publisher{
		store:   store,
		gen:     gen,
		baseURL: strings.TrimRight(baseURL, "/"),
		now:     time.Now,
	}
}

// Publish generates the document for rc and stores it as a text/html blob.
func (p *Publisher) Publish(ctx context.Context, ownerID string, rc domain.RenderContext) (*domain.Handle, error) {
	doc, err := p.gen.Generate(rc)
	if err != nil {
		return nil, fmt.Errorf("generate document: %w", err)
	}
	return p.PublishDocument(ctx, ownerID, doc)
}

// PublishDocument stores an already generated document.
func (p *Publisher) PublishDocument(ctx context.Context, ownerID, doc string) (*domain.Handle, error) {
	blob := &domain.Blob{
		ID:          uuid.New().String(),
		OwnerID:     ownerID,
		ContentType: domain.HTMLContentType,
		Content:     []byte(doc),
		CreatedAt:   p.now().UTC(),
	}
	if err := p.store.Put(ctx, blob); err != nil {
		return nil, err
	}
	return &domain.Handle{ID: blob.ID, URL: p.baseURL + pathPrefix + blob.ID}, nil
}

// Open dereferences a handle URL or bare id.
func (p *Publisher) Open(ctx context.Context, ref string) (*domain.Blob, error) {
	id, err := ParseHandle(ref)
	if err != nil {
		return nil, err
	}
	return p.store.Get(ctx, id)
}

// Release tears a blob down. A blob published by another owner is reported
// as not found so ids cannot be probed.
func (p *Publisher) Release(ctx context.Context, ownerID, ref string) error {
	id, err := ParseHandle(ref)
	if err != nil {
		return err
	}

	blob, err := p.store.Get(ctx, id)
	if err != nil {
		return err
	}
	if blob.OwnerID != "" && blob.OwnerID != ownerID {
		return domain.ErrPreviewNotFound
	}
	return p.store.Delete(ctx, id)
}

// ReleaseAll releases every blob ownerID still holds. Stores without an
// owner index release nothing.
func (p *Publisher) ReleaseAll(ctx context.Context, ownerID string) (int, error) {
	idx, ok := p.store.(OwnerIndex)
	if !ok {
		return 0, nil
	}
	ids, err := idx.ListByOwner(ctx, ownerID)
	if err != nil {
		return 0, err
	}

	released := 0
	for _, id := range ids {
		err := p.store.Delete(ctx, id)
		if errors.Is(err, domain.ErrPreviewNotFound) {
			continue
		}
		if err != nil {
			return released, err
		}
		released++
	}
	return released, nil
}

// ParseHandle accepts "<base>/previews/<id>" or a bare id.
func ParseHandle(ref string) (string, error) {
	ref = strings.TrimSpace(ref)
	if i := strings.LastIndex(ref, pathPrefix); i >= 0 {
		ref = ref[i+len(pathPrefix):]
	}
	ref = strings.TrimSuffix(ref, "/")

	id, err := uuid.Parse(ref)
	if err != nil {
		return "", domain.ErrInvalidHandle
	}
	return id.String(), nil
}
