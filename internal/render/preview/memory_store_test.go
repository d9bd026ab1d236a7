package preview

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/foliocraft/foliocraft-backend/internal/render/domain"
)

func TestMemoryStore_PutGetDelete(t *testing.T) {
	s := NewMemoryStore(0)
	ctx := context.Background()

	in := &domain.Blob{ID: "a", OwnerID: "u1", ContentType: domain.HTMLContentType, Content: []byte("<html>")}
	require.NoError(t, s.Put(ctx, in))

	// the store keeps its own copy
	in.Content[0] = 'X'

	got, err := s.Get(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, "<html>", string(got.Content))
	assert.Equal(t, "u1", got.OwnerID)

	require.NoError(t, s.Delete(ctx, "a"))
	assert.ErrorIs(t, s.Delete(ctx, "a"), domain.ErrPreviewNotFound)

	_, err = s.Get(ctx, "a")
	assert.ErrorIs(t, err, domain.ErrPreviewNotFound)
}

func TestMemoryStore_Expiry(t *testing.T) {
	s := NewMemoryStore(time.Minute)
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return now }
	ctx := context.Background()

	require.NoError(t, s.Put(ctx, &domain.Blob{ID: "a"}))
	_, err := s.Get(ctx, "a")
	require.NoError(t, err)

	now = now.Add(time.Minute)
	_, err = s.Get(ctx, "a")
	assert.ErrorIs(t, err, domain.ErrPreviewNotFound)
	assert.Equal(t, 0, s.Len())
}

func TestMemoryStore_ConcurrentPublishers(t *testing.T) {
	s := NewMemoryStore(0)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			id := fmt.Sprintf("blob-%d", i)
			assert.NoError(t, s.Put(ctx, &domain.Blob{ID: id, OwnerID: "u"}))
			_, err := s.Get(ctx, id)
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	ids, err := s.ListByOwner(ctx, "u")
	require.NoError(t, err)
	assert.Len(t, ids, 50)
}
