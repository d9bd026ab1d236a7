package preview

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/foliocraft/foliocraft-backend/internal/render/domain"
)

type stubGenerator struct {
	doc string
	err error
}

func (g stubGenerator) Generate(domain.RenderContext) (string, error) {
	return g.doc, g.err
}

func TestPublisher_PublishOpenRelease(t *testing.T) {
	p := NewPublisher(NewMemoryStore(0), stubGenerator{doc: "<html>doc</html>"}, "https://app.example.com/")
	ctx := context.Background()

	h, err := p.Publish(ctx, "u1", domain.RenderContext{})
	require.NoError(t, err)
	assert.Equal(t, "https://app.example.com/previews/"+h.ID, h.URL)

	blob, err := p.Open(ctx, h.URL)
	require.NoError(t, err)
	assert.Equal(t, "<html>doc</html>", string(blob.Content))
	assert.Equal(t, domain.HTMLContentType, blob.ContentType)

	// another owner cannot release it
	assert.ErrorIs(t, p.Release(ctx, "u2", h.ID), domain.ErrPreviewNotFound)

	require.NoError(t, p.Release(ctx, "u1", h.ID))
	assert.ErrorIs(t, p.Release(ctx, "u1", h.ID), domain.ErrPreviewNotFound)
}

func TestPublisher_IndependentHandles(t *testing.T) {
	p := NewPublisher(NewMemoryStore(0), stubGenerator{doc: "x"}, "")
	ctx := context.Background()

	a, err := p.Publish(ctx, "u1", domain.RenderContext{})
	require.NoError(t, err)
	b, err := p.Publish(ctx, "u1", domain.RenderContext{})
	require.NoError(t, err)
	assert.NotEqual(t, a.ID, b.ID)

	require.NoError(t, p.Release(ctx, "u1", a.URL))
	_, err = p.Open(ctx, b.URL)
	assert.NoError(t, err)
}

func TestPublisher_GeneratorErrorIsReturned(t *testing.T) {
	boom := errors.New("boom")
	p := NewPublisher(NewMemoryStore(0), stubGenerator{err: boom}, "")

	_, err := p.Publish(context.Background(), "u1", domain.RenderContext{})
	assert.ErrorIs(t, err, boom)
}

func TestParseHandle(t *testing.T) {
	const id = "7d444840-9dc0-11d1-b245-5ffdce74fad2"

	for _, ref := range []string{
		id,
		"/previews/" + id,
		"https://app.example.com/previews/" + id,
		"https://app.example.com/previews/" + id + "/",
	} {
		got, err := ParseHandle(ref)
		require.NoError(t, err, ref)
		assert.Equal(t, id, got)
	}

	for _, ref := range []string{"", "not-a-uuid", "https://x/previews/../etc"} {
		_, err := ParseHandle(ref)
		assert.ErrorIs(t, err, domain.ErrInvalidHandle, ref)
	}
}
