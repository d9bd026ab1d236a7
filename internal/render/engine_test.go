package render

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/foliocraft/foliocraft-backend/internal/render/document"
	"github.com/foliocraft/foliocraft-backend/internal/render/domain"
	"github.com/foliocraft/foliocraft-backend/internal/render/preview"
	"github.com/foliocraft/foliocraft-backend/internal/render/validator"
)

func newTestEngine() (*Engine, *preview.MemoryStore) {
	store := preview.NewMemoryStore(0)
	gen := document.New()
	return NewEngine(validator.New(), gen, preview.NewPublisher(store, gen, "http://localhost:8080"), nil), store
}

func TestEngine_Render_EndToEnd(t *testing.T) {
	e, store := newTestEngine()
	ctx := context.Background()
	rc := domain.RenderContext{
		ComponentCode:  "export default function Card(){return <div>Hi</div>;}",
		Customizations: map[string]string{"title": "My Portfolio"},
	}

	res, err := e.Render(ctx, "user-1", rc)
	require.NoError(t, err)
	require.True(t, res.Validation.IsValid)
	require.NotNil(t, res.Handle)
	assert.Equal(t, "http://localhost:8080/previews/"+res.Handle.ID, res.Handle.URL)

	expected, err := document.New().Generate(rc)
	require.NoError(t, err)
	assert.Contains(t, expected, "const PortfolioComponent = function Card(){return <div>Hi</div>;}")
	assert.Contains(t, expected, `{"title":"My Portfolio"}`)

	blob, err := e.Open(ctx, res.Handle.URL)
	require.NoError(t, err)
	assert.Equal(t, "text/html; charset=utf-8", blob.ContentType)
	assert.Equal(t, expected, string(blob.Content))

	require.NoError(t, e.Release(ctx, "user-1", res.Handle.URL))
	assert.Equal(t, 0, store.Len())

	_, err = e.Open(ctx, res.Handle.ID)
	assert.ErrorIs(t, err, domain.ErrPreviewNotFound)
}

func TestEngine_Render_ValidationShortCircuits(t *testing.T) {
	e, store := newTestEngine()

	res, err := e.Render(context.Background(), "user-1", domain.RenderContext{
		ComponentCode: `function A(){ fetch("/steal"); return null; }`,
	})
	require.NoError(t, err)
	assert.False(t, res.Validation.IsValid)
	assert.Nil(t, res.Handle)
	assert.Equal(t, []string{"Network requests (fetch) are not allowed"}, res.Validation.Errors)
	assert.Equal(t, 0, store.Len())
}

func TestEngine_Document(t *testing.T) {
	e, _ := newTestEngine()

	doc, res, err := e.Document(domain.RenderContext{ComponentCode: "function Hero(){ return <h1/>; }"})
	require.NoError(t, err)
	assert.True(t, res.IsValid)
	assert.Contains(t, doc, "const PortfolioComponent = Hero;")

	doc, res, err = e.Document(domain.RenderContext{ComponentCode: ""})
	require.NoError(t, err)
	assert.False(t, res.IsValid)
	assert.Empty(t, doc)
}

func TestEngine_ReleaseAll(t *testing.T) {
	e, store := newTestEngine()
	ctx := context.Background()
	rc := domain.RenderContext{ComponentCode: "function A(){ return null; }"}

	for i := 0; i < 3; i++ {
		_, err := e.Render(ctx, "owner-a", rc)
		require.NoError(t, err)
	}
	_, err := e.Render(ctx, "owner-b", rc)
	require.NoError(t, err)

	n, err := e.ReleaseAll(ctx, "owner-a")
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	assert.Equal(t, 1, store.Len())
}
