package service

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/foliocraft/foliocraft-backend/internal/portfolios/domain"
	"github.com/foliocraft/foliocraft-backend/internal/render"
	"github.com/foliocraft/foliocraft-backend/internal/render/document"
	"github.com/foliocraft/foliocraft-backend/internal/render/preview"
	"github.com/foliocraft/foliocraft-backend/internal/render/validator"
	templatesdomain "github.com/foliocraft/foliocraft-backend/internal/templates/domain"
)

type memRepo struct {
	mu     sync.Mutex
	seq    int
	items  map[string]*domain.Portfolio
	fields map[string]domain.Customizations
	taken  map[string]bool
}

func newMemRepo() *memRepo {
	return &memRepo{
		items:  map[string]*domain.Portfolio{},
		fields: map[string]domain.Customizations{},
		taken:  map[string]bool{},
	}
}

func (m *memRepo) Create(_ context.Context, req *domain.CreatePortfolioRequest) (*domain.Portfolio, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.taken[req.Slug] {
		return nil, domain.ErrSlugTaken
	}
	m.seq++
	p := &domain.Portfolio{ID: fmt.Sprintf("00000000-0000-4000-8000-%012d", m.seq), UserID: req.UserID, TemplateID: req.TemplateID, Slug: req.Slug, Title: req.Title}
	m.items[p.ID] = p
	m.taken[p.Slug] = true
	cp := *p
	return &cp, nil
}

func (m *memRepo) GetForUser(_ context.Context, userID, id string) (*domain.Portfolio, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.items[id]
	if !ok || p.UserID != userID {
		return nil, domain.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (m *memRepo) GetPublishedBySlug(_ context.Context, slug string) (*domain.Portfolio, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, p := range m.items {
		if p.Slug == slug && p.IsPublished {
			cp := *p
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *memRepo) ListByUser(_ context.Context, userID string) ([]domain.Portfolio, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.Portfolio
	for _, p := range m.items {
		if p.UserID == userID {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (m *memRepo) Update(_ context.Context, p *domain.Portfolio) (*domain.Portfolio, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	old := m.items[p.ID]
	if old.Slug != p.Slug {
		if m.taken[p.Slug] {
			return nil, domain.ErrSlugTaken
		}
		delete(m.taken, old.Slug)
		m.taken[p.Slug] = true
	}
	cp := *p
	m.items[p.ID] = &cp
	return p, nil
}

func (m *memRepo) SoftDelete(_ context.Context, userID, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.items[id]
	if !ok || p.UserID != userID {
		return domain.ErrNotFound
	}
	delete(m.items, id)
	delete(m.taken, p.Slug)
	return nil
}

func (m *memRepo) GetCustomizations(_ context.Context, portfolioID, templateID string) (domain.Customizations, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := domain.Customizations{}
	for k, v := range m.fields[portfolioID+"/"+templateID] {
		out[k] = v
	}
	return out, nil
}

func (m *memRepo) ReplaceCustomizations(_ context.Context, portfolioID, templateID string, keys []string, c domain.Customizations) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := domain.Customizations{}
	for _, k := range keys {
		cp[k] = c[k]
	}
	m.fields[portfolioID+"/"+templateID] = cp
	return nil
}

type fakeTemplates map[string]string

func (f fakeTemplates) GetActive(_ context.Context, id string) (*templatesdomain.Template, error) {
	code, ok := f[id]
	if !ok {
		return nil, templatesdomain.ErrNotFound
	}
	return &templatesdomain.Template{ID: id, ComponentCode: code, IsActive: true}, nil
}

const (
	cardTemplateID  = "11111111-1111-4111-8111-111111111111"
	otherTemplateID = "22222222-2222-4222-8222-222222222222"
)

const cardCode = "export default function Card({ data }) { return <h1>{data.title}</h1>; }"

func newService(t *testing.T) (*PortfolioService, *memRepo, *preview.MemoryStore) {
	t.Helper()
	store := preview.NewMemoryStore(0)
	gen := document.New()
	engine := render.NewEngine(validator.New(), gen, preview.NewPublisher(store, gen, "http://test"), nil)
	repo := newMemRepo()
	tpl := fakeTemplates{cardTemplateID: cardCode, otherTemplateID: "function Other(){ return <p/>; }"}
	return NewPortfolioService(repo, tpl, engine), repo, store
}

func TestCreate_ExplicitSlug(t *testing.T) {
	svc, _, _ := newService(t)
	ctx := context.Background()

	p, err := svc.Create(ctx, &domain.CreatePortfolioRequest{UserID: "u1", TemplateID: cardTemplateID, Slug: "jane-doe", Title: "Jane"})
	require.NoError(t, err)
	assert.Equal(t, "jane-doe", p.Slug)

	_, err = svc.Create(ctx, &domain.CreatePortfolioRequest{UserID: "u2", TemplateID: cardTemplateID, Slug: "jane-doe"})
	assert.ErrorIs(t, err, domain.ErrSlugTaken)

	_, err = svc.Create(ctx, &domain.CreatePortfolioRequest{UserID: "u2", TemplateID: cardTemplateID, Slug: "Jane Doe"})
	assert.ErrorIs(t, err, domain.ErrInvalidSlug)
}

func TestCreate_DerivedSlugIsSuffixedWhenTaken(t *testing.T) {
	svc, _, _ := newService(t)
	ctx := context.Background()

	first, err := svc.Create(ctx, &domain.CreatePortfolioRequest{UserID: "u1", TemplateID: cardTemplateID, Title: "Jane Doe"})
	require.NoError(t, err)
	assert.Equal(t, "jane-doe", first.Slug)

	second, err := svc.Create(ctx, &domain.CreatePortfolioRequest{UserID: "u2", TemplateID: cardTemplateID, Title: "Jane Doe"})
	require.NoError(t, err)
	assert.Regexp(t, `^jane-doe-\d{5}$`, second.Slug)

	short, err := svc.Create(ctx, &domain.CreatePortfolioRequest{UserID: "u3", TemplateID: cardTemplateID, Title: "!"})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(short.Slug, "portfolio-"))
}

func TestCreate_UnknownTemplate(t *testing.T) {
	svc, _, _ := newService(t)
	_, err := svc.Create(context.Background(), &domain.CreatePortfolioRequest{UserID: "u1", TemplateID: "33333333-3333-4333-8333-333333333333", Slug: "abc"})
	assert.ErrorIs(t, err, domain.ErrTemplateUnavailable)
}

func TestCustomizations_ScopedPerTemplate(t *testing.T) {
	svc, _, _ := newService(t)
	ctx := context.Background()
	p, err := svc.Create(ctx, &domain.CreatePortfolioRequest{UserID: "u1", TemplateID: cardTemplateID, Slug: "jane"})
	require.NoError(t, err)

	_, err = svc.ReplaceCustomizations(ctx, "u1", p.ID, domain.Customizations{"title": "Hello"})
	require.NoError(t, err)

	t2 := otherTemplateID
	_, err = svc.Update(ctx, "u1", p.ID, &domain.UpdatePortfolioRequest{TemplateID: &t2})
	require.NoError(t, err)
	got, err := svc.Customizations(ctx, "u1", p.ID)
	require.NoError(t, err)
	assert.Empty(t, got)

	t1 := cardTemplateID
	_, err = svc.Update(ctx, "u1", p.ID, &domain.UpdatePortfolioRequest{TemplateID: &t1})
	require.NoError(t, err)
	got, err = svc.Customizations(ctx, "u1", p.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.Customizations{"title": "Hello"}, got)
}

func TestReplaceCustomizations_RejectsBadField(t *testing.T) {
	svc, _, _ := newService(t)
	ctx := context.Background()
	p, err := svc.Create(ctx, &domain.CreatePortfolioRequest{UserID: "u1", TemplateID: cardTemplateID, Slug: "jane"})
	require.NoError(t, err)

	_, err = svc.ReplaceCustomizations(ctx, "u1", p.ID, domain.Customizations{"bad key": "x"})
	assert.ErrorIs(t, err, domain.ErrInvalidCustomizations)
}

func TestGet_OtherUser(t *testing.T) {
	svc, _, _ := newService(t)
	ctx := context.Background()
	p, err := svc.Create(ctx, &domain.CreatePortfolioRequest{UserID: "u1", TemplateID: cardTemplateID, Slug: "jane"})
	require.NoError(t, err)

	_, err = svc.Get(ctx, "u2", p.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestPreview_LayersOverrides(t *testing.T) {
	svc, _, store := newService(t)
	ctx := context.Background()
	p, err := svc.Create(ctx, &domain.CreatePortfolioRequest{UserID: "u1", TemplateID: cardTemplateID, Slug: "jane"})
	require.NoError(t, err)
	_, err = svc.ReplaceCustomizations(ctx, "u1", p.ID, domain.Customizations{"title": "Stored", "accent": "red"})
	require.NoError(t, err)

	res, err := svc.Preview(ctx, "u1", p.ID, domain.Customizations{"title": "Draft"})
	require.NoError(t, err)
	require.True(t, res.Validation.IsValid)
	require.NotNil(t, res.Handle)

	blob, err := store.Get(ctx, res.Handle.ID)
	require.NoError(t, err)
	assert.Equal(t, "u1", blob.OwnerID)
	assert.Contains(t, string(blob.Content), `"title":"Draft"`)
	assert.Contains(t, string(blob.Content), `"accent":"red"`)

	stored, err := svc.Customizations(ctx, "u1", p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Stored", stored["title"])
}

func TestPublicDocument(t *testing.T) {
	svc, _, _ := newService(t)
	ctx := context.Background()
	p, err := svc.Create(ctx, &domain.CreatePortfolioRequest{UserID: "u1", TemplateID: cardTemplateID, Slug: "jane"})
	require.NoError(t, err)

	_, err = svc.PublicDocument(ctx, "jane")
	assert.ErrorIs(t, err, domain.ErrNotFound, "unpublished")

	published := true
	_, err = svc.Update(ctx, "u1", p.ID, &domain.UpdatePortfolioRequest{IsPublished: &published})
	require.NoError(t, err)

	doc, err := svc.PublicDocument(ctx, "jane")
	require.NoError(t, err)
	assert.Contains(t, doc, "<!DOCTYPE html>")
	assert.Contains(t, doc, "PortfolioComponent")

	_, err = svc.PublicDocument(ctx, "NOT A SLUG")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestMalformedIDsReadAsNotFound(t *testing.T) {
	svc, _, _ := newService(t)
	ctx := context.Background()

	for _, id := range []string{"abc", "", "p1", "00000000-0000-4000-8000-00000000000z"} {
		_, err := svc.Get(ctx, "u1", id)
		assert.ErrorIs(t, err, domain.ErrNotFound, id)

		title := "x"
		_, err = svc.Update(ctx, "u1", id, &domain.UpdatePortfolioRequest{Title: &title})
		assert.ErrorIs(t, err, domain.ErrNotFound, id)

		assert.ErrorIs(t, svc.Delete(ctx, "u1", id), domain.ErrNotFound, id)

		_, err = svc.Customizations(ctx, "u1", id)
		assert.ErrorIs(t, err, domain.ErrNotFound, id)

		_, err = svc.Preview(ctx, "u1", id, nil)
		assert.ErrorIs(t, err, domain.ErrNotFound, id)
	}
}

func TestCanonicalizesUppercaseID(t *testing.T) {
	svc, _, _ := newService(t)
	ctx := context.Background()

	p, err := svc.Create(ctx, &domain.CreatePortfolioRequest{UserID: "u1", TemplateID: cardTemplateID, Slug: "jane"})
	require.NoError(t, err)

	got, err := svc.Get(ctx, "u1", strings.ToUpper(p.ID))
	require.NoError(t, err)
	assert.Equal(t, p.ID, got.ID)
}

func TestCreate_MalformedTemplateID(t *testing.T) {
	svc, _, _ := newService(t)
	_, err := svc.Create(context.Background(), &domain.CreatePortfolioRequest{UserID: "u1", TemplateID: "not-a-uuid", Slug: "abc"})
	assert.ErrorIs(t, err, domain.ErrTemplateUnavailable)
}

func TestPreview_MergedFieldsMustStayWithinLimit(t *testing.T) {
	svc, _, _ := newService(t)
	ctx := context.Background()

	p, err := svc.Create(ctx, &domain.CreatePortfolioRequest{UserID: "u1", TemplateID: cardTemplateID, Slug: "jane"})
	require.NoError(t, err)

	stored := domain.Customizations{}
	for i := 0; i < domain.MaxCustomizationFields; i++ {
		stored[fmt.Sprintf("f%d", i)] = "v"
	}
	_, err = svc.ReplaceCustomizations(ctx, "u1", p.ID, stored)
	require.NoError(t, err)

	_, err = svc.Preview(ctx, "u1", p.ID, domain.Customizations{"f0": "override"})
	require.NoError(t, err, "overriding an existing field keeps the count")

	_, err = svc.Preview(ctx, "u1", p.ID, domain.Customizations{"extra": "x"})
	assert.ErrorIs(t, err, domain.ErrInvalidCustomizations)
}
