package repository

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/foliocraft/foliocraft-backend/internal/portfolios/domain"
)

var cols = []string{"id", "user_id", "template_id", "slug", "title", "is_published", "created_at", "updated_at"}

func newRepo(t *testing.T) (*PortfolioRepository, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewPortfolioRepository(db), mock
}

func TestCreate_SlugTaken(t *testing.T) {
	r, mock := newRepo(t)
	mock.ExpectQuery(`INSERT INTO portfolios`).
		WithArgs("u1", "t1", "jane", "Jane").
		WillReturnError(&pq.Error{Code: "23505", Constraint: "portfolios_slug_key"})

	_, err := r.Create(context.Background(), &domain.CreatePortfolioRequest{UserID: "u1", TemplateID: "t1", Slug: "jane", Title: "Jane"})
	assert.ErrorIs(t, err, domain.ErrSlugTaken)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreate_UnknownTemplate(t *testing.T) {
	r, mock := newRepo(t)
	mock.ExpectQuery(`INSERT INTO portfolios`).
		WillReturnError(&pq.Error{Code: "23503"})

	_, err := r.Create(context.Background(), &domain.CreatePortfolioRequest{UserID: "u1", TemplateID: "tx", Slug: "jane"})
	assert.ErrorIs(t, err, domain.ErrTemplateUnavailable)
}

func TestGetPublishedBySlug(t *testing.T) {
	r, mock := newRepo(t)
	now := time.Now()
	mock.ExpectQuery(`WHERE slug = \$1 AND is_published`).WithArgs("jane").
		WillReturnRows(sqlmock.NewRows(cols).AddRow("p1", "u1", "t1", "jane", "Jane", true, now, now))

	p, err := r.GetPublishedBySlug(context.Background(), "jane")
	require.NoError(t, err)
	assert.Equal(t, "p1", p.ID)
	assert.True(t, p.IsPublished)

	mock.ExpectQuery(`WHERE slug = \$1 AND is_published`).WithArgs("nobody").WillReturnError(sql.ErrNoRows)
	_, err = r.GetPublishedBySlug(context.Background(), "nobody")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSoftDelete_NotFound(t *testing.T) {
	r, mock := newRepo(t)
	mock.ExpectExec(`UPDATE portfolios`).WithArgs("p1", "u1").WillReturnResult(sqlmock.NewResult(0, 0))

	assert.ErrorIs(t, r.SoftDelete(context.Background(), "u1", "p1"), domain.ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetCustomizations(t *testing.T) {
	r, mock := newRepo(t)
	mock.ExpectQuery(`FROM portfolio_customizations`).WithArgs("p1", "t1").
		WillReturnRows(sqlmock.NewRows([]string{"field_name", "field_value"}).
			AddRow("title", "Hello").AddRow("accent", "#f00"))

	c, err := r.GetCustomizations(context.Background(), "p1", "t1")
	require.NoError(t, err)
	assert.Equal(t, domain.Customizations{"title": "Hello", "accent": "#f00"}, c)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestReplaceCustomizations(t *testing.T) {
	r, mock := newRepo(t)
	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM portfolio_customizations`).WithArgs("p1", "t1").WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectExec(`INSERT INTO portfolio_customizations`).WithArgs("p1", "t1", "accent", "#f00").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`INSERT INTO portfolio_customizations`).WithArgs("p1", "t1", "title", "Hi").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	c := domain.Customizations{"title": "Hi", "accent": "#f00"}
	require.NoError(t, r.ReplaceCustomizations(context.Background(), "p1", "t1", []string{"accent", "title"}, c))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestReplaceCustomizations_RollsBack(t *testing.T) {
	r, mock := newRepo(t)
	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM portfolio_customizations`).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(`INSERT INTO portfolio_customizations`).WillReturnError(errors.New("boom"))
	mock.ExpectRollback()

	err := r.ReplaceCustomizations(context.Background(), "p1", "t1", []string{"title"}, domain.Customizations{"title": "Hi"})
	require.Error(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}
