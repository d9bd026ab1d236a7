package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/foliocraft/foliocraft-backend/internal/portfolios/domain"
	"github.com/foliocraft/foliocraft-backend/internal/storage/postgres"
)

const slugConstraint = "portfolios_slug_key"

// PortfolioRepository provides persistence operations for portfolios and
// their per-template customizations.
type PortfolioRepository struct {
	db *sql.DB
}

func NewPortfolioRepository(db *sql.DB) *PortfolioRepository {
	return &PortfolioRepository{db: db}
}

const portfolioColumns = `id::text, user_id::text, template_id::text, slug, title, is_published, created_at, updated_at`

func scanPortfolio(s interface{ Scan(...any) error }) (*domain.Portfolio, error) {
	var p domain.Portfolio
	err := s.Scan(&p.ID, &p.UserID, &p.TemplateID, &p.Slug, &p.Title, &p.IsPublished, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

func mapWriteErr(err error) error {
	switch {
	case postgres.IsUniqueViolation(err, slugConstraint):
		return domain.ErrSlugTaken
	case postgres.IsForeignKeyViolation(err):
		return domain.ErrTemplateUnavailable
	}
	return err
}

// Create inserts a new unpublished portfolio.
func (r *PortfolioRepository) Create(ctx context.Context, req *domain.CreatePortfolioRequest) (*domain.Portfolio, error) {
	const q = `
INSERT INTO portfolios (user_id, template_id, slug, title)
VALUES ($1::uuid, $2::uuid, $3, $4)
RETURNING ` + portfolioColumns + `;
`
	p, err := scanPortfolio(r.db.QueryRowContext(ctx, q, req.UserID, req.TemplateID, req.Slug, req.Title))
	if err != nil {
		return nil, mapWriteErr(err)
	}
	return p, nil
}

// GetForUser returns a live portfolio owned by userID.
func (r *PortfolioRepository) GetForUser(ctx context.Context, userID, id string) (*domain.Portfolio, error) {
	const q = `
SELECT ` + portfolioColumns + `
FROM portfolios
WHERE id = $1::uuid AND user_id = $2::uuid AND deleted_at IS NULL;
`
	return scanPortfolio(r.db.QueryRowContext(ctx, q, id, userID))
}

// GetPublishedBySlug backs the public page.
func (r *PortfolioRepository) GetPublishedBySlug(ctx context.Context, slug string) (*domain.Portfolio, error) {
	const q = `
SELECT ` + portfolioColumns + `
FROM portfolios
WHERE slug = $1 AND is_published AND deleted_at IS NULL;
`
	return scanPortfolio(r.db.QueryRowContext(ctx, q, slug))
}

// ListByUser returns the user's live portfolios, newest first.
func (r *PortfolioRepository) ListByUser(ctx context.Context, userID string) ([]domain.Portfolio, error) {
	const q = `
SELECT ` + portfolioColumns + `
FROM portfolios
WHERE user_id = $1::uuid AND deleted_at IS NULL
ORDER BY created_at DESC;
`
	rows, err := r.db.QueryContext(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]domain.Portfolio, 0, 8)
	for rows.Next() {
		p, err := scanPortfolio(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Update writes the mutable columns of p.
func (r *PortfolioRepository) Update(ctx context.Context, p *domain.Portfolio) (*domain.Portfolio, error) {
	const q = `
UPDATE portfolios
SET template_id = $3::uuid, slug = $4, title = $5, is_published = $6, updated_at = now()
WHERE id = $1::uuid AND user_id = $2::uuid AND deleted_at IS NULL
RETURNING ` + portfolioColumns + `;
`
	out, err := scanPortfolio(r.db.QueryRowContext(ctx, q, p.ID, p.UserID, p.TemplateID, p.Slug, p.Title, p.IsPublished))
	if err != nil {
		return nil, mapWriteErr(err)
	}
	return out, nil
}

// SoftDelete hides the portfolio and frees its slug.
func (r *PortfolioRepository) SoftDelete(ctx context.Context, userID, id string) error {
	const q = `
UPDATE portfolios
SET deleted_at = now(), is_published = false, slug = id::text, updated_at = now()
WHERE id = $1::uuid AND user_id = $2::uuid AND deleted_at IS NULL;
`
	res, err := r.db.ExecContext(ctx, q, id, userID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// GetCustomizations returns the stored fields for one (portfolio, template)
// pair. A pair with nothing stored yields an empty map.
func (r *PortfolioRepository) GetCustomizations(ctx context.Context, portfolioID, templateID string) (domain.Customizations, error) {
	const q = `
SELECT field_name, field_value
FROM portfolio_customizations
WHERE portfolio_id = $1::uuid AND template_id = $2::uuid;
`
	rows, err := r.db.QueryContext(ctx, q, portfolioID, templateID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := domain.Customizations{}
	for rows.Next() {
		var k, v string
		if err := rows.Scan(&k, &v); err != nil {
			return nil, err
		}
		out[k] = v
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// ReplaceCustomizations swaps the whole field set of a pair in one
// transaction. keys fixes the insert order.
func (r *PortfolioRepository) ReplaceCustomizations(ctx context.Context, portfolioID, templateID string, keys []string, c domain.Customizations) (err error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err = tx.ExecContext(ctx,
		`DELETE FROM portfolio_customizations WHERE portfolio_id = $1::uuid AND template_id = $2::uuid;`,
		portfolioID, templateID); err != nil {
		return fmt.Errorf("clear customizations: %w", err)
	}

	const ins = `
INSERT INTO portfolio_customizations (portfolio_id, template_id, field_name, field_value)
VALUES ($1::uuid, $2::uuid, $3, $4);
`
	for _, k := range keys {
		if _, err = tx.ExecContext(ctx, ins, portfolioID, templateID, k, c[k]); err != nil {
			return fmt.Errorf("insert customization %q: %w", k, mapWriteErr(err))
		}
	}

	return tx.Commit()
}
