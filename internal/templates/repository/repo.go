package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/foliocraft/foliocraft-backend/internal/storage/postgres"
	"github.com/foliocraft/foliocraft-backend/internal/templates/domain"
)

// TemplateRepository provides persistence operations for templates
type TemplateRepository struct {
	db *sql.DB
}

func NewTemplateRepository(db *sql.DB) *TemplateRepository {
	return &TemplateRepository{db: db}
}

const templateColumns = `id::text, name, description, category, thumbnail_url, component_code, is_active, created_at, updated_at`

func scanTemplate(s interface{ Scan(...any) error }) (*domain.Template, error) {
	var t domain.Template
	err := s.Scan(&t.ID, &t.Name, &t.Description, &t.Category, &t.ThumbnailURL,
		&t.ComponentCode, &t.IsActive, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &t, nil
}

// Create inserts a new, active template.
func (r *TemplateRepository) Create(ctx context.Context, req *domain.CreateTemplateRequest) (*domain.Template, error) {
	const q = `
INSERT INTO templates (name, description, category, thumbnail_url, component_code, created_by)
VALUES ($1, $2, $3, $4, $5, NULLIF($6, '')::uuid)
RETURNING ` + templateColumns + `;
`
	t, err := scanTemplate(r.db.QueryRowContext(ctx, q,
		req.Name, req.Description, req.Category, req.ThumbnailURL, req.ComponentCode, req.CreatedBy))
	if err != nil {
		return nil, fmt.Errorf("insert template: %w", err)
	}
	return t, nil
}

func (r *TemplateRepository) GetByID(ctx context.Context, id string) (*domain.Template, error) {
	const q = `SELECT ` + templateColumns + ` FROM templates WHERE id = $1::uuid;`
	return scanTemplate(r.db.QueryRowContext(ctx, q, id))
}

// List returns templates ordered by name. Component code is blanked unless
// the filter asks for it.
func (r *TemplateRepository) List(ctx context.Context, f domain.ListFilter) ([]domain.Template, error) {
	var (
		where []string
		args  []any
	)
	if f.ActiveOnly {
		where = append(where, "is_active")
	}
	if f.Category != "" {
		args = append(args, f.Category)
		where = append(where, fmt.Sprintf("category = $%d", len(args)))
	}

	q := `SELECT ` + templateColumns + ` FROM templates`
	if len(where) > 0 {
		q += ` WHERE ` + strings.Join(where, " AND ")
	}
	q += ` ORDER BY name ASC;`

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]domain.Template, 0, 16)
	for rows.Next() {
		t, err := scanTemplate(rows)
		if err != nil {
			return nil, err
		}
		if !f.IncludeCode {
			t.ComponentCode = ""
		}
		out = append(out, *t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Update writes the full row; callers merge partial updates first.
func (r *TemplateRepository) Update(ctx context.Context, t *domain.Template) (*domain.Template, error) {
	const q = `
UPDATE templates
SET name = $2, description = $3, category = $4, thumbnail_url = $5,
    component_code = $6, is_active = $7, updated_at = now()
WHERE id = $1::uuid
RETURNING ` + templateColumns + `;
`
	return scanTemplate(r.db.QueryRowContext(ctx, q,
		t.ID, t.Name, t.Description, t.Category, t.ThumbnailURL, t.ComponentCode, t.IsActive))
}

// Delete removes a template that no portfolio references.
func (r *TemplateRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM templates WHERE id = $1::uuid;`, id)
	if err != nil {
		if postgres.IsForeignKeyViolation(err) {
			return domain.ErrInUse
		}
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
