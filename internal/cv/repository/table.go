package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/foliocraft/foliocraft-backend/internal/cv/domain"
)

type scanner interface {
	Scan(dest ...any) error
}

// Table maps one CV list record type onto its table. Every table shares the
// id, user_id, created_at and updated_at columns; columns lists the rest in
// the order fields and values produce them.
type Table[T any, P interface {
	*T
	domain.Entry
}] struct {
	db      *sql.DB
	name    string
	columns []string
	orderBy string
	fields  func(P) []any
	values  func(P) []any
}

func (t *Table[T, P]) selectList() string {
	return `id::text, user_id::text, ` + strings.Join(t.columns, ", ") + `, created_at, updated_at`
}

func (t *Table[T, P]) scan(s scanner) (P, error) {
	p := P(new(T))
	m := p.EntryMeta()
	dest := make([]any, 0, len(t.columns)+4)
	dest = append(dest, &m.ID, &m.UserID)
	dest = append(dest, t.fields(p)...)
	dest = append(dest, &m.CreatedAt, &m.UpdatedAt)
	if err := s.Scan(dest...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return p, nil
}

// List returns the user's records in the table's display order.
func (t *Table[T, P]) List(ctx context.Context, userID string) ([]P, error) {
	q := `SELECT ` + t.selectList() + ` FROM ` + t.name + ` WHERE user_id = $1::uuid ORDER BY ` + t.orderBy + `;`
	rows, err := t.db.QueryContext(ctx, q, userID)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", t.name, err)
	}
	defer rows.Close()

	out := make([]P, 0, 8)
	for rows.Next() {
		p, err := t.scan(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (t *Table[T, P]) Create(ctx context.Context, userID string, p P) (P, error) {
	ph := make([]string, len(t.columns))
	for i := range t.columns {
		ph[i] = fmt.Sprintf("$%d", i+2)
	}
	q := `INSERT INTO ` + t.name + ` (user_id, ` + strings.Join(t.columns, ", ") + `)
VALUES ($1::uuid, ` + strings.Join(ph, ", ") + `)
RETURNING ` + t.selectList() + `;`

	args := append([]any{userID}, t.values(p)...)
	out, err := t.scan(t.db.QueryRowContext(ctx, q, args...))
	if err != nil {
		return nil, fmt.Errorf("insert %s: %w", t.name, err)
	}
	return out, nil
}

// Update overwrites every data column of the user's record id.
func (t *Table[T, P]) Update(ctx context.Context, userID, id string, p P) (P, error) {
	set := make([]string, len(t.columns))
	for i, c := range t.columns {
		set[i] = fmt.Sprintf("%s = $%d", c, i+3)
	}
	q := `UPDATE ` + t.name + `
SET ` + strings.Join(set, ", ") + `, updated_at = now()
WHERE id = $1::uuid AND user_id = $2::uuid
RETURNING ` + t.selectList() + `;`

	args := append([]any{id, userID}, t.values(p)...)
	return t.scan(t.db.QueryRowContext(ctx, q, args...))
}

func (t *Table[T, P]) Delete(ctx context.Context, userID, id string) error {
	res, err := t.db.ExecContext(ctx,
		`DELETE FROM `+t.name+` WHERE id = $1::uuid AND user_id = $2::uuid;`, id, userID)
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
