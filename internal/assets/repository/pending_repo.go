package repository

import (
	"context"
	"database/sql"

	"github.com/foliocraft/foliocraft-backend/internal/assets/domain"
)

// PendingDeletionRepository queues object deletes that failed.
type PendingDeletionRepository struct {
	db *sql.DB
}

func NewPendingDeletionRepository(db *sql.DB) *PendingDeletionRepository {
	return &PendingDeletionRepository{db: db}
}

// Enqueue records a failed attempt. Re-enqueueing a known URL bumps its
// attempt count.
func (r *PendingDeletionRepository) Enqueue(ctx context.Context, url, lastErr string) error {
	const q = `
INSERT INTO pending_asset_deletions (url, attempts, last_error)
VALUES ($1, 1, $2)
ON CONFLICT (url) DO UPDATE
SET attempts = pending_asset_deletions.attempts + 1, last_error = EXCLUDED.last_error, updated_at = now();
`
	_, err := r.db.ExecContext(ctx, q, url, lastErr)
	return err
}

// Due returns up to limit entries with fewer than maxAttempts attempts,
// oldest first.
func (r *PendingDeletionRepository) Due(ctx context.Context, maxAttempts, limit int) ([]domain.PendingDeletion, error) {
	const q = `
SELECT url, attempts, last_error, created_at, updated_at
FROM pending_asset_deletions
WHERE attempts < $1
ORDER BY updated_at ASC
LIMIT $2;
`
	rows, err := r.db.QueryContext(ctx, q, maxAttempts, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.PendingDeletion
	for rows.Next() {
		var p domain.PendingDeletion
		if err := rows.Scan(&p.URL, &p.Attempts, &p.LastError, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *PendingDeletionRepository) Remove(ctx context.Context, url string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM pending_asset_deletions WHERE url = $1;`, url)
	return err
}
