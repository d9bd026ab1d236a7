package repository

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPendingDeletions(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	r := NewPendingDeletionRepository(db)
	ctx := context.Background()

	mock.ExpectExec(`INSERT INTO pending_asset_deletions .* ON CONFLICT \(url\) DO UPDATE`).
		WithArgs("https://cdn/x.png", "timeout").WillReturnResult(sqlmock.NewResult(0, 1))
	require.NoError(t, r.Enqueue(ctx, "https://cdn/x.png", "timeout"))

	now := time.Now()
	mock.ExpectQuery(`FROM pending_asset_deletions\s+WHERE attempts < \$1`).WithArgs(5, 100).
		WillReturnRows(sqlmock.NewRows([]string{"url", "attempts", "last_error", "created_at", "updated_at"}).
			AddRow("https://cdn/x.png", 1, "timeout", now, now))
	due, err := r.Due(ctx, 5, 100)
	require.NoError(t, err)
	require.Len(t, due, 1)
	assert.Equal(t, 1, due[0].Attempts)

	mock.ExpectExec(`DELETE FROM pending_asset_deletions`).WithArgs("https://cdn/x.png").WillReturnResult(sqlmock.NewResult(0, 1))
	require.NoError(t, r.Remove(ctx, "https://cdn/x.png"))

	require.NoError(t, mock.ExpectationsWereMet())
}
