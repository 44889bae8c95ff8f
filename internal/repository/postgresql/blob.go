package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/hrops-dev/attendance-backend-go/internal/domain/attendance"
	"github.com/hrops-dev/attendance-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

// ledgerBlobKey is the single well-known key the serialized ledger lives
// under. The whole blob is read at startup and rewritten on every mutation.
const ledgerBlobKey = "attendance_ledger"

type ledgerBlobStore struct {
	db *database.DB
}

func NewLedgerBlobStore(db *database.DB) attendance.BlobStore {
	return &ledgerBlobStore{db: db}
}

// Load implements attendance.BlobStore.
func (s *ledgerBlobStore) Load(ctx context.Context) ([]byte, error) {
	q := GetQuerier(ctx, s.db)

	query := `
		SELECT data
		FROM app_blobs
		WHERE key = $1
	`

	var data []byte
	err := q.QueryRow(ctx, query, ledgerBlobKey).Scan(&data)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to load blob %q: %w", ledgerBlobKey, err)
	}

	return data, nil
}

// Save implements attendance.BlobStore.
func (s *ledgerBlobStore) Save(ctx context.Context, data []byte) error {
	q := GetQuerier(ctx, s.db)

	query := `
		INSERT INTO app_blobs (key, data, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (key) DO UPDATE
		SET data = EXCLUDED.data, updated_at = NOW()
	`

	if _, err := q.Exec(ctx, query, ledgerBlobKey, data); err != nil {
		return fmt.Errorf("failed to save blob %q: %w", ledgerBlobKey, err)
	}

	return nil
}
