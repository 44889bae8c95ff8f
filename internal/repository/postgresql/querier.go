package postgresql

import (
	"context"

	"github.com/hrops-dev/attendance-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

// GetQuerier returns the transaction bound to the context, or the pool.
// Lets the blob store and directory run inside an ambient transaction when
// a caller provides one.
func GetQuerier(ctx context.Context, db *database.DB) database.Querier {
	if tx, ok := ctx.Value("tx").(pgx.Tx); ok {
		return tx
	}
	return db.Pool
}
