package attendance

import "context"

// DateFormat is the ISO calendar-day key used throughout the ledger.
const DateFormat = "2006-01-02"

// Ledger owns the persisted map of (employee, date) -> Record. All reads
// and mutations go through it; nothing else touches the stored blob.
type Ledger interface {
	// Get returns the record for one employee-day, or ErrRecordNotFound.
	Get(ctx context.Context, employeeID, date string) (Record, error)

	// Upsert merges patch into the existing record for the key (or a fresh
	// unset record), re-applies the status/presence invariant, persists the
	// full ledger and returns the stored record. Idempotent for equal input.
	Upsert(ctx context.Context, employeeID, date string, patch Patch) (Record, error)

	// SnapshotFor returns a deep copy of one employee's records keyed by
	// ISO date, for the aggregation engine.
	SnapshotFor(ctx context.Context, employeeID string) (map[string]Record, error)
}

// BlobStore persists the serialized ledger as one blob under a well-known
// key. Load returns nil data when nothing has been stored yet.
type BlobStore interface {
	Load(ctx context.Context) ([]byte, error)
	Save(ctx context.Context, data []byte) error
}
