package ledger

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/hrops-dev/attendance-backend-go/internal/domain/attendance"
)

// Ledger is the single owner of all attendance records. It keeps the full
// map in memory and rewrites the whole blob through its BlobStore on every
// mutation, mirroring the load-once / persist-on-write lifecycle.
type Ledger struct {
	store attendance.BlobStore

	mu      sync.RWMutex
	records map[string]map[string]attendance.Record // employeeID -> dateISO -> record
}

func New(store attendance.BlobStore) *Ledger {
	return &Ledger{
		store:   store,
		records: make(map[string]map[string]attendance.Record),
	}
}

// Load reads the persisted blob and replaces the in-memory state. A missing
// blob yields an empty ledger.
func (l *Ledger) Load(ctx context.Context) error {
	data, err := l.store.Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to load attendance ledger: %w", err)
	}

	records := make(map[string]map[string]attendance.Record)
	if len(data) > 0 {
		if err := json.Unmarshal(data, &records); err != nil {
			return fmt.Errorf("failed to decode attendance ledger: %w", err)
		}
	}

	l.mu.Lock()
	l.records = records
	l.mu.Unlock()
	return nil
}

// Get implements attendance.Ledger.
func (l *Ledger) Get(ctx context.Context, employeeID, date string) (attendance.Record, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	rec, ok := l.records[employeeID][date]
	if !ok {
		return attendance.Record{}, attendance.ErrRecordNotFound
	}
	return rec.Clone(), nil
}

// Upsert implements attendance.Ledger. The merge and the invariant are
// applied before anything is persisted; a failed persist rolls the
// in-memory state back so memory and blob never diverge.
func (l *Ledger) Upsert(ctx context.Context, employeeID, date string, patch attendance.Patch) (attendance.Record, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	prev, hadPrev := l.records[employeeID][date]

	rec := attendance.Record{Status: attendance.StatusUnset}
	if hadPrev {
		rec = prev.Clone()
	}
	rec = applyPatch(rec, patch)
	rec = normalize(rec)

	if l.records[employeeID] == nil {
		l.records[employeeID] = make(map[string]attendance.Record)
	}
	l.records[employeeID][date] = rec

	if err := l.persist(ctx); err != nil {
		if hadPrev {
			l.records[employeeID][date] = prev
		} else {
			delete(l.records[employeeID], date)
		}
		return attendance.Record{}, err
	}

	return rec.Clone(), nil
}

// SnapshotFor implements attendance.Ledger.
func (l *Ledger) SnapshotFor(ctx context.Context, employeeID string) (map[string]attendance.Record, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	snapshot := make(map[string]attendance.Record, len(l.records[employeeID]))
	for date, rec := range l.records[employeeID] {
		snapshot[date] = rec.Clone()
	}
	return snapshot, nil
}

// persist rewrites the entire ledger blob. Caller holds the write lock.
func (l *Ledger) persist(ctx context.Context) error {
	data, err := json.Marshal(l.records)
	if err != nil {
		return fmt.Errorf("failed to encode attendance ledger: %w", err)
	}
	if err := l.store.Save(ctx, data); err != nil {
		return fmt.Errorf("failed to persist attendance ledger: %w", err)
	}
	return nil
}

func applyPatch(rec attendance.Record, patch attendance.Patch) attendance.Record {
	if patch.Status != nil {
		rec.Status = *patch.Status
	}
	if patch.Notes != nil {
		rec.Notes = *patch.Notes
	}

	if patch.CheckIn != nil {
		p := ensurePresence(&rec)
		p.CheckInBucket = patch.CheckIn.Bucket
		p.WorkLocation = patch.CheckIn.WorkLocation
		p.CheckInCoords = cloneCoords(patch.CheckIn.Coordinates)
	}
	if patch.CheckOut != nil {
		p := ensurePresence(&rec)
		p.CheckOutBucket = patch.CheckOut.Bucket
		p.CheckOutCoords = cloneCoords(patch.CheckOut.Coordinates)
	}
	return rec
}

// normalize re-applies the status/presence coupling: non-present records
// carry no presence data, and an all-empty Presence collapses to nil.
func normalize(rec attendance.Record) attendance.Record {
	if rec.Status != attendance.StatusPresent {
		rec.Presence = nil
		return rec
	}
	if rec.Presence != nil && *rec.Presence == (attendance.Presence{}) {
		rec.Presence = nil
	}
	return rec
}

func ensurePresence(rec *attendance.Record) *attendance.Presence {
	if rec.Presence == nil {
		rec.Presence = &attendance.Presence{}
	}
	return rec.Presence
}

func cloneCoords(c *attendance.Coordinates) *attendance.Coordinates {
	if c == nil {
		return nil
	}
	cp := *c
	return &cp
}
