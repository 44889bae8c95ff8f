package memory

import (
	"context"
	"sync"
)

// BlobStore is an in-memory attendance.BlobStore for tests and local runs.
type BlobStore struct {
	mu   sync.Mutex
	data []byte

	// SaveErr, when set, is returned by the next Save call and cleared.
	// Lets tests exercise persistence failure paths.
	SaveErr error
}

func NewBlobStore() *BlobStore {
	return &BlobStore{}
}

// Load implements attendance.BlobStore.
func (s *BlobStore) Load(ctx context.Context) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.data == nil {
		return nil, nil
	}
	cp := make([]byte, len(s.data))
	copy(cp, s.data)
	return cp, nil
}

// Save implements attendance.BlobStore.
func (s *BlobStore) Save(ctx context.Context, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.SaveErr != nil {
		err := s.SaveErr
		s.SaveErr = nil
		return err
	}
	cp := make([]byte, len(data))
	copy(cp, data)
	s.data = cp
	return nil
}
