package snapshot

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/SaiNageswarS/go-api-boot/logger"
	"go.uber.org/zap"
)

// MemoryStore holds snapshots as raw JSON bytes in process memory. It keeps
// the serialized form, same as the blob store, so back-to-back snapshots with
// no intervening writes stay byte-identical.
type MemoryStore struct {
	mu    sync.RWMutex
	blobs map[string][]byte
}

func ProvideMemoryStore() *MemoryStore {
	return &MemoryStore{blobs: make(map[string][]byte)}
}

func (s *MemoryStore) Write(_ context.Context, sessionID string, snap *SessionSnapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.blobs[sessionID] = data
	return nil
}

func (s *MemoryStore) Read(_ context.Context, sessionID string) (*SessionSnapshot, error) {
	s.mu.RLock()
	data, ok := s.blobs[sessionID]
	s.mu.RUnlock()

	if !ok {
		return nil, nil
	}

	var snap SessionSnapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		logger.Error("Corrupt snapshot blob, treating as absent",
			zap.String("sessionId", sessionID), zap.Error(err))
		return nil, nil
	}

	return &snap, nil
}

// Raw returns the stored bytes for a session, for asserting byte-level
// snapshot idempotence in tests.
func (s *MemoryStore) Raw(sessionID string) ([]byte, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, ok := s.blobs[sessionID]
	return data, ok
}

// SeedRaw stores bytes verbatim, bypassing serialization. Tests use it to
// plant corrupt blobs.
func (s *MemoryStore) SeedRaw(sessionID string, data []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.blobs[sessionID] = data
}
