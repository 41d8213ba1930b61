package db

import (
	"context"
	"sync"
)

// MemoryStore keeps session state in process memory. Used in local mode and in
// tests; a restart loses everything, which is what the snapshot tier is for.
type MemoryStore struct {
	mu      sync.RWMutex
	resumes map[string]ResumeModel
	chats   map[string][]ChatMessage
}

func ProvideMemoryStore() *MemoryStore {
	return &MemoryStore{
		resumes: make(map[string]ResumeModel),
		chats:   make(map[string][]ChatMessage),
	}
}

func (s *MemoryStore) PutResume(_ context.Context, sessionID, text string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	model := ResumeModel{ID: sessionID, Text: text, UpdatedAt: NowMs()}
	s.resumes[sessionID] = model
	return model.UpdatedAt, nil
}

func (s *MemoryStore) GetResume(_ context.Context, sessionID string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	model, ok := s.resumes[sessionID]
	if !ok {
		return "", false, nil
	}
	return model.Text, true, nil
}

func (s *MemoryStore) AppendMessage(_ context.Context, sessionID, role, text string, ts int64) error {
	if ts <= 0 {
		ts = NowMs()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.chats[sessionID] = append(s.chats[sessionID], ChatMessage{Role: role, Text: text, Ts: ts})
	return nil
}

func (s *MemoryStore) ListMessages(_ context.Context, sessionID string, limit int) ([]ChatMessage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	msgs := make([]ChatMessage, len(s.chats[sessionID]))
	copy(msgs, s.chats[sessionID])

	return sortAndTruncate(msgs, limit), nil
}

// Reset wipes all sessions. Exercised by tests simulating a fresh primary
// store in front of an existing snapshot tier.
func (s *MemoryStore) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.resumes = make(map[string]ResumeModel)
	s.chats = make(map[string][]ChatMessage)
}
