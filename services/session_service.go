package services

import (
	"context"

	"github.com/SaiNageswarS/go-api-boot/logger"
	"github.com/SaiNageswarS/resume-chat/db"
	"github.com/SaiNageswarS/resume-chat/llm"
	"github.com/SaiNageswarS/resume-chat/snapshot"
	"go.uber.org/zap"
)

// SessionView is what a session read returns. RehydratedInMs is set only when
// the read replayed a snapshot.
type SessionView struct {
	Resume         string           `json:"resume"`
	Chat           []db.ChatMessage `json:"chat"`
	RehydratedInMs *int64           `json:"rehydratedInMs,omitempty"`
}

// SessionService orchestrates the two storage tiers and the reply generator.
// It holds no session state of its own; every operation is request-scoped.
type SessionService struct {
	store     db.Store
	snapshots snapshot.Store
	generator llm.ReplyGenerator
	chatLimit int
}

func ProvideSessionService(store db.Store, snapshots snapshot.Store, generator llm.ReplyGenerator, chatLimit int) *SessionService {
	if chatLimit <= 0 {
		chatLimit = db.DefaultChatLimit
	}

	return &SessionService{
		store:     store,
		snapshots: snapshots,
		generator: generator,
		chatLimit: chatLimit,
	}
}

// GetSession returns the session's resume and recent chat.
//
// A session is cold only when the resume is absent AND the chat is empty; a
// resume with no chat, or chat with no resume, is warm. The warm path never
// touches the snapshot store. On a cold read the durable snapshot, if any, is
// replayed into the primary store before returning.
func (s *SessionService) GetSession(ctx context.Context, sessionID string) (*SessionView, error) {
	resume, hasResume, err := s.store.GetResume(ctx, sessionID)
	if err != nil {
		logger.Error("Failed to read resume", zap.String("sessionId", sessionID), zap.Error(err))
		return nil, err
	}

	chat, err := s.store.ListMessages(ctx, sessionID, s.chatLimit)
	if err != nil {
		logger.Error("Failed to list chat", zap.String("sessionId", sessionID), zap.Error(err))
		return nil, err
	}

	if hasResume || len(chat) > 0 {
		return &SessionView{Resume: resume, Chat: chat}, nil
	}

	return s.rehydrate(ctx, sessionID)
}

// rehydrate replays the durable snapshot into the primary store and returns
// the snapshot content itself, not a re-read. Replay keeps the original
// message timestamps, so replaying the same snapshot twice cannot reorder
// history. Rehydration is not locked: two racing cold reads may both replay,
// which is at-least-once on purpose.
func (s *SessionService) rehydrate(ctx context.Context, sessionID string) (*SessionView, error) {
	start := db.NowMs()

	snap, err := s.snapshots.Read(ctx, sessionID)
	if err != nil {
		logger.Error("Failed to read snapshot", zap.String("sessionId", sessionID), zap.Error(err))
		return nil, err
	}

	if snap == nil {
		// Genuinely new session.
		return &SessionView{Resume: "", Chat: []db.ChatMessage{}}, nil
	}

	if _, err := s.store.PutResume(ctx, sessionID, snap.Resume); err != nil {
		logger.Error("Failed to replay resume", zap.String("sessionId", sessionID), zap.Error(err))
		return nil, err
	}

	for _, msg := range snap.Chat {
		if err := s.store.AppendMessage(ctx, sessionID, msg.Role, msg.Text, msg.Ts); err != nil {
			logger.Error("Failed to replay chat message", zap.String("sessionId", sessionID), zap.Error(err))
			return nil, err
		}
	}

	elapsed := db.NowMs() - start
	logger.Info("Rehydrated session from snapshot",
		zap.String("sessionId", sessionID),
		zap.Int("countMessages", len(snap.Chat)),
		zap.Int64("elapsedMs", elapsed))

	chat := snap.Chat
	if chat == nil {
		chat = []db.ChatMessage{}
	}

	return &SessionView{Resume: snap.Resume, Chat: chat, RehydratedInMs: &elapsed}, nil
}

// SaveResume overwrites the session's resume and returns the new updatedAt.
// The snapshot store is untouched; durability is an explicit, caller-triggered
// SnapshotSession.
func (s *SessionService) SaveResume(ctx context.Context, sessionID, text string) (int64, error) {
	updatedAt, err := s.store.PutResume(ctx, sessionID, text)
	if err != nil {
		logger.Error("Failed to save resume", zap.String("sessionId", sessionID), zap.Error(err))
		return 0, err
	}

	return updatedAt, nil
}

// AppendChatTurn records the user message, generates a reply, records it as
// the assistant message, and returns the reply text. The two appends are not
// transactional: a failure in between leaves a dangling user message with no
// assistant reply, and no retry happens here.
func (s *SessionService) AppendChatTurn(ctx context.Context, sessionID, userText string) (string, error) {
	if err := s.store.AppendMessage(ctx, sessionID, db.RoleUser, userText, 0); err != nil {
		logger.Error("Failed to append user message", zap.String("sessionId", sessionID), zap.Error(err))
		return "", err
	}

	reply := s.generator.GenerateReply(ctx, userText)

	if err := s.store.AppendMessage(ctx, sessionID, db.RoleAssistant, reply, 0); err != nil {
		logger.Error("Failed to append assistant message", zap.String("sessionId", sessionID), zap.Error(err))
		return "", err
	}

	return reply, nil
}

// SnapshotSession captures the session's current resume and chat into the
// durable store and returns how many messages the snapshot holds. This is the
// only path that writes the snapshot tier.
func (s *SessionService) SnapshotSession(ctx context.Context, sessionID string) (int, error) {
	resume, _, err := s.store.GetResume(ctx, sessionID)
	if err != nil {
		logger.Error("Failed to read resume for snapshot", zap.String("sessionId", sessionID), zap.Error(err))
		return 0, err
	}

	chat, err := s.store.ListMessages(ctx, sessionID, s.chatLimit)
	if err != nil {
		logger.Error("Failed to list chat for snapshot", zap.String("sessionId", sessionID), zap.Error(err))
		return 0, err
	}
	if chat == nil {
		chat = []db.ChatMessage{}
	}

	snap := &snapshot.SessionSnapshot{Resume: resume, Chat: chat}
	if err := s.snapshots.Write(ctx, sessionID, snap); err != nil {
		logger.Error("Failed to write snapshot", zap.String("sessionId", sessionID), zap.Error(err))
		return 0, err
	}

	return len(chat), nil
}

// LLMStatus reports the active reply provider.
func (s *SessionService) LLMStatus() llm.Status {
	return s.generator.Status()
}
