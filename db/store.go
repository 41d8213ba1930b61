package db

import (
	"context"
	"sort"
	"time"
)

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// DefaultChatLimit caps how many messages a listing returns when no limit is
// configured.
const DefaultChatLimit = 50

// ChatMessage is one entry in a session's transcript. Messages are append-only
// and ordered by Ts ascending.
type ChatMessage struct {
	Role string `json:"role"`
	Text string `json:"text"`
	Ts   int64  `json:"ts"`
}

// Store is the primary (hot) session store. It is queried on every request;
// durability across store wipes comes from the snapshot tier, not from here.
type Store interface {
	// PutResume upserts the session's resume text and returns the new updatedAt
	// in epoch milliseconds. Last write wins, no versioning.
	PutResume(ctx context.Context, sessionID, text string) (int64, error)

	// GetResume returns the resume text. A session with no resume yields
	// ok=false, not an error.
	GetResume(ctx context.Context, sessionID string) (text string, ok bool, err error)

	// AppendMessage appends one message. A ts <= 0 gets the current time.
	// Appends never reorder or deduplicate.
	AppendMessage(ctx context.Context, sessionID, role, text string, ts int64) error

	// ListMessages returns the last limit messages in ascending ts order.
	// No messages yields an empty slice, not an error.
	ListMessages(ctx context.Context, sessionID string, limit int) ([]ChatMessage, error)
}

// NowMs returns wall-clock time in epoch milliseconds.
func NowMs() int64 {
	return time.Now().UnixMilli()
}

// sortAndTruncate orders messages by ascending ts and keeps the most recent
// limit entries, still ascending. The stable sort keeps insertion order for
// equal timestamps.
func sortAndTruncate(msgs []ChatMessage, limit int) []ChatMessage {
	sort.SliceStable(msgs, func(i, j int) bool { return msgs[i].Ts < msgs[j].Ts })
	if limit > 0 && len(msgs) > limit {
		msgs = msgs[len(msgs)-limit:]
	}
	return msgs
}
