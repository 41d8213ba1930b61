package snapshot

import (
	"context"

	"github.com/SaiNageswarS/resume-chat/db"
)

// SessionSnapshot is a full point-in-time capture of one session: the resume
// text plus the chat transcript in ascending ts order.
type SessionSnapshot struct {
	Resume string           `json:"resume"`
	Chat   []db.ChatMessage `json:"chat"`
}

// Store is the durable snapshot tier. One object per session, overwritten on
// every write, read only when the primary store has nothing for the session.
//
// Read is fail-soft: a missing or unparseable snapshot comes back as
// (nil, nil), never as an error. A corrupt blob must not take the read path
// down; the session just looks new.
type Store interface {
	Write(ctx context.Context, sessionID string, snap *SessionSnapshot) error
	Read(ctx context.Context, sessionID string) (*SessionSnapshot, error)
}

// ObjectPath is the blob key holding a session's latest snapshot.
func ObjectPath(sessionID string) string {
	return "sessions/" + sessionID + "/latest.json"
}
