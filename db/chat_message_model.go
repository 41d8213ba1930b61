package db

import "fmt"

// One chat message per document, keyed by sessionId plus timestamp so a
// session's transcript is a plain range query on sessionId.
type ChatMessageModel struct {
	ID        string `bson:"_id"`
	SessionID string `bson:"sessionId"`
	Role      string `bson:"role"`
	Text      string `bson:"text"`
	Ts        int64  `bson:"ts"`
}

// chatMessageID builds the document key. Including the role keeps a
// user/assistant pair that lands in the same millisecond as two documents;
// same-role writes in the same millisecond still collide last-write-wins.
func chatMessageID(sessionID string, ts int64, role string) string {
	return fmt.Sprintf("%s#chat#%013d#%s", sessionID, ts, role)
}

func (m ChatMessageModel) Id() string {
	return m.ID
}

func (m ChatMessageModel) CollectionName() string {
	return "chat_messages"
}
