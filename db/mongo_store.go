package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/SaiNageswarS/go-api-boot/odm"
	"github.com/SaiNageswarS/go-collection-boot/async"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
)

// MongoStore is the managed primary store, one database per deployment.
type MongoStore struct {
	mongo  odm.MongoClient
	dbName string
}

func ProvideMongoStore(mongo odm.MongoClient, dbName string) *MongoStore {
	return &MongoStore{mongo: mongo, dbName: dbName}
}

func (s *MongoStore) PutResume(ctx context.Context, sessionID, text string) (int64, error) {
	model := ResumeModel{ID: sessionID, Text: text, UpdatedAt: NowMs()}

	_, err := async.Await(odm.CollectionOf[ResumeModel](s.mongo, s.dbName).Save(ctx, model))
	if err != nil {
		return 0, fmt.Errorf("failed to save resume: %w", err)
	}

	return model.UpdatedAt, nil
}

func (s *MongoStore) GetResume(ctx context.Context, sessionID string) (string, bool, error) {
	model, err := async.Await(odm.CollectionOf[ResumeModel](s.mongo, s.dbName).FindOneByID(ctx, sessionID))
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("failed to find resume: %w", err)
	}

	if model == nil {
		return "", false, nil
	}

	return model.Text, true, nil
}

func (s *MongoStore) AppendMessage(ctx context.Context, sessionID, role, text string, ts int64) error {
	if ts <= 0 {
		ts = NowMs()
	}

	model := ChatMessageModel{
		ID:        chatMessageID(sessionID, ts, role),
		SessionID: sessionID,
		Role:      role,
		Text:      text,
		Ts:        ts,
	}

	_, err := async.Await(odm.CollectionOf[ChatMessageModel](s.mongo, s.dbName).Save(ctx, model))
	if err != nil {
		return fmt.Errorf("failed to append chat message: %w", err)
	}

	return nil
}

func (s *MongoStore) ListMessages(ctx context.Context, sessionID string, limit int) ([]ChatMessage, error) {
	if limit <= 0 {
		limit = DefaultChatLimit
	}

	// Fetch the most recent limit messages descending, then flip to the
	// ascending order the contract promises. Keeps long transcripts from
	// being pulled into memory whole.
	models, err := async.Await(odm.CollectionOf[ChatMessageModel](s.mongo, s.dbName).
		Find(ctx, bson.M{"sessionId": sessionID}, bson.D{{Key: "ts", Value: -1}}, int64(limit), 0))
	if err != nil {
		return nil, fmt.Errorf("failed to list chat messages: %w", err)
	}

	msgs := make([]ChatMessage, len(models))
	for i, m := range models {
		msgs[len(models)-1-i] = ChatMessage{Role: m.Role, Text: m.Text, Ts: m.Ts}
	}

	return msgs, nil
}
