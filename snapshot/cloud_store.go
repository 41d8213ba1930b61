package snapshot

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/SaiNageswarS/go-api-boot/logger"
	"go.uber.org/zap"
)

// blobClient is the slice of cloud storage the snapshot tier needs.
// cloud.Cloud satisfies it; tests plug in a fake.
type blobClient interface {
	UploadBuffer(ctx context.Context, bucket, path string, data []byte) (string, error)
	DownloadFile(ctx context.Context, bucket, path string) (string, error)
}

// CloudStore persists snapshots as JSON blobs in the configured cloud bucket.
type CloudStore struct {
	cloud  blobClient
	bucket string
}

func ProvideCloudStore(cloud blobClient, bucket string) *CloudStore {
	return &CloudStore{cloud: cloud, bucket: bucket}
}

func (s *CloudStore) Write(ctx context.Context, sessionID string, snap *SessionSnapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot: %w", err)
	}

	_, err = s.cloud.UploadBuffer(ctx, s.bucket, ObjectPath(sessionID), data)
	if err != nil {
		return fmt.Errorf("failed to upload snapshot: %w", err)
	}

	return nil
}

// Read downloads and parses the session's snapshot. Any failure on the way —
// missing blob, unreadable download, malformed JSON — degrades to no snapshot.
func (s *CloudStore) Read(ctx context.Context, sessionID string) (*SessionSnapshot, error) {
	localPath, err := s.cloud.DownloadFile(ctx, s.bucket, ObjectPath(sessionID))
	if err != nil {
		logger.Info("No snapshot blob for session",
			zap.String("sessionId", sessionID), zap.Error(err))
		return nil, nil
	}

	data, err := os.ReadFile(localPath)
	if err != nil {
		logger.Error("Failed to read downloaded snapshot",
			zap.String("sessionId", sessionID), zap.Error(err))
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
