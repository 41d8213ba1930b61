package db

import (
	"context"

	"github.com/SaiNageswarS/go-api-boot/odm"
)

func InitResumeChatDB(ctx context.Context, mongo odm.MongoClient, dbName string) error {
	err := odm.EnsureIndexes[ResumeModel](ctx, mongo, dbName)
	if err != nil {
		return err
	}

	err = odm.EnsureIndexes[ChatMessageModel](ctx, mongo, dbName)
	if err != nil {
		return err
	}

	return nil
}
