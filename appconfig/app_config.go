package appconfig

import (
	"github.com/SaiNageswarS/go-api-boot/config"
)

type AppConfig struct {
	config.BootConfig `ini:",extends"`

	MongoDatabase  string `env:"MONGO-DATABASE" ini:"mongo_database"`
	SnapshotBucket string `env:"SNAPSHOT-BUCKET" ini:"snapshot_bucket"`
	ChatListLimit  int    `env:"CHAT-LIST-LIMIT" ini:"chat_list_limit"`
}
