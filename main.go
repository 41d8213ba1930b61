package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/SaiNageswarS/go-api-boot/cloud"
	"github.com/SaiNageswarS/go-api-boot/config"
	"github.com/SaiNageswarS/go-api-boot/dotenv"
	"github.com/SaiNageswarS/go-api-boot/logger"
	"github.com/SaiNageswarS/go-api-boot/odm"
	"github.com/SaiNageswarS/resume-chat/appconfig"
	"github.com/SaiNageswarS/resume-chat/db"
	"github.com/SaiNageswarS/resume-chat/llm"
	"github.com/SaiNageswarS/resume-chat/server"
	"github.com/SaiNageswarS/resume-chat/services"
	"github.com/SaiNageswarS/resume-chat/snapshot"
	"go.uber.org/zap"
)

func main() {
	dotenv.LoadEnv()

	// load config file
	ccfg := &appconfig.AppConfig{}
	err := config.LoadConfig("config.ini", ccfg)
	if err != nil {
		logger.Fatal("Failed to load config", zap.Error(err))
	}

	// LOCAL_DEV=1 runs everything in process memory: no Mongo, no blob store.
	localMode := os.Getenv("LOCAL_DEV") == "1"

	var store db.Store
	var snapshots snapshot.Store

	if localMode {
		store = db.ProvideMemoryStore()
		snapshots = snapshot.ProvideMemoryStore()
	} else {
		mongoClient := odm.ProvideMongoClient()

		if err := db.InitResumeChatDB(context.Background(), mongoClient, ccfg.MongoDatabase); err != nil {
			logger.Fatal("Failed to ensure indexes", zap.Error(err))
		}

		az := cloud.ProvideAzure(&ccfg.BootConfig)

		store = db.ProvideMongoStore(mongoClient, ccfg.MongoDatabase)
		snapshots = snapshot.ProvideCloudStore(az, ccfg.SnapshotBucket)
	}

	generator := llm.ProvideReplyGenerator()
	sessions := services.ProvideSessionService(store, snapshots, generator, ccfg.ChatListLimit)
	httpServer := server.ProvideHTTPServer(sessions, localMode)

	addr := ":8080"
	if port := os.Getenv("PORT"); port != "" {
		addr = ":" + port
	}

	srv := &http.Server{Addr: addr, Handler: httpServer.Router()}

	ctx := getCancellableContext()
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	logger.Info("Starting resume-chat server",
		zap.String("addr", addr),
		zap.Bool("localMode", localMode),
		zap.String("llmProvider", generator.Status().Provider))

	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Fatal("Server failed", zap.Error(err))
	}
}

func getCancellableContext() context.Context {
	ctx, cancel := context.WithCancel(context.Background())

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sig
		cancel()
	}()

	return ctx
}
