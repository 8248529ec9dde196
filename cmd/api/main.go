// server/cmd/api/main.go
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"waste-retrieval-api-server/config"
	"waste-retrieval-api-server/internal/api/routes"
	"waste-retrieval-api-server/internal/database"
	"waste-retrieval-api-server/internal/logger"
	"waste-retrieval-api-server/internal/retrieval"
	"waste-retrieval-api-server/internal/s3"
	"waste-retrieval-api-server/internal/socket"

	"github.com/joho/godotenv"
)

func main() {
	// .env là tùy chọn; biến môi trường thật vẫn được ưu tiên.
	_ = godotenv.Load()

	// 1. Load configuration
	cfg, err := config.LoadConfig("./config")
	if err != nil {
		logger.InitLogger("waste-api", "INFO").Fatalf("Could not load config: %v", err)
	}
	log := logger.InitLogger("waste-api", cfg.Log.Level)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 2. Khởi tạo store
	var store retrieval.Store
	switch cfg.Store.Driver {
	case config.StoreDriverMemory:
		log.Warning("Using in-memory store; records are lost on restart")
		store = retrieval.NewMemoryStore(nil)
	default:
		client, err := database.Connect(ctx, cfg.Mongo)
		if err != nil {
			log.Fatalf("Could not connect to MongoDB: %v", err)
		}
		defer client.Disconnect(context.Background())

		collection := client.Database(cfg.Mongo.DBName).Collection(cfg.Mongo.Collection)
		if err := database.EnsureRetrievalIndexes(ctx, collection, log); err != nil {
			log.Fatalf("Could not prepare collection: %v", err)
		}
		store = retrieval.NewMongoStore(collection, nil)
	}

	// 3. Service nghiệp vụ
	guard := retrieval.NewDuplicateGuard(store, cfg.Retrieval.DuplicateWindow, nil)
	service := retrieval.NewService(store, guard, log, cfg.DisplayLocation())

	// 4. S3 cho export (tùy chọn)
	var uploader *s3.Uploader
	if cfg.S3.Enabled() {
		uploader, err = s3.NewUploader(ctx, cfg.S3)
		if err != nil {
			log.Fatalf("Could not create S3 uploader: %v", err)
		}
	} else {
		log.Info("S3 is not configured; exports are disabled")
	}

	wsHub := socket.NewHub(log)
	router := routes.SetupRouter(cfg, service, uploader, wsHub, log)

	// 5. Start server
	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		log.Infof("Starting API server on port %s (store=%s, window=%s)", cfg.Server.Port, cfg.Store.Driver, guard.Window())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Failed to run server: %v", err)
		}
	}()

	<-ctx.Done()
	log.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Errorf("Graceful shutdown failed: %v", err)
	}
}
