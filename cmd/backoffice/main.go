package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hollisk/backoffice/internal/backup"
	"github.com/hollisk/backoffice/internal/database"
	"github.com/hollisk/backoffice/internal/logging"
	"github.com/hollisk/backoffice/internal/server"
)

func main() {
	port := os.Getenv("BACKOFFICE_PORT")
	if port == "" {
		port = "8080"
	}

	dbPath := os.Getenv("BACKOFFICE_DB_PATH")
	if dbPath == "" {
		dbPath = "backoffice.db"
	}

	exportDir := os.Getenv("BACKOFFICE_EXPORT_DIR")
	if exportDir == "" {
		exportDir = "exports"
	}

	logger := logging.Setup(os.Getenv("BACKOFFICE_LOG_LEVEL"), os.Getenv("BACKOFFICE_LOG_FORMAT"))

	db, err := database.Open(dbPath)
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}
	defer db.Close()

	cfg := server.Config{ExportDir: exportDir}

	// Snapshot backups are opt-in; the default executor only records the
	// lifecycle without touching storage.
	if os.Getenv("BACKOFFICE_BACKUP_MODE") == "snapshot" {
		snapCfg := backup.SnapshotConfig{
			DBPath:     dbPath,
			Dir:        os.Getenv("BACKOFFICE_BACKUP_DIR"),
			Passphrase: os.Getenv("BACKOFFICE_BACKUP_PASSPHRASE"),
			S3: backup.S3Config{
				Endpoint:  os.Getenv("BACKOFFICE_S3_ENDPOINT"),
				Bucket:    os.Getenv("BACKOFFICE_S3_BUCKET"),
				Region:    os.Getenv("BACKOFFICE_S3_REGION"),
				AccessKey: os.Getenv("BACKOFFICE_S3_ACCESS_KEY"),
				SecretKey: os.Getenv("BACKOFFICE_S3_SECRET_KEY"),
			},
		}
		if snapCfg.Dir == "" {
			snapCfg.Dir = "backups"
		}
		cfg.Executor = backup.NewSnapshotExecutor(snapCfg, db)
	}

	srv := server.New(db, cfg, logger)

	httpServer := &http.Server{
		Addr:         ":" + port,
		Handler:      srv.Router(),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		logger.Info("backoffice running", "addr", "http://localhost:"+port)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(ctx); err != nil {
		log.Fatalf("shutdown error: %v", err)
	}
}
