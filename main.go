package main

import (
	"database/sql"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/dustin/go-humanize"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"github.com/danielhkuo/easy-posting/cliparse"
	"github.com/danielhkuo/easy-posting/db"
	"github.com/danielhkuo/easy-posting/draft"
	"github.com/danielhkuo/easy-posting/models"
	"github.com/danielhkuo/easy-posting/router"
	"github.com/danielhkuo/easy-posting/storage"
)

func main() {
	var err error

	// A missing .env is fine, real environments set variables directly
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		slog.Warn("failed to load .env", "error", err)
	}

	// Parse configuration
	cfg, err := cliparse.ParseFlags(os.Args[1:])
	if err != nil {
		slog.Error("Error parsing flags", "error", err)
		os.Exit(1)
	}

	driver, err := db.DriverName(cfg.DatabaseType)
	if err != nil {
		slog.Error("invalid database type", "error", err)
		os.Exit(1)
	}

	// Connect to the database
	dbConn, err := sql.Open(driver, cfg.DatabaseURL)
	if err != nil {
		slog.Error("database connection failed", "error", err)
		os.Exit(1)
	}
	defer dbConn.Close()

	if driver == db.DriverSQLite {
		// SQLite allows one writer at a time
		dbConn.SetMaxOpenConns(1)
	}

	// Verify connection
	if err := dbConn.Ping(); err != nil {
		slog.Error("database ping failed", "error", err)
		os.Exit(1)
	}

	// Create schema (tables)
	if err := db.CreateSchema(dbConn); err != nil {
		slog.Error("schema creation failed", "error", err)
		os.Exit(1)
	}
	slog.Info("Database schema ready", "driver", driver)

	// Storage buckets
	objects, err := storage.NewStore(cfg.StorageDir, models.BucketPostMedia, models.BucketVoiceNotes)
	if err != nil {
		slog.Error("storage setup failed", "error", err)
		os.Exit(1)
	}
	slog.Info("Storage ready",
		"dir", cfg.StorageDir,
		"max_image", humanize.Bytes(uint64(cfg.MaxImageBytes)),
		"max_audio", humanize.Bytes(uint64(cfg.MaxAudioBytes)),
	)

	if cfg.WebhookURL != "" {
		slog.Info("publishing webhook configured, posts are picked up from the posts table", "webhook", cfg.WebhookURL)
	}

	sessions := draft.NewSessions(cfg.DraftTTL, cfg.MaxDrafts)
	slog.Info("draft limits", "idle_ttl", cfg.DraftTTL, "max_per_customer", cfg.MaxDrafts)

	// Create server
	server := http.Server{
		Handler: router.NewRouter(dbConn, cfg, objects, sessions),
		Addr:    ":" + strconv.Itoa(cfg.Port),
	}

	// signal.Notify requires the channel to be buffered
	ctrlc := make(chan os.Signal, 1)
	signal.Notify(ctrlc, os.Interrupt, syscall.SIGTERM)
	go func() {
		// Wait for Ctrl-C signal
		<-ctrlc
		// Release any microphone still held by an open draft
		sessions.Close()
		server.Close()
	}()

	// Start server
	slog.Info("Listening", "port", cfg.Port)
	err = server.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		slog.Error("Server closed", "error", err)
	} else {
		slog.Info("Server closed", "error", err)
	}
}
