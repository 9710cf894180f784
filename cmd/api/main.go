package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gimbotech/certifier/internal/config"
	"github.com/gimbotech/certifier/internal/database"
	"github.com/gimbotech/certifier/internal/events"
	"github.com/gimbotech/certifier/internal/handlers"
	"github.com/gimbotech/certifier/internal/models"
	"github.com/gimbotech/certifier/internal/render"
	"github.com/gimbotech/certifier/internal/storage"
	"github.com/gimbotech/certifier/internal/store"
	"github.com/gimbotech/certifier/internal/workflow"
)

func main() {
	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// 2. Initialize database (Detects Embedded vs External automatically)
	db, err := database.Connect(cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	// Note: db.Close() is called manually in shutdown handler below

	// 3. Auto-Migrate Schema
	log.Println("🚀 Synchronizing database schema...")
	err = db.AutoMigrate(
		&models.UserAuth{},
		&models.RawDocument{},
		&models.CertificateTemplate{},
		&models.GeneratedCertificate{},
	)
	if err != nil {
		log.Printf("⚠️ Migration warning: %v\n", err)
	} else {
		log.Println("✅ Schema synchronized successfully")
	}

	// 4. Blob storage + temp sweeper
	blobs, err := storage.New(cfg.Blob.Root)
	if err != nil {
		log.Fatalf("Failed to init blob storage: %v", err)
	}

	stopSweeper := make(chan struct{})
	go blobs.RunSweeper(
		time.Duration(cfg.Blob.SweepMinutes)*time.Minute,
		time.Duration(cfg.Blob.SweepMaxAge)*time.Hour,
		stopSweeper,
	)
	log.Printf("🧹 Temp sweeper started (every %dm, max age %dh)", cfg.Blob.SweepMinutes, cfg.Blob.SweepMaxAge)

	// 5. Event hub for the dashboard
	hub := events.NewHub()
	go hub.Run()

	// 6. Certificate pipeline
	repo := store.New(db.DB)
	conv := render.NewConverter(cfg.Converter.Binary, time.Duration(cfg.Converter.Timeout)*time.Second)
	wf := workflow.New(repo, blobs, conv, hub)

	// 7. HTTP router
	router := handlers.NewRouter(repo, wf, blobs, hub, cfg)

	server := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	// Channel to listen for shutdown signals
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)

	// Start server in goroutine
	go func() {
		log.Printf("🚀 Certifier (%s) starting on port %s\n", cfg.NodeEnv, cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for shutdown signal
	sig := <-shutdown
	log.Printf("\n⚠️  Received signal: %v. Shutting down gracefully...\n", sig)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Printf("HTTP server shutdown error: %v", err)
	}

	close(stopSweeper)

	// Close database (this also stops embedded PostgreSQL)
	log.Println("🛑 Closing database connection...")
	if err := db.Close(); err != nil {
		log.Printf("Database close error: %v", err)
	}

	log.Println("✅ Shutdown complete")
}
