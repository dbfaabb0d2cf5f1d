package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/botivate-in/protrackgo/internal/config"
	"github.com/botivate-in/protrackgo/internal/database"
	"github.com/botivate-in/protrackgo/internal/handlers"
	"github.com/botivate-in/protrackgo/internal/models"
	"github.com/botivate-in/protrackgo/internal/services/sheets"
	"github.com/botivate-in/protrackgo/internal/websocket"
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

	// 3. Auto-Migrate Schema (Critical for Zero-Config)
	log.Println("🚀 Synchronizing database schema...")
	err = db.AutoMigrate(
		&models.UserAuth{},
		&models.SheetUser{},
		&models.ProductionOrder{},
		&models.JobCard{},
		&models.ActualEntry{},
		&models.CrushingEntry{},
		&models.SessionState{},
	)
	if err != nil {
		log.Printf("⚠️ Migration warning: %v\n", err)
	} else {
		log.Println("✅ Schema synchronized successfully")
	}

	// 4. Start the refresh hub
	hub := websocket.NewHub()
	go hub.Run()

	// 5. Start the sheet sync service (Background)
	syncService := sheets.NewSyncService(db, sheets.Config{
		URL:          cfg.Sheets.AppScriptURL,
		FolderID:     cfg.Sheets.DriveFolderID,
		SyncInterval: cfg.Sheets.SyncInterval,
		Disabled:     cfg.Sheets.SyncDisabled,
	}, hub)
	syncService.Start()

	// 6. Set up HTTP router
	router := handlers.NewRouter(db, cfg, syncService, hub)

	// 7. Start server with graceful shutdown
	port := cfg.Port
	if port == "" {
		port = "3001"
	}

	server := &http.Server{
		Addr:    ":" + port,
		Handler: router,
	}

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)

	go func() {
		log.Printf("🚀 Server starting on port %s\n", port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	sig := <-shutdown
	log.Printf("\n⚠️  Received signal: %v. Shutting down gracefully...\n", sig)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Printf("HTTP server shutdown error: %v", err)
	}

	syncService.Stop()

	if err := db.Close(); err != nil {
		log.Printf("Database shutdown error: %v", err)
	}

	log.Println("👋 Shutdown complete")
}
