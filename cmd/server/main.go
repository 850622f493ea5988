package main

import (
	"alcyxob/exercise-catalog/internal/api"
	"alcyxob/exercise-catalog/internal/config"
	"alcyxob/exercise-catalog/internal/repository"
	"alcyxob/exercise-catalog/internal/repository/mongo"
	"alcyxob/exercise-catalog/internal/repository/sqlite"
	"alcyxob/exercise-catalog/internal/service"
	"alcyxob/exercise-catalog/internal/storage"
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
)

// @title Exercise Catalog API
// @version 1.0
// @description Global and private exercises, per-user variants, categories and notes.
// @host localhost:8080
// @BasePath /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	log.Println("Starting Exercise Catalog Server...")

	// --- Configuration ---
	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatalf("FATAL: Could not load config: %v", err)
	}
	log.Printf("Configuration loaded (database driver: %s).", cfg.Database.Driver)

	// --- Database Connection ---
	store, err := openStore(cfg.Database)
	if err != nil {
		log.Fatalf("FATAL: Could not open catalog store: %v", err)
	}
	defer func() {
		log.Println("Closing catalog store...")
		if err := store.Close(); err != nil {
			log.Printf("ERROR: Failed to close catalog store: %v", err)
		}
	}()
	log.Println("Catalog store ready.")

	// --- Seed Categories ---
	if len(cfg.Catalog.Categories) > 0 {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		err := store.Categories.EnsureNames(ctx, cfg.Catalog.Categories)
		cancel()
		if err != nil {
			log.Fatalf("FATAL: Could not seed categories: %v", err)
		}
		log.Printf("Ensured %d exercise categories.", len(cfg.Catalog.Categories))
	}

	// --- Initialize Storage ---
	log.Println("Initializing file storage service...")
	fileStorage, err := storage.NewS3Storage(cfg.S3)
	if err != nil {
		log.Fatalf("FATAL: Failed to initialize S3 storage: %v", err)
	}

	// --- Initialize Services ---
	log.Println("Initializing services...")
	catalogService := service.NewCatalogService(store)
	mediaService := service.NewMediaService(fileStorage, catalogService, cfg.S3.URLExpiry)

	// --- Initialize Gin Engine ---
	// gin.SetMode(gin.ReleaseMode) // Uncomment for production
	router := gin.Default() // Includes Logger and Recovery middleware

	// --- Setup Routes ---
	log.Println("Setting up API routes...")
	api.SetupRoutes(router, cfg.JWT.Secret, catalogService, mediaService)

	// --- Start HTTP Server ---
	server := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	log.Printf("Server starting on %s", cfg.Server.Address)

	// --- Graceful Shutdown ---
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("FATAL: ListenAndServe Error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()

	if err := server.Shutdown(ctxShutdown); err != nil {
		log.Printf("ERROR: Server forced to shutdown: %v", err)
	}

	log.Println("Server exiting.")
}

// openStore connects the configured backend and prepares its schema.
func openStore(cfg config.DatabaseConfig) (*repository.Store, error) {
	switch cfg.Driver {
	case config.DriverSQLite:
		db, err := sqlite.NewDB(cfg.DSN)
		if err != nil {
			return nil, err
		}
		return sqlite.NewStore(db), nil

	case config.DriverMongo:
		client, err := mongo.ConnectDB(cfg.URI)
		if err != nil {
			return nil, err
		}
		db := client.Database(cfg.Name)

		ctx, cancel := context.WithTimeout(context.Background(), 1*time.Minute)
		defer cancel()
		mongo.EnsureCatalogIndexes(ctx, db)

		return mongo.NewStore(client, db), nil

	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}
}
