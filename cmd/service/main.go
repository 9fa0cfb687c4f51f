// service exposes the HTTP API: enqueue videos for briefing, fetch their
// records, and search transcripts semantically.
package main

import (
	"log"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"jamesfarrell.me/yt-brief/internal/api"
	"jamesfarrell.me/yt-brief/internal/api/handlers"
	"jamesfarrell.me/yt-brief/internal/config"
	"jamesfarrell.me/yt-brief/internal/embeddings"
	"jamesfarrell.me/yt-brief/internal/storage/db"
	"jamesfarrell.me/yt-brief/internal/storage/postgres"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("Error loading .env file: %v", err)
	}
	cfg := config.New()

	if cfg.ServiceAPIKey == "" {
		log.Fatal("SERVICE_API_KEY environment variable must be set")
	}
	userID := os.Getenv("VIDEO_OWNER_USER_ID")
	if userID == "" {
		log.Fatal("VIDEO_OWNER_USER_ID environment variable must be set")
	}

	database, err := db.NewConnection(db.Config{URL: cfg.DatabaseURL})
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer database.Close()
	log.Printf("Connected to database: %s", db.MaskDatabaseURL(cfg.DatabaseURL))

	videoRepo := postgres.NewVideoRepository(database)
	chunkRepo := postgres.NewChunkRepository(database)

	router := api.NewRouter(
		handlers.NewVideoHandler(videoRepo, userID),
		handlers.NewSearchHandler(embeddings.New(cfg.OpenAIAPIKey), chunkRepo),
		cfg.ServiceAPIKey,
	)

	log.Printf("Starting HTTP server on %s...", cfg.ListenAddr)
	if err := http.ListenAndServe(cfg.ListenAddr, router); err != nil {
		log.Fatalf("HTTP server error: %v", err)
	}
}
