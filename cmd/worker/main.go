// worker listens for newly enqueued videos and runs the download →
// transcribe → summarize pipeline for each one, persisting the results.
package main

import (
	"context"
	"log"

	"github.com/joho/godotenv"
	"jamesfarrell.me/yt-brief/internal/config"
	"jamesfarrell.me/yt-brief/internal/embeddings"
	"jamesfarrell.me/yt-brief/internal/fetch"
	"jamesfarrell.me/yt-brief/internal/storage/db"
	"jamesfarrell.me/yt-brief/internal/storage/postgres"
	"jamesfarrell.me/yt-brief/internal/summarize"
	"jamesfarrell.me/yt-brief/internal/transcribe"
	"jamesfarrell.me/yt-brief/internal/worker"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("Error loading .env file: %v", err)
	}
	cfg := config.New()

	database, err := db.NewConnection(db.Config{URL: cfg.DatabaseURL})
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer database.Close()
	log.Printf("Connected to database: %s", db.MaskDatabaseURL(cfg.DatabaseURL))

	w := worker.New(
		postgres.NewVideoRepository(database),
		postgres.NewChunkRepository(database),
		fetch.NewFetcher(nil),
		transcribe.New(cfg.WhisperBaseURL, cfg.WhisperAPIKey, cfg.WhisperModel, cfg.Language),
		summarize.New(cfg.CompletionBaseURL, cfg.CompletionAPIKey, cfg.CompletionModel),
		embeddings.New(cfg.OpenAIAPIKey),
		cfg.DatabaseURL,
	)

	if err := w.Listen(context.Background()); err != nil {
		log.Fatalf("Service error: %v", err)
	}
}
