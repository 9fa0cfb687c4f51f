// Package worker processes videos enqueued through the HTTP API. It waits
// on a Postgres NOTIFY channel and runs the same stages as the CLI
// pipeline for each new video, persisting the results instead of printing
// them.
package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/lib/pq"
	"jamesfarrell.me/yt-brief/internal/embeddings"
	"jamesfarrell.me/yt-brief/internal/pipeline"
	"jamesfarrell.me/yt-brief/internal/storage/models"
	"jamesfarrell.me/yt-brief/internal/transcribe"
)

// notifyChannel is the Postgres channel the Video insert trigger fires on.
const notifyChannel = "new_video"

// VideoStore is what the worker needs from the video repository.
type VideoStore interface {
	GetByURL(ctx context.Context, url string) (*models.Video, error)
	UpdateStatus(ctx context.Context, videoID, status string) error
	SaveTranscription(ctx context.Context, videoID, transcription string) error
	SaveSummary(ctx context.Context, videoID, summary string) error
}

// ChunkStore persists embedded transcript chunks.
type ChunkStore interface {
	SaveChunks(ctx context.Context, videoID string, chunks []models.Chunk) error
}

// Embedder converts chunk text into embedding vectors.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

type Worker struct {
	videos      VideoStore
	chunks      ChunkStore
	fetcher     pipeline.Fetcher
	transcriber pipeline.Transcriber
	summarizer  pipeline.Summarizer
	embedder    Embedder
	dbURL       string
}

func New(videos VideoStore, chunks ChunkStore, fetcher pipeline.Fetcher, transcriber pipeline.Transcriber, summarizer pipeline.Summarizer, embedder Embedder, dbURL string) *Worker {
	return &Worker{
		videos:      videos,
		chunks:      chunks,
		fetcher:     fetcher,
		transcriber: transcriber,
		summarizer:  summarizer,
		embedder:    embedder,
		dbURL:       dbURL,
	}
}

// Listen blocks on the notify channel and processes each new video as it
// arrives. A processing failure is logged and marked on the video row; it
// never stops the listener.
func (w *Worker) Listen(ctx context.Context) error {
	listener := pq.NewListener(w.dbURL, 10*time.Second, time.Minute,
		func(ev pq.ListenerEventType, err error) {
			if err != nil {
				log.Printf("Listen error: %v", err)
			}
		})
	defer listener.Close()

	if err := listener.Listen(notifyChannel); err != nil {
		return fmt.Errorf("listen error: %w", err)
	}
	log.Printf("Listening on %q channel...", notifyChannel)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case n := <-listener.Notify:
			if n == nil {
				continue
			}
			if err := w.Process(ctx, n.Extra); err != nil {
				log.Printf("Error processing video: %v", err)
			}
		case <-time.After(time.Minute):
			go func() {
				if err := listener.Ping(); err != nil {
					log.Printf("Ping error: %v", err)
				}
			}()
		}
	}
}

// Process handles one notification payload end to end.
func (w *Worker) Process(ctx context.Context, payload string) error {
	var video models.Video
	if err := json.Unmarshal([]byte(payload), &video); err != nil {
		return fmt.Errorf("json parse error: %w", err)
	}
	log.Printf("Processing video ID: %s, URL: %s", video.ID, video.VideoURL)

	transcript, err := w.transcript(ctx, &video)
	if err != nil {
		w.markFailed(ctx, video.ID)
		return err
	}

	summary, err := w.summarizer.Summarize(ctx, transcript)
	if err != nil {
		w.markFailed(ctx, video.ID)
		return fmt.Errorf("summarization error: %w", err)
	}
	if err := w.videos.SaveSummary(ctx, video.ID, summary); err != nil {
		return fmt.Errorf("failed to save summary: %w", err)
	}

	if video.IsSearchable {
		if err := w.index(ctx, video.ID, transcript); err != nil {
			w.markFailed(ctx, video.ID)
			return err
		}
	}

	return w.videos.UpdateStatus(ctx, video.ID, models.StatusCompleted)
}

// transcript reuses a previously stored transcription when one exists,
// otherwise downloads and transcribes the video.
func (w *Worker) transcript(ctx context.Context, video *models.Video) (string, error) {
	existing, err := w.videos.GetByURL(ctx, video.VideoURL)
	if err == nil && existing.Transcription != nil && *existing.Transcription != "" {
		log.Printf("Found existing transcription for video URL: %s", video.VideoURL)
		stored := *existing.Transcription
		// Earlier worker versions stored the raw VTT response.
		if transcribe.IsVTT(stored) {
			return transcribe.Flatten(stored)
		}
		return stored, nil
	}

	if err := w.videos.UpdateStatus(ctx, video.ID, models.StatusProcessing); err != nil {
		return "", fmt.Errorf("failed to update status to processing: %w", err)
	}

	tempDir, err := os.MkdirTemp("", "yt-brief-*")
	if err != nil {
		return "", fmt.Errorf("creating temp dir: %w", err)
	}
	defer os.RemoveAll(tempDir)

	artifact, err := w.fetcher.Download(video.VideoURL, tempDir)
	if err != nil {
		return "", fmt.Errorf("download error: %w", err)
	}

	transcript, err := w.transcriber.Transcribe(ctx, artifact.Path)
	if err != nil {
		return "", fmt.Errorf("transcription error: %w", err)
	}

	if err := w.videos.SaveTranscription(ctx, video.ID, transcript); err != nil {
		return "", fmt.Errorf("failed to save transcription: %w", err)
	}
	return transcript, nil
}

// index chunks the transcript, embeds each chunk and stores the vectors.
func (w *Worker) index(ctx context.Context, videoID, transcript string) error {
	chunks := embeddings.ChunkTranscript(transcript, embeddings.DefaultChunkSize, embeddings.DefaultChunkOverlap)
	for i := range chunks {
		vector, err := w.embedder.Embed(ctx, chunks[i].Text)
		if err != nil {
			return fmt.Errorf("embedding chunk %d: %w", i, err)
		}
		chunks[i].Embedding = vector
	}
	if len(chunks) == 0 {
		return nil
	}
	if err := w.chunks.SaveChunks(ctx, videoID, chunks); err != nil {
		return fmt.Errorf("failed to save chunks: %w", err)
	}
	return nil
}

func (w *Worker) markFailed(ctx context.Context, videoID string) {
	if err := w.videos.UpdateStatus(ctx, videoID, models.StatusFailed); err != nil {
		log.Printf("failed to mark video %s failed: %v", videoID, err)
	}
}
