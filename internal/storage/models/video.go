package models

import (
	"strings"
	"time"
)

// Video is one submitted video and the artifacts derived from it.
type Video struct {
	ID            string    `json:"id"`
	VideoURL      string    `json:"videoUrl"`
	Slug          string    `json:"slug"`
	Status        string    `json:"status"`
	Transcription *string   `json:"transcription,omitempty"`
	Summary       *string   `json:"summary,omitempty"`
	IsSearchable  bool      `json:"isSearchable"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
	UserID        string    `json:"userId"`
}

// Video processing states, in order of progression.
const (
	StatusPending    = "pending"
	StatusProcessing = "processing"
	StatusCompleted  = "completed"
	StatusFailed     = "failed"
)

type VideoRequest struct {
	URL          string `json:"url"`
	IsSearchable bool   `json:"isSearchable"`
}

type SearchRequest struct {
	Query string `json:"query"`
	Limit int    `json:"limit"`
}

type SearchResponse struct {
	Results []SearchResult `json:"results"`
}

type SearchResult struct {
	VideoID       string  `json:"videoId"`
	ChunkText     string  `json:"chunkText"`
	StartPosition int     `json:"startPosition"`
	EndPosition   int     `json:"endPosition"`
	Similarity    float64 `json:"similarity"`
}

// Chunk is a window of transcript text with its byte positions in the
// full transcript and, once computed, its embedding.
type Chunk struct {
	Text          string
	StartPosition int
	EndPosition   int
	Embedding     []float32
}

// ExtractSlugFromURL pulls the video id out of a YouTube URL. Both the
// watch?v= form and the youtu.be short form are handled; anything else
// yields an empty slug.
func ExtractSlugFromURL(url string) string {
	var slug string
	switch {
	case strings.Contains(url, "v="):
		slug = url[strings.Index(url, "v=")+2:]
	case strings.Contains(url, "youtu.be/"):
		slug = url[strings.Index(url, "youtu.be/")+len("youtu.be/"):]
	default:
		return ""
	}

	if i := strings.IndexAny(slug, "&?"); i != -1 {
		slug = slug[:i]
	}
	return slug
}
