package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"jamesfarrell.me/yt-brief/internal/storage/models"
)

const defaultSearchLimit = 5

// Embedder converts a query string into an embedding vector.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

// ChunkSearcher finds transcript chunks near an embedding.
type ChunkSearcher interface {
	Search(ctx context.Context, embedding []float32, limit int) ([]models.SearchResult, error)
}

type SearchHandler struct {
	embedder Embedder
	chunks   ChunkSearcher
}

func NewSearchHandler(embedder Embedder, chunks ChunkSearcher) *SearchHandler {
	return &SearchHandler{embedder: embedder, chunks: chunks}
}

// Search embeds the query and returns the closest transcript chunks.
func (h *SearchHandler) Search(w http.ResponseWriter, r *http.Request) {
	var req models.SearchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if req.Query == "" {
		http.Error(w, "query is required", http.StatusBadRequest)
		return
	}
	if req.Limit <= 0 {
		req.Limit = defaultSearchLimit
	}

	embedding, err := h.embedder.Embed(r.Context(), req.Query)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	results, err := h.chunks.Search(r.Context(), embedding, req.Limit)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(models.SearchResponse{Results: results})
}
