package handlers

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"jamesfarrell.me/yt-brief/internal/storage/models"
)

// VideoStore is what the video handler needs from the repository.
type VideoStore interface {
	Create(ctx context.Context, video *models.VideoRequest, userID string) (string, error)
	Get(ctx context.Context, id string) (*models.Video, error)
}

type VideoHandler struct {
	store  VideoStore
	userID string
}

func NewVideoHandler(store VideoStore, userID string) *VideoHandler {
	return &VideoHandler{store: store, userID: userID}
}

// AddVideo enqueues a video for the worker. The insert's NOTIFY trigger
// wakes the worker; nothing is processed inline.
func (h *VideoHandler) AddVideo(w http.ResponseWriter, r *http.Request) {
	var video models.VideoRequest
	if err := json.NewDecoder(r.Body).Decode(&video); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if video.URL == "" {
		http.Error(w, "url is required", http.StatusBadRequest)
		return
	}

	id, err := h.store.Create(r.Context(), &video, h.userID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"id": id})
}

// GetVideo returns one video record, including its transcription and
// summary once the worker fills them in.
func (h *VideoHandler) GetVideo(w http.ResponseWriter, r *http.Request) {
	videoID := mux.Vars(r)["id"]

	video, err := h.store.Get(r.Context(), videoID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			http.Error(w, "Video not found", http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(video)
}
