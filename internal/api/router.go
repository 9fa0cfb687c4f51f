package api

import (
	"net/http"

	"github.com/gorilla/mux"
	"jamesfarrell.me/yt-brief/internal/api/handlers"
	"jamesfarrell.me/yt-brief/internal/api/middleware"
)

// NewRouter wires the service endpoints. Everything but /health sits
// behind the X-API-Key check.
func NewRouter(videoHandler *handlers.VideoHandler, searchHandler *handlers.SearchHandler, apiKey string) http.Handler {
	r := mux.NewRouter()

	r.HandleFunc("/health", healthCheck).Methods(http.MethodGet)

	protected := r.PathPrefix("").Subrouter()
	protected.Use(middleware.APIKey(apiKey))

	videos := protected.PathPrefix("/videos").Subrouter()
	videos.HandleFunc("", videoHandler.AddVideo).Methods(http.MethodPost)
	videos.HandleFunc("/{id}", videoHandler.GetVideo).Methods(http.MethodGet)

	protected.HandleFunc("/search", searchHandler.Search).Methods(http.MethodPost)

	return r
}

func healthCheck(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK"))
}
