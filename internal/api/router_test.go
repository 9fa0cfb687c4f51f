package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"jamesfarrell.me/yt-brief/internal/api/handlers"
	"jamesfarrell.me/yt-brief/internal/storage/models"
)

type stubStore struct{}

func (stubStore) Create(context.Context, *models.VideoRequest, string) (string, error) {
	return "id", nil
}
func (stubStore) Get(_ context.Context, id string) (*models.Video, error) {
	return &models.Video{ID: id}, nil
}

type stubEmbedder struct{}

func (stubEmbedder) Embed(context.Context, string) ([]float32, error) { return []float32{0}, nil }

type stubSearcher struct{}

func (stubSearcher) Search(context.Context, []float32, int) ([]models.SearchResult, error) {
	return nil, nil
}

func newTestRouter() http.Handler {
	return NewRouter(
		handlers.NewVideoHandler(stubStore{}, "user-1"),
		handlers.NewSearchHandler(stubEmbedder{}, stubSearcher{}),
		"test-key",
	)
}

func TestHealthIsPublic(t *testing.T) {
	rec := httptest.NewRecorder()
	newTestRouter().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
}

func TestProtectedRoutesRequireKey(t *testing.T) {
	router := newTestRouter()

	tests := []struct {
		name string
		key  string
		want int
	}{
		{name: "missing key", key: "", want: http.StatusUnauthorized},
		{name: "wrong key", key: "nope", want: http.StatusUnauthorized},
		{name: "valid key", key: "test-key", want: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/videos/abc", nil)
			if tt.key != "" {
				req.Header.Set("X-API-Key", tt.key)
			}
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)
			if rec.Code != tt.want {
				t.Errorf("status = %d, want %d", rec.Code, tt.want)
			}
		})
	}
}
