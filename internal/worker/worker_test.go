package worker

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"testing"

	"jamesfarrell.me/yt-brief/internal/fetch"
	"jamesfarrell.me/yt-brief/internal/storage/models"
)

type fakeStore struct {
	existing       *models.Video
	statuses       []string
	transcription  string
	summary        string
	saveChunksErr  error
	savedChunks    []models.Chunk
	savedChunksFor string
}

func (f *fakeStore) GetByURL(_ context.Context, url string) (*models.Video, error) {
	if f.existing == nil {
		return nil, sql.ErrNoRows
	}
	return f.existing, nil
}

func (f *fakeStore) UpdateStatus(_ context.Context, videoID, status string) error {
	f.statuses = append(f.statuses, status)
	return nil
}

func (f *fakeStore) SaveTranscription(_ context.Context, videoID, transcription string) error {
	f.transcription = transcription
	return nil
}

func (f *fakeStore) SaveSummary(_ context.Context, videoID, summary string) error {
	f.summary = summary
	return nil
}

func (f *fakeStore) SaveChunks(_ context.Context, videoID string, chunks []models.Chunk) error {
	f.savedChunksFor = videoID
	f.savedChunks = chunks
	return f.saveChunksErr
}

type stageFakes struct {
	downloadErr   error
	transcript    string
	transcribeErr error
	summary       string
	summarizeErr  error
}

func (s *stageFakes) Download(videoURL, outputDir string) (fetch.Artifact, error) {
	if s.downloadErr != nil {
		return fetch.Artifact{}, s.downloadErr
	}
	return fetch.Artifact{Path: outputDir + "/a.mp3", Filename: "a.webm"}, nil
}

func (s *stageFakes) Transcribe(context.Context, string) (string, error) {
	return s.transcript, s.transcribeErr
}

func (s *stageFakes) Summarize(context.Context, string) (string, error) {
	return s.summary, s.summarizeErr
}

func (s *stageFakes) Embed(context.Context, string) ([]float32, error) {
	return []float32{0.5}, nil
}

func payload(t *testing.T, video models.Video) string {
	t.Helper()
	b, err := json.Marshal(video)
	if err != nil {
		t.Fatal(err)
	}
	return string(b)
}

func newWorker(store *fakeStore, stages *stageFakes) *Worker {
	return New(store, store, stages, stages, stages, stages, "postgres://unused")
}

func TestProcess(t *testing.T) {
	store := &fakeStore{}
	stages := &stageFakes{transcript: "what was said", summary: "# Brief"}
	w := newWorker(store, stages)

	err := w.Process(context.Background(), payload(t, models.Video{ID: "v1", VideoURL: "https://youtu.be/EXAMPLE"}))
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}

	if store.transcription != "what was said" {
		t.Errorf("transcription = %q", store.transcription)
	}
	if store.summary != "# Brief" {
		t.Errorf("summary = %q", store.summary)
	}
	want := []string{models.StatusProcessing, models.StatusCompleted}
	if len(store.statuses) != 2 || store.statuses[0] != want[0] || store.statuses[1] != want[1] {
		t.Errorf("statuses = %v, want %v", store.statuses, want)
	}
	if store.savedChunksFor != "" {
		t.Errorf("chunks saved for non-searchable video")
	}
}

func TestProcessSearchableIndexesChunks(t *testing.T) {
	store := &fakeStore{}
	stages := &stageFakes{transcript: "some words to chunk and embed", summary: "# Brief"}
	w := newWorker(store, stages)

	err := w.Process(context.Background(), payload(t, models.Video{
		ID: "v1", VideoURL: "https://youtu.be/EXAMPLE", IsSearchable: true,
	}))
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}

	if store.savedChunksFor != "v1" {
		t.Fatalf("chunks saved for %q, want v1", store.savedChunksFor)
	}
	for i, c := range store.savedChunks {
		if len(c.Embedding) == 0 {
			t.Errorf("chunk %d has no embedding", i)
		}
	}
}

func TestProcessReusesExistingTranscription(t *testing.T) {
	stored := "previously transcribed text"
	store := &fakeStore{existing: &models.Video{ID: "old", Transcription: &stored}}
	stages := &stageFakes{downloadErr: errors.New("should not download"), summary: "# Brief"}
	w := newWorker(store, stages)

	err := w.Process(context.Background(), payload(t, models.Video{ID: "v1", VideoURL: "https://youtu.be/EXAMPLE"}))
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}
	if store.summary != "# Brief" {
		t.Errorf("summary = %q", store.summary)
	}
}

func TestProcessFlattensStoredVTT(t *testing.T) {
	stored := "WEBVTT\n\n00:00:01.000 --> 00:00:02.000\nFirst cue\n\n00:00:02.000 --> 00:00:03.000\nSecond cue"
	store := &fakeStore{existing: &models.Video{ID: "old", Transcription: &stored}}
	var summarized string
	stages := &stageFakes{summary: "# Brief"}
	w := New(store, store, stages, stages, summarizerFunc(func(_ context.Context, transcript string) (string, error) {
		summarized = transcript
		return "# Brief", nil
	}), stages, "postgres://unused")

	err := w.Process(context.Background(), payload(t, models.Video{ID: "v1", VideoURL: "https://youtu.be/EXAMPLE"}))
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}
	if summarized != "First cue Second cue" {
		t.Errorf("summarizer got %q, want flattened VTT", summarized)
	}
}

type summarizerFunc func(ctx context.Context, transcript string) (string, error)

func (f summarizerFunc) Summarize(ctx context.Context, transcript string) (string, error) {
	return f(ctx, transcript)
}

func TestProcessFailuresMarkVideoFailed(t *testing.T) {
	tests := []struct {
		name   string
		stages *stageFakes
	}{
		{name: "download fails", stages: &stageFakes{downloadErr: errors.New("unavailable")}},
		{name: "transcription fails", stages: &stageFakes{transcribeErr: errors.New("whisper down")}},
		{name: "summarization fails", stages: &stageFakes{transcript: "text", summarizeErr: errors.New("llm down")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &fakeStore{}
			w := newWorker(store, tt.stages)

			err := w.Process(context.Background(), payload(t, models.Video{ID: "v1", VideoURL: "https://youtu.be/EXAMPLE"}))
			if err == nil {
				t.Fatal("Process() error = nil, want error")
			}
			if len(store.statuses) == 0 || store.statuses[len(store.statuses)-1] != models.StatusFailed {
				t.Errorf("statuses = %v, want trailing %q", store.statuses, models.StatusFailed)
			}
		})
	}
}

func TestProcessBadPayload(t *testing.T) {
	w := newWorker(&fakeStore{}, &stageFakes{})
	if err := w.Process(context.Background(), "not json"); err == nil {
		t.Fatal("Process() error = nil, want error")
	}
}
