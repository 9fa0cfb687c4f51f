package transcribe

import (
	"context"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"
)

// AudioClient is the slice of the OpenAI client the transcriber needs.
type AudioClient interface {
	CreateTranscription(ctx context.Context, request openai.AudioRequest) (openai.AudioResponse, error)
}

// Transcriber turns an audio file into plain text through an
// OpenAI-compatible transcription endpoint (whisper.cpp server, Lemonfox,
// or api.openai.com).
type Transcriber struct {
	client   AudioClient
	model    string
	language string
}

// New builds a Transcriber against the given endpoint. The language is
// fixed per run; there is no auto-detection.
func New(baseURL, apiKey, model, language string) *Transcriber {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	return NewWithClient(openai.NewClientWithConfig(cfg), model, language)
}

// NewWithClient is New with an injected client, for tests.
func NewWithClient(client AudioClient, model, language string) *Transcriber {
	return &Transcriber{client: client, model: model, language: language}
}

// Transcribe sends the audio file for transcription and returns the text.
// The endpoint yields the transcript as a sequence of segments; they are
// consumed once, in order, and concatenated with no separator. Silent or
// empty audio yields an empty string, not an error.
func (t *Transcriber) Transcribe(ctx context.Context, audioPath string) (string, error) {
	resp, err := t.client.CreateTranscription(ctx, openai.AudioRequest{
		Model:    t.model,
		FilePath: audioPath,
		Language: t.language,
		Format:   openai.AudioResponseFormatVerboseJSON,
	})
	if err != nil {
		return "", fmt.Errorf("transcribing %s: %w", audioPath, err)
	}

	if len(resp.Segments) == 0 {
		return resp.Text, nil
	}

	var b strings.Builder
	for _, segment := range resp.Segments {
		b.WriteString(segment.Text)
	}
	return b.String(), nil
}
