// Package embeddings converts transcript text into vectors for the
// semantic search endpoint.
package embeddings

import (
	"context"
	"fmt"

	openai "github.com/sashabaranov/go-openai"
)

// Client is the slice of the OpenAI client the embedder needs.
type Client interface {
	CreateEmbeddings(ctx context.Context, conv openai.EmbeddingRequestConverter) (openai.EmbeddingResponse, error)
}

type Service struct {
	client Client
	model  openai.EmbeddingModel
}

// New builds a Service against api.openai.com. Unlike transcription and
// summarization, embeddings go to the hosted API; local llama.cpp setups
// don't serve an embedding model here.
func New(apiKey string) *Service {
	return NewWithClient(openai.NewClient(apiKey))
}

// NewWithClient is New with an injected client, for tests.
func NewWithClient(client Client) *Service {
	return &Service{client: client, model: openai.AdaEmbeddingV2}
}

// Embed converts text to an embedding vector.
func (s *Service) Embed(ctx context.Context, text string) ([]float32, error) {
	resp, err := s.client.CreateEmbeddings(ctx, openai.EmbeddingRequest{
		Model: s.model,
		Input: []string{text},
	})
	if err != nil {
		return nil, fmt.Errorf("embedding creation failed: %w", err)
	}
	if len(resp.Data) == 0 {
		return nil, fmt.Errorf("embedding response contained no data")
	}
	return resp.Data[0].Embedding, nil
}
