package summarize

import (
	"context"
	"fmt"

	openai "github.com/sashabaranov/go-openai"
)

// systemPrompt fixes the persona and the required output structure. The
// structure is not validated locally; the model owns formatting.
const systemPrompt = `You are an expert consultant who has years of experience in journalism, management summaries creation, and analyses of different topics. You pride yourself on incredible accuracy and attention to detail. You always stick to the facts in the sources provided, and never make up new facts.

Now look at the transcription of youtube video below, and write the following in concise and informative way using Markdown formating.

The title.
Summary.
Main covered topics and facts with short description and source or citation if suitable.
Conclusion.

Transcription: `

const (
	temperature = 0.1
	maxTokens   = 2048
)

// ChatClient is the slice of the OpenAI client the summarizer needs.
type ChatClient interface {
	CreateChatCompletion(ctx context.Context, request openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// Summarizer turns a transcript into a Markdown brief through a
// chat-completion endpoint, typically a local llama.cpp server.
type Summarizer struct {
	client ChatClient
	model  string
}

// New builds a Summarizer against the given endpoint. A llama.cpp server
// ignores the key, so the placeholder default is fine.
func New(baseURL, apiKey, model string) *Summarizer {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	return NewWithClient(openai.NewClientWithConfig(cfg), model)
}

// NewWithClient is New with an injected client, for tests.
func NewWithClient(client ChatClient, model string) *Summarizer {
	return &Summarizer{client: client, model: model}
}

// Summarize sends the verbatim transcript, untruncated, and returns the
// completion's content unmodified.
func (s *Summarizer) Summarize(ctx context.Context, transcript string) (string, error) {
	resp, err := s.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       s.model,
		Temperature: temperature,
		MaxTokens:   maxTokens,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: transcript},
		},
	})
	if err != nil {
		return "", fmt.Errorf("requesting summary: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("completion endpoint returned no choices")
	}
	return resp.Choices[0].Message.Content, nil
}
