package config

import (
	"os"
)

// Config carries everything the binaries need from the environment.
// Load .env with godotenv before calling New.
type Config struct {
	// Completion endpoint (llama.cpp server or any OpenAI-compatible API).
	CompletionBaseURL string
	CompletionAPIKey  string
	CompletionModel   string

	// Whisper endpoint (whisper.cpp server or any OpenAI-compatible API).
	WhisperBaseURL string
	WhisperAPIKey  string
	WhisperModel   string

	// Transcription settings. Language is fixed, no auto-detection.
	Language string

	// Tokenizer encoding used for the token count report.
	Encoding string

	// Service/worker settings.
	ListenAddr    string
	DatabaseURL   string
	ServiceAPIKey string
	OpenAIAPIKey  string
}

const (
	defaultCompletionBaseURL = "http://localhost:8080/v1"
	defaultCompletionAPIKey  = "sk-no-key-required"
	defaultCompletionModel   = "gpt-3.5-turbo"
	defaultWhisperBaseURL    = "http://localhost:8081/v1"
	defaultWhisperModel      = "whisper-1"
	defaultLanguage          = "en"
	defaultEncoding          = "cl100k_base"
)

// New reads the process environment into a Config, applying defaults
// for everything the local-server setup doesn't need set.
func New() *Config {
	return &Config{
		CompletionBaseURL: getenv("COMPLETION_BASE_URL", defaultCompletionBaseURL),
		CompletionAPIKey:  getenv("COMPLETION_API_KEY", defaultCompletionAPIKey),
		CompletionModel:   getenv("COMPLETION_MODEL", defaultCompletionModel),
		WhisperBaseURL:    getenv("WHISPER_BASE_URL", defaultWhisperBaseURL),
		WhisperAPIKey:     getenv("WHISPER_API_KEY", defaultCompletionAPIKey),
		WhisperModel:      getenv("WHISPER_MODEL", defaultWhisperModel),
		Language:          getenv("TRANSCRIPT_LANGUAGE", defaultLanguage),
		Encoding:          getenv("TOKEN_ENCODING", defaultEncoding),
		ListenAddr:        getenv("LISTEN_ADDR", ":8090"),
		DatabaseURL:       os.Getenv("DATABASE_URL"),
		ServiceAPIKey:     os.Getenv("SERVICE_API_KEY"),
		OpenAIAPIKey:      os.Getenv("OPENAI_API_KEY"),
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
