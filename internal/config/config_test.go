package config

import "testing"

func TestNewDefaults(t *testing.T) {
	for _, key := range []string{
		"COMPLETION_BASE_URL", "COMPLETION_API_KEY", "COMPLETION_MODEL",
		"WHISPER_BASE_URL", "WHISPER_MODEL", "TRANSCRIPT_LANGUAGE", "TOKEN_ENCODING",
	} {
		t.Setenv(key, "")
	}

	cfg := New()
	if cfg.CompletionBaseURL != "http://localhost:8080/v1" {
		t.Errorf("CompletionBaseURL = %q", cfg.CompletionBaseURL)
	}
	if cfg.CompletionAPIKey != "sk-no-key-required" {
		t.Errorf("CompletionAPIKey = %q", cfg.CompletionAPIKey)
	}
	if cfg.Language != "en" {
		t.Errorf("Language = %q", cfg.Language)
	}
	if cfg.Encoding != "cl100k_base" {
		t.Errorf("Encoding = %q", cfg.Encoding)
	}
}

func TestNewOverrides(t *testing.T) {
	t.Setenv("COMPLETION_BASE_URL", "http://gpu-box:9000/v1")
	t.Setenv("COMPLETION_MODEL", "gemma-2-9b-it")
	t.Setenv("TRANSCRIPT_LANGUAGE", "en")

	cfg := New()
	if cfg.CompletionBaseURL != "http://gpu-box:9000/v1" {
		t.Errorf("CompletionBaseURL = %q", cfg.CompletionBaseURL)
	}
	if cfg.CompletionModel != "gemma-2-9b-it" {
		t.Errorf("CompletionModel = %q", cfg.CompletionModel)
	}
}
