// Package tokenizer reports approximate LLM token counts for transcripts.
// The count is telemetry only; nothing downstream truncates or rejects
// input based on it.
package tokenizer

import (
	"fmt"

	"github.com/pkoukk/tiktoken-go"
)

// Encoder is the part of a loaded tiktoken encoding the counter uses.
type Encoder interface {
	Encode(text string, allowedSpecial []string, disallowedSpecial []string) []int
}

// Counter counts tokens under a fixed tokenization scheme.
type Counter struct {
	encoding string
	encoder  Encoder
}

// New loads the named encoding (e.g. "cl100k_base") and returns a Counter
// bound to it.
func New(encoding string) (*Counter, error) {
	enc, err := tiktoken.GetEncoding(encoding)
	if err != nil {
		return nil, fmt.Errorf("loading encoding %q: %w", encoding, err)
	}
	return &Counter{encoding: encoding, encoder: enc}, nil
}

// NewWithEncoder is New with an injected encoder, for tests.
func NewWithEncoder(encoding string, encoder Encoder) *Counter {
	return &Counter{encoding: encoding, encoder: encoder}
}

// Encoding returns the name of the tokenization scheme in use.
func (c *Counter) Encoding() string { return c.encoding }

// Count returns the number of tokens text encodes to.
func (c *Counter) Count(text string) int {
	return len(c.encoder.Encode(text, nil, nil))
}
