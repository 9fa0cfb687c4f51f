package embeddings

import (
	"unicode"

	"jamesfarrell.me/yt-brief/internal/storage/models"
)

// Default chunking parameters, in words.
const (
	DefaultChunkSize    = 200
	DefaultChunkOverlap = 40
)

type wordSpan struct {
	start int
	end   int
}

// ChunkTranscript splits text into word windows of size words with overlap
// words shared between consecutive chunks. Positions are byte offsets into
// the original text, so callers can slice the transcript to recover a
// chunk exactly. Embeddings are left empty.
func ChunkTranscript(text string, size, overlap int) []models.Chunk {
	if size <= 0 {
		size = DefaultChunkSize
	}
	if overlap < 0 || overlap >= size {
		overlap = size / 5
	}

	words := wordSpans(text)
	if len(words) == 0 {
		return nil
	}

	var chunks []models.Chunk
	step := size - overlap
	for i := 0; ; i += step {
		end := i + size
		if end > len(words) {
			end = len(words)
		}

		start := words[i].start
		stop := words[end-1].end
		chunks = append(chunks, models.Chunk{
			Text:          text[start:stop],
			StartPosition: start,
			EndPosition:   stop,
		})

		if end == len(words) {
			break
		}
	}
	return chunks
}

func wordSpans(text string) []wordSpan {
	var spans []wordSpan
	inWord := false
	start := 0
	for i, r := range text {
		if unicode.IsSpace(r) {
			if inWord {
				spans = append(spans, wordSpan{start: start, end: i})
				inWord = false
			}
		} else if !inWord {
			start = i
			inWord = true
		}
	}
	if inWord {
		spans = append(spans, wordSpan{start: start, end: len(text)})
	}
	return spans
}
