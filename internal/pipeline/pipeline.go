// Package pipeline drives the single-pass download → transcribe → count →
// summarize sequence. Stages run strictly in order; the first error aborts
// the run.
package pipeline

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"jamesfarrell.me/yt-brief/internal/fetch"
)

// Fetcher materializes a video's audio on local storage.
type Fetcher interface {
	Download(videoURL, outputDir string) (fetch.Artifact, error)
}

// Transcriber converts an audio file into plain text.
type Transcriber interface {
	Transcribe(ctx context.Context, audioPath string) (string, error)
}

// Counter reports a token count for text under a fixed encoding.
type Counter interface {
	Count(text string) int
	Encoding() string
}

// Summarizer produces a Markdown brief from a transcript.
type Summarizer interface {
	Summarize(ctx context.Context, transcript string) (string, error)
}

// Result collects the artifacts of one completed run.
type Result struct {
	AudioPath      string
	TranscriptPath string
	Transcript     string
	TokenCount     int
	Summary        string
}

// Pipeline wires the four stages together. Construct the stage
// implementations up front and inject them; the pipeline itself holds no
// network or model state.
type Pipeline struct {
	fetcher     Fetcher
	transcriber Transcriber
	counter     Counter
	summarizer  Summarizer
	out         io.Writer
}

func New(f Fetcher, t Transcriber, c Counter, s Summarizer, out io.Writer) *Pipeline {
	if out == nil {
		out = io.Discard
	}
	return &Pipeline{fetcher: f, transcriber: t, counter: c, summarizer: s, out: out}
}

// Run executes the full pipeline for one video. The transcript is written
// verbatim, UTF-8, to <title>_transcript.txt in transcriptDir before the
// summary is requested, so a summarization failure still leaves the
// transcript on disk.
func (p *Pipeline) Run(ctx context.Context, videoURL, audioDir, transcriptDir string) (*Result, error) {
	artifact, err := p.fetcher.Download(videoURL, audioDir)
	if err != nil {
		return nil, err
	}
	fmt.Fprintf(p.out, "Downloaded MP3 file at: %s\n", artifact.Path)

	transcript, err := p.transcriber.Transcribe(ctx, artifact.Path)
	if err != nil {
		return nil, err
	}

	transcriptName := transcriptFilename(artifact.Filename)
	transcriptPath := filepath.Join(transcriptDir, transcriptName)
	if err := os.WriteFile(transcriptPath, []byte(transcript), 0o644); err != nil {
		return nil, fmt.Errorf("writing transcript: %w", err)
	}
	fmt.Fprintf(p.out, "Transcribed '%s' to '%s'\n", artifact.Path, transcriptName)

	tokens := p.counter.Count(transcript)
	fmt.Fprintf(p.out, "Number of tokens in transcript: %d\n", tokens)

	summary, err := p.summarizer.Summarize(ctx, transcript)
	if err != nil {
		return nil, err
	}

	return &Result{
		AudioPath:      artifact.Path,
		TranscriptPath: transcriptPath,
		Transcript:     transcript,
		TokenCount:     tokens,
		Summary:        summary,
	}, nil
}

// transcriptFilename derives <title>_transcript.txt from the filename
// yt-dlp prepared for the download.
func transcriptFilename(prepared string) string {
	base := filepath.Base(prepared)
	return strings.TrimSuffix(base, filepath.Ext(base)) + "_transcript.txt"
}
