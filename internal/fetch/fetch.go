package fetch

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// Artifact is the audio file extracted for one video.
type Artifact struct {
	// Path is the absolute path of the mp3 file on disk.
	Path string
	// Filename is the filename yt-dlp prepared from the video title,
	// before the audio extraction step normalized the extension.
	Filename string
}

// DownloadError reports a failure retrieving the video itself, as opposed
// to local failures preparing for the download.
type DownloadError struct {
	URL string
	Err error
}

func (e *DownloadError) Error() string {
	return fmt.Sprintf("downloading %s: %v", e.URL, e.Err)
}

func (e *DownloadError) Unwrap() error { return e.Err }

// CommandRunner abstracts process execution so tests can fake yt-dlp.
type CommandRunner interface {
	Run(name string, args ...string) (string, error)
}

// ExecRunner runs commands with os/exec, folding stderr into the error.
type ExecRunner struct{}

func (ExecRunner) Run(name string, args ...string) (string, error) {
	cmd := exec.Command(name, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return "", fmt.Errorf("%w: %s", err, msg)
		}
		return "", err
	}
	return stdout.String(), nil
}

// Fetcher downloads a video's audio track as mp3 via yt-dlp.
type Fetcher struct {
	runner CommandRunner
}

func NewFetcher(runner CommandRunner) *Fetcher {
	if runner == nil {
		runner = ExecRunner{}
	}
	return &Fetcher{runner: runner}
}

// Download fetches the best available audio for videoURL into outputDir,
// creating the directory if needed, and converts it to mp3 at 192K.
// Single video only, existing files are not overwritten.
func (f *Fetcher) Download(videoURL, outputDir string) (Artifact, error) {
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return Artifact{}, fmt.Errorf("creating output directory: %w", err)
	}

	template := filepath.Join(outputDir, "%(title)s.%(ext)s")
	out, err := f.runner.Run("yt-dlp",
		"-f", "bestaudio/best",
		"--extract-audio",
		"--audio-format", "mp3",
		"--audio-quality", "192K",
		"-o", template,
		"--no-overwrites",
		"--no-playlist",
		"--quiet",
		"--no-warnings",
		"--no-simulate",
		"--print", "filename",
		"--print", "after_move:filepath",
		videoURL)
	if err != nil {
		return Artifact{}, &DownloadError{URL: videoURL, Err: err}
	}

	lines := nonEmptyLines(out)
	if len(lines) == 0 {
		return Artifact{}, &DownloadError{URL: videoURL, Err: fmt.Errorf("yt-dlp produced no output")}
	}

	filename := lines[0]
	mp3Path := lines[len(lines)-1]
	if !strings.HasSuffix(mp3Path, ".mp3") {
		// Older yt-dlp builds don't emit after_move; derive the mp3
		// path from the prepared filename instead.
		mp3Path = strings.TrimSuffix(filename, filepath.Ext(filename)) + ".mp3"
	}

	absPath, err := filepath.Abs(mp3Path)
	if err != nil {
		return Artifact{}, fmt.Errorf("resolving audio path: %w", err)
	}

	return Artifact{Path: absPath, Filename: filename}, nil
}

func nonEmptyLines(s string) []string {
	var lines []string
	for _, l := range strings.Split(s, "\n") {
		if l = strings.TrimSpace(l); l != "" {
			lines = append(lines, l)
		}
	}
	return lines
}
