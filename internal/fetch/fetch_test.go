package fetch

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

type fakeRunner struct {
	output string
	err    error

	gotName string
	gotArgs []string
}

func (f *fakeRunner) Run(name string, args ...string) (string, error) {
	f.gotName = name
	f.gotArgs = args
	return f.output, f.err
}

func TestDownload(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name         string
		output       string
		wantFilename string
		wantSuffix   string
		wantErr      bool
	}{
		{
			name:         "normal download",
			output:       "Some Talk.webm\n" + filepath.Join(dir, "Some Talk.mp3") + "\n",
			wantFilename: "Some Talk.webm",
			wantSuffix:   "Some Talk.mp3",
		},
		{
			name:         "no after_move line",
			output:       filepath.Join(dir, "Some Talk.webm") + "\n",
			wantFilename: filepath.Join(dir, "Some Talk.webm"),
			wantSuffix:   "Some Talk.mp3",
		},
		{
			name:    "empty output",
			output:  "\n",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			runner := &fakeRunner{output: tt.output}
			f := NewFetcher(runner)

			artifact, err := f.Download("https://youtu.be/EXAMPLE", dir)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Download() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if runner.gotName != "yt-dlp" {
				t.Errorf("ran %q, want yt-dlp", runner.gotName)
			}
			if artifact.Filename != tt.wantFilename {
				t.Errorf("Filename = %q, want %q", artifact.Filename, tt.wantFilename)
			}
			if !strings.HasSuffix(artifact.Path, tt.wantSuffix) {
				t.Errorf("Path = %q, want suffix %q", artifact.Path, tt.wantSuffix)
			}
			if !filepath.IsAbs(artifact.Path) {
				t.Errorf("Path = %q, want absolute", artifact.Path)
			}
		})
	}
}

func TestDownloadCreatesOutputDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "audio", "nested")
	runner := &fakeRunner{output: "x.webm\n" + filepath.Join(dir, "x.mp3") + "\n"}

	if _, err := NewFetcher(runner).Download("https://youtu.be/EXAMPLE", dir); err != nil {
		t.Fatalf("Download() error = %v", err)
	}
	if _, err := os.Stat(dir); err != nil {
		t.Errorf("output dir not created: %v", err)
	}
}

func TestDownloadFailureIsDownloadError(t *testing.T) {
	runner := &fakeRunner{err: fmt.Errorf("exit status 1: ERROR: video unavailable")}
	_, err := NewFetcher(runner).Download("https://youtu.be/EXAMPLE", t.TempDir())

	var dlErr *DownloadError
	if !errors.As(err, &dlErr) {
		t.Fatalf("error = %v, want *DownloadError", err)
	}
	if dlErr.URL != "https://youtu.be/EXAMPLE" {
		t.Errorf("URL = %q", dlErr.URL)
	}
}

func TestDownloadUsesExpectedOptions(t *testing.T) {
	dir := t.TempDir()
	runner := &fakeRunner{output: "x.webm\n" + filepath.Join(dir, "x.mp3") + "\n"}

	if _, err := NewFetcher(runner).Download("https://youtu.be/EXAMPLE", dir); err != nil {
		t.Fatalf("Download() error = %v", err)
	}

	args := strings.Join(runner.gotArgs, " ")
	for _, want := range []string{
		"bestaudio/best",
		"--extract-audio",
		"--audio-format mp3",
		"--no-overwrites",
		"--no-playlist",
		"--quiet",
		"https://youtu.be/EXAMPLE",
	} {
		if !strings.Contains(args, want) {
			t.Errorf("args missing %q: %s", want, args)
		}
	}
}
