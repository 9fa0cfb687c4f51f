// ytbrief downloads a YouTube video's audio, transcribes it against a
// whisper endpoint and prints a Markdown brief generated by a completion
// endpoint (typically a local llama.cpp server).
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"jamesfarrell.me/yt-brief/internal/config"
	"jamesfarrell.me/yt-brief/internal/fetch"
	"jamesfarrell.me/yt-brief/internal/pipeline"
	"jamesfarrell.me/yt-brief/internal/render"
	"jamesfarrell.me/yt-brief/internal/summarize"
	"jamesfarrell.me/yt-brief/internal/tokenizer"
	"jamesfarrell.me/yt-brief/internal/transcribe"
)

var (
	videoURL      string
	mp3Dir        string
	transcriptDir string
)

func main() {
	rootCmd := &cobra.Command{
		Use:          "ytbrief",
		Short:        "Download YouTube video audio as MP3, transcribe it, and generate a summary",
		SilenceUsage: true,
		RunE:         run,
	}
	rootCmd.Flags().StringVarP(&videoURL, "video-url", "v", "", "YouTube video URL")
	rootCmd.Flags().StringVarP(&mp3Dir, "mp3-dir", "m", ".", "Directory to save MP3 file")
	rootCmd.Flags().StringVarP(&transcriptDir, "transcript-dir", "t", ".", "Directory to save transcription text file")
	rootCmd.MarkFlagRequired("video-url")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, _ []string) error {
	_ = godotenv.Load()
	cfg := config.New()

	counter, err := tokenizer.New(cfg.Encoding)
	if err != nil {
		return err
	}

	p := pipeline.New(
		fetch.NewFetcher(nil),
		transcribe.New(cfg.WhisperBaseURL, cfg.WhisperAPIKey, cfg.WhisperModel, cfg.Language),
		counter,
		summarize.New(cfg.CompletionBaseURL, cfg.CompletionAPIKey, cfg.CompletionModel),
		os.Stdout,
	)

	result, err := p.Run(cmd.Context(), videoURL, mp3Dir, transcriptDir)
	if err != nil {
		var dlErr *fetch.DownloadError
		if errors.As(err, &dlErr) {
			fmt.Fprintf(os.Stderr, "Download failed: %v\n", dlErr.Err)
			os.Exit(1)
		}
		return err
	}

	rendered, err := render.Markdown(result.Summary)
	if err != nil {
		// Fall back to the raw Markdown rather than losing the summary.
		fmt.Println(result.Summary)
		return nil
	}
	fmt.Print(rendered)
	return nil
}
