package transcribe

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Entry is one cue from a WebVTT document.
type Entry struct {
	Number int
	Start  time.Duration
	End    time.Duration
	Text   string
}

// IsVTT reports whether content looks like a WebVTT document. Transcripts
// stored by earlier versions of the worker kept the raw VTT response.
func IsVTT(content string) bool {
	content = strings.Trim(content, "\"")
	if strings.Contains(content, "\\n") {
		content = strings.ReplaceAll(content, "\\n", "\n")
	}
	return strings.HasPrefix(content, "WEBVTT")
}

// Flatten parses a WebVTT document and joins its cue texts into one plain
// transcript, separated by single spaces.
func Flatten(content string) (string, error) {
	entries, err := ParseVTT(content)
	if err != nil {
		return "", err
	}
	texts := make([]string, 0, len(entries))
	for _, e := range entries {
		texts = append(texts, e.Text)
	}
	return strings.Join(texts, " "), nil
}

// ParseVTT parses WebVTT content into cue entries.
func ParseVTT(content string) ([]Entry, error) {
	// Stored transcripts may arrive JSON-quoted with literal \n escapes.
	content = strings.Trim(content, "\"")
	if strings.Contains(content, "\\n") {
		content = strings.ReplaceAll(content, "\\n", "\n")
	}

	if !strings.HasPrefix(content, "WEBVTT\n\n") {
		return nil, fmt.Errorf("invalid VTT format: missing WEBVTT header")
	}
	content = strings.TrimPrefix(content, "WEBVTT\n\n")

	entries := []Entry{}
	for i, block := range strings.Split(content, "\n\n") {
		lines := strings.Split(block, "\n")
		if len(lines) < 2 {
			continue
		}

		timestamps := strings.Split(lines[0], " --> ")
		if len(timestamps) != 2 {
			continue
		}

		start, err := parseVTTTimestamp(timestamps[0])
		if err != nil {
			return nil, fmt.Errorf("invalid start timestamp: %w", err)
		}
		end, err := parseVTTTimestamp(timestamps[1])
		if err != nil {
			return nil, fmt.Errorf("invalid end timestamp: %w", err)
		}

		entries = append(entries, Entry{
			Number: i + 1,
			Start:  start,
			End:    end,
			Text:   strings.Join(lines[1:], " "),
		})
	}

	return entries, nil
}

// parseVTTTimestamp parses an HH:MM:SS.mmm timestamp.
func parseVTTTimestamp(timestamp string) (time.Duration, error) {
	if !strings.Contains(timestamp, ".") {
		return 0, fmt.Errorf("invalid timestamp format: missing milliseconds")
	}

	parts := strings.Split(timestamp, ":")
	if len(parts) != 3 || len(parts[0]) != 2 {
		return 0, fmt.Errorf("invalid timestamp format: expected HH:MM:SS.mmm")
	}

	hours, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, fmt.Errorf("invalid hours: %w", err)
	}
	minutes, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, fmt.Errorf("invalid minutes: %w", err)
	}

	secondParts := strings.Split(parts[2], ".")
	if len(secondParts) != 2 {
		return 0, fmt.Errorf("invalid seconds format: missing milliseconds")
	}
	seconds, err := strconv.Atoi(secondParts[0])
	if err != nil {
		return 0, fmt.Errorf("invalid seconds: %w", err)
	}
	milliseconds, err := strconv.Atoi(secondParts[1])
	if err != nil {
		return 0, fmt.Errorf("invalid milliseconds: %w", err)
	}

	return time.Duration(hours)*time.Hour +
		time.Duration(minutes)*time.Minute +
		time.Duration(seconds)*time.Second +
		time.Duration(milliseconds)*time.Millisecond, nil
}
