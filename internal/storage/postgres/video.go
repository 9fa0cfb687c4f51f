package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"jamesfarrell.me/yt-brief/internal/storage/models"
)

type VideoRepository struct {
	db *sql.DB
}

func NewVideoRepository(db *sql.DB) *VideoRepository {
	return &VideoRepository{db: db}
}

// Create inserts a pending video owned by userID and returns its id.
func (r *VideoRepository) Create(ctx context.Context, video *models.VideoRequest, userID string) (string, error) {
	const query = `
		INSERT INTO "Video" (id, "videoUrl", slug, status, "isSearchable", "createdAt", "updatedAt", "userId")
		VALUES (gen_random_uuid(), $1, $2, 'pending', $3, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP, $4)
		RETURNING id
	`

	var id string
	err := r.db.QueryRowContext(ctx, query,
		video.URL,
		models.ExtractSlugFromURL(video.URL),
		video.IsSearchable,
		userID,
	).Scan(&id)
	return id, err
}

func (r *VideoRepository) Get(ctx context.Context, id string) (*models.Video, error) {
	const query = `
		SELECT id, "videoUrl", slug, status, transcription, summary, "isSearchable",
			   "createdAt", "updatedAt", "userId"
		FROM "Video"
		WHERE id = $1
	`
	return r.scanVideo(r.db.QueryRowContext(ctx, query, id))
}

// GetByURL returns the most recent record for a video URL, so an already
// processed video isn't downloaded and transcribed again.
func (r *VideoRepository) GetByURL(ctx context.Context, url string) (*models.Video, error) {
	const query = `
		SELECT id, "videoUrl", slug, status, transcription, summary, "isSearchable",
			   "createdAt", "updatedAt", "userId"
		FROM "Video"
		WHERE "videoUrl" = $1
		ORDER BY "createdAt" DESC
		LIMIT 1
	`
	return r.scanVideo(r.db.QueryRowContext(ctx, query, url))
}

func (r *VideoRepository) scanVideo(row *sql.Row) (*models.Video, error) {
	var video models.Video
	err := row.Scan(
		&video.ID,
		&video.VideoURL,
		&video.Slug,
		&video.Status,
		&video.Transcription,
		&video.Summary,
		&video.IsSearchable,
		&video.CreatedAt,
		&video.UpdatedAt,
		&video.UserID,
	)
	if err != nil {
		return nil, err
	}
	return &video, nil
}

func (r *VideoRepository) UpdateStatus(ctx context.Context, videoID, status string) error {
	const query = `
		UPDATE "Video"
		SET status = $1, "updatedAt" = CURRENT_TIMESTAMP
		WHERE id = $2
	`
	return r.exec(ctx, query, videoID, status, videoID)
}

func (r *VideoRepository) SaveTranscription(ctx context.Context, videoID, transcription string) error {
	const query = `
		UPDATE "Video"
		SET transcription = $1, "updatedAt" = CURRENT_TIMESTAMP
		WHERE id = $2
	`
	return r.exec(ctx, query, videoID, transcription, videoID)
}

func (r *VideoRepository) SaveSummary(ctx context.Context, videoID, summary string) error {
	const query = `
		UPDATE "Video"
		SET summary = $1, "updatedAt" = CURRENT_TIMESTAMP
		WHERE id = $2
	`
	return r.exec(ctx, query, videoID, summary, videoID)
}

func (r *VideoRepository) exec(ctx context.Context, query, videoID string, args ...any) error {
	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to execute update: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("no video found with ID: %s", videoID)
	}
	return nil
}
