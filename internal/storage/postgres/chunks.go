package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/pgvector/pgvector-go"
	"jamesfarrell.me/yt-brief/internal/storage/models"
)

type ChunkRepository struct {
	db *sql.DB
}

func NewChunkRepository(db *sql.DB) *ChunkRepository {
	return &ChunkRepository{db: db}
}

// SaveChunks stores embedded transcript chunks for one video.
func (r *ChunkRepository) SaveChunks(ctx context.Context, videoID string, chunks []models.Chunk) error {
	stmt, err := r.db.PrepareContext(ctx, `
		INSERT INTO video_chunks (video_id, chunk_text, chunk_embedding, chunk_start, chunk_end)
		VALUES ($1, $2, $3, $4, $5)
	`)
	if err != nil {
		return fmt.Errorf("prepare statement failed: %w", err)
	}
	defer stmt.Close()

	for _, chunk := range chunks {
		_, err = stmt.ExecContext(ctx,
			videoID,
			chunk.Text,
			pgvector.NewVector(chunk.Embedding),
			chunk.StartPosition,
			chunk.EndPosition,
		)
		if err != nil {
			return fmt.Errorf("chunk insert failed: %w", err)
		}
	}
	return nil
}

// Search returns the chunks closest to the query embedding by cosine
// distance, restricted to fully processed videos.
func (r *ChunkRepository) Search(ctx context.Context, embedding []float32, limit int) ([]models.SearchResult, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT
			v.id AS video_id,
			vc.chunk_text,
			vc.chunk_start,
			vc.chunk_end,
			1 - (vc.chunk_embedding <=> $1) AS similarity
		FROM video_chunks vc
		JOIN "Video" v ON v.id = vc.video_id
		WHERE v.status = 'completed'
		ORDER BY vc.chunk_embedding <=> $1
		LIMIT $2
	`, pgvector.NewVector(embedding), limit)
	if err != nil {
		return nil, fmt.Errorf("chunk search failed: %w", err)
	}
	defer rows.Close()

	var results []models.SearchResult
	for rows.Next() {
		var result models.SearchResult
		if err := rows.Scan(
			&result.VideoID,
			&result.ChunkText,
			&result.StartPosition,
			&result.EndPosition,
			&result.Similarity,
		); err != nil {
			return nil, fmt.Errorf("scanning search result: %w", err)
		}
		results = append(results, result)
	}
	return results, rows.Err()
}
