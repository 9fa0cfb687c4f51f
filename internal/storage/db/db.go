package db

import (
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/lib/pq"
)

type Config struct {
	URL          string
	MaxOpenConns int
	MaxIdleConns int
}

// NewConnection creates and verifies a new database connection.
func NewConnection(cfg Config) (*sql.DB, error) {
	if cfg.URL == "" {
		return nil, fmt.Errorf("database URL is required")
	}

	db, err := sql.Open("postgres", cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("error connecting to database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("error pinging database: %w", err)
	}

	if cfg.MaxOpenConns == 0 {
		cfg.MaxOpenConns = 25
	}
	if cfg.MaxIdleConns == 0 {
		cfg.MaxIdleConns = 5
	}
	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)

	return db, nil
}

// MaskDatabaseURL masks credentials in a database URL for logging.
func MaskDatabaseURL(url string) string {
	if url == "" {
		return ""
	}
	if i := strings.LastIndex(url, "@"); i != -1 {
		return "postgres://[masked]@" + url[i+1:]
	}
	return "postgres://[masked]"
}
