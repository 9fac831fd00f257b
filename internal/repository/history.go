// Package repository persists the generation log in an embedded sqlite
// database next to the settings document.
package repository

import (
	"context"
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/yshzap/aigenbot/internal/domain"
)

type HistoryRepository struct {
	db *sql.DB
}

func NewHistory(path string) (*HistoryRepository, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open history db: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping history db: %w", err)
	}

	r := &HistoryRepository{db: db}
	if err := r.initSchema(); err != nil {
		db.Close()
		return nil, err
	}
	return r, nil
}

func (r *HistoryRepository) initSchema() error {
	const schema = `CREATE TABLE IF NOT EXISTS generations (
		id TEXT PRIMARY KEY,
		chat_id INTEGER NOT NULL,
		modality TEXT NOT NULL,
		prompt TEXT NOT NULL,
		ok INTEGER NOT NULL,
		media_url TEXT NOT NULL DEFAULT '',
		error_kind TEXT NOT NULL DEFAULT '',
		duration_ms INTEGER NOT NULL DEFAULT 0,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
	);`
	if _, err := r.db.Exec(schema); err != nil {
		return fmt.Errorf("init history schema: %w", err)
	}
	return nil
}

func (r *HistoryRepository) Close() error {
	return r.db.Close()
}

// Record stores one finished generation attempt.
func (r *HistoryRepository) Record(ctx context.Context, rec domain.GenerationRecord) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO generations (id, chat_id, modality, prompt, ok, media_url, error_kind, duration_ms)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.ChatID, string(rec.Modality), rec.Prompt,
		rec.OK, rec.MediaURL, string(rec.ErrorKind), rec.Duration.Milliseconds(),
	)
	if err != nil {
		return fmt.Errorf("insert generation record: %w", err)
	}
	return nil
}

// Stats returns the aggregate counters for the owner /stats command.
func (r *HistoryRepository) Stats(ctx context.Context) (domain.GenerationStats, error) {
	var st domain.GenerationStats
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*),
		        COALESCE(SUM(CASE WHEN ok = 1 THEN 1 ELSE 0 END), 0),
		        COALESCE(SUM(CASE WHEN modality = 'image' THEN 1 ELSE 0 END), 0),
		        COALESCE(SUM(CASE WHEN modality = 'video' THEN 1 ELSE 0 END), 0)
		 FROM generations`,
	).Scan(&st.Total, &st.Succeeded, &st.Images, &st.Videos)
	if err != nil {
		return domain.GenerationStats{}, fmt.Errorf("query generation stats: %w", err)
	}
	return st, nil
}
