package archive

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// SQLite is a single-file archive.
type SQLite struct {
	db *sql.DB
}

// OpenSQLite opens (or creates) the archive database at path.
func OpenSQLite(path string) (*SQLite, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return nil, fmt.Errorf("archive: mkdir %s: %w", dir, err)
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("archive: open db: %w", err)
	}
	db.SetMaxOpenConns(1) // SQLite: single writer
	if err := initSQLiteSchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("archive: init schema: %w", err)
	}
	return &SQLite{db: db}, nil
}

func initSQLiteSchema(db *sql.DB) error {
	_, err := db.Exec(`CREATE TABLE IF NOT EXISTS articles (
		id         INTEGER PRIMARY KEY AUTOINCREMENT,
		run_id     TEXT NOT NULL,
		video_id   TEXT NOT NULL,
		repo       TEXT NOT NULL,
		title      TEXT,
		path       TEXT NOT NULL,
		body       TEXT NOT NULL,
		created_at TEXT NOT NULL
	)`)
	return err
}

// Add inserts an article and returns its ID.
func (s *SQLite) Add(ctx context.Context, a Article) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO articles (run_id, video_id, repo, title, path, body, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		a.RunID, a.VideoID, a.Repo, a.Title, a.Path, a.Body, createdAt(a).Format(time.RFC3339),
	)
	if err != nil {
		return 0, fmt.Errorf("archive: insert: %w", err)
	}
	return res.LastInsertId()
}

// List returns the newest articles first, without bodies.
func (s *SQLite) List(ctx context.Context, limit int) ([]Article, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, run_id, video_id, repo, title, path, created_at
		 FROM articles ORDER BY id DESC LIMIT ?`,
		clampLimit(limit),
	)
	if err != nil {
		return nil, fmt.Errorf("archive: query: %w", err)
	}
	defer rows.Close()

	out := []Article{}
	for rows.Next() {
		var a Article
		var title sql.NullString
		var created string
		if err := rows.Scan(&a.ID, &a.RunID, &a.VideoID, &a.Repo, &title, &a.Path, &created); err != nil {
			return nil, fmt.Errorf("archive: scan: %w", err)
		}
		a.Title = title.String
		a.CreatedAt, _ = time.Parse(time.RFC3339, created)
		out = append(out, a)
	}
	return out, rows.Err()
}

// Close closes the database.
func (s *SQLite) Close() error {
	return s.db.Close()
}
