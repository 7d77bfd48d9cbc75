// Package archive stores saved articles in SQLite or PostgreSQL.
package archive

import (
	"context"
	"errors"
	"strings"
	"time"
)

// Article is one saved blog post.
type Article struct {
	ID        int64     `json:"id"`
	RunID     string    `json:"run_id"`
	VideoID   string    `json:"video_id"`
	Repo      string    `json:"repo"`
	Title     string    `json:"title,omitempty"`
	Path      string    `json:"path"`
	Body      string    `json:"body,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Store persists articles.
type Store interface {
	Add(ctx context.Context, a Article) (int64, error)
	List(ctx context.Context, limit int) ([]Article, error)
	Close() error
}

// ErrNoDSN is returned by Open for an empty DSN.
var ErrNoDSN = errors.New("archive: empty DSN")

const (
	defaultListLimit = 20
	maxListLimit     = 200
)

// Open selects a backend from the DSN: postgres:// or postgresql:// URLs use
// PostgreSQL, anything else is a SQLite file path.
func Open(ctx context.Context, dsn string) (Store, error) {
	dsn = strings.TrimSpace(dsn)
	switch {
	case dsn == "":
		return nil, ErrNoDSN
	case strings.HasPrefix(dsn, "postgres://"), strings.HasPrefix(dsn, "postgresql://"):
		pg, err := OpenPostgres(ctx, dsn)
		if err != nil {
			return nil, err
		}
		return pg, nil
	default:
		db, err := OpenSQLite(strings.TrimPrefix(dsn, "sqlite://"))
		if err != nil {
			return nil, err
		}
		return db, nil
	}
}

func clampLimit(limit int) int {
	if limit <= 0 {
		return defaultListLimit
	}
	return min(limit, maxListLimit)
}

func createdAt(a Article) time.Time {
	if a.CreatedAt.IsZero() {
		return time.Now().UTC()
	}
	return a.CreatedAt.UTC()
}
