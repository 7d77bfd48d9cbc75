package archive

import (
	"context"
	"embed"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
)

//go:embed schema/*.sql
var schemaFS embed.FS

// Postgres is a pgx-backed archive.
type Postgres struct {
	pool *pgxpool.Pool
}

// OpenPostgres creates a pool, pings it and applies the schema.
func OpenPostgres(ctx context.Context, databaseURL string) (*Postgres, error) {
	config, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse ARCHIVE_DSN: %w", err)
	}
	config.MaxConns = 4
	config.MinConns = 1

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("create pgx pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	db := &Postgres{pool: pool}
	if err := db.runMigrations(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	slog.Info("archive postgres connected", slog.String("addr", config.ConnConfig.Host))
	return db, nil
}

func (db *Postgres) runMigrations(ctx context.Context) error {
	entries, err := schemaFS.ReadDir("schema")
	if err != nil {
		return fmt.Errorf("read schema dir: %w", err)
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Name() < entries[j].Name()
	})
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".sql") {
			continue
		}
		data, err := schemaFS.ReadFile("schema/" + entry.Name())
		if err != nil {
			return fmt.Errorf("read %s: %w", entry.Name(), err)
		}
		if _, err := db.pool.Exec(ctx, string(data)); err != nil {
			return fmt.Errorf("execute %s: %w", entry.Name(), err)
		}
		slog.Debug("migration applied", slog.String("file", entry.Name()))
	}
	return nil
}

// Add inserts an article and returns its ID.
func (db *Postgres) Add(ctx context.Context, a Article) (int64, error) {
	var id int64
	err := db.pool.QueryRow(ctx,
		`INSERT INTO articles (run_id, video_id, repo, title, path, body, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id`,
		a.RunID, a.VideoID, a.Repo, a.Title, a.Path, a.Body, createdAt(a),
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("archive: insert: %w", err)
	}
	return id, nil
}

// List returns the newest articles first, without bodies.
func (db *Postgres) List(ctx context.Context, limit int) ([]Article, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT id, run_id, video_id, repo, COALESCE(title, ''), path, created_at
		 FROM articles ORDER BY id DESC LIMIT $1`,
		clampLimit(limit),
	)
	if err != nil {
		return nil, fmt.Errorf("archive: query: %w", err)
	}
	defer rows.Close()

	out := []Article{}
	for rows.Next() {
		var a Article
		if err := rows.Scan(&a.ID, &a.RunID, &a.VideoID, &a.Repo, &a.Title, &a.Path, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("archive: scan: %w", err)
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// Close releases the pool.
func (db *Postgres) Close() error {
	db.pool.Close()
	return nil
}
