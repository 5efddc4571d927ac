// Package storage talks to the Supabase Postgres database and reconciles
// scraped candidates against the rows already there.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	_ "github.com/lib/pq"

	"github.com/gsuconnect/ingest/internal/logger"
	"github.com/gsuconnect/ingest/internal/news"
)

// Store is the datastore surface the reconciler needs.
type Store interface {
	GetOrCreateCampus(ctx context.Context, name string) (int64, error)
	ListByCampus(ctx context.Context, campusID int64) ([]news.Stored, error)
	Insert(ctx context.Context, campusID int64, a news.Article) (int64, error)
	Update(ctx context.Context, id int64, a news.Article) error
	Close() error
}

// PostgresStore implements Store against the Supabase database.
type PostgresStore struct {
	db     *sql.DB
	lister *sharedLister
	log    *slog.Logger
}

// Open connects to Postgres and makes sure the schema exists.
func Open(dsn string) (*PostgresStore, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	ps := &PostgresStore{
		db:  db,
		log: logger.With("storage"),
	}
	ps.lister = newSharedLister(ps.listByCampus)

	if err := ps.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	ps.log.Info("database connected")
	return ps, nil
}

// initSchema creates the tables if they don't exist.
func (ps *PostgresStore) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS campuses (
		id SERIAL PRIMARY KEY,
		name TEXT UNIQUE NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);

	CREATE TABLE IF NOT EXISTS news (
		id SERIAL PRIMARY KEY,
		campus_id INTEGER NOT NULL REFERENCES campuses(id),
		title TEXT NOT NULL,
		content TEXT NOT NULL,
		source_url TEXT NOT NULL,
		image_url TEXT,
		published_at TIMESTAMPTZ NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);

	CREATE INDEX IF NOT EXISTS idx_news_campus_id ON news(campus_id);
	CREATE INDEX IF NOT EXISTS idx_news_lower_title ON news(campus_id, lower(title));
	CREATE INDEX IF NOT EXISTS idx_news_source_url ON news(source_url);
	`

	if _, err := ps.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}

// GetOrCreateCampus looks a campus up by name, creating the row on first
// use. ON CONFLICT keeps concurrent first writers from racing.
func (ps *PostgresStore) GetOrCreateCampus(ctx context.Context, name string) (int64, error) {
	var id int64
	err := ps.db.QueryRowContext(ctx, `SELECT id FROM campuses WHERE name = $1`, name).Scan(&id)
	if err == nil {
		return id, nil
	}
	if err != sql.ErrNoRows {
		return 0, fmt.Errorf("failed to find campus %q: %w", name, err)
	}

	ps.log.Info("creating campus", "name", name)
	err = ps.db.QueryRowContext(ctx, `
		INSERT INTO campuses (name)
		VALUES ($1)
		ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name
		RETURNING id
	`, name).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to create campus %q: %w", name, err)
	}
	return id, nil
}

// ListByCampus returns the stored articles for one campus. Concurrent
// callers share a single in-flight query via the single-flight wrapper.
func (ps *PostgresStore) ListByCampus(ctx context.Context, campusID int64) ([]news.Stored, error) {
	return ps.lister.list(ctx, campusID)
}

func (ps *PostgresStore) listByCampus(ctx context.Context, campusID int64) ([]news.Stored, error) {
	rows, err := ps.db.QueryContext(ctx, `
		SELECT id, title, content, source_url, COALESCE(image_url, ''), published_at
		FROM news
		WHERE campus_id = $1
		ORDER BY published_at DESC
	`, campusID)
	if err != nil {
		return nil, fmt.Errorf("failed to list articles: %w", err)
	}
	defer rows.Close()

	var items []news.Stored
	for rows.Next() {
		var it news.Stored
		if err := rows.Scan(&it.ID, &it.Title, &it.Content, &it.SourceURL, &it.ImageURL, &it.PublishedAt); err != nil {
			return nil, fmt.Errorf("failed to scan article row: %w", err)
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

// Insert stores a new article and returns its id so callers can address
// the row later in the same batch. An absent image is stored as NULL, not "".
func (ps *PostgresStore) Insert(ctx context.Context, campusID int64, a news.Article) (int64, error) {
	var id int64
	err := ps.db.QueryRowContext(ctx, `
		INSERT INTO news (campus_id, title, content, source_url, image_url, published_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`, campusID, a.Title, a.Content, a.SourceURL, nullString(a.ImageURL), a.PublishedAt).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to insert article %q: %w", a.Title, err)
	}
	return id, nil
}

// Update refreshes the mutable fields of an existing row. The title is
// the stable matching key, and source_url and published_at are immutable
// once stored, so none of those are touched.
func (ps *PostgresStore) Update(ctx context.Context, id int64, a news.Article) error {
	_, err := ps.db.ExecContext(ctx, `
		UPDATE news
		SET content = $2, image_url = $3, updated_at = NOW()
		WHERE id = $1
	`, id, a.Content, nullString(a.ImageURL))
	if err != nil {
		return fmt.Errorf("failed to update article %d: %w", id, err)
	}
	return nil
}

// Close closes the database connection.
func (ps *PostgresStore) Close() error {
	if ps.db != nil {
		return ps.db.Close()
	}
	return nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
