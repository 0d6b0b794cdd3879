package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

var migrations = []string{
	`CREATE TABLE users (
    uid TEXT PRIMARY KEY,
    display_name TEXT NOT NULL,
    email TEXT NOT NULL,
    photo_url TEXT NOT NULL DEFAULT '',
    points INTEGER NOT NULL DEFAULT 0 CHECK (points >= 0),
    level INTEGER NOT NULL DEFAULT 1 CHECK (level >= 1),
    badges TEXT[] NOT NULL DEFAULT '{}',
    completed_courses TEXT[] NOT NULL DEFAULT '{}',
    joined_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`,
	`CREATE TABLE learning_paths (
    id UUID PRIMARY KEY,
    user_id TEXT NOT NULL REFERENCES users(uid) ON DELETE CASCADE,
    title TEXT NOT NULL,
    description TEXT NOT NULL DEFAULT '',
    topic TEXT NOT NULL,
    steps TEXT[] NOT NULL,
    created_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`,
	`CREATE INDEX learning_paths_user_created_idx
    ON learning_paths (user_id, created_at DESC)`,
	`CREATE TABLE projects (
    id UUID PRIMARY KEY,
    user_id TEXT NOT NULL REFERENCES users(uid) ON DELETE CASCADE,
    title TEXT NOT NULL,
    description TEXT NOT NULL DEFAULT '',
    repository_url TEXT NOT NULL,
    live_url TEXT,
    technologies TEXT[] NOT NULL DEFAULT '{}',
    skill_level TEXT NOT NULL,
    status TEXT NOT NULL,
    points INTEGER NOT NULL DEFAULT 0,
    award_status TEXT NOT NULL DEFAULT 'pending',
    created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
    last_updated TIMESTAMPTZ NOT NULL DEFAULT now()
)`,
	`CREATE INDEX projects_user_updated_idx
    ON projects (user_id, last_updated DESC)`,
	`CREATE INDEX projects_award_pending_idx
    ON projects (created_at) WHERE award_status = 'pending'`,
	`CREATE TABLE search_history (
    user_id TEXT NOT NULL REFERENCES users(uid) ON DELETE CASCADE,
    topic TEXT NOT NULL,
    videos JSONB NOT NULL,
    searched_at TIMESTAMPTZ NOT NULL DEFAULT now(),
    PRIMARY KEY (user_id, topic)
)`,
}

// Migrate applies any migrations not yet recorded in the migration
// table. Applied migrations are never edited, only appended.
func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	_, err := pool.Exec(ctx, `CREATE TABLE IF NOT EXISTS migration
("id" SERIAL PRIMARY KEY, "query" TEXT)`)
	if err != nil {
		return fmt.Errorf("failed to create migration table: %w", err)
	}

	rows, err := pool.Query(ctx, `SELECT query FROM migration ORDER BY id`)
	if err != nil {
		return fmt.Errorf("failed to read applied migrations: %w", err)
	}
	defer rows.Close()

	var existing []string
	for rows.Next() {
		var query string
		if err := rows.Scan(&query); err != nil {
			return fmt.Errorf("failed to scan migration: %w", err)
		}
		existing = append(existing, query)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("failed to read applied migrations: %w", err)
	}

	for i, query := range migrations {
		if i < len(existing) {
			if existing[i] != query {
				return fmt.Errorf("migration %d differs from applied version", i)
			}
			continue
		}
		if _, err := pool.Exec(ctx, query); err != nil {
			return fmt.Errorf("migration %d failed: %w", i, err)
		}
		if _, err := pool.Exec(ctx, `INSERT INTO migration (query) VALUES ($1)`, query); err != nil {
			return fmt.Errorf("failed to record migration %d: %w", i, err)
		}
	}

	return nil
}
