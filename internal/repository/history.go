package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/skillora/skillora/internal/model"
)

// defaultHistoryLimit caps history listings when the caller does not
// specify a limit.
const defaultHistoryLimit = 10

// HistoryRepository stores categorized search results per (user, topic)
type HistoryRepository struct {
	pool *pgxpool.Pool
}

// NewHistoryRepository creates a new HistoryRepository
func NewHistoryRepository(pool *pgxpool.Pool) *HistoryRepository {
	return &HistoryRepository{pool: pool}
}

// Save upserts the categorized buckets for a (user, topic) pair.
// Repeating a search overwrites the previous result and its timestamp.
func (r *HistoryRepository) Save(ctx context.Context, userID, topic string, videos model.CategorizedVideos) error {
	payload, err := json.Marshal(videos)
	if err != nil {
		return fmt.Errorf("failed to marshal categorized videos: %w", err)
	}

	_, err = r.pool.Exec(ctx, `
		INSERT INTO search_history (user_id, topic, videos, searched_at)
		VALUES ($1, $2, $3, now())
		ON CONFLICT (user_id, topic)
		DO UPDATE SET videos = EXCLUDED.videos, searched_at = now()
	`, userID, topic, payload)
	if err != nil {
		return fmt.Errorf("failed to save history: %w", err)
	}
	return nil
}

// Get retrieves one history entry, or nil if the user never searched
// the topic.
func (r *HistoryRepository) Get(ctx context.Context, userID, topic string) (*model.SearchHistory, error) {
	var (
		entry   model.SearchHistory
		payload []byte
	)
	err := r.pool.QueryRow(ctx, `
		SELECT user_id, topic, videos, searched_at
		FROM search_history
		WHERE user_id = $1 AND topic = $2
	`, userID, topic).Scan(&entry.UserID, &entry.Topic, &payload, &entry.SearchedAt)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get history: %w", err)
	}

	if err := json.Unmarshal(payload, &entry.Videos); err != nil {
		return nil, fmt.Errorf("failed to decode history videos: %w", err)
	}
	return &entry, nil
}

// List retrieves a user's history, most recent first. limit <= 0 uses
// the default of 10.
func (r *HistoryRepository) List(ctx context.Context, userID string, limit int) ([]model.SearchHistory, error) {
	if limit <= 0 {
		limit = defaultHistoryLimit
	}

	rows, err := r.pool.Query(ctx, `
		SELECT user_id, topic, videos, searched_at
		FROM search_history
		WHERE user_id = $1
		ORDER BY searched_at DESC
		LIMIT $2
	`, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list history: %w", err)
	}
	defer rows.Close()

	var entries []model.SearchHistory
	for rows.Next() {
		var (
			entry   model.SearchHistory
			payload []byte
		)
		if err := rows.Scan(&entry.UserID, &entry.Topic, &payload, &entry.SearchedAt); err != nil {
			return nil, fmt.Errorf("failed to scan history: %w", err)
		}
		if err := json.Unmarshal(payload, &entry.Videos); err != nil {
			return nil, fmt.Errorf("failed to decode history videos: %w", err)
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list history: %w", err)
	}

	return entries, nil
}

// SetWatched flips the watched flag of one video across all buckets of
// a history entry. Returns false if the entry or video was not found.
func (r *HistoryRepository) SetWatched(ctx context.Context, userID, topic, videoID string, watched bool) (bool, error) {
	entry, err := r.Get(ctx, userID, topic)
	if err != nil {
		return false, err
	}
	if entry == nil {
		return false, nil
	}

	found := false
	for _, bucket := range [][]model.Video{
		entry.Videos.Beginner, entry.Videos.Intermediate, entry.Videos.Advanced,
	} {
		for i := range bucket {
			if bucket[i].ID == videoID {
				bucket[i].Watched = watched
				found = true
			}
		}
	}
	if !found {
		return false, nil
	}

	payload, err := json.Marshal(entry.Videos)
	if err != nil {
		return false, fmt.Errorf("failed to marshal categorized videos: %w", err)
	}

	_, err = r.pool.Exec(ctx, `
		UPDATE search_history SET videos = $3
		WHERE user_id = $1 AND topic = $2
	`, userID, topic, payload)
	if err != nil {
		return false, fmt.Errorf("failed to update watch status: %w", err)
	}
	return true, nil
}
