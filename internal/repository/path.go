package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/skillora/skillora/internal/model"
)

// PathRepository handles database operations for learning paths
type PathRepository struct {
	pool *pgxpool.Pool
}

// NewPathRepository creates a new PathRepository
func NewPathRepository(pool *pgxpool.Pool) *PathRepository {
	return &PathRepository{pool: pool}
}

// Create inserts a new learning path
func (r *PathRepository) Create(ctx context.Context, userID, topic, title, description string, steps []string) (*model.LearningPath, error) {
	query := `
		INSERT INTO learning_paths (id, user_id, title, description, topic, steps)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, user_id, title, description, topic, steps, created_at
	`

	var path model.LearningPath
	err := r.pool.QueryRow(ctx, query, uuid.New(), userID, title, description, topic, steps).Scan(
		&path.ID, &path.UserID, &path.Title, &path.Description, &path.Topic, &path.Steps, &path.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create learning path: %w", err)
	}

	return &path, nil
}

// GetByID retrieves a learning path by ID
func (r *PathRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.LearningPath, error) {
	query := `
		SELECT id, user_id, title, description, topic, steps, created_at
		FROM learning_paths
		WHERE id = $1
	`

	var path model.LearningPath
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&path.ID, &path.UserID, &path.Title, &path.Description, &path.Topic, &path.Steps, &path.CreatedAt,
	)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get learning path: %w", err)
	}

	return &path, nil
}

// ListByUser retrieves a user's learning paths, newest first
func (r *PathRepository) ListByUser(ctx context.Context, userID string) ([]model.LearningPath, error) {
	query := `
		SELECT id, user_id, title, description, topic, steps, created_at
		FROM learning_paths
		WHERE user_id = $1
		ORDER BY created_at DESC
	`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list learning paths: %w", err)
	}
	defer rows.Close()

	var paths []model.LearningPath
	for rows.Next() {
		var path model.LearningPath
		if err := rows.Scan(
			&path.ID, &path.UserID, &path.Title, &path.Description, &path.Topic, &path.Steps, &path.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan learning path: %w", err)
		}
		paths = append(paths, path)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list learning paths: %w", err)
	}

	return paths, nil
}

// Update overwrites the mutable fields of a learning path. ID, owner,
// topic and creation time are never updated.
func (r *PathRepository) Update(ctx context.Context, id uuid.UUID, title, description string, steps []string) (*model.LearningPath, error) {
	query := `
		UPDATE learning_paths
		SET title = $2, description = $3, steps = $4
		WHERE id = $1
		RETURNING id, user_id, title, description, topic, steps, created_at
	`

	var path model.LearningPath
	err := r.pool.QueryRow(ctx, query, id, title, description, steps).Scan(
		&path.ID, &path.UserID, &path.Title, &path.Description, &path.Topic, &path.Steps, &path.CreatedAt,
	)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update learning path: %w", err)
	}

	return &path, nil
}

// Delete removes a learning path. Returns false if it did not exist.
func (r *PathRepository) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM learning_paths WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete learning path: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}
