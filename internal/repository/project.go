package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/skillora/skillora/internal/model"
)

// ProjectRepository handles database operations for user projects
type ProjectRepository struct {
	pool *pgxpool.Pool
}

// NewProjectRepository creates a new ProjectRepository
func NewProjectRepository(pool *pgxpool.Pool) *ProjectRepository {
	return &ProjectRepository{pool: pool}
}

const projectColumns = `id, user_id, title, description, repository_url, live_url,
	technologies, skill_level, status, points, award_status, created_at, last_updated`

func scanProject(row pgx.Row) (*model.Project, error) {
	var p model.Project
	err := row.Scan(
		&p.ID, &p.UserID, &p.Title, &p.Description, &p.RepositoryURL, &p.LiveURL,
		&p.Technologies, &p.SkillLevel, &p.Status, &p.Points, &p.AwardStatus,
		&p.CreatedAt, &p.LastUpdated,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// CreateProjectInput represents input for creating a new project
type CreateProjectInput struct {
	UserID        string
	Title         string
	Description   string
	RepositoryURL string
	LiveURL       *string
	Technologies  []string
	SkillLevel    model.SkillLevel
	Status        model.ProjectStatus
	Points        int
}

// Create inserts a new project with its point award still pending
func (r *ProjectRepository) Create(ctx context.Context, input *CreateProjectInput) (*model.Project, error) {
	query := `
		INSERT INTO projects (id, user_id, title, description, repository_url, live_url,
			technologies, skill_level, status, points, award_status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING ` + projectColumns

	project, err := scanProject(r.pool.QueryRow(ctx, query,
		uuid.New(), input.UserID, input.Title, input.Description, input.RepositoryURL,
		input.LiveURL, input.Technologies, input.SkillLevel, input.Status, input.Points,
		model.AwardPending,
	))
	if err != nil {
		return nil, fmt.Errorf("failed to create project: %w", err)
	}

	return project, nil
}

// GetByID retrieves a project by ID
func (r *ProjectRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Project, error) {
	query := `SELECT ` + projectColumns + ` FROM projects WHERE id = $1`

	project, err := scanProject(r.pool.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get project: %w", err)
	}

	return project, nil
}

// ListByUser retrieves a user's projects, most recently updated first
func (r *ProjectRepository) ListByUser(ctx context.Context, userID string) ([]model.Project, error) {
	query := `SELECT ` + projectColumns + ` FROM projects
		WHERE user_id = $1
		ORDER BY last_updated DESC`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	defer rows.Close()

	var projects []model.Project
	for rows.Next() {
		project, err := scanProject(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan project: %w", err)
		}
		projects = append(projects, *project)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}

	return projects, nil
}

// UpdateProjectInput represents the mutable fields of a project.
// ID, owner, points and creation time are never updated.
type UpdateProjectInput struct {
	Title         string
	Description   string
	RepositoryURL string
	LiveURL       *string
	Technologies  []string
	Status        model.ProjectStatus
}

// Update overwrites the mutable fields and bumps last_updated
func (r *ProjectRepository) Update(ctx context.Context, id uuid.UUID, input *UpdateProjectInput) (*model.Project, error) {
	query := `
		UPDATE projects
		SET title = $2, description = $3, repository_url = $4, live_url = $5,
			technologies = $6, status = $7, last_updated = now()
		WHERE id = $1
		RETURNING ` + projectColumns

	project, err := scanProject(r.pool.QueryRow(ctx, query,
		id, input.Title, input.Description, input.RepositoryURL, input.LiveURL,
		input.Technologies, input.Status,
	))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update project: %w", err)
	}

	return project, nil
}

// Delete removes a project. Returns false if it did not exist.
func (r *ProjectRepository) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM projects WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete project: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// ListUnscored retrieves projects whose point award is still pending,
// oldest first, limited to batchSize
func (r *ProjectRepository) ListUnscored(ctx context.Context, batchSize int) ([]model.Project, error) {
	query := `SELECT ` + projectColumns + ` FROM projects
		WHERE award_status = $1
		ORDER BY created_at
		LIMIT $2`

	rows, err := r.pool.Query(ctx, query, model.AwardPending, batchSize)
	if err != nil {
		return nil, fmt.Errorf("failed to list unscored projects: %w", err)
	}
	defer rows.Close()

	var projects []model.Project
	for rows.Next() {
		project, err := scanProject(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan project: %w", err)
		}
		projects = append(projects, *project)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list unscored projects: %w", err)
	}

	return projects, nil
}

// MarkScored records that the project's point award has been applied
func (r *ProjectRepository) MarkScored(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE projects SET award_status = $2 WHERE id = $1
	`, id, model.AwardOK)
	if err != nil {
		return fmt.Errorf("failed to mark project scored: %w", err)
	}
	return nil
}
