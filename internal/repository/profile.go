package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/skillora/skillora/internal/ledger"
	"github.com/skillora/skillora/internal/model"
)

// ProfileRepository handles database operations for user profiles.
// It implements ledger.ProfileStore.
type ProfileRepository struct {
	pool *pgxpool.Pool
}

// NewProfileRepository creates a new ProfileRepository
func NewProfileRepository(pool *pgxpool.Pool) *ProfileRepository {
	return &ProfileRepository{pool: pool}
}

// CreateIfAbsent inserts a profile on first sign-in. If the profile
// already exists the stored record is returned unchanged.
func (r *ProfileRepository) CreateIfAbsent(ctx context.Context, uid, displayName, email, photoURL string) (*model.UserProfile, error) {
	if displayName == "" {
		displayName = "Skillora User"
	}

	query := `
		INSERT INTO users (uid, display_name, email, photo_url)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (uid) DO NOTHING
	`
	if _, err := r.pool.Exec(ctx, query, uid, displayName, email, photoURL); err != nil {
		return nil, fmt.Errorf("failed to create profile: %w", err)
	}

	return r.GetByUID(ctx, uid)
}

// GetByUID retrieves a profile by user id
func (r *ProfileRepository) GetByUID(ctx context.Context, uid string) (*model.UserProfile, error) {
	query := `
		SELECT uid, display_name, email, photo_url, points, level, badges, completed_courses, joined_at
		FROM users
		WHERE uid = $1
	`

	var profile model.UserProfile
	err := r.pool.QueryRow(ctx, query, uid).Scan(
		&profile.UID, &profile.DisplayName, &profile.Email, &profile.PhotoURL,
		&profile.Points, &profile.Level, &profile.Badges, &profile.CompletedCourses,
		&profile.JoinedAt,
	)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}

	return &profile, nil
}

// UpdateDisplay updates the mutable display fields of a profile.
// Points, level and badges are reserved for the ledger.
func (r *ProfileRepository) UpdateDisplay(ctx context.Context, uid, displayName, photoURL string) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE users SET display_name = $2, photo_url = $3
		WHERE uid = $1
	`, uid, displayName, photoURL)
	if err != nil {
		return fmt.Errorf("failed to update profile: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ledger.ErrNoProfile
	}
	return nil
}

// IncrementPoints atomically adds delta to the stored point total and
// returns the new total.
func (r *ProfileRepository) IncrementPoints(ctx context.Context, uid string, delta int) (int, error) {
	var total int
	err := r.pool.QueryRow(ctx, `
		UPDATE users SET points = points + $2
		WHERE uid = $1
		RETURNING points
	`, uid, delta).Scan(&total)
	if err == pgx.ErrNoRows {
		return 0, ledger.ErrNoProfile
	}
	if err != nil {
		return 0, fmt.Errorf("failed to increment points: %w", err)
	}
	return total, nil
}

// RaiseLevel sets the stored level to level only when that is an
// increase, so levels never decrease.
func (r *ProfileRepository) RaiseLevel(ctx context.Context, uid string, level int) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE users SET level = $2
		WHERE uid = $1 AND level < $2
	`, uid, level)
	if err != nil {
		return fmt.Errorf("failed to raise level: %w", err)
	}
	return nil
}

// AppendBadgeIfAbsent adds badge to the user's badge set and reports
// whether it was newly added. The conditional append keeps set
// semantics without a read-modify-write.
func (r *ProfileRepository) AppendBadgeIfAbsent(ctx context.Context, uid, badge string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM users WHERE uid = $1)`, uid).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check profile: %w", err)
	}
	if !exists {
		return false, ledger.ErrNoProfile
	}

	tag, err := r.pool.Exec(ctx, `
		UPDATE users SET badges = array_append(badges, $2)
		WHERE uid = $1 AND NOT ($2 = ANY(badges))
	`, uid, badge)
	if err != nil {
		return false, fmt.Errorf("failed to append badge: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// AddCompletedCourse records a completed course id, set semantics.
func (r *ProfileRepository) AddCompletedCourse(ctx context.Context, uid, courseID string) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE users SET completed_courses = array_append(completed_courses, $2)
		WHERE uid = $1 AND NOT ($2 = ANY(completed_courses))
	`, uid, courseID)
	if err != nil {
		return fmt.Errorf("failed to add completed course: %w", err)
	}
	return nil
}
