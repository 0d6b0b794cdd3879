// Package ledger is the points/level/badge bookkeeping for user
// profiles. It owns the level formula and the point pricing; the
// store provides atomic primitives.
package ledger

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/skillora/skillora/internal/model"
)

// ErrNoProfile is returned when the target user record does not exist.
var ErrNoProfile = errors.New("profile not found")

// pointsPerLevel is the cost of one level: level = points/100 + 1.
const pointsPerLevel = 100

// ProfileStore provides the atomic persistence primitives the ledger
// drives. Implementations must make each call atomic on its own; the
// ledger never needs a transaction across calls.
type ProfileStore interface {
	// IncrementPoints adds delta to the stored total and returns the
	// new total.
	IncrementPoints(ctx context.Context, uid string, delta int) (int, error)

	// RaiseLevel sets the stored level to level only if that is an
	// increase. Levels never decrease.
	RaiseLevel(ctx context.Context, uid string, level int) error

	// AppendBadgeIfAbsent adds badge to the user's badge set and
	// reports whether it was newly added.
	AppendBadgeIfAbsent(ctx context.Context, uid, badge string) (bool, error)
}

// Ledger applies point and badge mutations to user profiles.
type Ledger struct {
	store ProfileStore
}

// New creates a Ledger over the given store.
func New(store ProfileStore) *Ledger {
	return &Ledger{store: store}
}

// LevelForPoints computes the level for a cumulative point total.
func LevelForPoints(points int) int {
	if points < 0 {
		points = 0
	}
	return points/pointsPerLevel + 1
}

// PointsForSkill prices a project point award by skill level.
func PointsForSkill(level model.SkillLevel) int {
	switch level {
	case model.SkillBeginner:
		return 50
	case model.SkillAdvanced:
		return 200
	default:
		return 100
	}
}

// AddPoints increments the user's point total and raises the level to
// match the new total. The increment is atomic; the level raise is
// conditional on being an increase, so concurrent calls cannot lower
// or lose a level.
func (l *Ledger) AddPoints(ctx context.Context, uid string, delta int) error {
	total, err := l.store.IncrementPoints(ctx, uid, delta)
	if err != nil {
		return fmt.Errorf("failed to add points: %w", err)
	}

	level := LevelForPoints(total)
	if err := l.store.RaiseLevel(ctx, uid, level); err != nil {
		return fmt.Errorf("failed to raise level: %w", err)
	}

	slog.Debug("points added", "uid", uid, "delta", delta, "total", total, "level", level)
	return nil
}

// AwardBadge adds badge to the user's badge set. Awarding a badge the
// user already has is a no-op. Awarding to a missing user reports
// ErrNoProfile.
func (l *Ledger) AwardBadge(ctx context.Context, uid, badge string) error {
	added, err := l.store.AppendBadgeIfAbsent(ctx, uid, badge)
	if err != nil {
		return fmt.Errorf("failed to award badge: %w", err)
	}
	if added {
		slog.Info("badge awarded", "uid", uid, "badge", badge)
	}
	return nil
}

// ScoreProject applies the point award and skill badge for a created
// project. The project's points were priced at creation time.
func (l *Ledger) ScoreProject(ctx context.Context, project model.Project) error {
	if err := l.AddPoints(ctx, project.UserID, project.Points); err != nil {
		return err
	}
	return l.AwardBadge(ctx, project.UserID, BadgeForSkill(project.SkillLevel))
}

// BadgeForSkill names the badge earned by completing a project at the
// given skill level.
func BadgeForSkill(level model.SkillLevel) string {
	return fmt.Sprintf("%s-builder", level)
}
