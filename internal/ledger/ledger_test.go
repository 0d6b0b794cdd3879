package ledger

import (
	"context"
	"slices"
	"testing"

	"github.com/skillora/skillora/internal/model"
)

// memStore is a dumb in-memory ProfileStore. It stores exactly what
// it is told; all formula logic stays in the Ledger under test.
type memStore struct {
	points map[string]int
	levels map[string]int
	badges map[string][]string
}

func newMemStore(uids ...string) *memStore {
	s := &memStore{
		points: make(map[string]int),
		levels: make(map[string]int),
		badges: make(map[string][]string),
	}
	for _, uid := range uids {
		s.points[uid] = 0
		s.levels[uid] = 1
		s.badges[uid] = nil
	}
	return s
}

func (s *memStore) IncrementPoints(ctx context.Context, uid string, delta int) (int, error) {
	if _, ok := s.points[uid]; !ok {
		return 0, ErrNoProfile
	}
	s.points[uid] += delta
	return s.points[uid], nil
}

func (s *memStore) RaiseLevel(ctx context.Context, uid string, level int) error {
	if _, ok := s.levels[uid]; !ok {
		return ErrNoProfile
	}
	if level > s.levels[uid] {
		s.levels[uid] = level
	}
	return nil
}

func (s *memStore) AppendBadgeIfAbsent(ctx context.Context, uid, badge string) (bool, error) {
	if _, ok := s.points[uid]; !ok {
		return false, ErrNoProfile
	}
	if slices.Contains(s.badges[uid], badge) {
		return false, nil
	}
	s.badges[uid] = append(s.badges[uid], badge)
	return true, nil
}

func TestLevelForPoints(t *testing.T) {
	tests := []struct {
		points int
		want   int
	}{
		{0, 1},
		{50, 1},
		{99, 1},
		{100, 2},
		{110, 2},
		{199, 2},
		{200, 3},
		{1000, 11},
		{-5, 1},
	}

	for _, tt := range tests {
		if got := LevelForPoints(tt.points); got != tt.want {
			t.Errorf("LevelForPoints(%d) = %d, want %d", tt.points, got, tt.want)
		}
	}
}

func TestPointsForSkill(t *testing.T) {
	tests := []struct {
		level model.SkillLevel
		want  int
	}{
		{model.SkillBeginner, 50},
		{model.SkillIntermediate, 100},
		{model.SkillAdvanced, 200},
	}

	for _, tt := range tests {
		if got := PointsForSkill(tt.level); got != tt.want {
			t.Errorf("PointsForSkill(%s) = %d, want %d", tt.level, got, tt.want)
		}
	}
}

func TestAddPointsLevelProgression(t *testing.T) {
	// Fresh user with 0 points and level 1: +50 keeps level 1,
	// a further +60 reaches 110 points and level 2.
	store := newMemStore("u1")
	l := New(store)
	ctx := context.Background()

	if err := l.AddPoints(ctx, "u1", 50); err != nil {
		t.Fatalf("AddPoints: %v", err)
	}
	if store.points["u1"] != 50 || store.levels["u1"] != 1 {
		t.Errorf("after +50: points=%d level=%d, want 50/1", store.points["u1"], store.levels["u1"])
	}

	if err := l.AddPoints(ctx, "u1", 60); err != nil {
		t.Fatalf("AddPoints: %v", err)
	}
	if store.points["u1"] != 110 || store.levels["u1"] != 2 {
		t.Errorf("after +60: points=%d level=%d, want 110/2", store.points["u1"], store.levels["u1"])
	}
}

func TestAddPointsLevelMonotonic(t *testing.T) {
	store := newMemStore("u1")
	l := New(store)
	ctx := context.Background()

	deltas := []int{50, 100, 200, 0, 50, 100}
	total := 0
	prevLevel := store.levels["u1"]

	for _, d := range deltas {
		if err := l.AddPoints(ctx, "u1", d); err != nil {
			t.Fatalf("AddPoints(%d): %v", d, err)
		}
		total += d

		if store.levels["u1"] < prevLevel {
			t.Errorf("level decreased: %d -> %d", prevLevel, store.levels["u1"])
		}
		prevLevel = store.levels["u1"]
	}

	if store.points["u1"] != total {
		t.Errorf("points = %d, want %d", store.points["u1"], total)
	}
	if want := LevelForPoints(total); store.levels["u1"] != want {
		t.Errorf("level = %d, want %d", store.levels["u1"], want)
	}
}

func TestAddPointsMissingUser(t *testing.T) {
	l := New(newMemStore())

	if err := l.AddPoints(context.Background(), "ghost", 50); err == nil {
		t.Error("AddPoints for missing user did not fail")
	}
}

func TestAwardBadgeIdempotent(t *testing.T) {
	store := newMemStore("u1")
	l := New(store)
	ctx := context.Background()

	if err := l.AwardBadge(ctx, "u1", "beginner-builder"); err != nil {
		t.Fatalf("AwardBadge: %v", err)
	}
	if err := l.AwardBadge(ctx, "u1", "beginner-builder"); err != nil {
		t.Fatalf("AwardBadge (second): %v", err)
	}

	count := 0
	for _, b := range store.badges["u1"] {
		if b == "beginner-builder" {
			count++
		}
	}
	if count != 1 {
		t.Errorf("badge appears %d times, want exactly once", count)
	}
}

func TestAwardBadgeMissingUser(t *testing.T) {
	l := New(newMemStore())

	if err := l.AwardBadge(context.Background(), "ghost", "x"); err == nil {
		t.Error("AwardBadge for missing user did not fail")
	}
}

func TestScoreProject(t *testing.T) {
	store := newMemStore("u1")
	l := New(store)

	project := model.Project{
		UserID:     "u1",
		SkillLevel: model.SkillAdvanced,
		Points:     PointsForSkill(model.SkillAdvanced),
	}

	if err := l.ScoreProject(context.Background(), project); err != nil {
		t.Fatalf("ScoreProject: %v", err)
	}

	if store.points["u1"] != 200 {
		t.Errorf("points = %d, want 200", store.points["u1"])
	}
	if store.levels["u1"] != 3 {
		t.Errorf("level = %d, want 3", store.levels["u1"])
	}
	if !slices.Contains(store.badges["u1"], "advanced-builder") {
		t.Errorf("badges = %v, want advanced-builder", store.badges["u1"])
	}
}
