package model

import (
	"time"

	"github.com/google/uuid"
)

// SkillLevel buckets videos and prices project point awards.
type SkillLevel string

const (
	SkillBeginner     SkillLevel = "beginner"
	SkillIntermediate SkillLevel = "intermediate"
	SkillAdvanced     SkillLevel = "advanced"
)

// Valid reports whether s is one of the three known skill levels.
func (s SkillLevel) Valid() bool {
	switch s {
	case SkillBeginner, SkillIntermediate, SkillAdvanced:
		return true
	}
	return false
}

// Video is a single candidate video returned by the video source.
// Immutable once fetched except for Watched.
type Video struct {
	ID              string     `json:"id"`
	Title           string     `json:"title"`
	Description     string     `json:"description"`
	Thumbnail       string     `json:"thumbnail"`
	ChannelTitle    string     `json:"channel_title"`
	PublishedAt     *time.Time `json:"published_at,omitempty"`
	ViewCount       *int64     `json:"view_count,omitempty"`
	LikeCount       *int64     `json:"like_count,omitempty"`
	DurationSeconds *int       `json:"duration_seconds,omitempty"`
	Watched         bool       `json:"watched"`
}

// CategorizedVideos maps each skill level to an ordered bucket of
// videos. Every input video appears in exactly one bucket.
type CategorizedVideos struct {
	Beginner     []Video `json:"beginner"`
	Intermediate []Video `json:"intermediate"`
	Advanced     []Video `json:"advanced"`
}

// Total returns the number of videos across all buckets.
func (c CategorizedVideos) Total() int {
	return len(c.Beginner) + len(c.Intermediate) + len(c.Advanced)
}

// LearningPath is an ordered curriculum of textual steps for a topic.
type LearningPath struct {
	ID          uuid.UUID `json:"id"`
	UserID      string    `json:"user_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Topic       string    `json:"topic"`
	Steps       []string  `json:"steps"`
	CreatedAt   time.Time `json:"created_at"`
}

// ProjectIdea is a single AI-suggested project for a topic.
type ProjectIdea struct {
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	Technologies []string `json:"technologies"`
	Difficulty   string   `json:"difficulty"`
}

// ProjectStatus tracks a user project through its lifecycle.
type ProjectStatus string

const (
	ProjectPlanning   ProjectStatus = "planning"
	ProjectInProgress ProjectStatus = "in-progress"
	ProjectCompleted  ProjectStatus = "completed"
)

// Valid reports whether s is a known project status.
func (s ProjectStatus) Valid() bool {
	switch s {
	case ProjectPlanning, ProjectInProgress, ProjectCompleted:
		return true
	}
	return false
}

// AwardStatus records whether the point award for a project has been
// applied to the owner's profile.
type AwardStatus string

const (
	AwardPending AwardStatus = "pending"
	AwardOK      AwardStatus = "ok"
)

// Project is a user-submitted project record. Points are priced from
// the skill level at creation time and never recomputed.
type Project struct {
	ID            uuid.UUID     `json:"id"`
	UserID        string        `json:"user_id"`
	Title         string        `json:"title"`
	Description   string        `json:"description"`
	RepositoryURL string        `json:"repository_url"`
	LiveURL       *string       `json:"live_url,omitempty"`
	Technologies  []string      `json:"technologies"`
	SkillLevel    SkillLevel    `json:"skill_level"`
	Status        ProjectStatus `json:"status"`
	Points        int           `json:"points"`
	AwardStatus   AwardStatus   `json:"-"`
	CreatedAt     time.Time     `json:"created_at"`
	LastUpdated   time.Time     `json:"last_updated"`
}

// UserProfile is the per-user gamification record. Points, level and
// badges are mutated only by the ledger.
type UserProfile struct {
	UID              string    `json:"uid"`
	DisplayName      string    `json:"display_name"`
	Email            string    `json:"email"`
	PhotoURL         string    `json:"photo_url"`
	Points           int       `json:"points"`
	Level            int       `json:"level"`
	Badges           []string  `json:"badges"`
	CompletedCourses []string  `json:"completed_courses"`
	JoinedAt         time.Time `json:"joined_at"`
}

// SearchHistory is one persisted search result: the categorized
// buckets for a (user, topic) pair. Repeating a search overwrites the
// previous entry for the same topic.
type SearchHistory struct {
	UserID     string            `json:"user_id"`
	Topic      string            `json:"topic"`
	Videos     CategorizedVideos `json:"videos"`
	SearchedAt time.Time         `json:"searched_at"`
}
