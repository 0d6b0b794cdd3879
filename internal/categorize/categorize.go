// Package categorize partitions a list of candidate videos into
// beginner, intermediate and advanced buckets. The AI provider
// proposes the assignment; deterministic positional slicing covers
// every failure mode, so callers always get a full partition and
// never see an error.
package categorize

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/skillora/skillora/internal/generate"
	"github.com/skillora/skillora/internal/model"
)

// slice boundaries for positional fallback and backfill
const (
	beginnerEnd     = 5
	intermediateEnd = 10
)

// Categorizer buckets videos by skill level using a text generator.
type Categorizer struct {
	gen generate.TextGenerator
}

// New creates a Categorizer. gen may be nil, in which case every call
// takes the positional fallback path.
func New(gen generate.TextGenerator) *Categorizer {
	return &Categorizer{gen: gen}
}

// Categorize partitions videos into skill-level buckets. The provider
// is tried once; any failure falls back to Fallback. The fallback
// policy is applied here, visibly, rather than inside the provider
// call.
func (c *Categorizer) Categorize(ctx context.Context, videos []model.Video, topic string) model.CategorizedVideos {
	if c.gen == nil {
		return Fallback(videos)
	}

	buckets, err := c.fromProvider(ctx, videos, topic)
	if err != nil {
		slog.Warn("video categorization fell back to positional slicing", "topic", topic, "error", err)
		return Fallback(videos)
	}
	return buckets
}

// fromProvider asks the generator for an assignment and maps it back
// to the input videos. It returns an error only when the response
// cannot be decoded at all; partially useful assignments are repaired
// by backfill.
func (c *Categorizer) fromProvider(ctx context.Context, videos []model.Video, topic string) (model.CategorizedVideos, error) {
	text, err := c.gen.Generate(ctx, buildPrompt(videos, topic))
	if err != nil {
		return model.CategorizedVideos{}, err
	}

	var assignment struct {
		Beginner     []string `json:"beginner"`
		Intermediate []string `json:"intermediate"`
		Advanced     []string `json:"advanced"`
	}

	jsonStr, err := generate.FirstObject(text)
	if err != nil {
		return model.CategorizedVideos{}, fmt.Errorf("provider response has no JSON object: %w", err)
	}
	if err := json.Unmarshal([]byte(jsonStr), &assignment); err != nil {
		return model.CategorizedVideos{}, fmt.Errorf("failed to decode assignment: %w", err)
	}

	byID := make(map[string]model.Video, len(videos))
	for _, v := range videos {
		byID[v.ID] = v
	}

	// IDs the provider invented are dropped silently; a video assigned
	// to more than one bucket stays in the first.
	assigned := make(map[string]bool, len(videos))
	pick := func(ids []string) []model.Video {
		var out []model.Video
		for _, id := range ids {
			v, ok := byID[id]
			if !ok || assigned[id] {
				continue
			}
			assigned[id] = true
			out = append(out, v)
		}
		return out
	}

	buckets := model.CategorizedVideos{
		Beginner:     pick(assignment.Beginner),
		Intermediate: pick(assignment.Intermediate),
		Advanced:     pick(assignment.Advanced),
	}

	backfill(&buckets, videos, assigned)
	return buckets, nil
}

// backfill populates buckets the provider left empty with positional
// slices of the input: [0,5) beginner, [5,10) intermediate, [10,N)
// advanced. Videos already assigned to another bucket are skipped so
// the partition stays disjoint.
func backfill(buckets *model.CategorizedVideos, videos []model.Video, assigned map[string]bool) {
	take := func(lo, hi int) []model.Video {
		if hi > len(videos) {
			hi = len(videos)
		}
		var out []model.Video
		for i := lo; i < hi && i < len(videos); i++ {
			if assigned[videos[i].ID] {
				continue
			}
			assigned[videos[i].ID] = true
			out = append(out, videos[i])
		}
		return out
	}

	if len(buckets.Beginner) == 0 {
		buckets.Beginner = take(0, beginnerEnd)
	}
	if len(buckets.Intermediate) == 0 && len(videos) > beginnerEnd {
		buckets.Intermediate = take(beginnerEnd, intermediateEnd)
	}
	if len(buckets.Advanced) == 0 && len(videos) > intermediateEnd {
		buckets.Advanced = take(intermediateEnd, len(videos))
	}
}

// Fallback categorizes by strict input order: the first five videos
// are beginner, the next five intermediate, the rest advanced. This
// path preserves the partition invariant exactly.
func Fallback(videos []model.Video) model.CategorizedVideos {
	var buckets model.CategorizedVideos
	for i, v := range videos {
		switch {
		case i < beginnerEnd:
			buckets.Beginner = append(buckets.Beginner, v)
		case i < intermediateEnd:
			buckets.Intermediate = append(buckets.Intermediate, v)
		default:
			buckets.Advanced = append(buckets.Advanced, v)
		}
	}
	return buckets
}

func buildPrompt(videos []model.Video, topic string) string {
	var sb strings.Builder

	sb.WriteString("I have a list of YouTube videos about \"")
	sb.WriteString(topic)
	sb.WriteString("\".\n")
	sb.WriteString("Categorize them into beginner, intermediate, and advanced levels based on their titles and descriptions.\n\nVideos:\n")

	for _, v := range videos {
		desc := v.Description
		if len(desc) > 300 {
			desc = desc[:300] + "..."
		}
		sb.WriteString("- id: ")
		sb.WriteString(v.ID)
		sb.WriteString("\n  title: ")
		sb.WriteString(v.Title)
		sb.WriteString("\n  description: ")
		sb.WriteString(desc)
		sb.WriteString("\n")
	}

	sb.WriteString("\nReturn ONLY a valid JSON object with three arrays named beginner, intermediate, and advanced, ")
	sb.WriteString("each containing the video IDs that belong to that category. Assign every video to exactly one category.")

	return sb.String()
}
