package categorize

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/skillora/skillora/internal/model"
)

// fakeGenerator returns a canned response or error.
type fakeGenerator struct {
	text string
	err  error
}

func (f *fakeGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	return f.text, f.err
}

func (f *fakeGenerator) Provider() string { return "fake" }
func (f *fakeGenerator) Model() string    { return "fake-model" }

func makeVideos(n int) []model.Video {
	videos := make([]model.Video, n)
	for i := range videos {
		videos[i] = model.Video{
			ID:    fmt.Sprintf("video-%d", i),
			Title: fmt.Sprintf("Video %d", i),
		}
	}
	return videos
}

func bucketIDs(videos []model.Video) []string {
	ids := make([]string, len(videos))
	for i, v := range videos {
		ids[i] = v.ID
	}
	return ids
}

// assertPartition checks that the buckets form an exact partition of
// the input: no loss, no duplication.
func assertPartition(t *testing.T, buckets model.CategorizedVideos, input []model.Video) {
	t.Helper()

	seen := make(map[string]int)
	for _, b := range [][]model.Video{buckets.Beginner, buckets.Intermediate, buckets.Advanced} {
		for _, v := range b {
			seen[v.ID]++
		}
	}

	if len(seen) != len(input) {
		t.Fatalf("partition covers %d videos, want %d", len(seen), len(input))
	}
	for _, v := range input {
		if seen[v.ID] != 1 {
			t.Errorf("video %s appears %d times, want exactly once", v.ID, seen[v.ID])
		}
	}
}

func TestCategorizeProviderError(t *testing.T) {
	// 12 videos, provider throws: strict positional slicing.
	videos := makeVideos(12)
	c := New(&fakeGenerator{err: errors.New("provider unavailable")})

	buckets := c.Categorize(context.Background(), videos, "Rust")

	assertPartition(t, buckets, videos)
	if got, want := len(buckets.Beginner), 5; got != want {
		t.Errorf("beginner size = %d, want %d", got, want)
	}
	if got, want := len(buckets.Intermediate), 5; got != want {
		t.Errorf("intermediate size = %d, want %d", got, want)
	}
	if got, want := len(buckets.Advanced), 2; got != want {
		t.Errorf("advanced size = %d, want %d", got, want)
	}
	for i, v := range buckets.Beginner {
		if v.ID != videos[i].ID {
			t.Errorf("beginner[%d] = %s, want %s", i, v.ID, videos[i].ID)
		}
	}
	for i, v := range buckets.Intermediate {
		if v.ID != videos[i+5].ID {
			t.Errorf("intermediate[%d] = %s, want %s", i, v.ID, videos[i+5].ID)
		}
	}
	for i, v := range buckets.Advanced {
		if v.ID != videos[i+10].ID {
			t.Errorf("advanced[%d] = %s, want %s", i, v.ID, videos[i+10].ID)
		}
	}
}

func TestFallbackSizes(t *testing.T) {
	tests := []struct {
		n                                int
		beginner, intermediate, advanced int
	}{
		{0, 0, 0, 0},
		{3, 3, 0, 0},
		{5, 5, 0, 0},
		{7, 5, 2, 0},
		{10, 5, 5, 0},
		{15, 5, 5, 5},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("n=%d", tt.n), func(t *testing.T) {
			videos := makeVideos(tt.n)
			buckets := Fallback(videos)

			assertPartition(t, buckets, videos)
			if len(buckets.Beginner) != tt.beginner {
				t.Errorf("beginner size = %d, want %d", len(buckets.Beginner), tt.beginner)
			}
			if len(buckets.Intermediate) != tt.intermediate {
				t.Errorf("intermediate size = %d, want %d", len(buckets.Intermediate), tt.intermediate)
			}
			if len(buckets.Advanced) != tt.advanced {
				t.Errorf("advanced size = %d, want %d", len(buckets.Advanced), tt.advanced)
			}
		})
	}
}

func TestCategorizeProviderResponseWithProse(t *testing.T) {
	videos := makeVideos(3)
	gen := &fakeGenerator{text: `Here is the categorization you requested:

{"beginner": ["video-0"], "intermediate": ["video-1"], "advanced": ["video-2"]}

Hope this helps!`}

	c := New(gen)
	buckets := c.Categorize(context.Background(), videos, "Go")

	assertPartition(t, buckets, videos)
	if len(buckets.Beginner) != 1 || buckets.Beginner[0].ID != "video-0" {
		t.Errorf("beginner = %v, want [video-0]", bucketIDs(buckets.Beginner))
	}
	if len(buckets.Intermediate) != 1 || buckets.Intermediate[0].ID != "video-1" {
		t.Errorf("intermediate = %v, want [video-1]", bucketIDs(buckets.Intermediate))
	}
	if len(buckets.Advanced) != 1 || buckets.Advanced[0].ID != "video-2" {
		t.Errorf("advanced = %v, want [video-2]", bucketIDs(buckets.Advanced))
	}
}

func TestCategorizeMalformedResponse(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{name: "no JSON at all", text: "I cannot categorize these videos."},
		{name: "unbalanced object", text: `{"beginner": ["video-0"`},
		{name: "not an object shape", text: `{"beginner": "video-0"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			videos := makeVideos(12)
			c := New(&fakeGenerator{text: tt.text})

			buckets := c.Categorize(context.Background(), videos, "Go")

			// Whatever the provider said, the result is a full
			// positional partition.
			assertPartition(t, buckets, videos)
			if len(buckets.Beginner) != 5 || len(buckets.Intermediate) != 5 || len(buckets.Advanced) != 2 {
				t.Errorf("bucket sizes = %d/%d/%d, want 5/5/2",
					len(buckets.Beginner), len(buckets.Intermediate), len(buckets.Advanced))
			}
		})
	}
}

func TestCategorizeDropsUnknownIDs(t *testing.T) {
	videos := makeVideos(2)
	gen := &fakeGenerator{text: `{"beginner": ["video-0", "made-up-id"], "intermediate": ["video-1"], "advanced": []}`}

	c := New(gen)
	buckets := c.Categorize(context.Background(), videos, "Go")

	assertPartition(t, buckets, videos)
	if len(buckets.Beginner) != 1 {
		t.Errorf("beginner = %v, want only video-0", bucketIDs(buckets.Beginner))
	}
}

func TestCategorizeBackfillStaysDisjoint(t *testing.T) {
	// The provider assigns only two videos; backfill must fill the
	// empty buckets without double-counting the assigned ones.
	videos := makeVideos(12)
	gen := &fakeGenerator{text: `{"beginner": [], "intermediate": ["video-0", "video-6"], "advanced": []}`}

	c := New(gen)
	buckets := c.Categorize(context.Background(), videos, "Go")

	seen := make(map[string]int)
	for _, b := range [][]model.Video{buckets.Beginner, buckets.Intermediate, buckets.Advanced} {
		for _, v := range b {
			seen[v.ID]++
		}
	}
	for id, n := range seen {
		if n > 1 {
			t.Errorf("video %s appears %d times across buckets", id, n)
		}
	}

	// video-0 went to intermediate, so beginner backfill gets the
	// remaining four of the first five.
	if got, want := len(buckets.Beginner), 4; got != want {
		t.Errorf("beginner size = %d, want %d", got, want)
	}
	if got, want := len(buckets.Intermediate), 2; got != want {
		t.Errorf("intermediate size = %d, want %d", got, want)
	}
	// advanced backfill gets [10,12)
	if got, want := len(buckets.Advanced), 2; got != want {
		t.Errorf("advanced size = %d, want %d", got, want)
	}
}

func TestCategorizeDuplicateAssignmentKeptOnce(t *testing.T) {
	videos := makeVideos(2)
	gen := &fakeGenerator{text: `{"beginner": ["video-0"], "intermediate": ["video-0"], "advanced": ["video-1"]}`}

	c := New(gen)
	buckets := c.Categorize(context.Background(), videos, "Go")

	assertPartition(t, buckets, videos)
	if len(buckets.Beginner) != 1 || buckets.Beginner[0].ID != "video-0" {
		t.Errorf("beginner = %v, want [video-0]", bucketIDs(buckets.Beginner))
	}
	if len(buckets.Intermediate) != 0 {
		t.Errorf("intermediate = %v, want empty after dedupe and no backfill (N <= 5)", bucketIDs(buckets.Intermediate))
	}
}

func TestCategorizeNilGenerator(t *testing.T) {
	videos := makeVideos(6)
	c := New(nil)

	buckets := c.Categorize(context.Background(), videos, "Go")

	assertPartition(t, buckets, videos)
	if len(buckets.Beginner) != 5 || len(buckets.Intermediate) != 1 {
		t.Errorf("bucket sizes = %d/%d, want 5/1", len(buckets.Beginner), len(buckets.Intermediate))
	}
}
