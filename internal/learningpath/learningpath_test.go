package learningpath

import (
	"context"
	"errors"
	"testing"
)

type fakeGenerator struct {
	text string
	err  error
}

func (f *fakeGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	return f.text, f.err
}

func (f *fakeGenerator) Provider() string { return "fake" }
func (f *fakeGenerator) Model() string    { return "fake-model" }

func TestGenerateSuccess(t *testing.T) {
	gen := &fakeGenerator{text: `Here you go:
{"title":"Go from Zero to Hero","description":"Learn Go properly.","steps":["Step 1: Install Go","Step 2: Learn syntax","Step 3: Write a CLI","Step 4: Learn concurrency","Step 5: Build a web service","Step 6: Profile and optimize"]}`}

	path := NewGenerator(gen).Generate(context.Background(), "Go")

	if path.Title != "Go from Zero to Hero" {
		t.Errorf("title = %q, want %q", path.Title, "Go from Zero to Hero")
	}
	if len(path.Steps) != 6 {
		t.Errorf("steps = %d, want 6", len(path.Steps))
	}
}

func TestGenerateStepCountNotEnforced(t *testing.T) {
	// A response outside the requested 5-7 range is accepted as-is.
	gen := &fakeGenerator{text: `{"title":"Quick Go","description":"Fast track.","steps":["Step 1: Read the tour","Step 2: Build something"]}`}

	path := NewGenerator(gen).Generate(context.Background(), "Go")

	if len(path.Steps) != 2 {
		t.Errorf("steps = %d, want 2 (accepted as-is)", len(path.Steps))
	}
}

func TestGenerateFallback(t *testing.T) {
	tests := []struct {
		name string
		gen  *fakeGenerator
	}{
		{name: "provider error", gen: &fakeGenerator{err: errors.New("unavailable")}},
		{name: "no JSON in response", gen: &fakeGenerator{text: "sorry, cannot help"}},
		{name: "malformed JSON", gen: &fakeGenerator{text: `{"title": "x", "steps": [`}},
		{name: "missing steps", gen: &fakeGenerator{text: `{"title":"x","description":"y","steps":[]}`}},
		{name: "missing title", gen: &fakeGenerator{text: `{"description":"y","steps":["Step 1: a"]}`}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := NewGenerator(tt.gen).Generate(context.Background(), "Rust")

			if path.Title != "Learning Path for Rust" {
				t.Errorf("title = %q, want fallback title", path.Title)
			}
			if len(path.Steps) != 5 {
				t.Errorf("steps = %d, want exactly 5 on fallback", len(path.Steps))
			}
			if path.Steps[0] != "Step 1: Understand the fundamentals" {
				t.Errorf("first step = %q", path.Steps[0])
			}
			if path.Steps[4] != "Step 5: Master advanced techniques" {
				t.Errorf("last step = %q", path.Steps[4])
			}
		})
	}
}

func TestGenerateNilGenerator(t *testing.T) {
	path := NewGenerator(nil).Generate(context.Background(), "SQL")

	if path.Title != "Learning Path for SQL" {
		t.Errorf("title = %q, want fallback title", path.Title)
	}
}
