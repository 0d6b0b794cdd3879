// Package learningpath turns a topic into an ordered curriculum of
// textual steps via the text-generation provider, with a fixed
// deterministic fallback.
package learningpath

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/skillora/skillora/internal/generate"
)

// Path is a generated curriculum before persistence.
type Path struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Steps       []string `json:"steps"`
}

// Generator produces learning paths for topics.
type Generator struct {
	gen generate.TextGenerator
}

// NewGenerator creates a Generator. gen may be nil; every call then
// returns the fallback path.
func NewGenerator(gen generate.TextGenerator) *Generator {
	return &Generator{gen: gen}
}

// Generate asks the provider for a titled 5-7 step curriculum. The
// provider is tried once; any failure yields the fixed fallback. The
// step count of a successful response is accepted as-is.
func (g *Generator) Generate(ctx context.Context, topic string) Path {
	if g.gen == nil {
		return Fallback(topic)
	}

	path, err := g.fromProvider(ctx, topic)
	if err != nil {
		slog.Warn("learning path generation fell back to template", "topic", topic, "error", err)
		return Fallback(topic)
	}
	return path
}

func (g *Generator) fromProvider(ctx context.Context, topic string) (Path, error) {
	text, err := g.gen.Generate(ctx, buildPrompt(topic))
	if err != nil {
		return Path{}, err
	}

	jsonStr, err := generate.FirstObject(text)
	if err != nil {
		return Path{}, fmt.Errorf("provider response has no JSON object: %w", err)
	}

	var path Path
	if err := json.Unmarshal([]byte(jsonStr), &path); err != nil {
		return Path{}, fmt.Errorf("failed to decode learning path: %w", err)
	}
	if path.Title == "" || len(path.Steps) == 0 {
		return Path{}, fmt.Errorf("learning path is missing title or steps")
	}

	return path, nil
}

// Fallback returns the fixed five-step generic curriculum for topic.
func Fallback(topic string) Path {
	return Path{
		Title:       fmt.Sprintf("Learning Path for %s", topic),
		Description: fmt.Sprintf("A structured approach to mastering %s from beginner to advanced level.", topic),
		Steps: []string{
			"Step 1: Understand the fundamentals",
			"Step 2: Practice with simple projects",
			"Step 3: Learn intermediate concepts",
			"Step 4: Build more complex projects",
			"Step 5: Master advanced techniques",
		},
	}
}

func buildPrompt(topic string) string {
	return fmt.Sprintf(`Create a learning path for someone who wants to learn "%s".
Return your response as a valid JSON object with the following structure:
{
  "title": "A catchy title for the learning path",
  "description": "A brief description of what the learner will achieve",
  "steps": ["Step 1: ...", "Step 2: ...", "Step 3: ..."] (5-7 steps)
}
The response should be ONLY the JSON object, nothing else.`, topic)
}
