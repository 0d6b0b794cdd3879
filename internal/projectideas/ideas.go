// Package projectideas suggests project ideas for a topic and skill
// level via the text-generation provider, with a fixed three-item
// fallback.
package projectideas

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/skillora/skillora/internal/generate"
	"github.com/skillora/skillora/internal/model"
)

// DefaultSkillLevel is assumed when the caller does not name one.
const DefaultSkillLevel = model.SkillIntermediate

// Generator produces project ideas for topics.
type Generator struct {
	gen generate.TextGenerator
}

// NewGenerator creates a Generator. gen may be nil; every call then
// returns the fallback ideas.
func NewGenerator(gen generate.TextGenerator) *Generator {
	return &Generator{gen: gen}
}

// Generate asks the provider for three project ideas. The provider is
// tried once; any failure yields the fixed fallback. The length of a
// successful response is accepted as-is.
func (g *Generator) Generate(ctx context.Context, topic string, skillLevel model.SkillLevel) []model.ProjectIdea {
	if !skillLevel.Valid() {
		skillLevel = DefaultSkillLevel
	}
	if g.gen == nil {
		return Fallback(topic)
	}

	ideas, err := g.fromProvider(ctx, topic, skillLevel)
	if err != nil {
		slog.Warn("project idea generation fell back to defaults", "topic", topic, "error", err)
		return Fallback(topic)
	}
	return ideas
}

func (g *Generator) fromProvider(ctx context.Context, topic string, skillLevel model.SkillLevel) ([]model.ProjectIdea, error) {
	text, err := g.gen.Generate(ctx, buildPrompt(topic, skillLevel))
	if err != nil {
		return nil, err
	}

	jsonStr, err := generate.FirstArray(text)
	if err != nil {
		return nil, fmt.Errorf("provider response has no JSON array: %w", err)
	}

	var ideas []model.ProjectIdea
	if err := json.Unmarshal([]byte(jsonStr), &ideas); err != nil {
		return nil, fmt.Errorf("failed to decode project ideas: %w", err)
	}
	if len(ideas) == 0 {
		return nil, fmt.Errorf("provider returned no ideas")
	}

	return ideas, nil
}

// Fallback returns the fixed three ideas keyed off topic.
func Fallback(topic string) []model.ProjectIdea {
	return []model.ProjectIdea{
		{
			Title:        fmt.Sprintf("%s Portfolio Project", topic),
			Description:  fmt.Sprintf("Build a portfolio showcasing your %s skills.", topic),
			Technologies: []string{topic, "HTML", "CSS"},
			Difficulty:   "Medium",
		},
		{
			Title:        fmt.Sprintf("%s Tutorial App", topic),
			Description:  fmt.Sprintf("Create an interactive tutorial application for %s.", topic),
			Technologies: []string{topic, "JavaScript", "React"},
			Difficulty:   "Medium",
		},
		{
			Title:        fmt.Sprintf("%s Data Visualization", topic),
			Description:  fmt.Sprintf("Develop a data visualization tool related to %s.", topic),
			Technologies: []string{topic, "D3.js", "SVG"},
			Difficulty:   "Hard",
		},
	}
}

func buildPrompt(topic string, skillLevel model.SkillLevel) string {
	return fmt.Sprintf(`Generate 3 project ideas for someone learning "%s" at a %s level.
Return your response as a valid JSON array with objects having this structure:
[
  {
    "title": "Project title",
    "description": "Brief description of the project",
    "technologies": ["Tech 1", "Tech 2"],
    "difficulty": "Easy/Medium/Hard"
  }
]
The response should be ONLY the JSON array, nothing else.`, topic, skillLevel)
}
