package generate

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

const (
	geminiProvider     = "gemini"
	geminiDefaultModel = "gemini-2.5-flash-lite"
)

// GeminiGenerator implements TextGenerator using Google's Gemini API
type GeminiGenerator struct {
	client    *genai.Client
	model     *genai.GenerativeModel
	modelName string
}

// NewGeminiGenerator creates a new Gemini text generator
func NewGeminiGenerator(ctx context.Context, apiKey string) (*GeminiGenerator, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	model := client.GenerativeModel(geminiDefaultModel)

	// Low temperature keeps the JSON payloads parseable
	temp := float32(0.2)
	model.Temperature = &temp

	maxTokens := int32(2048)
	model.MaxOutputTokens = &maxTokens

	return &GeminiGenerator{
		client:    client,
		model:     model,
		modelName: geminiDefaultModel,
	}, nil
}

func (g *GeminiGenerator) Provider() string { return geminiProvider }
func (g *GeminiGenerator) Model() string    { return g.modelName }

func (g *GeminiGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	resp, err := g.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("gemini generation failed: %w", err)
	}

	text := extractText(resp)
	if text == "" {
		return "", fmt.Errorf("no text generated")
	}

	return text, nil
}

// Close closes the Gemini client
func (g *GeminiGenerator) Close() error {
	return g.client.Close()
}

func extractText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 {
		return ""
	}

	candidate := resp.Candidates[0]
	if candidate.Content == nil || len(candidate.Content.Parts) == 0 {
		return ""
	}

	var result strings.Builder
	for _, part := range candidate.Content.Parts {
		if text, ok := part.(genai.Text); ok {
			result.WriteString(string(text))
		}
	}

	return strings.TrimSpace(result.String())
}
