package generate

import "context"

// TextGenerator defines the interface for AI text generation.
// Implementations return the raw provider text; callers extract and
// decode any embedded JSON payload themselves.
type TextGenerator interface {
	// Generate produces text for the given prompt
	Generate(ctx context.Context, prompt string) (string, error)

	// Provider returns the provider identifier (e.g., "gemini")
	Provider() string

	// Model returns the specific model being used
	Model() string
}
