package videosource

import (
	"context"

	"github.com/skillora/skillora/internal/model"
)

// MaxResults is the number of candidate videos fetched per search.
const MaxResults = 15

// Source retrieves candidate videos for a topic. Implementations must
// return a stable, unique ID per video within one call.
type Source interface {
	// Search returns an unordered list of video metadata for the topic
	Search(ctx context.Context, topic string) ([]model.Video, error)
}
