package videosource

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"time"

	"github.com/skillora/skillora/internal/model"
	"google.golang.org/api/option"
	"google.golang.org/api/youtube/v3"
)

// ISO 8601 duration pattern (PT#H#M#S)
var durationPattern = regexp.MustCompile(`PT(?:(\d+)H)?(?:(\d+)M)?(?:(\d+)S)?`)

// YouTubeSource fetches candidate videos from the YouTube Data API v3.
type YouTubeSource struct {
	service *youtube.Service
}

// NewYouTubeSource creates a YouTube video source
func NewYouTubeSource(ctx context.Context, apiKey string) (*YouTubeSource, error) {
	service, err := youtube.NewService(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create YouTube client: %w", err)
	}
	return &YouTubeSource{service: service}, nil
}

// Search runs a video search for topic, then a second call for
// statistics and durations of the hits.
func (s *YouTubeSource) Search(ctx context.Context, topic string) ([]model.Video, error) {
	searchResp, err := s.service.Search.List([]string{"snippet"}).
		Q(topic).
		Type("video").
		MaxResults(MaxResults).
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("youtube search failed: %w", err)
	}

	ids := make([]string, 0, len(searchResp.Items))
	for _, item := range searchResp.Items {
		if item.Id != nil && item.Id.VideoId != "" {
			ids = append(ids, item.Id.VideoId)
		}
	}
	if len(ids) == 0 {
		return nil, nil
	}

	videosResp, err := s.service.Videos.List([]string{"snippet", "statistics", "contentDetails"}).
		Id(ids...).
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("youtube videos lookup failed: %w", err)
	}

	videos := make([]model.Video, 0, len(videosResp.Items))
	for _, item := range videosResp.Items {
		if item.Snippet == nil {
			continue
		}

		video := model.Video{
			ID:           item.Id,
			Title:        item.Snippet.Title,
			Description:  item.Snippet.Description,
			ChannelTitle: item.Snippet.ChannelTitle,
		}

		if item.Snippet.Thumbnails != nil && item.Snippet.Thumbnails.High != nil {
			video.Thumbnail = item.Snippet.Thumbnails.High.Url
		}
		if t, err := time.Parse(time.RFC3339, item.Snippet.PublishedAt); err == nil {
			video.PublishedAt = &t
		}
		if item.Statistics != nil {
			views := int64(item.Statistics.ViewCount)
			likes := int64(item.Statistics.LikeCount)
			video.ViewCount = &views
			video.LikeCount = &likes
		}
		if item.ContentDetails != nil {
			if seconds := parseDuration(item.ContentDetails.Duration); seconds > 0 {
				video.DurationSeconds = &seconds
			}
		}

		videos = append(videos, video)
	}

	return videos, nil
}

// parseDuration converts ISO 8601 duration to seconds
func parseDuration(duration string) int {
	matches := durationPattern.FindStringSubmatch(duration)
	if len(matches) == 0 {
		return 0
	}

	var hours, minutes, seconds int
	if matches[1] != "" {
		hours, _ = strconv.Atoi(matches[1])
	}
	if matches[2] != "" {
		minutes, _ = strconv.Atoi(matches[2])
	}
	if matches[3] != "" {
		seconds, _ = strconv.Atoi(matches[3])
	}

	return hours*3600 + minutes*60 + seconds
}
