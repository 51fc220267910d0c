package search

import (
	"context"
	"time"

	"go.uber.org/zap"

	"viralscout/internal/apify"
)

const (
	youtubeActor = "streamers~youtube-scraper"
	// YouTube runs take materially longer than the other platforms'.
	youtubeTimeout       = 5 * time.Minute
	youtubePollInterval  = 3 * time.Second
	youtubePollAttempts  = 100
	youtubeStatusTimeout = 10 * time.Second
	youtubeFetchAttempts = 20
	youtubeFetchDelay    = 3 * time.Second
)

var youtubeSchema = &itemSchema{
	id:        []string{"id", "videoId", "video_id"},
	url:       []string{"url", "link"},
	caption:   []string{"title", "description", "caption"},
	thumbnail: []string{"thumbnailUrl", "thumbnail", "thumbnail_url", "imageUrl"},
	likes:     []string{"likeCount", "likes", "like_count"},
	comments:  []string{"commentCount", "comments", "comment_count"},
	views:     []string{"viewCount", "view_count", "views", "viewCountText"},
	// The shorts actor only ever emits videos.
	isVideo: nil,
	synthesizeURL: func(item apify.Item, id string) string {
		if id == "" {
			return ""
		}
		return "https://www.youtube.com/watch?v=" + id
	},
}

type youtubeClient struct {
	api *apify.Client
	log *zap.Logger
}

func (c *youtubeClient) search(ctx context.Context, q Query) []Post {
	input := map[string]any{
		"searchQueries":    []string{normalizeKeyword(q.Category)},
		"maxResultsShorts": 10,
		"maxResults":       0,
		"maxResultStreams": 0,
		"sortingOrder":     "views",
	}

	items, err := runAsync(ctx, c.api, c.log, asyncSpec{
		platform:       PlatformYouTube,
		actor:          youtubeActor,
		input:          input,
		overallTimeout: youtubeTimeout,
		pollInterval:   youtubePollInterval,
		pollAttempts:   youtubePollAttempts,
		statusTimeout:  youtubeStatusTimeout,
		fetchDelay:     youtubeFetchDelay,
		fetchAttempts:  youtubeFetchAttempts,
	})
	if err != nil {
		c.log.Warn("youtube search degraded to empty result", zap.Error(err))
		return nil
	}
	return rank(items, youtubeSchema, q.MinViews)
}
