package search

import (
	"context"
	"time"

	"go.uber.org/zap"

	"viralscout/internal/apify"
)

const (
	instagramActor         = "apify~instagram-hashtag-scraper"
	instagramTimeout       = 60 * time.Second
	instagramFetchAttempts = 20
	instagramFetchDelay    = 3 * time.Second
)

// instagramSchema maps hashtag-scraper records. The actor does not
// flag reels consistently, so the qualifying rule accepts any of the
// explicit flag, a video URL, or a positive play count.
var instagramSchema = &itemSchema{
	id:        []string{"id", "shortCode", "shortcode"},
	url:       []string{"url", "link"},
	caption:   []string{"caption"},
	thumbnail: []string{"displayUrl", "thumbnailUrl"},
	likes:     []string{"likesCount"},
	comments:  []string{"commentsCount"},
	views: []string{
		"videoPlayCount", "videoViewCount", "playCount", "plays",
		"video_views", "storyViewCount", "likesCount",
	},
	isVideo: func(item apify.Item) bool {
		if boolField(item, "isVideo") {
			return true
		}
		if firstString(item, []string{"videoUrl"}) != "" {
			return true
		}
		return firstNumber(item, []string{"videoViewCount", "videoPlayCount", "playCount"}) > 0
	},
}

type instagramClient struct {
	api *apify.Client
	log *zap.Logger
}

func (c *instagramClient) search(ctx context.Context, q Query) []Post {
	input := map[string]any{
		"hashtags":      []string{hashtagKeyword(q.Category)},
		"keywordSearch": false,
		"resultsType":   "stories",
		"resultsLimit":  maxResults,
	}

	// The hashtag actor assigns its dataset on acceptance and fills it
	// as the run progresses, so the dataset retries double as the wait
	// for completion and no status polling is needed.
	items, err := runAsync(ctx, c.api, c.log, asyncSpec{
		platform:       PlatformInstagram,
		actor:          instagramActor,
		input:          input,
		overallTimeout: instagramTimeout,
		fetchDelay:     instagramFetchDelay,
		fetchAttempts:  instagramFetchAttempts,
	})
	if err != nil {
		c.log.Warn("instagram search degraded to empty result", zap.Error(err))
		return nil
	}
	return rank(items, instagramSchema, q.MinViews)
}
