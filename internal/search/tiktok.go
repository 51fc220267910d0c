package search

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"viralscout/internal/apify"
)

const (
	tiktokActor = "clockworks~tiktok-scraper"
	// The synchronous endpoint holds the connection open for the whole run.
	tiktokTimeout = 5 * time.Minute
)

var tiktokAuthorPaths = []string{
	"authorMeta.uniqueId", "authorMeta.unique_id", "authorMeta.name",
	"authorMeta.nickname", "authorMeta.username",
	"author.uniqueId", "author.unique_id", "author.name",
	"author.nickname", "author.username",
	"authorName",
}

var tiktokSchema = &itemSchema{
	id:        []string{"id", "awemeId", "aweme_id", "shortCode", "shortcode"},
	url:       []string{"webVideoUrl", "url", "link"},
	caption:   []string{"text", "desc", "description", "caption"},
	thumbnail: []string{"cover", "thumbnailUrl", "thumbnail", "displayUrl", "imageUrl"},
	likes:     []string{"diggCount", "likesCount", "likeCount", "digg_count", "like_count"},
	comments:  []string{"commentCount", "commentsCount", "comment_count", "comments_count"},
	views: []string{
		"videoPlayCount", "playCount", "play_count", "viewCount",
		"view_count", "views",
		"stats.playCount", "stats.viewCount",
		"statistics.playCount", "statistics.viewCount",
	},
	isVideo: func(item apify.Item) bool {
		if t := firstString(item, []string{"type"}); strings.EqualFold(t, "video") {
			return true
		}
		if boolField(item, "isVideo") {
			return true
		}
		if firstString(item, []string{"videoUrl", "video_url"}) != "" {
			return true
		}
		return firstNumber(item, []string{"playCount", "viewCount"}) > 0
	},
	synthesizeURL: func(item apify.Item, id string) string {
		author := firstString(item, tiktokAuthorPaths)
		if id == "" || author == "" {
			return ""
		}
		return fmt.Sprintf("https://www.tiktok.com/@%s/video/%s", author, id)
	},
}

type tiktokClient struct {
	api *apify.Client
	log *zap.Logger
}

func (c *tiktokClient) search(ctx context.Context, q Query) []Post {
	input := map[string]any{
		"searchQueries":  []string{normalizeKeyword(q.Category)},
		"resultsPerPage": maxResults,
		"searchSection":  "/video",
	}

	ctx, cancel := context.WithTimeout(ctx, tiktokTimeout)
	defer cancel()

	items, err := c.api.RunSync(ctx, tiktokActor, input)
	if err != nil {
		c.log.Warn("tiktok search degraded to empty result", zap.Error(err))
		return nil
	}
	return rank(items, tiktokSchema, q.MinViews)
}
