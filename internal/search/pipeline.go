package search

import (
	"sort"

	"viralscout/internal/apify"
)

// rank runs the shared post-fetch pipeline: normalize every raw item
// (dropping rejects), keep posts meeting the view floor, stable-sort
// descending by views, and truncate to the result cap. Stability keeps
// provider order among equal view counts deterministic.
func rank(items []apify.Item, schema *itemSchema, minViews int64) []Post {
	posts := make([]Post, 0, len(items))
	for _, item := range items {
		post, ok := schema.normalize(item)
		if !ok {
			continue
		}
		if post.Views < minViews {
			continue
		}
		posts = append(posts, post)
	}

	sort.SliceStable(posts, func(i, j int) bool {
		return posts[i].Views > posts[j].Views
	})

	if len(posts) > maxResults {
		posts = posts[:maxResults]
	}
	return posts
}
