package search

import (
	"strings"

	"viralscout/internal/apify"
)

// itemSchema is one platform's field-mapping table. Adding support for
// a new actor revision is an edit to these lists, not new branching.
type itemSchema struct {
	id        []string
	url       []string
	caption   []string
	thumbnail []string
	likes     []string
	comments  []string
	views     []string

	// isVideo is the platform's qualifying rule: records failing it are
	// discarded regardless of their other fields.
	isVideo func(apify.Item) bool

	// synthesizeURL builds the canonical public URL when no explicit
	// URL field is present. May be nil for platforms whose actors
	// always emit one.
	synthesizeURL func(item apify.Item, id string) string
}

// normalize converts a raw record into a Post. It reports false for
// records that produce no non-empty URL or fail the video rule.
func (s *itemSchema) normalize(item apify.Item) (Post, bool) {
	if s.isVideo != nil && !s.isVideo(item) {
		return Post{}, false
	}

	id := firstString(item, s.id)
	url := firstString(item, s.url)
	if url == "" && s.synthesizeURL != nil {
		url = s.synthesizeURL(item, id)
	}
	if strings.TrimSpace(url) == "" {
		return Post{}, false
	}

	return Post{
		ID:           id,
		URL:          url,
		Caption:      firstString(item, s.caption),
		ThumbnailURL: firstString(item, s.thumbnail),
		Likes:        firstNumber(item, s.likes),
		Comments:     firstNumber(item, s.comments),
		Views:        firstNumber(item, s.views),
		Shares:       0,
	}, true
}
