// Package search implements the scrape-job orchestration engine: it
// submits a search to the job provider, drives the run to completion,
// normalizes the heterogeneous raw records each platform's actor
// produces, and returns a ranked, capped result set.
package search

// Platform selects which provider actor executes the search.
type Platform string

const (
	PlatformInstagram Platform = "instagram"
	PlatformTikTok    Platform = "tiktok"
	PlatformYouTube   Platform = "youtube"
)

// Query is the immutable input to one orchestration run.
type Query struct {
	Platform Platform
	Category string
	Language string
	MinViews int64
}

// Post is a canonical, platform-agnostic content record.
type Post struct {
	ID           string `json:"id"`
	URL          string `json:"url"`
	Caption      string `json:"caption"`
	ThumbnailURL string `json:"thumbnailUrl"`
	Likes        int64  `json:"likes"`
	Comments     int64  `json:"comments"`
	Views        int64  `json:"views"`
	Shares       int64  `json:"shares"`
}

// maxResults caps every ranked result set.
const maxResults = 60
