package search

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/text/unicode/norm"

	"viralscout/internal/apify"
)

// Raw records arrive with wildly inconsistent schemas: camelCase and
// snake_case variants of the same field, counts nested under stats
// objects, numbers serialized as strings with thousands separators.
// Each platform declares an ordered table of candidate field paths and
// the first candidate that yields a usable value wins.

// lookup walks a dotted path ("stats.playCount") through nested maps.
func lookup(item apify.Item, path string) (any, bool) {
	var cur any = map[string]any(item)
	for _, key := range strings.Split(path, ".") {
		m, ok := cur.(map[string]any)
		if !ok {
			return nil, false
		}
		cur, ok = m[key]
		if !ok {
			return nil, false
		}
	}
	return cur, true
}

// toNumber coerces a raw field value to a non-negative count. String
// values are parsed after stripping thousands separators; anything
// non-numeric or non-finite counts as absent.
func toNumber(v any) int64 {
	switch n := v.(type) {
	case float64:
		if math.IsNaN(n) || math.IsInf(n, 0) || n < 0 {
			return 0
		}
		return int64(n)
	case string:
		parsed, err := strconv.ParseFloat(strings.ReplaceAll(n, ",", ""), 64)
		if err != nil || math.IsNaN(parsed) || math.IsInf(parsed, 0) || parsed < 0 {
			return 0
		}
		return int64(parsed)
	}
	return 0
}

// firstNumber probes paths in priority order and returns the first
// finite non-zero value, or 0 when no candidate parses.
func firstNumber(item apify.Item, paths []string) int64 {
	for _, p := range paths {
		if v, ok := lookup(item, p); ok {
			if n := toNumber(v); n > 0 {
				return n
			}
		}
	}
	return 0
}

// firstString returns the first non-empty string candidate, or "".
func firstString(item apify.Item, paths []string) string {
	for _, p := range paths {
		if v, ok := lookup(item, p); ok {
			if s, ok := v.(string); ok && strings.TrimSpace(s) != "" {
				return s
			}
		}
	}
	return ""
}

func boolField(item apify.Item, path string) bool {
	v, ok := lookup(item, path)
	if !ok {
		return false
	}
	b, ok := v.(bool)
	return ok && b
}

var categoryPrefix = regexp.MustCompile(`(?i)^(cat_|sub_)`)

// normalizeKeyword strips the callback-data prefixes the chat surface
// attaches to categories and NFC-normalizes the remainder so the
// provider matches composed and decomposed forms identically.
func normalizeKeyword(value string) string {
	keyword := categoryPrefix.ReplaceAllString(value, "")
	keyword = strings.TrimSpace(strings.ReplaceAll(keyword, "_", " "))
	if keyword == "" {
		keyword = value
	}
	return norm.NFC.String(keyword)
}

// hashtagKeyword collapses a keyword to the single-token form the
// hashtag search expects.
func hashtagKeyword(value string) string {
	kw := normalizeKeyword(value)
	for _, cut := range []string{" ", "_", "-"} {
		kw = strings.ReplaceAll(kw, cut, "")
	}
	return kw
}
