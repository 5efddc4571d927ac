package scraper

import (
	"context"

	"github.com/mmcdole/gofeed"
)

// MergeLinks concatenates discovery strategies in priority order,
// dropping exact-URL duplicates while preserving first-seen order.
func MergeLinks(lists ...[]string) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, list := range lists {
		for _, link := range list {
			if link == "" {
				continue
			}
			if _, dup := seen[link]; dup {
				continue
			}
			seen[link] = struct{}{}
			out = append(out, link)
		}
	}
	return out
}

// FeedLinks discovers article URLs from the site's RSS feed. Both campus
// sites run WordPress and expose /feed/; this catches articles that have
// rotated off the homepage panels.
func FeedLinks(ctx context.Context, feedURL string) ([]string, error) {
	if feedURL == "" {
		return nil, nil
	}
	parser := gofeed.NewParser()
	feed, err := parser.ParseURLWithContext(feedURL, ctx)
	if err != nil {
		return nil, err
	}
	links := make([]string, 0, len(feed.Items))
	for _, item := range feed.Items {
		if item.Link != "" {
			links = append(links, item.Link)
		}
	}
	return links, nil
}
