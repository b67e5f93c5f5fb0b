package discovery

import (
	"log"
	"net/url"
	"time"

	"github.com/mmcdole/gofeed"
)

// DiscoverFeeds parses configured channel feeds and returns the IDs of
// videos published inside [start, end). Feeds complement keyword search:
// subscribed channels surface episodes the query facets might miss.
// A failing feed is skipped with a warning, like a failing search facet.
func DiscoverFeeds(feedURLs []string, start, end time.Time) []string {
	parser := gofeed.NewParser()
	seen := make(map[string]struct{})
	var ids []string

	for _, feedURL := range feedURLs {
		feed, err := parser.ParseURL(feedURL)
		if err != nil {
			log.Printf("Warning: failed to fetch channel feed %s, skipping: %v", feedURL, err)
			continue
		}

		for _, item := range feed.Items {
			if item.PublishedParsed == nil {
				continue
			}
			published := item.PublishedParsed.UTC()
			if published.Before(start) || !published.Before(end) {
				continue
			}

			id := videoIDFromLink(item.Link)
			if id == "" {
				continue
			}
			if _, ok := seen[id]; ok {
				continue
			}
			seen[id] = struct{}{}
			ids = append(ids, id)
		}
	}

	return ids
}

// videoIDFromLink extracts the v= query parameter from a watch URL.
func videoIDFromLink(link string) string {
	u, err := url.Parse(link)
	if err != nil {
		return ""
	}
	return u.Query().Get("v")
}
