package discovery

import (
	"context"
	"log"

	"github.com/zhangshuxia33/yt-llm-daily/types"
)

// Discover issues one bounded search per keyword facet restricted to the
// window and accumulates the returned IDs into a deduplicated list. A
// failing facet is skipped with a warning so one bad query cannot abort
// the whole run.
func Discover(ctx context.Context, src Source, keywords []string, publishedAfter, publishedBefore string, maxPerKeyword int64) []string {
	seen := make(map[string]struct{})
	var ids []string

	for _, q := range keywords {
		found, err := src.Search(ctx, q, publishedAfter, publishedBefore, maxPerKeyword)
		if err != nil {
			log.Printf("Warning: search for %q failed, skipping facet: %v", q, err)
			continue
		}
		for _, id := range found {
			if _, ok := seen[id]; ok {
				continue
			}
			seen[id] = struct{}{}
			ids = append(ids, id)
		}
	}

	return ids
}

// Enrich fetches full metadata for the discovered IDs, splitting them
// into batches of batchSize because the metadata API caps IDs per call.
// An empty input returns immediately without any external call; a failed
// batch is skipped with a warning.
func Enrich(ctx context.Context, src Source, ids []string, batchSize int) []types.VideoRecord {
	if len(ids) == 0 {
		return nil
	}

	var records []types.VideoRecord
	for start := 0; start < len(ids); start += batchSize {
		end := min(start+batchSize, len(ids))
		batch := ids[start:end]

		found, err := src.Details(ctx, batch)
		if err != nil {
			log.Printf("Warning: metadata lookup for %d videos failed, skipping batch: %v", len(batch), err)
			continue
		}
		records = append(records, found...)
	}

	return records
}
