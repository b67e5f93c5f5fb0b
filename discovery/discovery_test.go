package discovery

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/zhangshuxia33/yt-llm-daily/types"
)

// fakeSource serves canned search results and metadata, recording every
// Details call so tests can assert batching behavior.
type fakeSource struct {
	results     map[string][]string
	failing     map[string]bool
	details     map[string]types.VideoRecord
	detailErr   error
	detailCalls [][]string
}

func (f *fakeSource) Search(ctx context.Context, query, publishedAfter, publishedBefore string, maxResults int64) ([]string, error) {
	if f.failing[query] {
		return nil, fmt.Errorf("quota exceeded")
	}
	return f.results[query], nil
}

func (f *fakeSource) Details(ctx context.Context, ids []string) ([]types.VideoRecord, error) {
	f.detailCalls = append(f.detailCalls, append([]string(nil), ids...))
	if f.detailErr != nil {
		return nil, f.detailErr
	}

	records := make([]types.VideoRecord, 0, len(ids))
	for _, id := range ids {
		if rec, ok := f.details[id]; ok {
			records = append(records, rec)
		}
	}
	return records, nil
}

func TestDiscoverDeduplicatesAcrossFacets(t *testing.T) {
	src := &fakeSource{
		results: map[string][]string{
			"facet one": {"A", "B"},
			"facet two": {"B", "C"},
		},
	}

	ids := Discover(context.Background(), src, []string{"facet one", "facet two"}, "after", "before", 8)

	if len(ids) != 3 {
		t.Fatalf("expected 3 unique ids, got %v", ids)
	}
	seen := make(map[string]int)
	for _, id := range ids {
		seen[id]++
	}
	for _, id := range []string{"A", "B", "C"} {
		if seen[id] != 1 {
			t.Fatalf("expected %s exactly once, got %d", id, seen[id])
		}
	}
}

func TestDiscoverSkipsFailingFacet(t *testing.T) {
	src := &fakeSource{
		results: map[string][]string{
			"good facet":  {"A"},
			"other facet": {"B"},
		},
		failing: map[string]bool{"bad facet": true},
	}

	ids := Discover(context.Background(), src, []string{"good facet", "bad facet", "other facet"}, "after", "before", 8)

	if len(ids) != 2 {
		t.Fatalf("expected the two healthy facets to contribute, got %v", ids)
	}
}

func TestEnrichEmptyInputMakesNoCalls(t *testing.T) {
	src := &fakeSource{}

	records := Enrich(context.Background(), src, nil, 50)

	if len(records) != 0 {
		t.Fatalf("expected no records, got %d", len(records))
	}
	if len(src.detailCalls) != 0 {
		t.Fatalf("expected no metadata calls, got %d", len(src.detailCalls))
	}
}

func TestEnrichChunksLargeInput(t *testing.T) {
	src := &fakeSource{details: map[string]types.VideoRecord{}}

	var ids []string
	for i := 0; i < 120; i++ {
		id := fmt.Sprintf("v%03d", i)
		ids = append(ids, id)
		src.details[id] = types.VideoRecord{VideoID: id, PublishedAt: time.Now().UTC()}
	}

	records := Enrich(context.Background(), src, ids, 50)

	if len(records) != 120 {
		t.Fatalf("expected 120 records, got %d", len(records))
	}
	if len(src.detailCalls) != 3 {
		t.Fatalf("expected 3 batches, got %d", len(src.detailCalls))
	}
	for i, want := range []int{50, 50, 20} {
		if len(src.detailCalls[i]) != want {
			t.Fatalf("batch %d: expected %d ids, got %d", i, want, len(src.detailCalls[i]))
		}
	}
}

func TestEnrichSkipsFailedBatch(t *testing.T) {
	src := &fakeSource{detailErr: fmt.Errorf("backend unavailable")}

	records := Enrich(context.Background(), src, []string{"A", "B"}, 50)

	if len(records) != 0 {
		t.Fatalf("expected no records from a failed batch, got %d", len(records))
	}
}
