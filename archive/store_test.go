package archive

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/zhangshuxia33/yt-llm-daily/types"
)

func record(id string, publishedAt time.Time) types.VideoRecord {
	return types.VideoRecord{
		VideoID:         id,
		Title:           "title " + id,
		ChannelTitle:    "channel",
		PublishedAt:     publishedAt,
		URL:             types.WatchURL(id),
		DurationSeconds: 900,
		Bullets:         []string{},
		Score:           0.8,
	}
}

func TestLoadMissingFileReturnsEmpty(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "data", "items.json"))

	items, err := store.Load()
	if err != nil {
		t.Fatalf("load of missing file should not error: %v", err)
	}
	if len(items) != 0 {
		t.Fatalf("expected empty archive, got %d items", len(items))
	}
}

func TestSaveThenLoadRoundTrip(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "data", "items.json"))

	base := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	in := []types.VideoRecord{record("a", base), record("b", base.Add(-time.Hour))}
	in[0].Title = "大模型播客速读"

	if err := store.Save(in); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	out, err := store.Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("expected 2 items, got %d", len(out))
	}
	if out[0].Title != "大模型播客速读" {
		t.Fatalf("title not preserved: %q", out[0].Title)
	}
	if !out[1].PublishedAt.Equal(in[1].PublishedAt) {
		t.Fatalf("publish time not preserved: %v", out[1].PublishedAt)
	}
}

func TestSaveKeepsNonASCIIUnescaped(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "items.json"))

	in := []types.VideoRecord{record("a", time.Now().UTC())}
	in[0].Title = "播客"
	if err := store.Save(in); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	data, err := os.ReadFile(store.Path())
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	if !strings.Contains(string(data), "播客") {
		t.Fatalf("expected raw UTF-8 title in file, got %s", data)
	}
	if strings.Contains(string(data), `\u`) {
		t.Fatalf("expected no unicode escapes in file, got %s", data)
	}
}

func TestSaveLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	store := NewStore(filepath.Join(dir, "items.json"))

	for i := 0; i < 3; i++ {
		if err := store.Save([]types.VideoRecord{record("a", time.Now().UTC())}); err != nil {
			t.Fatalf("save %d failed: %v", i, err)
		}
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("readdir failed: %v", err)
	}
	if len(entries) != 1 || entries[0].Name() != "items.json" {
		t.Fatalf("expected only items.json in %s, got %v", dir, entries)
	}
}

func TestMergeAndBoundTruncatesToMostRecent(t *testing.T) {
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	var existing, fresh []types.VideoRecord
	for i := 0; i < 300; i++ {
		existing = append(existing, record(fmt.Sprintf("old-%d", i), base.Add(time.Duration(i)*time.Minute)))
	}
	for i := 0; i < 10; i++ {
		fresh = append(fresh, record(fmt.Sprintf("new-%d", i), base.Add(time.Duration(300+i)*time.Minute)))
	}

	merged := MergeAndBound(existing, fresh, 300)
	if len(merged) != 300 {
		t.Fatalf("expected 300 items, got %d", len(merged))
	}

	// All 10 new items are more recent than every old one, so the 10
	// oldest existing records must have been evicted.
	kept := Index(merged)
	for i := 0; i < 10; i++ {
		if _, ok := kept[fmt.Sprintf("new-%d", i)]; !ok {
			t.Fatalf("expected new-%d to survive the bound", i)
		}
		if _, ok := kept[fmt.Sprintf("old-%d", i)]; ok {
			t.Fatalf("expected old-%d to be evicted", i)
		}
	}

	for i := 1; i < len(merged); i++ {
		if merged[i].PublishedAt.After(merged[i-1].PublishedAt) {
			t.Fatalf("archive not sorted descending at index %d", i)
		}
	}
}

func TestMergeAndBoundStableOnEqualPublishTimes(t *testing.T) {
	at := time.Date(2026, 8, 30, 8, 0, 0, 0, time.UTC)

	fresh := []types.VideoRecord{record("n1", at), record("n2", at)}
	existing := []types.VideoRecord{record("e1", at), record("e2", at)}

	merged := MergeAndBound(existing, fresh, 300)

	want := []string{"n1", "n2", "e1", "e2"}
	for i, id := range want {
		if merged[i].VideoID != id {
			t.Fatalf("expected %v order, got %s at index %d", want, merged[i].VideoID, i)
		}
	}
}
