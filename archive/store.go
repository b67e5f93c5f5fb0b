package archive

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/zhangshuxia33/yt-llm-daily/types"
)

// Store persists the bounded, recency-sorted archive as a single JSON
// array on disk.
type Store struct {
	path string
}

func NewStore(path string) *Store {
	return &Store{path: path}
}

func (s *Store) Path() string { return s.path }

// Load reads the persisted archive. A missing file is the first-run
// case and yields an empty archive, not an error.
func (s *Store) Load() ([]types.VideoRecord, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read archive: %w", err)
	}

	var items []types.VideoRecord
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("failed to decode archive: %w", err)
	}
	return items, nil
}

// Save writes the archive atomically: encode into a temp file in the
// same directory, then rename over the previous version so a crash
// mid-write never corrupts the last good state. The containing directory
// is created if absent. Output is indented UTF-8 with HTML escaping off
// so non-ASCII titles stay readable.
func (s *Store) Save(items []types.VideoRecord) error {
	if items == nil {
		items = []types.VideoRecord{}
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create archive directory: %w", err)
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(items); err != nil {
		return fmt.Errorf("failed to encode archive: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".items-*.json")
	if err != nil {
		return fmt.Errorf("failed to create temp archive: %w", err)
	}
	if _, err := tmp.Write(buf.Bytes()); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to write archive: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to close temp archive: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to replace archive: %w", err)
	}
	return nil
}

// MergeAndBound prepends newItems to existing, re-sorts by publish time
// descending and truncates to maxSize. The sort is stable, so records
// sharing a publish time keep their concatenation order.
func MergeAndBound(existing, newItems []types.VideoRecord, maxSize int) []types.VideoRecord {
	merged := make([]types.VideoRecord, 0, len(existing)+len(newItems))
	merged = append(merged, newItems...)
	merged = append(merged, existing...)

	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].PublishedAt.After(merged[j].PublishedAt)
	})

	if len(merged) > maxSize {
		merged = merged[:maxSize]
	}
	return merged
}

// Index returns the set of video IDs currently persisted, used for the
// novelty check.
func Index(items []types.VideoRecord) map[string]struct{} {
	ids := make(map[string]struct{}, len(items))
	for _, item := range items {
		ids[item.VideoID] = struct{}{}
	}
	return ids
}
