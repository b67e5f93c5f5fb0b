package discovery

import (
	"context"
	"fmt"
	"log"
	"time"

	"google.golang.org/api/option"
	"google.golang.org/api/youtube/v3"

	"github.com/zhangshuxia33/yt-llm-daily/types"
)

// Source describes the minimal search/metadata functionality the
// pipeline needs, so tests can substitute a fake.
type Source interface {
	// Search returns candidate video IDs for one query within the window.
	Search(ctx context.Context, query, publishedAfter, publishedBefore string, maxResults int64) ([]string, error)
	// Details fetches full metadata for a single batch of IDs.
	Details(ctx context.Context, ids []string) ([]types.VideoRecord, error)
}

// YouTube implements Source against the YouTube Data API v3.
type YouTube struct {
	service *youtube.Service
}

// NewYouTube creates a YouTube source using API-key access.
func NewYouTube(ctx context.Context, apiKey string) (*YouTube, error) {
	service, err := youtube.NewService(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("unable to create YouTube service: %w", err)
	}
	return &YouTube{service: service}, nil
}

func (y *YouTube) Search(ctx context.Context, query, publishedAfter, publishedBefore string, maxResults int64) ([]string, error) {
	resp, err := y.service.Search.List([]string{"id"}).
		Q(query).
		Type("video").
		Order("date").
		MaxResults(maxResults).
		PublishedAfter(publishedAfter).
		PublishedBefore(publishedBefore).
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("search request failed: %w", err)
	}

	ids := make([]string, 0, len(resp.Items))
	for _, item := range resp.Items {
		if item.Id != nil && item.Id.VideoId != "" {
			ids = append(ids, item.Id.VideoId)
		}
	}
	return ids, nil
}

func (y *YouTube) Details(ctx context.Context, ids []string) ([]types.VideoRecord, error) {
	resp, err := y.service.Videos.List([]string{"snippet", "contentDetails"}).
		Id(ids...).
		MaxResults(int64(len(ids))).
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("videos request failed: %w", err)
	}

	records := make([]types.VideoRecord, 0, len(resp.Items))
	for _, v := range resp.Items {
		if v.Snippet == nil || v.ContentDetails == nil {
			log.Printf("Warning: video %s missing snippet or contentDetails, skipping", v.Id)
			continue
		}
		records = append(records, recordFromAPI(v))
	}
	return records, nil
}

// recordFromAPI converts one API video resource into a VideoRecord with
// the judgement fields left empty.
func recordFromAPI(v *youtube.Video) types.VideoRecord {
	seconds, err := ParseISODuration(v.ContentDetails.Duration)
	if err != nil {
		// A record with zero duration fails the length filter downstream.
		log.Printf("Warning: unparseable duration %q for video %s: %v", v.ContentDetails.Duration, v.Id, err)
		seconds = 0
	}

	publishedAt, err := time.Parse(time.RFC3339, v.Snippet.PublishedAt)
	if err != nil {
		log.Printf("Warning: unparseable publish time %q for video %s: %v", v.Snippet.PublishedAt, v.Id, err)
	}

	return types.VideoRecord{
		VideoID:         v.Id,
		Title:           v.Snippet.Title,
		Description:     v.Snippet.Description,
		ChannelTitle:    v.Snippet.ChannelTitle,
		PublishedAt:     publishedAt,
		URL:             types.WatchURL(v.Id),
		DurationSeconds: seconds,
	}
}
