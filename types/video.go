package types

import (
	"fmt"
	"time"
)

// VideoRecord represents a single archived video with metadata and judgement fields
type VideoRecord struct {
	VideoID         string    `json:"video_id"`
	Title           string    `json:"title"`
	Description     string    `json:"description"`
	ChannelTitle    string    `json:"channel_title"`
	PublishedAt     time.Time `json:"published_at"`
	URL             string    `json:"url"`
	DurationSeconds int       `json:"duration_seconds"`
	Summary         string    `json:"summary"`
	Bullets         []string  `json:"bullets"`
	Score           float64   `json:"score"`
}

// WatchURL derives the canonical watch URL for a video ID
func WatchURL(videoID string) string {
	return fmt.Sprintf("https://www.youtube.com/watch?v=%s", videoID)
}
