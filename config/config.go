package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Collection policy constants
const (
	// MinDurationSeconds rejects short clips; only podcast-length videos are kept
	MinDurationSeconds = 600

	// MaxPerKeyword caps search results requested per keyword facet
	MaxPerKeyword = 8

	// MaxArchiveSize bounds the persisted archive; oldest entries are evicted first
	MaxArchiveSize = 300

	// MetadataBatchSize is the YouTube Videos.List per-request ID cap
	MetadataBatchSize = 50

	// DefaultArchivePath is where the archive lives unless overridden
	DefaultArchivePath = "data/items.json"
)

// Keywords are the fixed search facets used for daily discovery.
// The same video may match several facets; discovery collapses duplicates.
var Keywords = []string{
	"LLM podcast",
	"large language model podcast",
	"AI podcast LLM",
	"大模型 播客",
	"GPT podcast",
	"RAG podcast",
	"AI agents podcast",
}

// Config carries everything a run needs. It is built once at process
// entry and passed down; no component reads the environment directly.
type Config struct {
	YouTubeAPIKey string
	CohereAPIKey  string

	// SkipSummary selects bypass mode: accept every duration-qualified
	// video with a default score instead of calling the judgement model.
	SkipSummary bool

	ArchivePath  string
	Keywords     []string
	ChannelFeeds []string

	// Optional Redis-backed bloom filter of processed video IDs.
	RedisAddr     string
	RedisPassword string
	BloomKey      string

	// Optional S3 backup of the archive file.
	S3Bucket string
	S3Region string
	S3Prefix string

	// Optional Kafka publication of newly accepted records.
	KafkaBrokers []string
	KafkaTopic   string
}

// FromEnv builds the runtime configuration from the process environment.
// The two service credentials are required; everything else either has a
// default or disables the optional subsystem it configures.
func FromEnv() (*Config, error) {
	ytKey := strings.TrimSpace(os.Getenv("YOUTUBE_API_KEY"))
	if ytKey == "" {
		return nil, fmt.Errorf("YOUTUBE_API_KEY is not set")
	}

	cohereKey := strings.TrimSpace(os.Getenv("COHERE_API_KEY"))
	if cohereKey == "" {
		return nil, fmt.Errorf("COHERE_API_KEY is not set")
	}

	feeds := envList("CHANNEL_FEEDS")
	for i, f := range feeds {
		feeds[i] = ResolveChannelFeed(f)
	}

	return &Config{
		YouTubeAPIKey: ytKey,
		CohereAPIKey:  cohereKey,
		SkipSummary:   envBool("SKIP_SUMMARY", true),
		ArchivePath:   envOr("ARCHIVE_PATH", DefaultArchivePath),
		Keywords:      Keywords,
		ChannelFeeds:  feeds,
		RedisAddr:     strings.TrimSpace(os.Getenv("REDIS_ADDR")),
		RedisPassword: os.Getenv("REDIS_PASS"),
		BloomKey:      envOr("BLOOM_KEY", "videos:bloom"),
		S3Bucket:      strings.TrimSpace(os.Getenv("S3_BUCKET")),
		S3Region:      strings.TrimSpace(os.Getenv("S3_REGION")),
		S3Prefix:      strings.Trim(strings.TrimSpace(os.Getenv("S3_PREFIX")), "/"),
		KafkaBrokers:  envList("KAFKA_BROKERS"),
		KafkaTopic:    envOr("KAFKA_TOPIC", "accepted-videos"),
	}, nil
}

// ResolveChannelFeed accepts either a full feed URL or a bare channel ID
// and returns the channel's video feed URL.
func ResolveChannelFeed(v string) string {
	if strings.HasPrefix(v, "http://") || strings.HasPrefix(v, "https://") {
		return v
	}
	return "https://www.youtube.com/feeds/videos.xml?channel_id=" + v
}

func envOr(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}

func envList(key string) []string {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
