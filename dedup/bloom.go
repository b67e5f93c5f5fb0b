package dedup

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// BloomConfig configures the Redis connection and filter key
type BloomConfig struct {
	Addr     string // e.g. localhost:6379
	Password string
	DB       int
	Key      string // redis key for the bloom filter
	// Capacity sets the initial BF.RESERVE capacity (number of items)
	Capacity int
	// ErrorRate sets the desired false positive probability (e.g. 0.001)
	ErrorRate float64
}

// Bloom is a Redis-backed Bloom filter over video IDs that were accepted
// in earlier runs. It only short-circuits metadata lookups for IDs the
// archive already holds or once held; the archive novelty check remains
// authoritative.
type Bloom struct {
	client *redis.Client
	key    string
}

// NewBloom creates the bloom wrapper and verifies connectivity.
func NewBloom(cfg BloomConfig) (*Bloom, error) {
	if cfg.Key == "" {
		cfg.Key = "videos:bloom"
	}
	if cfg.Capacity == 0 {
		cfg.Capacity = 100000
	}
	if cfg.ErrorRate == 0 {
		cfg.ErrorRate = 0.001
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", cfg.Addr, err)
	}

	// Reserve the filter when the key doesn't exist yet. BF.ADD can
	// auto-create one, so a failed reserve is not fatal.
	exists, err := client.Exists(ctx, cfg.Key).Result()
	if err == nil && exists == 0 {
		_ = client.Do(ctx, "BF.RESERVE", cfg.Key, fmt.Sprintf("%f", cfg.ErrorRate), cfg.Capacity).Err()
	}

	return &Bloom{client: client, key: cfg.Key}, nil
}

// Seen reports whether the video ID was probably processed before.
func (b *Bloom) Seen(ctx context.Context, videoID string) (bool, error) {
	res, err := b.client.Do(ctx, "BF.EXISTS", b.key, videoID).Result()
	if err != nil {
		return false, err
	}

	switch v := res.(type) {
	case int64:
		return v == 1, nil
	case string:
		return v == "1", nil
	default:
		return false, fmt.Errorf("unexpected BF.EXISTS response type %T: %v", res, res)
	}
}

// Mark records the video ID in the filter.
func (b *Bloom) Mark(ctx context.Context, videoID string) error {
	return b.client.Do(ctx, "BF.ADD", b.key, videoID).Err()
}

// Close closes the underlying Redis client
func (b *Bloom) Close() error {
	return b.client.Close()
}
