package orchestrator

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/zhangshuxia33/yt-llm-daily/archive"
	"github.com/zhangshuxia33/yt-llm-daily/config"
	"github.com/zhangshuxia33/yt-llm-daily/dedup"
	"github.com/zhangshuxia33/yt-llm-daily/discovery"
	"github.com/zhangshuxia33/yt-llm-daily/judge"
	"github.com/zhangshuxia33/yt-llm-daily/kafka"
	"github.com/zhangshuxia33/yt-llm-daily/types"
)

// Result summarizes a completed run.
type Result struct {
	Added int
	Total int
}

// RunOnce executes one daily cycle: compute the UTC day window, discover
// candidates across keyword facets and channel feeds, enrich them,
// filter by novelty and duration, judge per the configured policy, merge
// into the bounded archive and persist.
func RunOnce(ctx context.Context, cfg *config.Config) (Result, error) {
	log.Println("=== Daily LLM Podcast Collection ===")

	source, err := discovery.NewYouTube(ctx, cfg.YouTubeAPIKey)
	if err != nil {
		return Result{}, fmt.Errorf("failed to initialize YouTube client: %w", err)
	}

	var policy judge.Policy
	if cfg.SkipSummary {
		log.Println("Judgement bypass active; accepting all duration-qualified videos")
		policy = judge.Bypass{}
	} else {
		policy = judge.NewScored(cfg.CohereAPIKey)
	}

	return run(ctx, cfg, source, policy, time.Now().UTC())
}

// run is the testable core with injected collaborators.
func run(ctx context.Context, cfg *config.Config, source discovery.Source, policy judge.Policy, now time.Time) (Result, error) {
	windowStart, windowEnd := discovery.DayBounds(now)
	after, before := discovery.DayRange(now)
	log.Printf("Collection window: %s .. %s", after, before)

	store := archive.NewStore(cfg.ArchivePath)
	existing, err := store.Load()
	if err != nil {
		return Result{}, err
	}
	existingIDs := archive.Index(existing)
	log.Printf("Loaded %d archived videos", len(existing))

	// Step 1: discover candidate IDs across all facets
	ids := discovery.Discover(ctx, source, cfg.Keywords, after, before, config.MaxPerKeyword)
	if len(cfg.ChannelFeeds) > 0 {
		ids = mergeIDs(ids, discovery.DiscoverFeeds(cfg.ChannelFeeds, windowStart, windowEnd))
	}
	log.Printf("Discovered %d candidate videos", len(ids))

	// Step 2: optional bloom pre-filter of IDs accepted in earlier runs
	bloom := initBloom(cfg)
	if bloom != nil {
		defer bloom.Close()
		ids = dropSeen(ctx, bloom, ids)
	}

	// Step 3: enrich with full metadata
	details := discovery.Enrich(ctx, source, ids, config.MetadataBatchSize)

	// Step 4: filter and judge. Every accepted item is appended here
	// regardless of which policy is active.
	var newItems []types.VideoRecord
	for _, d := range details {
		if _, ok := existingIDs[d.VideoID]; ok {
			continue
		}
		if d.DurationSeconds < config.MinDurationSeconds {
			continue
		}

		j, accepted, err := policy.Judge(ctx, d.Title, d.Description)
		if err != nil {
			log.Printf("Warning: judgement failed for %s, skipping: %v", d.VideoID, err)
			continue
		}
		if !accepted {
			log.Printf("Rejected %s: score %.2f below threshold", d.VideoID, j.Score)
			continue
		}

		d.Summary = j.Summary
		d.Bullets = j.Bullets
		if d.Bullets == nil {
			d.Bullets = []string{}
		}
		d.Score = j.Score
		newItems = append(newItems, d)
	}

	// Step 5: merge, bound and persist
	merged := archive.MergeAndBound(existing, newItems, config.MaxArchiveSize)
	if err := store.Save(merged); err != nil {
		return Result{}, err
	}
	log.Printf("Archive saved: %d added, %d total", len(newItems), len(merged))

	if bloom != nil {
		for _, item := range newItems {
			if err := bloom.Mark(ctx, item.VideoID); err != nil {
				log.Printf("Warning: failed to mark %s in bloom filter: %v", item.VideoID, err)
			}
		}
	}

	publishNewItems(cfg, newItems)
	backupArchive(ctx, cfg, store.Path())

	return Result{Added: len(newItems), Total: len(merged)}, nil
}

func mergeIDs(ids, extra []string) []string {
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		seen[id] = struct{}{}
	}
	for _, id := range extra {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	return ids
}

// initBloom returns a bloom filter client if Redis is configured.
// Failure to connect degrades to running without the pre-filter.
func initBloom(cfg *config.Config) *dedup.Bloom {
	if cfg.RedisAddr == "" {
		return nil
	}

	bloom, err := dedup.NewBloom(dedup.BloomConfig{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		Key:      cfg.BloomKey,
	})
	if err != nil {
		log.Printf("Warning: failed to init bloom filter: %v (pre-filter disabled)", err)
		return nil
	}
	return bloom
}

// dropSeen removes IDs the bloom filter has recorded from earlier runs,
// saving metadata quota. On lookup failure the ID is kept; the archive
// novelty check still guards correctness.
func dropSeen(ctx context.Context, bloom *dedup.Bloom, ids []string) []string {
	kept := ids[:0]
	dropped := 0
	for _, id := range ids {
		seen, err := bloom.Seen(ctx, id)
		if err != nil {
			log.Printf("Warning: bloom check failed for %s: %v", id, err)
			kept = append(kept, id)
			continue
		}
		if seen {
			dropped++
			continue
		}
		kept = append(kept, id)
	}
	if dropped > 0 {
		log.Printf("Bloom filter dropped %d previously processed videos", dropped)
	}
	return kept
}

// publishNewItems sends accepted records to Kafka if configured.
func publishNewItems(cfg *config.Config, items []types.VideoRecord) {
	if len(cfg.KafkaBrokers) == 0 || len(items) == 0 {
		return
	}

	producer, err := kafka.NewProducer(kafka.ProducerConfig{
		Brokers: cfg.KafkaBrokers,
		Topic:   cfg.KafkaTopic,
	})
	if err != nil {
		log.Printf("Warning: failed to init Kafka producer: %v (publication skipped)", err)
		return
	}
	defer producer.Close()

	published := 0
	for _, item := range items {
		if err := producer.PublishRecord(item); err != nil {
			log.Printf("Warning: %v", err)
			continue
		}
		published++
	}
	log.Printf("Published %d record(s) to topic %s", published, cfg.KafkaTopic)
}

// backupArchive uploads the saved archive to S3 if configured.
func backupArchive(ctx context.Context, cfg *config.Config, path string) {
	if cfg.S3Bucket == "" {
		return
	}

	backup, err := archive.NewBackup(ctx, archive.BackupConfig{
		Bucket: cfg.S3Bucket,
		Region: cfg.S3Region,
		Prefix: cfg.S3Prefix,
	})
	if err != nil {
		log.Printf("Warning: failed to init S3 backup: %v (backup skipped)", err)
		return
	}

	uctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()
	if err := backup.Upload(uctx, path); err != nil {
		log.Printf("Warning: %v", err)
		return
	}
	log.Printf("Archive backed up to s3://%s", cfg.S3Bucket)
}
