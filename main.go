// yt-llm-daily collects the day's podcast-length videos about large
// language models from YouTube, optionally scores them with a judgement
// model, and maintains a bounded recency-sorted archive on disk.
package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"

	"github.com/zhangshuxia33/yt-llm-daily/config"
	"github.com/zhangshuxia33/yt-llm-daily/orchestrator"
)

func main() {
	// Load environment variables from .env if present (non-fatal if missing)
	_ = godotenv.Load()
	log.SetOutput(os.Stderr)

	cfg, err := config.FromEnv()
	if err != nil {
		log.Fatalf("configuration error: %v", err)
	}

	result, err := orchestrator.RunOnce(context.Background(), cfg)
	if err != nil {
		log.Fatalf("run failed: %v", err)
	}

	fmt.Printf("added=%d total=%d\n", result.Added, result.Total)
}
