// serve exposes the persisted video archive over a read-only HTTP API.
package main

import (
	"log"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"github.com/zhangshuxia33/yt-llm-daily/api"
	"github.com/zhangshuxia33/yt-llm-daily/archive"
	"github.com/zhangshuxia33/yt-llm-daily/config"
)

func main() {
	// Load environment variables from .env if present (non-fatal if missing)
	_ = godotenv.Load()

	addr := ":8080"
	if v := os.Getenv("PORT"); v != "" {
		addr = ":" + v
	}

	path := os.Getenv("ARCHIVE_PATH")
	if path == "" {
		path = config.DefaultArchivePath
	}

	r := api.NewRouter(archive.NewStore(path))
	log.Printf("Starting archive API on %s", addr)
	log.Println("Endpoints available:")
	log.Println("  GET /api/health")
	log.Println("  GET /api/videos")
	log.Println("  GET /api/videos/:id")

	if err := http.ListenAndServe(addr, r); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
