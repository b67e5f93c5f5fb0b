package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/zhangshuxia33/yt-llm-daily/archive"
)

// RegisterVideoRoutes registers read-only routes over the archive.
func RegisterVideoRoutes(r *gin.Engine, store *archive.Store) {
	r.GET("/api/videos", handleListVideos(store))
	r.GET("/api/videos/:id", handleGetVideo(store))
}

// handleListVideos returns the archive, most recent first, optionally
// capped by a ?limit query parameter.
func handleListVideos(store *archive.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		items, err := store.Load()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		if raw := c.Query("limit"); raw != "" {
			limit, err := strconv.Atoi(raw)
			if err != nil || limit < 0 {
				c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a non-negative integer"})
				return
			}
			if limit < len(items) {
				items = items[:limit]
			}
		}

		c.JSON(http.StatusOK, gin.H{
			"count":  len(items),
			"videos": items,
		})
	}
}

func handleGetVideo(store *archive.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		items, err := store.Load()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		id := c.Param("id")
		for _, item := range items {
			if item.VideoID == id {
				c.JSON(http.StatusOK, item)
				return
			}
		}
		c.JSON(http.StatusNotFound, gin.H{"error": "video not found"})
	}
}
