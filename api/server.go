package api

import (
	"github.com/gin-gonic/gin"

	"github.com/zhangshuxia33/yt-llm-daily/archive"
)

// NewRouter constructs a Gin engine with registered routes.
func NewRouter(store *archive.Store) *gin.Engine {
	r := gin.New()
	// Minimal middleware: recovery; logger optional to reduce verbosity
	r.Use(gin.Recovery())

	RegisterVideoRoutes(r, store)
	RegisterHealthRoutes(r)
	return r
}
