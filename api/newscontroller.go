package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dilm-seo/ia-analyste/feed"
	"github.com/dilm-seo/ia-analyste/pipeline"
)

// RegisterNewsRoutes registers news feed endpoints.
func RegisterNewsRoutes(r *gin.Engine, p *pipeline.Pipeline) {
	g := r.Group("/api/news")
	g.GET("", handleGetNews(p))
	g.POST("/refresh", handleRefreshNews(p))
}

// handleGetNews returns the current news list, fetching the feed when
// the cache is stale.
func handleGetNews(p *pipeline.Pipeline) gin.HandlerFunc {
	return func(c *gin.Context) {
		items, err := p.Refresh(c.Request.Context())
		if err != nil {
			var fetchErr *feed.FetchError
			if errors.As(err, &fetchErr) {
				c.JSON(http.StatusBadGateway, gin.H{"error": "failed to fetch news feed: " + fetchErr.Err.Error()})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"count": len(items), "news": items})
	}
}

// handleRefreshNews triggers an immediate fetch. The cache still
// applies, so a fresh entry short-circuits the network call.
func handleRefreshNews(p *pipeline.Pipeline) gin.HandlerFunc {
	return handleGetNews(p)
}
