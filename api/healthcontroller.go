package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dilm-seo/ia-analyste/store"
)

// RegisterHealthRoutes registers health check endpoints.
func RegisterHealthRoutes(r *gin.Engine, settings *store.SettingsStore) {
	r.GET("/api/health", handleHealth(settings))
}

// handleHealth reports liveness plus store reachability, probed with a
// settings read since that is the cheapest round-trip every request
// path depends on.
func handleHealth(settings *store.SettingsStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, err := settings.Load(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded", "store": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok", "store": "ok"})
	}
}
