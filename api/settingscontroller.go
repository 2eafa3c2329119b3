package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dilm-seo/ia-analyste/store"
	"github.com/dilm-seo/ia-analyste/types"
)

// RegisterSettingsRoutes registers user settings endpoints.
func RegisterSettingsRoutes(r *gin.Engine, settings *store.SettingsStore) {
	g := r.Group("/api/settings")
	g.GET("", handleGetSettings(settings))
	g.PUT("", handleSaveSettings(settings))
}

func handleGetSettings(settings *store.SettingsStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		current, err := settings.Load(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		// The key is write-only through the API.
		if current.APIKey != "" {
			current.APIKey = "***"
		}
		c.JSON(http.StatusOK, current)
	}
}

func handleSaveSettings(settings *store.SettingsStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req types.Settings
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if req.Language != "en" && req.Language != "fr" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "language must be \"en\" or \"fr\""})
			return
		}
		if err := settings.Save(c.Request.Context(), req); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "saved"})
	}
}
