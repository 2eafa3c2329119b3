package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dilm-seo/ia-analyste/analysis"
	"github.com/dilm-seo/ia-analyste/feed"
	"github.com/dilm-seo/ia-analyste/pipeline"
	"github.com/dilm-seo/ia-analyste/store"
)

// RegisterSignalRoutes registers analysis and signal history endpoints.
func RegisterSignalRoutes(r *gin.Engine, p *pipeline.Pipeline, history *store.SignalHistory) {
	r.POST("/api/analyze", handleAnalyze(p))
	r.GET("/api/signals", handleGetSignals(history))
}

// handleAnalyze runs one pass of the analysis pipeline. Pipeline
// errors are converted to user-facing responses here; this is the
// notification boundary of the system.
func handleAnalyze(p *pipeline.Pipeline) gin.HandlerFunc {
	return func(c *gin.Context) {
		outcome, err := p.Analyze(c.Request.Context())
		if err != nil {
			status := http.StatusInternalServerError
			var fetchErr *feed.FetchError
			var analysisErr *analysis.AnalysisError
			switch {
			case errors.Is(err, analysis.ErrMissingAPIKey):
				status = http.StatusBadRequest
			case errors.As(err, &fetchErr), errors.As(err, &analysisErr):
				status = http.StatusBadGateway
			}
			c.JSON(status, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"signal": outcome.Signal, "news": outcome.News})
	}
}

// handleGetSignals returns the signal history, newest first.
func handleGetSignals(history *store.SignalHistory) gin.HandlerFunc {
	return func(c *gin.Context) {
		signals, err := history.All(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"count": len(signals), "signals": signals})
	}
}
