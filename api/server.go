package api

import (
	"github.com/gin-gonic/gin"

	"github.com/dilm-seo/ia-analyste/pipeline"
	"github.com/dilm-seo/ia-analyste/store"
)

// NewRouter constructs a Gin engine with registered routes.
func NewRouter(p *pipeline.Pipeline, settings *store.SettingsStore, history *store.SignalHistory) *gin.Engine {
	r := gin.New()
	// Minimal middleware: recovery; logger optional to reduce verbosity
	r.Use(gin.Recovery())

	// Register resource routers
	RegisterHealthRoutes(r, settings)
	RegisterNewsRoutes(r, p)
	RegisterSignalRoutes(r, p, history)
	RegisterSettingsRoutes(r, settings)
	return r
}
