// Package httpapi exposes the matcher over HTTP.
//
// Routes:
//   - GET  /healthcheck
//   - GET  /api/concepts
//   - POST /api/variables/reconcile
//   - POST /api/variables/reconcile/batch
//
// Authentication and sessions belong to the surrounding product and are
// expected in front of this router.
package httpapi

import (
	"github.com/gin-gonic/gin"

	"varmatch/internal/logger"
)

type RouterConfig struct {
	ReconcileHandler *ReconcileHandler
	ConceptsHandler  *ConceptsHandler
	HealthHandler    *HealthHandler
	Logger           *logger.Logger
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(AttachRequestID())
	r.Use(RequestLogger(cfg.Logger))

	if cfg.HealthHandler != nil {
		r.GET("/healthcheck", cfg.HealthHandler.HealthCheck)
	}

	api := r.Group("/api")
	{
		if cfg.ConceptsHandler != nil {
			api.GET("/concepts", cfg.ConceptsHandler.ListConcepts)
		}
		if cfg.ReconcileHandler != nil {
			api.POST("/variables/reconcile", cfg.ReconcileHandler.Reconcile)
			api.POST("/variables/reconcile/batch", cfg.ReconcileHandler.ReconcileBatch)
		}
	}

	return r
}
