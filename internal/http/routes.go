package http

import (
	"time"

	"taskflow/internal/http/handlers"
	"taskflow/internal/http/middleware"
	"taskflow/internal/storage"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes wires the API onto the engine. The storage backend is
// injected here and flows down through the handlers; nothing global.
func RegisterRoutes(r *gin.Engine, store storage.Storage, version string, rateLimit int, rateWindow time.Duration) {
	h := handlers.NewHandler(store)
	healthHandler := handlers.NewHealthHandler(store, version)

	// Health checks (no rate limiting)
	r.GET("/health", healthHandler.Health)
	r.GET("/healthz", healthHandler.Liveness)
	r.GET("/readyz", healthHandler.Readiness)

	api := r.Group("/api")
	api.Use(middleware.RateLimit(rateLimit, rateWindow))

	// Tasks
	api.GET("/tasks/:date", h.ListTasks)
	api.POST("/tasks", h.CreateTask)
	api.PATCH("/tasks/:id", h.UpdateTask)
	api.DELETE("/tasks/:id", h.DeleteTask)

	// Daily stats (materialized view over tasks)
	api.GET("/stats/:date", h.GetStats)
	api.GET("/stats/:date/:start/:end", h.StatsSubpath)
	api.POST("/stats/recompute/:date", h.RecomputeStats)
}
