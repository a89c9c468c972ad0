package handlers

import (
	"errors"
	"net/http"

	"taskflow/internal/domain"
	"taskflow/internal/logger"
	"taskflow/internal/service"
	"taskflow/internal/storage"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	Tasks *service.TaskService
	Stats *service.StatsService
}

func NewHandler(store storage.Storage) *Handler {
	stats := service.NewStatsService(store)
	return &Handler{
		Tasks: service.NewTaskService(store, stats),
		Stats: stats,
	}
}

// respondError maps the error taxonomy onto status codes: ValidationError
// is 400, ErrNotFound is 404, everything else is a logged 500.
func respondError(c *gin.Context, err error) {
	var verr *domain.ValidationError
	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, gin.H{"error": verr.Error()})
	case errors.Is(err, domain.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	default:
		logger.Error("request failed", "path", c.FullPath(), "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
