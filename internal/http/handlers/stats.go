package handlers

import (
	"errors"
	"net/http"

	"taskflow/internal/domain"

	"github.com/gin-gonic/gin"
)

// GetStats returns the summary for one date. 404 means no task mutation has
// ever touched that date; callers treat it as a zero day.
func (h *Handler) GetStats(c *gin.Context) {
	stats, err := h.Stats.Get(c.Request.Context(), c.Param("date"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "stats not found"})
			return
		}
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

// GetStatsRange returns recorded summaries within [start, end], ascending.
// Unrecorded dates are omitted; the frontend fills gaps with zero days.
func (h *Handler) GetStatsRange(c *gin.Context) {
	stats, err := h.Stats.Range(c.Request.Context(), c.Param("start"), c.Param("end"))
	if err != nil {
		respondError(c, err)
		return
	}
	if stats == nil {
		stats = []*domain.DailyStats{}
	}
	c.JSON(http.StatusOK, stats)
}

// GetStatsSummary returns the aggregated progress metrics for a range.
func (h *Handler) GetStatsSummary(c *gin.Context) {
	summary, err := h.Stats.Summary(c.Request.Context(), c.Param("start"), c.Param("end"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

// StatsSubpath serves the three-segment stats routes. gin rejects a static
// segment next to the :date wildcard, so /stats/range/:start/:end and
// /stats/summary/:start/:end ride the wildcard slot and dispatch here.
func (h *Handler) StatsSubpath(c *gin.Context) {
	switch c.Param("date") {
	case "range":
		h.GetStatsRange(c)
	case "summary":
		h.GetStatsSummary(c)
	default:
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	}
}

// RecomputeStats is the repair path: it re-derives one date's summary from
// the task store on demand, for when a post-mutation recompute was lost.
func (h *Handler) RecomputeStats(c *gin.Context) {
	stats, err := h.Stats.Recompute(c.Request.Context(), c.Param("date"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}
