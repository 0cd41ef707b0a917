package handlers

import (
	"net/http"
	"time"

	"riskguard-lab/internal/domain/models"
	"riskguard-lab/internal/domain/services"
	"riskguard-lab/pkg/logger"
)

// StatsHandler serves aggregate analysis counters
type StatsHandler struct {
	engine *services.RiskEngine
	logger *logger.Logger
}

// NewStatsHandler creates a new StatsHandler
func NewStatsHandler(engine *services.RiskEngine, log *logger.Logger) *StatsHandler {
	return &StatsHandler{
		engine: engine,
		logger: log.WithComponent("stats-handler"),
	}
}

// StatsResponse is the aggregate counter report. Counts are keyed by
// safety label; no per-request content is retained.
type StatsResponse struct {
	Labels    map[models.SafetyLabel]int64 `json:"labels"`
	Total     int64                        `json:"total"`
	Timestamp string                       `json:"timestamp"`
}

// Get handles GET /api/v1/stats
func (h *StatsHandler) Get(w http.ResponseWriter, r *http.Request) {
	counters := h.engine.Stats().Counters(r.Context())

	var total int64
	for _, n := range counters {
		total += n
	}

	writeJSON(w, http.StatusOK, StatsResponse{
		Labels:    counters,
		Total:     total,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}
