package handlers

import (
	"riskguard-lab/internal/domain/services"
	"riskguard-lab/internal/infrastructure/cache"
	"riskguard-lab/pkg/logger"
)

// Handlers holds all API handlers
type Handlers struct {
	Health  *HealthHandler
	Analyze *AnalyzeHandler
	Stats   *StatsHandler
}

// Dependencies holds dependencies for handlers
type Dependencies struct {
	Engine *services.RiskEngine
	Cache  *cache.RedisCache
	Logger *logger.Logger
}

// NewHandlers creates all handlers
func NewHandlers(deps Dependencies) *Handlers {
	return &Handlers{
		Health:  NewHealthHandler(deps.Cache, deps.Logger),
		Analyze: NewAnalyzeHandler(deps.Engine, deps.Logger),
		Stats:   NewStatsHandler(deps.Engine, deps.Logger),
	}
}
