package services

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"strconv"
	"sync"

	"riskguard-lab/internal/domain/models"
	"riskguard-lab/internal/infrastructure/cache"
	"riskguard-lab/pkg/logger"
)

// StatsRecorder keeps anonymized aggregate counters keyed by safety
// label. Raw content is never stored: inputs are reduced to a SHA-256
// digest before they reach the log. Counters live in Redis when a cache
// is configured and fall back to process memory otherwise. Recording is
// fire-and-forget, a failed increment never affects an assessment.
type StatsRecorder struct {
	cache  *cache.RedisCache
	logger *logger.Logger

	mu       sync.Mutex
	counters map[models.SafetyLabel]int64
}

// NewStatsRecorder creates a stats recorder. The cache may be nil.
func NewStatsRecorder(c *cache.RedisCache, log *logger.Logger) *StatsRecorder {
	return &StatsRecorder{
		cache:  c,
		logger: log.WithComponent("stats"),
		counters: map[models.SafetyLabel]int64{
			models.SafetyLabelSafe:       0,
			models.SafetyLabelSuspicious: 0,
			models.SafetyLabelUnsafe:     0,
		},
	}
}

// Record increments the counter for a safety label. The input is hashed
// for trace logging only and then discarded.
func (s *StatsRecorder) Record(ctx context.Context, label models.SafetyLabel, input string) {
	digest := hashInput(input)
	s.logger.Debug().Str("label", string(label)).Str("digest", digest).Msg("recording assessment")

	if s.cache != nil {
		_, err := s.cache.HIncrBy(ctx, cache.KeyStatsLabels, string(label), 1)
		if err == nil {
			return
		}
		s.logger.Warn().Err(err).Msg("failed to record stats in Redis, using memory")
	}

	s.mu.Lock()
	s.counters[label]++
	s.mu.Unlock()
}

// Counters returns the current per-label counts
func (s *StatsRecorder) Counters(ctx context.Context) map[models.SafetyLabel]int64 {
	out := map[models.SafetyLabel]int64{
		models.SafetyLabelSafe:       0,
		models.SafetyLabelSuspicious: 0,
		models.SafetyLabelUnsafe:     0,
	}

	if s.cache != nil {
		if fields, err := s.cache.HGetAll(ctx, cache.KeyStatsLabels); err == nil {
			for field, raw := range fields {
				if n, err := strconv.ParseInt(raw, 10, 64); err == nil {
					out[models.SafetyLabel(field)] += n
				}
			}
		}
	}

	s.mu.Lock()
	for label, n := range s.counters {
		out[label] += n
	}
	s.mu.Unlock()

	return out
}

// hashInput returns the SHA-256 hex digest of the input
func hashInput(value string) string {
	sum := sha256.Sum256([]byte(value))
	return hex.EncodeToString(sum[:])
}
