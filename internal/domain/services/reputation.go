package services

import (
	"context"
	"net/url"
	"regexp"
	"strings"
	"time"

	"riskguard-lab/internal/infrastructure/cache"
	"riskguard-lab/pkg/logger"
)

// ReputationVerdict is the outcome of a URL reputation lookup, consumed
// by the engine exactly like a detector output.
type ReputationVerdict struct {
	Flagged    bool     `json:"flagged"`
	Confidence float64  `json:"confidence"`
	Indicators []string `json:"indicators,omitempty"`
}

// ReputationChecker is the malware/URL-reputation collaborator contract
type ReputationChecker interface {
	Check(ctx context.Context, rawURL string) ReputationVerdict
}

const reputationCacheTTL = 1 * time.Hour

// ReputationService checks URLs against a local known-bad domain set and
// malware-delivery heuristics. Lookups are local-first: no raw URL leaves
// the process. Verdicts are cached in Redis when a cache is configured;
// cache failures never affect the verdict.
type ReputationService struct {
	cache  *cache.RedisCache
	logger *logger.Logger

	knownBadDomains  map[string]bool
	shortenerDomains map[string]bool
	payloadPattern   *regexp.Regexp
}

// NewReputationService creates a reputation service with the built-in
// blocklist. The cache may be nil.
func NewReputationService(c *cache.RedisCache, log *logger.Logger) *ReputationService {
	return &ReputationService{
		cache:  c,
		logger: log.WithComponent("url-reputation"),
		knownBadDomains: map[string]bool{
			// Seed entries, a deployed instance would sync a feed
			"login-paypa1.com":  true,
			"secure-amaz0n.com": true,
			"verify-apple.xyz":  true,
			"update-netflix.tk": true,
			"usps-delivery.top": true,
			"fedex-track.click": true,
		},
		shortenerDomains: map[string]bool{
			"bit.ly": true, "tinyurl.com": true, "t.co": true, "goo.gl": true,
			"ow.ly": true, "is.gd": true, "buff.ly": true, "j.mp": true,
			"rb.gy": true, "cutt.ly": true,
		},
		payloadPattern: regexp.MustCompile(`\.(?:exe|scr|bat|cmd|msi|apk|jar|vbs|ps1)(?:$|\?)`),
	}
}

// Check looks up the reputation of a URL. It never returns an error:
// unreadable input or a cache failure degrades to a clean verdict.
func (s *ReputationService) Check(ctx context.Context, rawURL string) ReputationVerdict {
	cacheKey := "reputation:" + rawURL
	if s.cache != nil {
		var cached ReputationVerdict
		if err := s.cache.GetJSON(ctx, cacheKey, &cached); err == nil {
			return cached
		}
	}

	verdict := s.evaluate(rawURL)

	if s.cache != nil {
		if err := s.cache.SetJSON(ctx, cacheKey, verdict, reputationCacheTTL); err != nil {
			s.logger.Warn().Err(err).Msg("failed to cache reputation verdict")
		}
	}

	return verdict
}

// evaluate runs the local heuristics
func (s *ReputationService) evaluate(rawURL string) ReputationVerdict {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return ReputationVerdict{}
	}

	host := strings.ToLower(parsed.Host)
	lowered := strings.ToLower(rawURL)

	var verdict ReputationVerdict

	if s.knownBadDomains[host] {
		verdict.Flagged = true
		verdict.Confidence = max(verdict.Confidence, 0.9)
		verdict.Indicators = append(verdict.Indicators, "Domain is on the known-malicious list")
	}

	if s.payloadPattern.MatchString(lowered) {
		verdict.Flagged = true
		verdict.Confidence = max(verdict.Confidence, 0.7)
		verdict.Indicators = append(verdict.Indicators, "URL points at an executable payload")
	}

	if s.shortenerDomains[host] {
		// A shortener alone is not malware, but it hides the destination
		verdict.Confidence = max(verdict.Confidence, 0.3)
		verdict.Indicators = append(verdict.Indicators, "Shortened URL hides the destination")
	}

	return verdict
}
