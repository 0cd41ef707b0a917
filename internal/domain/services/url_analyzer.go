package services

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"riskguard-lab/internal/domain/models"
)

// URLAnalyzer examines URL structure for suspicious characteristics and
// phishing indicators. It accumulates two independent scores: a general
// suspicion score and a phishing-specific score.
type URLAnalyzer struct {
	suspiciousTLDs     []string
	suspiciousKeywords []string
	phishingKeywords   map[string]bool
	brandAllowList     []string
	ipPattern          *regexp.Regexp
	homographPattern   *regexp.Regexp
}

// NewURLAnalyzer creates an analyzer with the default signal tables
func NewURLAnalyzer() *URLAnalyzer {
	return &URLAnalyzer{
		suspiciousTLDs: []string{".tk", ".ml", ".ga", ".cf"},
		suspiciousKeywords: []string{
			"secure", "verify", "confirm", "update", "account",
			"login", "authenticate", "validate", "steam", "apple", "amazon", "paypal",
		},
		phishingKeywords: map[string]bool{
			"secure":       true,
			"verify":       true,
			"confirm":      true,
			"login":        true,
			"authenticate": true,
		},
		brandAllowList:   []string{"secure.example", "login.official"},
		ipPattern:        regexp.MustCompile(`^\d+\.\d+\.\d+\.\d+`),
		homographPattern: regexp.MustCompile(`(0=o|l=1|rn=m)`),
	}
}

// Analyze examines a URL for suspicious characteristics. Malformed input
// never aborts analysis: a parse failure degrades to a conservative
// fixed-confidence suspicious result. The context tag is accepted as a
// hint but currently unused by scoring.
func (a *URLAnalyzer) Analyze(rawURL, context string) models.URLAnalysis {
	_ = context

	parsed, err := url.Parse(rawURL)
	if err != nil {
		return models.URLAnalysis{
			IsSuspicious:       true,
			Confidence:         0.2,
			PhishingIndicators: []string{"Error parsing URL"},
			PhishingConfidence: 0.1,
		}
	}

	domain := strings.ToLower(parsed.Host)
	path := strings.ToLower(parsed.Path)

	var confidence, phishingConfidence float64
	indicators := []string{}

	if parsed.Scheme == "" {
		confidence += 0.2
		indicators = append(indicators, "Missing protocol")
	}

	for _, tld := range a.suspiciousTLDs {
		if strings.HasSuffix(domain, tld) {
			confidence += 0.3
			indicators = append(indicators, fmt.Sprintf("Suspicious TLD: %s", tld))
		}
	}

	subdomainCount := strings.Count(domain, ".")
	if subdomainCount > 3 {
		confidence += 0.15
		indicators = append(indicators, "Excessive subdomains")
	}

	usesIP := a.ipPattern.MatchString(domain)
	if usesIP {
		confidence += 0.4
		phishingConfidence += 0.4
		indicators = append(indicators, "Direct IP address used")
	}

	if len(rawURL) > 100 {
		confidence += 0.15
		indicators = append(indicators, "Unusually long URL")
	}

	for _, keyword := range a.suspiciousKeywords {
		if strings.Contains(path, keyword) || strings.Contains(domain, keyword) {
			if a.phishingKeywords[keyword] && !a.isAllowListedDomain(domain) {
				phishingConfidence += 0.2
				indicators = append(indicators, fmt.Sprintf("Suspicious keyword: %s", keyword))
			}
		}
	}

	if a.homographPattern.MatchString(domain) {
		confidence += 0.35
		indicators = append(indicators, "Potential homograph attack")
	}

	if strings.Contains(rawURL, "%2e") || strings.Contains(rawURL, "%3a") {
		confidence += 0.3
		indicators = append(indicators, "URL encoding detected")
	}

	return models.URLAnalysis{
		IsSuspicious:       confidence > 0.3,
		Confidence:         clamp01(confidence),
		PhishingIndicators: indicators,
		PhishingConfidence: clamp01(phishingConfidence),
		Domain:             domain,
		AnalysisDetails: models.URLAnalysisDetails{
			HasScheme:      parsed.Scheme != "",
			SubdomainCount: subdomainCount,
			URLLength:      len(rawURL),
			UsesIP:         usesIP,
		},
	}
}

// isAllowListedDomain reports whether the domain contains a known-good
// brand domain. The allow list is intentionally permissive-by-default:
// its entries are placeholders, so brand keywords are effectively always
// penalized.
func (a *URLAnalyzer) isAllowListedDomain(domain string) bool {
	for _, allowed := range a.brandAllowList {
		if strings.Contains(domain, allowed) {
			return true
		}
	}
	return false
}
