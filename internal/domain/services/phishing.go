package services

import (
	"regexp"
	"strings"

	"riskguard-lab/internal/domain/models"
)

// PhishingDetector identifies phishing attempts in text content using
// weighted keyword patterns and linguistic signals.
type PhishingDetector struct {
	phishingKeywords []TextPattern
	socialKeywords   []TextPattern
	urgencyPattern   *regexp.Regexp
	actionPattern    *regexp.Regexp
	spoofingPattern  *regexp.Regexp
}

// NewPhishingDetector creates a detector with the default pattern set
func NewPhishingDetector() *PhishingDetector {
	return &PhishingDetector{
		phishingKeywords: []TextPattern{
			{
				Name:        "verify_request",
				Pattern:     regexp.MustCompile(`verify\s+(?:your|my|account|identity|password)`),
				Weight:      0.15,
				Description: "Request to verify account or identity",
			},
			{
				Name:        "urgency",
				Pattern:     regexp.MustCompile(`(?:urgent|immediate|action\s+required|act\s+now)`),
				Weight:      0.15,
				Description: "Urgency language",
			},
			{
				Name:        "credential_update",
				Pattern:     regexp.MustCompile(`(?:confirm|validate|update)\s+(?:password|account|information)`),
				Weight:      0.15,
				Description: "Request to update credentials or account data",
			},
			{
				Name:        "account_restriction",
				Pattern:     regexp.MustCompile(`suspended|locked|disabled|limited|restricted`),
				Weight:      0.15,
				Description: "Claims the account is restricted",
			},
			{
				Name:        "unusual_activity",
				Pattern:     regexp.MustCompile(`unusual\s+activity`),
				Weight:      0.15,
				Description: "Claims unusual account activity",
			},
			{
				Name:        "call_to_action",
				Pattern:     regexp.MustCompile(`(?:click\s+here|confirm\s+identity|verify\s+account)`),
				Weight:      0.15,
				Description: "Direct call to action",
			},
			{
				Name:        "brand_mention",
				Pattern:     regexp.MustCompile(`bank|paypal|amazon|apple|microsoft`),
				Weight:      0.15,
				Description: "Mentions a commonly impersonated brand",
			},
		},
		socialKeywords: []TextPattern{
			{
				Name:        "trust_plea",
				Pattern:     regexp.MustCompile(`trust\s+me`),
				Weight:      0.1,
				Description: "Explicit plea for trust",
			},
			{
				Name:        "confidentiality",
				Pattern:     regexp.MustCompile(`(?:private|confidential)\s+information`),
				Weight:      0.1,
				Description: "Appeals to confidentiality",
			},
			{
				Name:        "secrecy",
				Pattern:     regexp.MustCompile(`(?:only\s+you|just\s+between\s+us)`),
				Weight:      0.1,
				Description: "Requests secrecy",
			},
		},
		urgencyPattern:  regexp.MustCompile(`urgent|immediate|act\s+now`),
		actionPattern:   regexp.MustCompile(`click|confirm|verify|update`),
		spoofingPattern: regexp.MustCompile(`(?:from|on\s+behalf\s+of)\s+\w+@\w+`),
	}
}

// Analyze scores content for phishing indicators. The result is a pure
// function of the content and the immutable pattern tables.
func (d *PhishingDetector) Analyze(content string) models.DetectionResult {
	lower := strings.ToLower(content)

	matched := countMatches(d.phishingKeywords, lower)
	socialMatched := countMatches(d.socialKeywords, lower)

	hasUrgency := d.urgencyPattern.MatchString(lower)
	hasAction := d.actionPattern.MatchString(lower)
	hasSpoofing := d.spoofingPattern.MatchString(lower)

	var confidence float64
	var indicators []string

	if matched >= 2 {
		confidence = min(0.9, 0.3+float64(matched)*0.15)
		indicators = append(indicators, "Multiple phishing keywords present")
	}
	if socialMatched > 0 {
		indicators = append(indicators, "Social engineering language present")
	}
	if hasUrgency && hasAction {
		confidence = max(confidence, 0.7)
		indicators = append(indicators, "Urgency combined with an action request")
	}
	// Spoofing boost applies only on top of an existing signal, and after
	// the urgency/action floor has been applied
	if hasSpoofing && confidence > 0.3 {
		confidence = min(0.95, confidence+0.2)
		indicators = append(indicators, "Sender spoofing pattern detected")
	}

	return models.DetectionResult{
		Triggered:  confidence > 0.5,
		Confidence: clamp01(confidence),
		Indicators: indicators,
	}
}
