package services

import (
	"regexp"
	"strings"

	"riskguard-lab/internal/domain/models"
)

const (
	credentialKeywordWeight = 0.12
	actionKeywordWeight     = 0.15
)

// messagingContentTypes are channels where an unsolicited password request
// is a strong credential-theft signal
var messagingContentTypes = map[string]bool{
	"email":   true,
	"message": true,
	"sms":     true,
}

// CredentialTheftDetector identifies attempts to harvest passwords, PINs,
// and other secrets from text content.
type CredentialTheftDetector struct {
	credentialKeywords []TextPattern
	actionKeywords     []TextPattern

	sendVerbs     []string
	urgencyWords  []string
	urlPattern    *regexp.Regexp
	verifyPattern *regexp.Regexp
}

// NewCredentialTheftDetector creates a detector with the default pattern set
func NewCredentialTheftDetector() *CredentialTheftDetector {
	return &CredentialTheftDetector{
		credentialKeywords: []TextPattern{
			{Name: "password", Pattern: regexp.MustCompile(`password`), Weight: credentialKeywordWeight, Description: "Mentions a password"},
			{Name: "username", Pattern: regexp.MustCompile(`(?:user)?name`), Weight: credentialKeywordWeight, Description: "Mentions a username"},
			{Name: "pin_code", Pattern: regexp.MustCompile(`pin\s+code`), Weight: credentialKeywordWeight, Description: "Mentions a PIN code"},
			{Name: "security_code", Pattern: regexp.MustCompile(`security\s+code`), Weight: credentialKeywordWeight, Description: "Mentions a security code"},
			{Name: "token", Pattern: regexp.MustCompile(`token`), Weight: credentialKeywordWeight, Description: "Mentions a token"},
			{Name: "secret_qa", Pattern: regexp.MustCompile(`secret\s+(?:question|answer)`), Weight: credentialKeywordWeight, Description: "Mentions a secret question or answer"},
			{Name: "date_of_birth", Pattern: regexp.MustCompile(`date\s+of\s+birth`), Weight: credentialKeywordWeight, Description: "Asks for date of birth"},
			{Name: "ssn", Pattern: regexp.MustCompile(`(?:social\s+)?security\s+(?:number|code)`), Weight: credentialKeywordWeight, Description: "Asks for a social security number"},
		},
		actionKeywords: []TextPattern{
			{
				Name:        "credential_reset",
				Pattern:     regexp.MustCompile(`(?:verify|confirm|update|change|reset)\s+(?:password|account|credentials)`),
				Weight:      actionKeywordWeight,
				Description: "Requests a credential change",
			},
			{
				Name:        "credential_submission",
				Pattern:     regexp.MustCompile(`(?:enter|provide|submit|send)\s+(?:password|pin|security\s+code|account\s+details)`),
				Weight:      actionKeywordWeight,
				Description: "Requests credential submission",
			},
			{
				Name:        "generic_action",
				Pattern:     regexp.MustCompile(`(?:please\s+)?(?:click|confirm|verify)`),
				Weight:      actionKeywordWeight,
				Description: "Generic action request",
			},
		},
		sendVerbs:     []string{"send", "provide", "enter", "submit"},
		urgencyWords:  []string{"urgent", "immediate", "act now", "must", "required"},
		urlPattern:    regexp.MustCompile(`https?://\S+`),
		verifyPattern: regexp.MustCompile(`verify\s+(?:your|my|account)`),
	}
}

// Analyze scores content for credential theft attempts. The contentType
// tag marks the channel the content arrived on (email, message, sms, ...).
func (d *CredentialTheftDetector) Analyze(content, contentType string) models.DetectionResult {
	lower := strings.ToLower(content)

	var confidence float64
	var indicators []string

	credentialsMentioned := 0
	for _, p := range d.credentialKeywords {
		if p.Pattern.MatchString(lower) {
			credentialsMentioned++
			confidence += p.Weight
		}
	}
	if credentialsMentioned > 0 {
		indicators = append(indicators, "Credential-related keywords present")
	}

	actionsRequested := 0
	for _, p := range d.actionKeywords {
		if p.Pattern.MatchString(lower) {
			actionsRequested++
			confidence += p.Weight
		}
	}
	if actionsRequested > 0 {
		indicators = append(indicators, "Request to act on credentials")
	}

	// Unsolicited password request over a messaging channel
	if messagingContentTypes[contentType] {
		if strings.Contains(lower, "password") && containsAny(lower, d.sendVerbs) {
			confidence = min(0.9, confidence+0.3)
			indicators = append(indicators, "Password requested over a messaging channel")
		}
	}

	// A link next to credential keywords suggests a harvesting page.
	// The URL pattern runs on the original content, schemes are
	// case-sensitive on the wire.
	if d.urlPattern.MatchString(content) && credentialsMentioned > 0 {
		confidence += 0.15
		indicators = append(indicators, "Link combined with credential request")
	}

	if containsAny(lower, d.urgencyWords) && credentialsMentioned > 0 {
		confidence = min(0.95, confidence+0.25)
		indicators = append(indicators, "Urgency combined with credential request")
	}

	if actionsRequested >= 2 {
		confidence = min(0.9, confidence+0.2)
		indicators = append(indicators, "Multiple action requests")
	}

	if d.verifyPattern.MatchString(lower) {
		confidence = min(0.85, confidence+0.2)
		indicators = append(indicators, "Account verification phrase present")
	}

	return models.DetectionResult{
		Triggered:  confidence > 0.5,
		Confidence: clamp01(confidence),
		Indicators: indicators,
	}
}
