package services

import (
	"regexp"
	"strings"

	"riskguard-lab/internal/domain/models"
)

// Per-category tactic weights
const (
	pressureWeight  = 0.15
	authorityWeight = 0.18
	trustWeight     = 0.20
	fearWeight      = 0.15
	rewardWeight    = 0.12
)

// SocialEngineeringDetector identifies manipulation tactics across five
// categories: pressure, authority, trust-building, fear, and reward.
type SocialEngineeringDetector struct {
	pressureTactics  []TextPattern
	authorityTactics []TextPattern
	trustBuilding    []TextPattern
	fearTactics      []TextPattern
	rewardTactics    []TextPattern

	actionWords          []string
	personalizationWords []string
}

// NewSocialEngineeringDetector creates a detector with the default tactic patterns
func NewSocialEngineeringDetector() *SocialEngineeringDetector {
	return &SocialEngineeringDetector{
		pressureTactics: []TextPattern{
			{
				Name:        "time_pressure",
				Pattern:     regexp.MustCompile(`(?:act\s+now|urgent|immediately|limited\s+time|expire|deadline)`),
				Weight:      pressureWeight,
				Description: "Time pressure language",
			},
			{
				Name:        "scarcity",
				Pattern:     regexp.MustCompile(`(?:last\s+chance|don'?t(?:\s+|\W)miss|only\s+today)`),
				Weight:      pressureWeight,
				Description: "Scarcity framing",
			},
		},
		authorityTactics: []TextPattern{
			{
				Name:        "authority_claim",
				Pattern:     regexp.MustCompile(`(?:from|behalf\s+of)\s+(?:your\s+)?(?:bank|paypal|apple|microsoft|admin|it)`),
				Weight:      authorityWeight,
				Description: "Claims to speak for an authority",
			},
			{
				Name:        "official_status",
				Pattern:     regexp.MustCompile(`(?:official|authorized|verified)\s+(?:account|representative)`),
				Weight:      authorityWeight,
				Description: "Claims official status",
			},
		},
		trustBuilding: []TextPattern{
			{
				Name:        "reassurance",
				Pattern:     regexp.MustCompile(`don't\s+(?:worry|be\s+concerned)`),
				Weight:      trustWeight,
				Description: "Preemptive reassurance",
			},
			{
				Name:        "trust_plea",
				Pattern:     regexp.MustCompile(`trust\s+(?:me|us|this)`),
				Weight:      trustWeight,
				Description: "Explicit plea for trust",
			},
			{
				Name:        "safety_claim",
				Pattern:     regexp.MustCompile(`(?:safe|secure|confidential|private)`),
				Weight:      trustWeight,
				Description: "Claims the request is safe",
			},
		},
		fearTactics: []TextPattern{
			{
				Name:        "asset_threat",
				Pattern:     regexp.MustCompile(`(?:account|access|funds|data)\s+(?:suspended|locked|disabled|compromised)`),
				Weight:      fearWeight,
				Description: "Threatens loss of account or funds",
			},
			{
				Name:        "danger_language",
				Pattern:     regexp.MustCompile(`(?:risky|dangerous|problem|attack)`),
				Weight:      fearWeight,
				Description: "Danger framing",
			},
			{
				Name:        "unusual_activity",
				Pattern:     regexp.MustCompile(`(?:unusual|suspicious)\s+activity`),
				Weight:      fearWeight,
				Description: "Claims unusual account activity",
			},
		},
		rewardTactics: []TextPattern{
			{
				Name:        "prize_offer",
				Pattern:     regexp.MustCompile(`(?:claim|receive|get|won?)\s+(?:prize|reward|refund|money|gift)`),
				Weight:      rewardWeight,
				Description: "Promises a prize or refund",
			},
			{
				Name:        "exclusive_offer",
				Pattern:     regexp.MustCompile(`(?:exclusive|special)\s+(?:offer|deal|opportunity)`),
				Weight:      rewardWeight,
				Description: "Exclusive offer framing",
			},
		},
		actionWords:          []string{"click", "confirm", "verify", "send", "provide"},
		personalizationWords: []string{"dear", "valued", "friend"},
	}
}

// Analyze scores content for social engineering tactics
func (d *SocialEngineeringDetector) Analyze(content string) models.DetectionResult {
	lower := strings.ToLower(content)

	var confidence float64
	var indicators []string
	tacticsFound := 0

	pressureHits := 0
	for _, p := range d.pressureTactics {
		if p.Pattern.MatchString(lower) {
			tacticsFound++
			pressureHits++
			confidence += p.Weight
		}
	}
	if pressureHits > 0 {
		indicators = append(indicators, "Pressure tactics detected")
	}

	authorityHits := 0
	for _, p := range d.authorityTactics {
		if p.Pattern.MatchString(lower) {
			tacticsFound++
			authorityHits++
			confidence += p.Weight
		}
	}
	if authorityHits > 0 {
		indicators = append(indicators, "Appeals to authority detected")
	}

	// Trust building only counts when paired with an action request in
	// the same content
	if countMatches(d.trustBuilding, lower) > 0 && containsAny(lower, d.actionWords) {
		tacticsFound++
		confidence += trustWeight
		indicators = append(indicators, "Trust building combined with a request")
	}

	fearHits := 0
	for _, p := range d.fearTactics {
		if p.Pattern.MatchString(lower) {
			tacticsFound++
			fearHits++
			confidence += p.Weight
		}
	}
	if fearHits > 0 {
		indicators = append(indicators, "Fear tactics detected")
	}

	rewardHits := 0
	for _, p := range d.rewardTactics {
		if p.Pattern.MatchString(lower) {
			tacticsFound++
			rewardHits++
			confidence += p.Weight
		}
	}
	if rewardHits > 0 {
		indicators = append(indicators, "Reward or incentive tactics detected")
	}

	// Multiple tactics combined raises confidence
	if tacticsFound >= 2 {
		confidence = min(0.9, confidence*1.2)
	}

	// Personalization attempts only matter once a tactic is present
	if containsAny(lower, d.personalizationWords) && tacticsFound >= 1 {
		confidence += 0.1
		indicators = append(indicators, "Personalized greeting used to appear genuine")
	}

	return models.DetectionResult{
		Triggered:  confidence > 0.5,
		Confidence: clamp01(confidence),
		Indicators: indicators,
	}
}
