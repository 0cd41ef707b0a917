package models

import (
	"time"

	"github.com/google/uuid"
)

// RiskLevel is a coarse severity bucket derived from confidence
type RiskLevel string

const (
	RiskLevelLow      RiskLevel = "LOW"
	RiskLevelMedium   RiskLevel = "MEDIUM"
	RiskLevelHigh     RiskLevel = "HIGH"
	RiskLevelCritical RiskLevel = "CRITICAL"
)

// Severity returns the ordering rank of the risk level
func (l RiskLevel) Severity() int {
	switch l {
	case RiskLevelMedium:
		return 1
	case RiskLevelHigh:
		return 2
	case RiskLevelCritical:
		return 3
	default:
		return 0
	}
}

// MaxRiskLevel returns the more severe of two risk levels
func MaxRiskLevel(a, b RiskLevel) RiskLevel {
	if b.Severity() > a.Severity() {
		return b
	}
	return a
}

// SafetyLabel is derived from the 0-100 risk score
type SafetyLabel string

const (
	SafetyLabelSafe       SafetyLabel = "SAFE"
	SafetyLabelSuspicious SafetyLabel = "SUSPICIOUS"
	SafetyLabelUnsafe     SafetyLabel = "UNSAFE"
)

// RiskCategory identifies the source of a detected risk. Each category
// maps 1:1 to a detector or indicator source.
type RiskCategory string

const (
	CategoryPhishing             RiskCategory = "phishing_attempt"
	CategorySocialEngineering    RiskCategory = "social_engineering_attempt"
	CategoryCredentialTheft      RiskCategory = "credential_theft_attempt"
	CategorySuspiciousURL        RiskCategory = "suspicious_url"
	CategoryPhishingURLIndicator RiskCategory = "phishing_url_indicators"
	CategoryMalwareSource        RiskCategory = "potential_malware_source"
)

// riskCategoryLabels maps categories to their display names
var riskCategoryLabels = map[RiskCategory]string{
	CategoryPhishing:             "Phishing attempt",
	CategorySocialEngineering:    "Social engineering attempt",
	CategoryCredentialTheft:      "Credential theft attempt",
	CategorySuspiciousURL:        "Suspicious URL",
	CategoryPhishingURLIndicator: "Phishing URL indicators",
	CategoryMalwareSource:        "Potential malware source",
}

// Label returns the human-readable name of the category
func (c RiskCategory) Label() string {
	if label, ok := riskCategoryLabels[c]; ok {
		return label
	}
	return string(c)
}

// DetectionResult is the outcome of a single detector call. Confidence is
// scoped to the call, detectors carry no cross-call state.
type DetectionResult struct {
	Triggered  bool     `json:"triggered"`
	Confidence float64  `json:"confidence"`
	Indicators []string `json:"indicators,omitempty"`
}

// URLAnalysisDetails carries structural facts about an analyzed URL
type URLAnalysisDetails struct {
	HasScheme      bool `json:"has_scheme"`
	SubdomainCount int  `json:"subdomain_count"`
	URLLength      int  `json:"url_length"`
	UsesIP         bool `json:"uses_ip"`
}

// URLAnalysis is the outcome of the URL analyzer. General suspicion and
// phishing-specific scores accumulate independently.
type URLAnalysis struct {
	IsSuspicious       bool               `json:"is_suspicious"`
	Confidence         float64            `json:"confidence"`
	PhishingIndicators []string           `json:"phishing_indicators"`
	PhishingConfidence float64            `json:"phishing_confidence"`
	Domain             string             `json:"domain"`
	AnalysisDetails    URLAnalysisDetails `json:"analysis_details"`
}

// RiskAssessment is the merged verdict for one analysis request
type RiskAssessment struct {
	ID              uuid.UUID      `json:"id"`
	RiskLevel       RiskLevel      `json:"risk_level"`
	Confidence      float64        `json:"confidence"`
	RiskScore       int            `json:"risk_score"`
	SafetyLabel     SafetyLabel    `json:"safety_label"`
	DetectedRisks   []RiskCategory `json:"detected_risks"`
	Explanation     string         `json:"explanation"`
	Recommendations []string       `json:"recommendations"`
	AnalyzedAt      time.Time      `json:"analyzed_at"`
}

// DetectedRiskLabels returns the display names of the detected risks,
// preserving insertion order.
func (a *RiskAssessment) DetectedRiskLabels() []string {
	labels := make([]string, 0, len(a.DetectedRisks))
	for _, c := range a.DetectedRisks {
		labels = append(labels, c.Label())
	}
	return labels
}

// CombinedSummary is the max/union merge of a text and a URL assessment
type CombinedSummary struct {
	RiskLevel     RiskLevel      `json:"risk_level"`
	Confidence    float64        `json:"confidence"`
	DetectedRisks []RiskCategory `json:"detected_risks"`
}

// CombinedAssessment holds both halves of a combined analysis plus the
// merged summary when either half detected risks
type CombinedAssessment struct {
	TextAnalysis *RiskAssessment  `json:"text_analysis,omitempty"`
	URLAnalysis  *RiskAssessment  `json:"url_analysis,omitempty"`
	Combined     *CombinedSummary `json:"combined,omitempty"`
}

// Explanation is the structured output of the risk explainer
type Explanation struct {
	Summary   string   `json:"summary"`
	Reasons   []string `json:"reasons"`
	NextSteps []string `json:"next_steps"`
}
