package services

import (
	"strings"

	"riskguard-lab/internal/domain/models"
)

const maxExplainerItems = 3

// categoryReasons maps each risk category to a fixed plain-language
// sentence shown to the user.
var categoryReasons = map[models.RiskCategory]string{
	models.CategoryPhishing:             "This looks like a fake message trying to trick you into giving away your password or personal information.",
	models.CategorySocialEngineering:    "This message is using tricks and manipulation to try to get you to do something you shouldn't.",
	models.CategoryCredentialTheft:      "Someone is trying to trick you into typing your password or security code on a fake website.",
	models.CategorySuspiciousURL:        "This link looks suspicious and might take you to a fake website.",
	models.CategoryPhishingURLIndicator: "This URL has signs that it might be a phishing link.",
	models.CategoryMalwareSource:        "This link might download dangerous software (malware) to your device.",
}

// riskLevelSummaries maps each risk level to a fixed summary sentence
var riskLevelSummaries = map[models.RiskLevel]string{
	models.RiskLevelLow:      "This content appears to be safe. No major red flags detected.",
	models.RiskLevelMedium:   "Be cautious with this content. Some warning signs detected.",
	models.RiskLevelHigh:     "This content is likely malicious. Don't click links or provide information.",
	models.RiskLevelCritical: "CRITICAL ALERT: This is almost certainly a phishing or malware attempt. Do NOT interact with it.",
}

// Next-step groups, matched by detected category
var (
	phishingNextSteps = []string{
		"Do not click any links or enter credentials.",
		"Go to the official website by typing its address yourself.",
		"Report the message to your IT department or email provider.",
	}
	malwareNextSteps = []string{
		"Do not download files from this source.",
		"Run an updated antivirus scan if you interacted with it.",
		"If in doubt, ask IT support before opening attachments.",
	}
	socialEngineeringNextSteps = []string{
		"Pause and verify the request with a known contact method.",
		"Do not act under pressure or urgency without confirmation.",
	}
	fallbackNextSteps = []string{
		"Do not click suspicious links.",
		"Verify sender identity before sharing personal info.",
		"When unsure, ask your IT support or a trusted person.",
	}
	noRiskNextSteps = []string{
		"This content appears safe to interact with.",
		"Always verify sender addresses before clicking links.",
		"If something feels off, trust your instinct and ask for help.",
	}
)

// RiskExplainer turns detected risk categories and a risk level into a
// structured, human-readable explanation. Pure lookup and formatting,
// no scoring and no state.
type RiskExplainer struct{}

// NewRiskExplainer creates an explainer
func NewRiskExplainer() *RiskExplainer {
	return &RiskExplainer{}
}

// Explain builds a structured explanation for the detected categories.
// Reasons keep the categories' insertion order and are capped at three,
// as are next steps.
func (e *RiskExplainer) Explain(detected []models.RiskCategory, level models.RiskLevel) models.Explanation {
	if len(detected) == 0 {
		return models.Explanation{
			Summary:   riskLevelSummaries[level],
			Reasons:   []string{"No major indicators of phishing, malware, or fraud detected."},
			NextSteps: noRiskNextSteps,
		}
	}

	reasons := make([]string, 0, maxExplainerItems)
	for _, category := range detected {
		if reason, ok := categoryReasons[category]; ok {
			reasons = append(reasons, reason)
		}
		if len(reasons) == maxExplainerItems {
			break
		}
	}

	return models.Explanation{
		Summary:   riskLevelSummaries[level],
		Reasons:   reasons,
		NextSteps: e.nextSteps(detected),
	}
}

// nextSteps assembles recommendations by category group, capped at three
func (e *RiskExplainer) nextSteps(detected []models.RiskCategory) []string {
	var hasPhishing, hasMalware, hasSocial bool
	for _, category := range detected {
		switch category {
		case models.CategoryPhishing, models.CategoryCredentialTheft, models.CategoryPhishingURLIndicator:
			hasPhishing = true
		case models.CategoryMalwareSource, models.CategorySuspiciousURL:
			hasMalware = true
		case models.CategorySocialEngineering:
			hasSocial = true
		}
	}

	steps := make([]string, 0, maxExplainerItems)
	if hasPhishing {
		steps = append(steps, phishingNextSteps...)
	}
	if hasMalware {
		steps = append(steps, malwareNextSteps...)
	}
	if hasSocial {
		steps = append(steps, socialEngineeringNextSteps...)
	}
	if len(steps) == 0 {
		steps = append(steps, fallbackNextSteps...)
	}
	if len(steps) > maxExplainerItems {
		steps = steps[:maxExplainerItems]
	}
	return steps
}

// RenderText flattens a structured explanation into the single response
// string carried on a RiskAssessment.
func RenderText(explanation models.Explanation) string {
	return explanation.Summary + "\n\nReasons:\n- " + strings.Join(explanation.Reasons, "\n- ")
}
