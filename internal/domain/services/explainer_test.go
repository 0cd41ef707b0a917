package services

import (
	"reflect"
	"strings"
	"testing"

	"riskguard-lab/internal/domain/models"
)

func TestExplainerNoDetections(t *testing.T) {
	explainer := NewRiskExplainer()

	got := explainer.Explain(nil, models.RiskLevelLow)

	if !strings.Contains(got.Summary, "appears to be safe") {
		t.Errorf("Summary = %q", got.Summary)
	}
	if len(got.Reasons) != 1 {
		t.Errorf("Reasons = %v, want a single no-risk reason", got.Reasons)
	}
	if !reflect.DeepEqual(got.NextSteps, noRiskNextSteps) {
		t.Errorf("NextSteps = %v, want the no-risk set", got.NextSteps)
	}
}

func TestExplainerSingleCategory(t *testing.T) {
	explainer := NewRiskExplainer()

	got := explainer.Explain([]models.RiskCategory{models.CategoryPhishing}, models.RiskLevelHigh)

	if got.Summary != riskLevelSummaries[models.RiskLevelHigh] {
		t.Errorf("Summary = %q", got.Summary)
	}
	if len(got.Reasons) != 1 || got.Reasons[0] != categoryReasons[models.CategoryPhishing] {
		t.Errorf("Reasons = %v", got.Reasons)
	}
	if !reflect.DeepEqual(got.NextSteps, phishingNextSteps) {
		t.Errorf("NextSteps = %v, want the phishing set", got.NextSteps)
	}
}

func TestExplainerSocialEngineeringOnly(t *testing.T) {
	explainer := NewRiskExplainer()

	got := explainer.Explain([]models.RiskCategory{models.CategorySocialEngineering}, models.RiskLevelMedium)

	// The cap is a cap, not a pad: this group contributes two steps
	if len(got.NextSteps) != 2 {
		t.Errorf("NextSteps = %v, want exactly the two social engineering steps", got.NextSteps)
	}
}

func TestExplainerCapsAtThree(t *testing.T) {
	explainer := NewRiskExplainer()

	detected := []models.RiskCategory{
		models.CategoryPhishing,
		models.CategorySuspiciousURL,
		models.CategorySocialEngineering,
		models.CategoryMalwareSource,
	}
	got := explainer.Explain(detected, models.RiskLevelCritical)

	if len(got.Reasons) != maxExplainerItems {
		t.Errorf("got %d reasons, want %d", len(got.Reasons), maxExplainerItems)
	}
	// Insertion order: the first three categories supply the reasons
	if got.Reasons[0] != categoryReasons[models.CategoryPhishing] ||
		got.Reasons[2] != categoryReasons[models.CategorySocialEngineering] {
		t.Errorf("Reasons = %v, order not preserved", got.Reasons)
	}
	if len(got.NextSteps) != maxExplainerItems {
		t.Errorf("got %d next steps, want %d", len(got.NextSteps), maxExplainerItems)
	}
	// Phishing-group steps take precedence when present
	if got.NextSteps[0] != phishingNextSteps[0] {
		t.Errorf("NextSteps = %v", got.NextSteps)
	}
}

func TestExplainerPhishingURLIndicatorJoinsPhishingGroup(t *testing.T) {
	explainer := NewRiskExplainer()

	got := explainer.Explain([]models.RiskCategory{models.CategoryPhishingURLIndicator}, models.RiskLevelMedium)

	if !reflect.DeepEqual(got.NextSteps, phishingNextSteps) {
		t.Errorf("NextSteps = %v, want the phishing set", got.NextSteps)
	}
}

func TestRenderText(t *testing.T) {
	explanation := models.Explanation{
		Summary: "Be careful.",
		Reasons: []string{"first", "second"},
	}

	got := RenderText(explanation)
	want := "Be careful.\n\nReasons:\n- first\n- second"
	if got != want {
		t.Errorf("RenderText = %q, want %q", got, want)
	}
}
