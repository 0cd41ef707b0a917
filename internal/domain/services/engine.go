package services

import (
	"context"
	"math"
	"time"

	"github.com/google/uuid"

	"riskguard-lab/internal/domain/models"
	"riskguard-lab/internal/infrastructure/cache"
	"riskguard-lab/pkg/logger"
)

// signal is one triggered detector output tagged with its risk category
type signal struct {
	category   models.RiskCategory
	confidence float64
}

// RiskEngine runs the detectors for a request and merges their outputs
// into a single assessment. All detection state is per-call: the engine
// holds only immutable pattern tables and stateless collaborators, so it
// is safe for unbounded concurrent use.
type RiskEngine struct {
	phishing   *PhishingDetector
	social     *SocialEngineeringDetector
	credential *CredentialTheftDetector
	urls       *URLAnalyzer
	reputation ReputationChecker
	explainer  *RiskExplainer
	stats      *StatsRecorder
	logger     *logger.Logger
}

// NewRiskEngine creates an engine with the default detector set. The
// cache may be nil, in which case stats and reputation verdicts stay in
// process memory.
func NewRiskEngine(c *cache.RedisCache, log *logger.Logger) *RiskEngine {
	return &RiskEngine{
		phishing:   NewPhishingDetector(),
		social:     NewSocialEngineeringDetector(),
		credential: NewCredentialTheftDetector(),
		urls:       NewURLAnalyzer(),
		reputation: NewReputationService(c, log),
		explainer:  NewRiskExplainer(),
		stats:      NewStatsRecorder(c, log),
		logger:     log.WithComponent("risk-engine"),
	}
}

// Stats exposes the aggregate counters for reporting
func (e *RiskEngine) Stats() *StatsRecorder {
	return e.stats
}

// AnalyzeText assesses text content for phishing, social engineering,
// and credential theft risks. All processing stays local.
func (e *RiskEngine) AnalyzeText(ctx context.Context, content, contentType string) *models.RiskAssessment {
	var signals []signal

	if result := e.phishing.Analyze(content); result.Triggered {
		signals = append(signals, signal{models.CategoryPhishing, result.Confidence})
	}
	if result := e.social.Analyze(content); result.Triggered {
		signals = append(signals, signal{models.CategorySocialEngineering, result.Confidence})
	}
	if result := e.credential.Analyze(content, contentType); result.Triggered {
		signals = append(signals, signal{models.CategoryCredentialTheft, result.Confidence})
	}

	assessment := e.buildAssessment(signals)
	e.stats.Record(ctx, assessment.SafetyLabel, content)

	e.logger.Debug().
		Str("risk_level", string(assessment.RiskLevel)).
		Float64("confidence", assessment.Confidence).
		Int("detected", len(assessment.DetectedRisks)).
		Msg("text analyzed")

	return assessment
}

// TextInput is one item of a batch text analysis
type TextInput struct {
	Content     string `json:"content"`
	ContentType string `json:"content_type"`
}

// AnalyzeTextBatch assesses each item independently, preserving order
func (e *RiskEngine) AnalyzeTextBatch(ctx context.Context, items []TextInput) []*models.RiskAssessment {
	assessments := make([]*models.RiskAssessment, 0, len(items))
	for _, item := range items {
		assessments = append(assessments, e.AnalyzeText(ctx, item.Content, item.ContentType))
	}
	return assessments
}

// AnalyzeURL assesses a URL for suspicious structure, phishing
// indicators, and malware reputation. The context tag is a hint only.
func (e *RiskEngine) AnalyzeURL(ctx context.Context, rawURL, usage string) *models.RiskAssessment {
	var signals []signal

	analysis := e.urls.Analyze(rawURL, usage)
	if analysis.IsSuspicious {
		signals = append(signals, signal{models.CategorySuspiciousURL, analysis.Confidence})
	}
	if len(analysis.PhishingIndicators) > 0 {
		signals = append(signals, signal{models.CategoryPhishingURLIndicator, analysis.PhishingConfidence})
	}
	if verdict := e.reputation.Check(ctx, rawURL); verdict.Flagged {
		signals = append(signals, signal{models.CategoryMalwareSource, verdict.Confidence})
	}

	assessment := e.buildAssessment(signals)
	e.stats.Record(ctx, assessment.SafetyLabel, rawURL)

	e.logger.Debug().
		Str("risk_level", string(assessment.RiskLevel)).
		Str("domain", analysis.Domain).
		Float64("confidence", assessment.Confidence).
		Msg("url analyzed")

	return assessment
}

// buildAssessment merges triggered signals into a risk assessment.
// Non-triggering detectors are excluded from the mean, not counted as
// zero; with no signals the result is pinned to LOW with confidence 0.
func (e *RiskEngine) buildAssessment(signals []signal) *models.RiskAssessment {
	detected := make([]models.RiskCategory, 0, len(signals))
	var avgConfidence float64

	if len(signals) > 0 {
		var sum float64
		for _, s := range signals {
			detected = append(detected, s.category)
			sum += s.confidence
		}
		avgConfidence = sum / float64(len(signals))
	}

	level := riskLevelFor(avgConfidence, len(detected))
	score, label := ScoreAndLabel(avgConfidence)
	explanation := e.explainer.Explain(detected, level)

	return &models.RiskAssessment{
		ID:              uuid.New(),
		RiskLevel:       level,
		Confidence:      avgConfidence,
		RiskScore:       score,
		SafetyLabel:     label,
		DetectedRisks:   detected,
		Explanation:     RenderText(explanation),
		Recommendations: explanation.NextSteps,
		AnalyzedAt:      time.Now().UTC(),
	}
}

// Combine merges a text and a URL assessment for the same logical input.
// Unlike per-request aggregation this is a max/union merge: the worse
// risk level wins, the higher confidence wins, and the detected
// categories are unioned keeping first-seen order.
func (e *RiskEngine) Combine(text, url *models.RiskAssessment) *models.CombinedSummary {
	if len(text.DetectedRisks) == 0 && len(url.DetectedRisks) == 0 {
		return nil
	}

	seen := make(map[models.RiskCategory]bool)
	var union []models.RiskCategory
	for _, c := range text.DetectedRisks {
		if !seen[c] {
			seen[c] = true
			union = append(union, c)
		}
	}
	for _, c := range url.DetectedRisks {
		if !seen[c] {
			seen[c] = true
			union = append(union, c)
		}
	}

	return &models.CombinedSummary{
		RiskLevel:     models.MaxRiskLevel(text.RiskLevel, url.RiskLevel),
		Confidence:    max(text.Confidence, url.Confidence),
		DetectedRisks: union,
	}
}

// riskLevelFor maps the aggregate confidence to a risk level. The
// partition boundaries are exclusive-low: exactly 0.70 is HIGH, not
// CRITICAL.
func riskLevelFor(confidence float64, detections int) models.RiskLevel {
	if detections == 0 {
		return models.RiskLevelLow
	}
	switch {
	case confidence > 0.7:
		return models.RiskLevelCritical
	case confidence > 0.5:
		return models.RiskLevelHigh
	case confidence > 0.3:
		return models.RiskLevelMedium
	default:
		return models.RiskLevelLow
	}
}

// ScoreAndLabel maps a 0.0-1.0 confidence to a 0-100 score and its
// safety label. Thresholds: 0-30 SAFE, 31-70 SUSPICIOUS, 71-100 UNSAFE.
func ScoreAndLabel(confidence float64) (int, models.SafetyLabel) {
	score := int(math.Round(confidence * 100))
	switch {
	case score <= 30:
		return score, models.SafetyLabelSafe
	case score <= 70:
		return score, models.SafetyLabelSuspicious
	default:
		return score, models.SafetyLabelUnsafe
	}
}
