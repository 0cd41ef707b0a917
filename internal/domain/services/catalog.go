package services

import "riskguard-lab/internal/domain/models"

// PatternInfo is the exportable description of one detection pattern,
// usable for client-side or edge pre-filtering.
type PatternInfo struct {
	Name        string  `json:"name"`
	Pattern     string  `json:"pattern"`
	Weight      float64 `json:"weight"`
	Description string  `json:"description"`
}

// PatternGroup collects the patterns backing one risk category
type PatternGroup struct {
	Category models.RiskCategory `json:"category"`
	Patterns []PatternInfo       `json:"patterns"`
}

func exportPatterns(tables ...[]TextPattern) []PatternInfo {
	var out []PatternInfo
	for _, table := range tables {
		for _, p := range table {
			out = append(out, PatternInfo{
				Name:        p.Name,
				Pattern:     p.Pattern.String(),
				Weight:      p.Weight,
				Description: p.Description,
			})
		}
	}
	return out
}

// Patterns returns the phishing keyword tables
func (d *PhishingDetector) Patterns() []PatternInfo {
	return exportPatterns(d.phishingKeywords, d.socialKeywords)
}

// Patterns returns all five tactic tables
func (d *SocialEngineeringDetector) Patterns() []PatternInfo {
	return exportPatterns(d.pressureTactics, d.authorityTactics, d.trustBuilding, d.fearTactics, d.rewardTactics)
}

// Patterns returns the credential and action keyword tables
func (d *CredentialTheftDetector) Patterns() []PatternInfo {
	return exportPatterns(d.credentialKeywords, d.actionKeywords)
}

// PatternCatalog returns the full pattern set grouped by risk category
func (e *RiskEngine) PatternCatalog() []PatternGroup {
	return []PatternGroup{
		{Category: models.CategoryPhishing, Patterns: e.phishing.Patterns()},
		{Category: models.CategorySocialEngineering, Patterns: e.social.Patterns()},
		{Category: models.CategoryCredentialTheft, Patterns: e.credential.Patterns()},
	}
}
