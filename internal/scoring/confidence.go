package scoring

import (
	"fmt"
	"strings"

	t "territorylab/internal/types"
)

// ScoreTerritory rates one territory against the brief. Independent per
// territory and parallel-safe; it never fails.
func ScoreTerritory(terr t.Territory, brief string) t.TerritoryConfidence {
	headlineTexts := make([]string, 0, len(terr.Headlines)*2)
	for _, h := range terr.Headlines {
		headlineTexts = append(headlineTexts, h.Text, h.FollowUp)
	}
	headlines := strings.ToLower(strings.Join(headlineTexts, " "))
	full := territoryText(terr.Title, terr.Positioning, terr.Tone, headlineTexts)

	// Market fit: vernacular in headlines, consistency in positioning, and
	// literal brief-token overlap (capped; intentionally unstemmed).
	marketFit := 60
	if reVernacular.MatchString(headlines) {
		marketFit += 15
	}
	if reConsistency.MatchString(strings.ToLower(terr.Positioning)) {
		marketFit += 10
	}
	overlap := briefTokenOverlap(brief, full)
	marketFit += min(2*overlap, 15)

	// Risk: superlatives and unsubstantiated claims stack, in sequence.
	risk := t.RiskLow
	superlatives := reSuperlative.MatchString(full)
	claims := reClaims.MatchString(full)
	if superlatives || claims {
		risk = t.RiskMedium
		marketFit -= 10
	}
	if superlatives && claims {
		risk = t.RiskHigh
		marketFit -= 20
	}

	compliance := 85
	if claims {
		compliance -= 25
	}
	if reDisclaimer.MatchString(full) {
		compliance += 10
	}

	resonance := 70
	if reIntelligence.MatchString(full) {
		resonance += 10
	}
	if reCommunity.MatchString(full) {
		resonance += 15
	}

	marketFit = clamp(marketFit, 0, 100)
	compliance = clamp(compliance, 0, 100)
	resonance = clamp(resonance, 0, 100)

	return t.TerritoryConfidence{
		MarketFit:            marketFit,
		RiskLevel:            risk,
		ComplianceConfidence: compliance,
		AudienceResonance:    resonance,
		Reasoning: fmt.Sprintf("%s market fit with %s audience resonance; %s compliance risk.",
			qualitative(marketFit), qualitative(resonance), strings.ToLower(string(risk))),
	}
}

// qualitative characterizes a score without leaking the numeric value.
func qualitative(v int) string {
	switch {
	case v >= 75:
		return "strong"
	case v >= 55:
		return "moderate"
	default:
		return "limited"
	}
}
