package scoring

import (
	t "territorylab/internal/types"
)

// Bonus per detected brief signal. The raw sum can reach 110 before clamping.
const (
	briefBaseScore    = 20
	bonusWordCount    = 20
	bonusAudience     = 15
	bonusObjective    = 15
	bonusCompetitive  = 15
	bonusBrandName    = 10
	bonusMoment       = 15
	briefMinWords     = 20
	briefVerboseWords = 200
)

// AnalyzeBrief scores a creative brief and produces actionable feedback.
// Pure and deterministic: absence of a signal lowers the score, never errors.
func AnalyzeBrief(brief string) t.BriefAnalysis {
	words := wordCount(brief)

	type signal struct {
		present    bool
		bonus      int
		strength   string
		suggestion string
	}
	signals := []signal{
		{words >= briefMinWords, bonusWordCount,
			"Brief has enough detail to work from.",
			"Add more detail: aim for at least 20 words covering product, audience and goal."},
		{reAudience.MatchString(brief), bonusAudience,
			"Target audience is clearly identified.",
			"Name the target audience (who are we talking to?)."},
		{reObjective.MatchString(brief), bonusObjective,
			"A concrete objective is stated.",
			"State a measurable objective (what should this campaign drive, grow or improve?)."},
		{reCompetitive.MatchString(brief), bonusCompetitive,
			"Competitive context is given.",
			"Add competitive context (who are we positioned against?)."},
		{reBrandName.MatchString(brief), bonusBrandName,
			"A specific brand anchors the brief.",
			"Mention the brand by name so territories can anchor to it."},
		{reMoment.MatchString(brief), bonusMoment,
			"A shopping moment gives the work a natural hook.",
			"Tie the brief to a shopping moment (e.g. Christmas, EOFY, back to school)."},
	}

	analysis := t.BriefAnalysis{Score: briefBaseScore}
	for _, s := range signals {
		if s.present {
			analysis.Score += s.bonus
			analysis.Strengths = append(analysis.Strengths, s.strength)
		} else {
			analysis.Suggestions = append(analysis.Suggestions, s.suggestion)
		}
	}
	analysis.Score = clamp(analysis.Score, 0, 100)

	if words > briefVerboseWords {
		analysis.Warnings = append(analysis.Warnings,
			"Brief is very long; tighten it so the core idea survives generation.")
	}
	if reUrgency.MatchString(brief) {
		analysis.Warnings = append(analysis.Warnings,
			"Urgency language detected; rushed briefs tend to produce generic work.")
	}

	if reAudience.MatchString(brief) {
		analysis.MarketInsights = append(analysis.MarketInsights,
			"Audience-led briefs convert best when headlines speak in the audience's own words.")
	}
	if reMoment.MatchString(brief) {
		analysis.MarketInsights = append(analysis.MarketInsights,
			"Seasonal moments reward early creative: launch before the peak, not during it.")
	}
	if reCompetitive.MatchString(brief) {
		analysis.MarketInsights = append(analysis.MarketInsights,
			"Positioning against a named competitor works hardest when backed by one provable difference.")
	}

	return analysis
}
