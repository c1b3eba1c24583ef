package scoring

import (
	"math"
	"strings"

	t "territorylab/internal/types"
)

// Predict estimates how a territory is likely to perform against the brief.
// Five additive sub-scorers feed fixed pairwise category averages; the overall
// score is the rounded mean of the categories.
func Predict(terr t.Territory, brief string) t.PerformancePrediction {
	positioning := subPositioningStrength(terr, brief)
	headline := subHeadlineQuality(terr)
	tone := subToneAlignment(terr, brief)
	cultural := subCulturalRelevance(terr)
	brand := subBrandAlignment(terr, brief)

	cat := t.CategoryScores{
		AudienceResonance:    avg2(headline, cultural),
		BrandAlignment:       avg2(brand, tone),
		MarketFit:            avg2(positioning, cultural),
		CreativePotential:    avg2(headline, positioning),
		ExecutionFeasibility: avg2(tone, positioning),
	}
	overall := int(math.Round(float64(cat.AudienceResonance+cat.BrandAlignment+cat.MarketFit+cat.CreativePotential+cat.ExecutionFeasibility) / 5.0))

	pred := t.PerformancePrediction{
		OverallScore:   overall,
		CategoryScores: cat,
		Confidence:     predictionConfidence(terr),
	}

	type category struct {
		score    int
		strength string
		weakness string
		fix      string
	}
	for _, c := range []category{
		{cat.AudienceResonance,
			"Headlines and cultural cues should resonate with the target audience.",
			"Audience resonance is weak.",
			"Rework headlines around the audience's own language and context."},
		{cat.BrandAlignment,
			"Tone and brand cues are well aligned.",
			"Brand alignment is weak.",
			"Tie the positioning back to the brand's established voice and values."},
		{cat.MarketFit,
			"Positioning fits the market described in the brief.",
			"Market fit is weak.",
			"Sharpen the positioning against the market context in the brief."},
		{cat.CreativePotential,
			"Strong creative platform with room to extend.",
			"Creative potential is limited.",
			"Push the headline craft further; add contrast and variety across variants."},
		{cat.ExecutionFeasibility,
			"Straightforward to execute across channels.",
			"Execution looks difficult.",
			"Simplify the tone and positioning so the idea survives production."},
	} {
		switch {
		case c.score > 75:
			pred.Strengths = append(pred.Strengths, c.strength)
		case c.score < 60:
			pred.Weaknesses = append(pred.Weaknesses, c.weakness)
			pred.Recommendations = append(pred.Recommendations, c.fix)
		}
	}
	return pred
}

// Sub-scorers: additive rules, each clamped to [0,95].

func subPositioningStrength(terr t.Territory, brief string) int {
	s := 40
	pos := strings.ToLower(terr.Positioning)
	if len(terr.Positioning) >= 50 {
		s += 15
	}
	if reConsistency.MatchString(pos) {
		s += 10
	}
	if reAudience.MatchString(pos) {
		s += 10
	}
	if reCompetitive.MatchString(pos) {
		s += 10
	}
	if briefTokenOverlap(brief, pos) >= 3 {
		s += 10
	}
	return clamp(s, 0, 95)
}

func subHeadlineQuality(terr t.Territory) int {
	s := 35
	n := len(terr.Headlines)
	if n >= 3 {
		s += 10
	}
	if n > 0 {
		total, followUps, short := 0, 0, 0
		firstWords := map[string]bool{}
		for _, h := range terr.Headlines {
			total += h.Confidence
			if h.FollowUp != "" {
				followUps++
			}
			w := wordCount(h.Text)
			if w >= 3 && w <= 12 {
				short++
			}
			if f := strings.Fields(strings.ToLower(h.Text)); len(f) > 0 {
				firstWords[f[0]] = true
			}
		}
		if total/n >= 70 {
			s += 10
		}
		if followUps == n {
			s += 10
		}
		if short == n {
			s += 10
		}
		if len(firstWords) == n {
			s += 10
		}
	}
	return clamp(s, 0, 95)
}

func subToneAlignment(terr t.Territory, brief string) int {
	s := 45
	tone := strings.ToLower(terr.Tone)
	if tone != "" {
		s += 15
	}
	if wordCount(tone) >= 2 {
		s += 10
	}
	if reFormalTone.MatchString(brief) == reFormalTone.MatchString(tone) {
		// brief and tone agree on register, formal or not
		s += 15
	}
	if reToneMarker.MatchString(tone) {
		s += 10
	}
	return clamp(s, 0, 95)
}

func subCulturalRelevance(terr t.Territory) int {
	s := 40
	var texts []string
	for _, h := range terr.Headlines {
		texts = append(texts, h.Text, h.FollowUp)
	}
	full := territoryText(terr.Title, terr.Positioning, terr.Tone, texts)
	if reVernacular.MatchString(full) {
		s += 20
	}
	if reMoment.MatchString(full) {
		s += 15
	}
	if reLocalCue.MatchString(full) {
		s += 10
	}
	if reCommunity.MatchString(full) {
		s += 10
	}
	return clamp(s, 0, 95)
}

func subBrandAlignment(terr t.Territory, brief string) int {
	s := 45
	var texts []string
	for _, h := range terr.Headlines {
		texts = append(texts, h.Text)
	}
	full := territoryText(terr.Title, terr.Positioning, terr.Tone, texts)
	if reBrandName.MatchString(full) {
		s += 15
	}
	if reConsistency.MatchString(full) {
		s += 10
	}
	if reValue.MatchString(full) {
		s += 10
	}
	if briefTokenOverlap(brief, full) >= 4 {
		s += 15
	}
	return clamp(s, 0, 95)
}

// predictionConfidence grows with the amount of material to judge.
func predictionConfidence(terr t.Territory) int {
	s := 60
	if len(terr.Headlines) >= 3 {
		s += 10
	}
	if wordCount(terr.Positioning) >= 8 {
		s += 10
	}
	if terr.Tone != "" {
		s += 5
	}
	return clamp(s, 0, 95)
}

func avg2(a, b int) int {
	return int(math.Round(float64(a+b) / 2.0))
}
