// Package evolution transforms an existing territory along one of eight
// predefined dimensions. Suggestion generation is pure rule checking;
// evolving performs exactly one provider call per request.
package evolution

import (
	"context"
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"territorylab/internal/genclient"
	"territorylab/internal/scoring"
	t "territorylab/internal/types"
)

// Per-request states. A failed request retains no partial evolution.
type Status string

const (
	StatusRequested    Status = "REQUESTED"
	StatusPromptBuilt  Status = "PROMPT_BUILT"
	StatusResultParsed Status = "RESULT_PARSED"
	StatusScored       Status = "SCORED"
	StatusDone         Status = "DONE"
	StatusFailed       Status = "FAILED"
)

// EvolutionFailed wraps the single provider call failing. No partial
// TerritoryEvolution is stored or returned alongside it.
type EvolutionFailed struct {
	TerritoryID string
	Type        t.EvolutionType
	Err         error
}

func (e *EvolutionFailed) Error() string {
	return fmt.Sprintf("evolution %s of territory %s failed: %v", e.Type, e.TerritoryID, e.Err)
}
func (e *EvolutionFailed) Unwrap() error { return e.Err }

// Engine drives territory evolutions. Jitter is the injectable randomness
// source for improvement scoring; nil means ±5 uniform. Now defaults to
// time.Now.
type Engine struct {
	Client genclient.GenerationClient
	Log    *zap.Logger
	Jitter func() int
	Now    func() time.Time
}

// Request describes one evolution. Parent links lineage when evolving an
// already-evolved territory.
type Request struct {
	Territory    t.Territory
	Type         t.EvolutionType
	Prompt       string
	BriefContext string
	Parent       string
}

const (
	improvementBase = 50
	improvementMin  = 30
	improvementMax  = 95
)

// GenerateSuggestions runs the independent gap rules against a territory and
// brief, producing up to five suggestions, each with a fully built provider
// prompt. No network I/O happens here.
func (e *Engine) GenerateSuggestions(terr t.Territory, briefContext string) []t.EvolutionSuggestion {
	var out []t.EvolutionSuggestion

	if scoring.HasFormalTone(terr.Tone) {
		out = append(out, t.EvolutionSuggestion{
			Type:           t.EvolutionToneShift,
			Title:          "Loosen the tone",
			Description:    "The territory reads formal; a casual register usually travels further in social placements.",
			ExpectedImpact: "Broader reach with younger segments",
			Confidence:     70,
			Priority:       t.PriorityMedium,
			Prompt:         buildPrompt(terr, briefContext, "Rewrite this territory with a casual, conversational tone while keeping the positioning intact."),
		})
	}
	if !scoring.HasLocalCues(flatText(terr)) {
		out = append(out, t.EvolutionSuggestion{
			Type:           t.EvolutionCulturalAdaptation,
			Title:          "Ground it locally",
			Description:    "No local-market cues detected; local texture lifts believability.",
			ExpectedImpact: "Stronger local-market resonance",
			Confidence:     75,
			Priority:       t.PriorityHigh,
			Prompt:         buildPrompt(terr, briefContext, "Adapt this territory with local cultural references and everyday local language."),
		})
	}
	if len(terr.Headlines) < 3 {
		out = append(out, t.EvolutionSuggestion{
			Type:           t.EvolutionHeadlineExpansion,
			Title:          "More headline variants",
			Description:    "Fewer than three headline variants limits testing options.",
			ExpectedImpact: "Better variant testing coverage",
			Confidence:     80,
			Priority:       t.PriorityHigh,
			Prompt:         buildPrompt(terr, briefContext, "Expand this territory to at least three distinct headline variants with follow-up lines."),
		})
	}
	if scoring.MentionsCompetitor(briefContext) {
		out = append(out, t.EvolutionSuggestion{
			Type:           t.EvolutionCompetitiveResponse,
			Title:          "Sharpen the competitive edge",
			Description:    "The brief names a competitor; the territory can answer them directly.",
			ExpectedImpact: "Clearer differentiation",
			Confidence:     65,
			Priority:       t.PriorityMedium,
			Prompt:         buildPrompt(terr, briefContext, "Rework this territory to answer the competitor named in the brief with one provable difference."),
		})
	}
	if scoring.MentionsMoment(briefContext) {
		out = append(out, t.EvolutionSuggestion{
			Type:           t.EvolutionSeasonalOptimization,
			Title:          "Lean into the moment",
			Description:    "The brief ties to a shopping moment the territory isn't using.",
			ExpectedImpact: "Timely relevance during the peak",
			Confidence:     60,
			Priority:       t.PriorityLow,
			Prompt:         buildPrompt(terr, briefContext, "Optimize this territory around the shopping moment mentioned in the brief."),
		})
	}
	return out
}

// Evolve performs exactly one GenerationClient call and derives a new
// territory from the first result. The request walks
// REQUESTED -> PROMPT_BUILT -> RESULT_PARSED -> SCORED -> DONE, or FAILED.
func (e *Engine) Evolve(ctx context.Context, req Request) (t.TerritoryEvolution, error) {
	log := e.logger()
	status := StatusRequested

	prompt := req.Prompt
	if prompt == "" {
		prompt = buildPrompt(req.Territory, req.BriefContext, "Evolve this territory along the dimension: "+string(req.Type)+".")
	}
	status = StatusPromptBuilt

	raw, err := e.Client.GenerateText(ctx, prompt)
	if err != nil {
		status = StatusFailed
		log.Warn("evolution call failed",
			zap.String("territory", req.Territory.ID),
			zap.String("type", string(req.Type)),
			zap.String("status", string(status)),
			zap.Error(err))
		return t.TerritoryEvolution{}, &EvolutionFailed{TerritoryID: req.Territory.ID, Type: req.Type, Err: err}
	}
	if len(raw.Territories) == 0 {
		status = StatusFailed
		log.Warn("evolution returned no territories",
			zap.String("territory", req.Territory.ID),
			zap.String("status", string(status)))
		return t.TerritoryEvolution{}, &EvolutionFailed{
			TerritoryID: req.Territory.ID,
			Type:        req.Type,
			Err:         fmt.Errorf("provider returned no territories"),
		}
	}
	result := raw.Territories[0]
	result.ID = uuid.New().String()
	status = StatusResultParsed

	score := e.improvementScore(req.Territory, result)
	status = StatusScored

	evo := t.TerritoryEvolution{
		ID:                  uuid.New().String(),
		OriginalTerritoryID: req.Territory.ID,
		EvolutionType:       req.Type,
		ResultingTerritory:  result,
		ImprovementScore:    score,
		Reasoning:           improvementReasoning(req.Type, req.Territory, result),
		Timestamp:           e.now()(),
		Parent:              req.Parent,
	}
	status = StatusDone
	log.Info("evolution complete",
		zap.String("territory", req.Territory.ID),
		zap.String("type", string(req.Type)),
		zap.Int("improvement", score),
		zap.String("status", string(status)))
	return evo, nil
}

// improvementScore: base 50 plus bonuses for a richer result, with bounded
// random jitter, clamped to [30,95].
func (e *Engine) improvementScore(orig, result t.Territory) int {
	score := improvementBase
	if len(result.Positioning) > len(orig.Positioning) {
		score += 10
	}
	if len(result.Headlines) >= len(orig.Headlines) {
		score += 10
	}
	if scoring.HasLocalCues(flatText(result)) {
		score += 10
	}
	if scoring.HasToneMarkers(result.Tone) {
		score += 10
	}
	score += e.jitter()()
	if score < improvementMin {
		score = improvementMin
	}
	if score > improvementMax {
		score = improvementMax
	}
	return score
}

func improvementReasoning(typ t.EvolutionType, orig, result t.Territory) string {
	return fmt.Sprintf("%s evolution of %q produced %d headline variants against the original %d.",
		typ, orig.Title, len(result.Headlines), len(orig.Headlines))
}

func buildPrompt(terr t.Territory, briefContext, instruction string) string {
	var heads []string
	for _, h := range terr.Headlines {
		heads = append(heads, h.Text)
	}
	return fmt.Sprintf(
		"%s\n\nTerritory: %s\nPositioning: %s\nTone: %s\nHeadlines: %s\nBrief context: %s\n\nReturn the same strict JSON document shape as the original generation.",
		instruction, terr.Title, terr.Positioning, terr.Tone, strings.Join(heads, " | "), briefContext)
}

// flatText flattens a territory's text for the signal checks.
func flatText(terr t.Territory) string {
	var b strings.Builder
	b.WriteString(terr.Title)
	b.WriteByte(' ')
	b.WriteString(terr.Positioning)
	b.WriteByte(' ')
	b.WriteString(terr.Tone)
	for _, h := range terr.Headlines {
		b.WriteByte(' ')
		b.WriteString(h.Text)
		b.WriteByte(' ')
		b.WriteString(h.FollowUp)
	}
	return b.String()
}

func (e *Engine) logger() *zap.Logger {
	if e.Log != nil {
		return e.Log
	}
	return zap.NewNop()
}

func (e *Engine) jitter() func() int {
	if e.Jitter != nil {
		return e.Jitter
	}
	return func() int { return rand.IntN(11) - 5 }
}

func (e *Engine) now() func() time.Time {
	if e.Now != nil {
		return e.Now
	}
	return time.Now
}
