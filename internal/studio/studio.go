// Package studio composes the generation flow: brief analysis, text
// generation, per-territory scoring, batch image attachment and, on
// regeneration, the starred-content merge.
package studio

import (
	"context"
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"
	"go.uber.org/zap"

	"territorylab/internal/genclient"
	"territorylab/internal/imagegen"
	"territorylab/internal/merge"
	"territorylab/internal/scoring"
	t "territorylab/internal/types"
)

// analysisCacheSize bounds the brief-analysis memo; briefs repeat heavily
// during iterative regeneration.
const analysisCacheSize = 128

// Result is one full generation cycle: the output plus everything the
// heuristics derived from it. Confidence and Predictions are parallel to
// Output.Territories.
type Result struct {
	Output      t.FinalOutput
	Analysis    t.BriefAnalysis
	Confidence  []t.TerritoryConfidence
	Predictions []t.PerformancePrediction
}

type Studio struct {
	client genclient.GenerationClient
	orch   *imagegen.Orchestrator
	log    *zap.Logger

	analyses *lru.Cache[string, t.BriefAnalysis]
}

func New(client genclient.GenerationClient, log *zap.Logger) (*Studio, error) {
	if log == nil {
		log = zap.NewNop()
	}
	cache, err := lru.New[string, t.BriefAnalysis](analysisCacheSize)
	if err != nil {
		return nil, err
	}
	return &Studio{
		client:   client,
		orch:     &imagegen.Orchestrator{Client: client, Log: log},
		log:      log,
		analyses: cache,
	}, nil
}

// AnalyzeBrief returns the heuristic brief analysis, memoized per brief.
func (s *Studio) AnalyzeBrief(brief string) t.BriefAnalysis {
	if a, ok := s.analyses.Get(brief); ok {
		return a
	}
	a := scoring.AnalyzeBrief(brief)
	s.analyses.Add(brief, a)
	return a
}

// Generate runs one full cycle from a brief. A failed text call is a hard
// error with no content; image failures only leave headlines without images.
func (s *Studio) Generate(ctx context.Context, brief string) (Result, error) {
	analysis := s.AnalyzeBrief(brief)
	s.log.Info("brief analyzed", zap.Int("score", analysis.Score))

	raw, err := s.client.GenerateText(ctx, generationPrompt(brief))
	if err != nil {
		return Result{}, err
	}
	s.log.Info("territories generated", zap.Int("count", len(raw.Territories)))

	res := Result{
		Output:   t.FinalOutput{Territories: raw.Territories, Compliance: raw.Compliance},
		Analysis: analysis,
	}
	for _, terr := range res.Output.Territories {
		res.Confidence = append(res.Confidence, scoring.ScoreTerritory(terr, brief))
		res.Predictions = append(res.Predictions, scoring.Predict(terr, brief))
	}

	imagegen.Apply(res.Output.Territories, s.orch.Run(ctx, res.Output.Territories, brief))
	return res, nil
}

// Regenerate produces fresh content and reconciles it against the previous
// output under the starred selections.
func (s *Studio) Regenerate(ctx context.Context, brief string, previous t.FinalOutput, starred t.StarredItems) (Result, error) {
	res, err := s.Generate(ctx, brief)
	if err != nil {
		return Result{}, err
	}
	merged, err := merge.Merge(res.Output, previous, starred)
	if err != nil {
		return Result{}, err
	}
	res.Output = merged
	// re-score against the merged content so kept territories keep honest numbers
	res.Confidence = res.Confidence[:0]
	res.Predictions = res.Predictions[:0]
	for _, terr := range merged.Territories {
		res.Confidence = append(res.Confidence, scoring.ScoreTerritory(terr, brief))
		res.Predictions = append(res.Predictions, scoring.Predict(terr, brief))
	}
	return res, nil
}

// generationPrompt asks the provider for the fixed 6x3 JSON document.
func generationPrompt(brief string) string {
	return fmt.Sprintf(`You are a senior creative strategist. From the brief below, produce exactly 6 advertising territories, each with exactly 3 headline variants.

Return STRICT JSON ONLY (no markdown fences):
{
  "territories": [
    {
      "id": "string",
      "title": "string",
      "positioning": "string",
      "tone": "string",
      "headlines": [
        {"text": "string", "followUp": "string", "reasoning": "string", "confidence": 0}
      ]
    }
  ],
  "compliance": {"output": ["string"], "poweredBy": "string"}
}

Brief:
%s`, brief)
}
