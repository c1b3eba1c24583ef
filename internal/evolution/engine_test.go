package evolution

import (
	"context"
	"errors"
	"testing"
	"time"

	"territorylab/internal/genclient"
	"territorylab/internal/types"
)

func formalTerritory() types.Territory {
	return types.Territory{
		ID:          "orig-1",
		Title:       "Considered Choice",
		Positioning: "A measured case for quality.",
		Tone:        "Professional and corporate",
		Headlines: []types.Headline{
			{Text: "Quality, considered"},
			{Text: "Choose with confidence"},
		},
	}
}

func TestGenerateSuggestions_AllRulesFire(t *testing.T) {
	e := &Engine{Client: &genclient.Fake{}}
	// formal tone, no local cues, two headlines; brief names a competitor
	// and a shopping moment
	got := e.GenerateSuggestions(formalTerritory(), "Positioned against Coles for Christmas trading")
	if len(got) != 5 {
		t.Fatalf("suggestions: %d, want 5", len(got))
	}
	want := map[types.EvolutionType]bool{
		types.EvolutionToneShift:            true,
		types.EvolutionCulturalAdaptation:   true,
		types.EvolutionHeadlineExpansion:    true,
		types.EvolutionCompetitiveResponse:  true,
		types.EvolutionSeasonalOptimization: true,
	}
	for _, s := range got {
		if !want[s.Type] {
			t.Fatalf("unexpected suggestion type %s", s.Type)
		}
		delete(want, s.Type)
		if s.Prompt == "" {
			t.Fatalf("suggestion %s has no prompt", s.Type)
		}
		if s.Title == "" || s.Description == "" {
			t.Fatalf("suggestion %s missing copy: %+v", s.Type, s)
		}
	}
}

func TestGenerateSuggestions_NoGapsNoSuggestions(t *testing.T) {
	e := &Engine{Client: &genclient.Fake{}}
	terr := types.Territory{
		ID:          "ok",
		Title:       "Local Legends",
		Positioning: "Backing the aussie way of doing things.",
		Tone:        "warm and cheeky",
		Headlines: []types.Headline{
			{Text: "Good on ya"}, {Text: "Too easy"}, {Text: "Sorted"},
		},
	}
	if got := e.GenerateSuggestions(terr, "grow weekday basket size"); len(got) != 0 {
		t.Fatalf("expected no suggestions, got %v", got)
	}
}

func evolvedOutput() types.RawOutput {
	return types.RawOutput{
		Territories: []types.Territory{{
			ID:          "provider-id",
			Title:       "Considered Choice, Relaxed",
			Positioning: "A measured case for quality, told the way mates talk about it at a sydney barbie.",
			Tone:        "playful and warm",
			Headlines: []types.Headline{
				{Text: "Quality, no worries"},
				{Text: "Choose easy"},
				{Text: "Good call"},
			},
		}},
		Compliance: types.Compliance{PoweredBy: "fake"},
	}
}

func TestEvolve_Success(t *testing.T) {
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	fake := &genclient.Fake{
		TextFn: func(ctx context.Context, prompt string) (types.RawOutput, error) {
			return evolvedOutput(), nil
		},
	}
	e := &Engine{Client: fake, Jitter: func() int { return 0 }, Now: func() time.Time { return now }}

	evo, err := e.Evolve(context.Background(), Request{
		Territory:    formalTerritory(),
		Type:         types.EvolutionToneShift,
		BriefContext: "soften the register",
		Parent:       "evo-parent",
	})
	if err != nil {
		t.Fatalf("Evolve: %v", err)
	}
	// base 50 + longer positioning + headline count + local cues + tone markers
	if evo.ImprovementScore != 90 {
		t.Fatalf("improvementScore = %d, want 90", evo.ImprovementScore)
	}
	if evo.OriginalTerritoryID != "orig-1" {
		t.Fatalf("original id: %s", evo.OriginalTerritoryID)
	}
	if evo.ResultingTerritory.ID == "" || evo.ResultingTerritory.ID == "provider-id" || evo.ResultingTerritory.ID == "orig-1" {
		t.Fatalf("resulting territory must get a fresh id, got %s", evo.ResultingTerritory.ID)
	}
	if evo.Parent != "evo-parent" {
		t.Fatalf("parent: %s", evo.Parent)
	}
	if !evo.Timestamp.Equal(now) {
		t.Fatalf("timestamp: %v", evo.Timestamp)
	}
}

func TestEvolve_ImprovementClampsAt95(t *testing.T) {
	fake := &genclient.Fake{
		TextFn: func(ctx context.Context, prompt string) (types.RawOutput, error) {
			return evolvedOutput(), nil
		},
	}
	e := &Engine{Client: fake, Jitter: func() int { return 5 }}
	evo, err := e.Evolve(context.Background(), Request{Territory: formalTerritory(), Type: types.EvolutionToneShift})
	if err != nil {
		t.Fatalf("Evolve: %v", err)
	}
	if evo.ImprovementScore != 95 {
		t.Fatalf("improvementScore = %d, want 95", evo.ImprovementScore)
	}
}

func TestEvolve_FailureKeepsNoPartial(t *testing.T) {
	fake := &genclient.Fake{
		TextFn: func(ctx context.Context, prompt string) (types.RawOutput, error) {
			return types.RawOutput{}, errors.New("provider down")
		},
	}
	e := &Engine{Client: fake}
	evo, err := e.Evolve(context.Background(), Request{Territory: formalTerritory(), Type: types.EvolutionAudiencePivot})
	var ef *EvolutionFailed
	if !errors.As(err, &ef) {
		t.Fatalf("expected EvolutionFailed, got %v", err)
	}
	if ef.Type != types.EvolutionAudiencePivot || ef.TerritoryID != "orig-1" {
		t.Fatalf("failure metadata wrong: %+v", ef)
	}
	if evo.ID != "" || evo.ResultingTerritory.Title != "" {
		t.Fatalf("no partial evolution may survive failure: %+v", evo)
	}
}
