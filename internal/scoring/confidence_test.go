package scoring

import (
	"testing"

	"territorylab/internal/types"
)

func mkTerritory(positioning, tone string, headlines ...string) types.Territory {
	terr := types.Territory{ID: "t", Title: "Test", Positioning: positioning, Tone: tone}
	for _, h := range headlines {
		terr.Headlines = append(terr.Headlines, types.Headline{Text: h})
	}
	return terr
}

func TestScoreTerritory_NumericsInRange(t *testing.T) {
	cases := []types.Territory{
		{},
		mkTerritory("", "", "Guaranteed, the best ever"),
		mkTerritory("Always reliable every day", "warm", "No worries mate", "Smart savings together"),
		mkTerritory("Long positioning with heaps of proven guaranteed best ultimate claims", "bold",
			"The greatest ever", "100% guaranteed"),
	}
	for i, terr := range cases {
		c := ScoreTerritory(terr, "premium coffee for families")
		for name, v := range map[string]int{
			"marketFit":            c.MarketFit,
			"complianceConfidence": c.ComplianceConfidence,
			"audienceResonance":    c.AudienceResonance,
		} {
			if v < 0 || v > 100 {
				t.Fatalf("case %d: %s out of range: %d", i, name, v)
			}
		}
		if c.RiskLevel != "LOW" && c.RiskLevel != "MEDIUM" && c.RiskLevel != "HIGH" {
			t.Fatalf("case %d: bad risk level %q", i, c.RiskLevel)
		}
	}
}

func TestScoreTerritory_HighRiskStacksPenalties(t *testing.T) {
	// superlatives AND unsubstantiated claims: risk HIGH, marketFit down 30
	// from its pre-penalty value, compliance down 25 from 85.
	terr := mkTerritory("", "", "Guaranteed, the best ever")
	c := ScoreTerritory(terr, "")
	if c.RiskLevel != types.RiskHigh {
		t.Fatalf("risk = %s, want HIGH", c.RiskLevel)
	}
	// pre-penalty marketFit is the base 60 (no vernacular, consistency or overlap)
	if c.MarketFit != 30 {
		t.Fatalf("marketFit = %d, want 30", c.MarketFit)
	}
	if c.ComplianceConfidence != 60 {
		t.Fatalf("complianceConfidence = %d, want 60", c.ComplianceConfidence)
	}
}

func TestScoreTerritory_MediumRisk(t *testing.T) {
	terr := mkTerritory("", "", "The best morning routine")
	c := ScoreTerritory(terr, "")
	if c.RiskLevel != types.RiskMedium {
		t.Fatalf("risk = %s, want MEDIUM", c.RiskLevel)
	}
	if c.MarketFit != 50 {
		t.Fatalf("marketFit = %d, want 50", c.MarketFit)
	}
	if c.ComplianceConfidence != 85 {
		t.Fatalf("complianceConfidence = %d, want 85", c.ComplianceConfidence)
	}
}

func TestScoreTerritory_MarketFitBonuses(t *testing.T) {
	// vernacular in headlines (+15) and consistency in positioning (+10)
	terr := mkTerritory("Always reliable, every day", "", "No worries mate")
	c := ScoreTerritory(terr, "")
	if c.RiskLevel != types.RiskLow {
		t.Fatalf("risk = %s, want LOW", c.RiskLevel)
	}
	if c.MarketFit != 85 {
		t.Fatalf("marketFit = %d, want 85", c.MarketFit)
	}
}

func TestScoreTerritory_BriefOverlap(t *testing.T) {
	// two brief tokens appear verbatim in the territory: +2 each
	terr := mkTerritory("", "", "Premium coffee for you")
	c := ScoreTerritory(terr, "premium coffee")
	if c.MarketFit != 64 {
		t.Fatalf("marketFit = %d, want 64", c.MarketFit)
	}
}

func TestScoreTerritory_Resonance(t *testing.T) {
	terr := mkTerritory("", "", "Smart savings, together")
	c := ScoreTerritory(terr, "")
	if c.AudienceResonance != 95 {
		t.Fatalf("audienceResonance = %d, want 95", c.AudienceResonance)
	}
}

func TestScoreTerritory_DisclaimerLiftsCompliance(t *testing.T) {
	terr := mkTerritory("", "", "Half price this week *Conditions apply")
	c := ScoreTerritory(terr, "")
	if c.ComplianceConfidence != 95 {
		t.Fatalf("complianceConfidence = %d, want 95", c.ComplianceConfidence)
	}
}

func TestScoreTerritory_ReasoningIsQualitative(t *testing.T) {
	c := ScoreTerritory(mkTerritory("", "", "Plain line"), "")
	if c.Reasoning == "" {
		t.Fatal("expected reasoning text")
	}
	for _, digit := range "0123456789" {
		for _, r := range c.Reasoning {
			if r == digit {
				t.Fatalf("reasoning leaks numerics: %q", c.Reasoning)
			}
		}
	}
}
