package types

import "time"

// Evolution -----------------------------------------------------------------------

// EvolutionType names the eight supported territory transformations.
type EvolutionType string

const (
	EvolutionToneShift            EvolutionType = "TONE_SHIFT"
	EvolutionAudiencePivot        EvolutionType = "AUDIENCE_PIVOT"
	EvolutionMessagingReframe     EvolutionType = "MESSAGING_REFRAME"
	EvolutionCulturalAdaptation   EvolutionType = "CULTURAL_ADAPTATION"
	EvolutionCompetitiveResponse  EvolutionType = "COMPETITIVE_RESPONSE"
	EvolutionHeadlineExpansion    EvolutionType = "HEADLINE_EXPANSION"
	EvolutionSeasonalOptimization EvolutionType = "SEASONAL_OPTIMIZATION"
	EvolutionFormatVariation      EvolutionType = "FORMAT_VARIATION"
)

type Priority string

const (
	PriorityHigh   Priority = "HIGH"
	PriorityMedium Priority = "MEDIUM"
	PriorityLow    Priority = "LOW"
)

// EvolutionSuggestion is a rule-detected gap with a fully built provider prompt.
// Building suggestions performs no network I/O.
type EvolutionSuggestion struct {
	Type           EvolutionType `json:"type"`
	Title          string        `json:"title"`
	Description    string        `json:"description"`
	ExpectedImpact string        `json:"expectedImpact"`
	Confidence     int           `json:"confidence"`
	Priority       Priority      `json:"priority"`
	Prompt         string        `json:"prompt"`
}

// TerritoryEvolution is one node of an evolution lineage tree. Parent always
// precedes its child in creation order, so the tree is acyclic by construction.
type TerritoryEvolution struct {
	ID                  string        `json:"id"`
	OriginalTerritoryID string        `json:"originalTerritoryId"`
	EvolutionType       EvolutionType `json:"evolutionType"`
	ResultingTerritory  Territory     `json:"resultingTerritory"`
	ImprovementScore    int           `json:"improvementScore"`
	Reasoning           string        `json:"reasoning"`
	Timestamp           time.Time     `json:"timestamp"`
	Parent              string        `json:"parent,omitempty"`
}

// Lineage walks parent links from the evolution with the given id back to the
// root, returning the chain root-first. Unknown ids yield an empty chain.
func Lineage(evolutions []TerritoryEvolution, id string) []TerritoryEvolution {
	byID := make(map[string]TerritoryEvolution, len(evolutions))
	for _, e := range evolutions {
		byID[e.ID] = e
	}
	var chain []TerritoryEvolution
	for cur, ok := byID[id]; ok; cur, ok = byID[cur.Parent] {
		chain = append(chain, cur)
		if cur.Parent == "" {
			break
		}
	}
	// reverse to root-first order
	for i, j := 0, len(chain)-1; i < j; i, j = i+1, j-1 {
		chain[i], chain[j] = chain[j], chain[i]
	}
	return chain
}
