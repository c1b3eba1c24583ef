package genclient

import (
	"fmt"

	"github.com/google/uuid"

	t "territorylab/internal/types"
	"territorylab/internal/util/jsonutil"
)

// wireOutput is the loose shape we accept from the provider before validation.
// Pointers distinguish "absent" from "empty" for the required sections.
type wireOutput struct {
	Territories []wireTerritory `json:"territories"`
	Compliance  *t.Compliance   `json:"compliance"`
}

type wireTerritory struct {
	ID          string         `json:"id"`
	Title       string         `json:"title"`
	Positioning string         `json:"positioning"`
	Tone        string         `json:"tone"`
	Headlines   []wireHeadline `json:"headlines"`
}

type wireHeadline struct {
	Text       string `json:"text"`
	FollowUp   string `json:"followUp"`
	Reasoning  string `json:"reasoning"`
	Confidence int    `json:"confidence"`
}

// ParseRawOutput strips any markdown fences, parses the provider document and
// validates it into the closed Territory/Headline schema. Anything downstream
// of this function can trust the shape.
func ParseRawOutput(raw []byte) (t.RawOutput, error) {
	var w wireOutput
	if err := jsonutil.UnmarshalFlex(jsonutil.StripFences(raw), &w); err != nil {
		return t.RawOutput{}, &ParseError{Reason: "invalid JSON", Err: err}
	}
	if len(w.Territories) == 0 {
		return t.RawOutput{}, &ParseError{Reason: "missing territories"}
	}
	if w.Compliance == nil {
		return t.RawOutput{}, &ParseError{Reason: "missing compliance"}
	}
	out := t.RawOutput{
		Territories: make([]t.Territory, 0, len(w.Territories)),
		Compliance:  *w.Compliance,
	}
	for i, wt := range w.Territories {
		if wt.Title == "" {
			return t.RawOutput{}, &ParseError{Reason: fmt.Sprintf("territory %d missing title", i)}
		}
		if len(wt.Headlines) == 0 {
			return t.RawOutput{}, &ParseError{Reason: fmt.Sprintf("territory %d has no headlines", i)}
		}
		terr := t.Territory{
			ID:          wt.ID,
			Title:       wt.Title,
			Positioning: wt.Positioning,
			Tone:        wt.Tone,
			Headlines:   make([]t.Headline, 0, len(wt.Headlines)),
		}
		if terr.ID == "" {
			terr.ID = uuid.New().String()
		}
		for j, wh := range wt.Headlines {
			if wh.Text == "" {
				return t.RawOutput{}, &ParseError{Reason: fmt.Sprintf("territory %d headline %d missing text", i, j)}
			}
			terr.Headlines = append(terr.Headlines, t.Headline{
				Text:       wh.Text,
				FollowUp:   wh.FollowUp,
				Reasoning:  wh.Reasoning,
				Confidence: clampInt(wh.Confidence, 0, 100),
			})
		}
		out.Territories = append(out.Territories, terr)
	}
	return out, nil
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
