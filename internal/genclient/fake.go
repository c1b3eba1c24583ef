package genclient

import (
	"context"
	"fmt"
	"sync"

	t "territorylab/internal/types"
)

// Fake is a deterministic GenerationClient for offline runs and tests. It is
// the only mock path: production code never falls back to it implicitly.
// TextFn/ImageFn can be set to script failures per call.
type Fake struct {
	TextFn  func(ctx context.Context, prompt string) (t.RawOutput, error)
	ImageFn func(ctx context.Context, prompt string) (t.ImageRef, error)

	mu     sync.Mutex
	images int
}

func (f *Fake) Name() string { return "FakeProvider" }
func (f *Fake) Close() error { return nil }

func (f *Fake) GenerateText(ctx context.Context, prompt string) (t.RawOutput, error) {
	if f.TextFn != nil {
		return f.TextFn(ctx, prompt)
	}
	out := t.RawOutput{
		Compliance: t.Compliance{
			Output:    []string{"Sample output for layout and flow only."},
			PoweredBy: "fake",
		},
	}
	for i := 0; i < 6; i++ {
		terr := t.Territory{
			ID:          fmt.Sprintf("fake-territory-%d", i+1),
			Title:       fmt.Sprintf("Territory %d", i+1),
			Positioning: fmt.Sprintf("Positioning angle %d derived from the brief.", i+1),
			Tone:        "Confident and warm",
		}
		for h := 0; h < 3; h++ {
			terr.Headlines = append(terr.Headlines, t.Headline{
				Text:       fmt.Sprintf("Headline %d.%d", i+1, h+1),
				FollowUp:   "Supporting line.",
				Reasoning:  "Deterministic sample copy.",
				Confidence: 70,
			})
		}
		out.Territories = append(out.Territories, terr)
	}
	return out, nil
}

func (f *Fake) GenerateImage(ctx context.Context, prompt string) (t.ImageRef, error) {
	if f.ImageFn != nil {
		return f.ImageFn(ctx, prompt)
	}
	f.mu.Lock()
	f.images++
	n := f.images
	f.mu.Unlock()
	return t.ImageRef{URL: fmt.Sprintf("fake://image/%d", n)}, nil
}
