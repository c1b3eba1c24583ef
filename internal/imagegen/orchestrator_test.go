package imagegen

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"go.uber.org/goleak"

	"territorylab/internal/genclient"
	"territorylab/internal/types"
)

func TestMain(m *testing.M) {
	// opencensus (an indirect dependency via google.golang.org/genai) starts
	// a permanent worker goroutine in its package init.
	goleak.VerifyTestMain(m, goleak.IgnoreTopFunction("go.opencensus.io/stats/view.(*worker).start"))
}

// instant is an injectable sleep that records requested durations.
type instant struct {
	mu        sync.Mutex
	durations []time.Duration
}

func (s *instant) sleep(ctx context.Context, d time.Duration) error {
	s.mu.Lock()
	s.durations = append(s.durations, d)
	s.mu.Unlock()
	return ctx.Err()
}

func territories(n, headlines int) []types.Territory {
	out := make([]types.Territory, n)
	for i := range out {
		out[i] = types.Territory{ID: "t", Title: "T", Positioning: "P", Tone: "warm"}
		for h := 0; h < headlines; h++ {
			out[i].Headlines = append(out[i].Headlines, types.Headline{Text: "line"})
		}
	}
	return out
}

func TestRun_AllSucceed(t *testing.T) {
	sl := &instant{}
	o := &Orchestrator{Client: &genclient.Fake{}, Sleep: sl.sleep}

	terrs := territories(2, 3)
	results := o.Run(context.Background(), terrs, "brief")
	if len(results) != 6 {
		t.Fatalf("results: %d, want 6", len(results))
	}
	for i, r := range results {
		if r.ImageRef == nil || r.Err != nil {
			t.Fatalf("result %d failed: %+v", i, r)
		}
	}
	Apply(terrs, results)
	for ti := range terrs {
		for hi := range terrs[ti].Headlines {
			if terrs[ti].Headlines[hi].ImageRef == nil {
				t.Fatalf("headline (%d,%d) missing image", ti, hi)
			}
		}
	}
}

func TestRun_FailedJobIsIsolated(t *testing.T) {
	// the poisoned headline fails attempt 1; its retries use the generic
	// fallback prompt, and only the poisoned job ever reaches the fallback,
	// so failing both isolates exactly that job
	fake := &genclient.Fake{
		ImageFn: func(ctx context.Context, prompt string) (types.ImageRef, error) {
			if strings.Contains(prompt, "poisoned") || strings.HasPrefix(prompt, "Clean premium") {
				return types.ImageRef{}, errors.New("boom")
			}
			return types.ImageRef{URL: "ok://img"}, nil
		},
	}
	sl := &instant{}
	o := &Orchestrator{Client: fake, Sleep: sl.sleep}

	terrs := territories(1, 5)
	terrs[0].Headlines[2].Text = "poisoned"

	results := o.Run(context.Background(), terrs, "brief")
	if len(results) != 5 {
		t.Fatalf("results: %d, want 5", len(results))
	}
	for i, r := range results {
		if r.TerritoryIndex != 0 || r.HeadlineIndex != i {
			t.Fatalf("positional order broken at %d: %+v", i, r)
		}
		if i == 2 {
			if r.ImageRef != nil {
				t.Fatalf("poisoned job should have no image: %+v", r)
			}
			var ex *ImageJobExhausted
			if !errors.As(r.Err, &ex) {
				t.Fatalf("expected ImageJobExhausted, got %v", r.Err)
			}
			if ex.Attempts != 3 {
				t.Fatalf("attempts = %d, want 3", ex.Attempts)
			}
			continue
		}
		if r.ImageRef == nil || r.Err != nil {
			t.Fatalf("sibling %d must be unaffected: %+v", i, r)
		}
	}
}

func TestRun_RetrySucceedsWithFallbackPrompt(t *testing.T) {
	var mu sync.Mutex
	var prompts []string
	calls := 0
	fake := &genclient.Fake{
		ImageFn: func(ctx context.Context, prompt string) (types.ImageRef, error) {
			mu.Lock()
			defer mu.Unlock()
			prompts = append(prompts, prompt)
			calls++
			if calls < 3 {
				return types.ImageRef{}, errors.New("transient")
			}
			return types.ImageRef{URL: "ok://late"}, nil
		},
	}
	sl := &instant{}
	o := &Orchestrator{Client: fake, Sleep: sl.sleep}

	results := o.Run(context.Background(), territories(1, 1), "brief")
	if results[0].ImageRef == nil {
		t.Fatalf("expected success on attempt 3: %+v", results[0])
	}
	if len(prompts) != 3 {
		t.Fatalf("calls: %d, want 3", len(prompts))
	}
	// attempt 1 is content-derived; attempts 2 and 3 use the generic fallback
	if strings.HasPrefix(prompts[0], "Clean premium") {
		t.Fatalf("attempt 1 must use the content prompt: %q", prompts[0])
	}
	for _, p := range prompts[1:] {
		if !strings.HasPrefix(p, "Clean premium") {
			t.Fatalf("retries must use the fallback prompt: %q", p)
		}
	}
	// backoff 2s then 4s before the retries
	if len(sl.durations) != 2 || sl.durations[0] != 2*time.Second || sl.durations[1] != 4*time.Second {
		t.Fatalf("backoff schedule wrong: %v", sl.durations)
	}
}

func TestRun_BoundedConcurrency(t *testing.T) {
	var mu sync.Mutex
	inflight, peak := 0, 0
	fake := &genclient.Fake{
		ImageFn: func(ctx context.Context, prompt string) (types.ImageRef, error) {
			mu.Lock()
			inflight++
			if inflight > peak {
				peak = inflight
			}
			mu.Unlock()
			time.Sleep(5 * time.Millisecond)
			mu.Lock()
			inflight--
			mu.Unlock()
			return types.ImageRef{URL: "ok://img"}, nil
		},
	}
	sl := &instant{}
	o := &Orchestrator{Client: fake, Sleep: sl.sleep}

	results := o.Run(context.Background(), territories(4, 5), "brief")
	if len(results) != 20 {
		t.Fatalf("results: %d, want 20", len(results))
	}
	if peak > batchSize {
		t.Fatalf("in-flight calls peaked at %d, bound is %d", peak, batchSize)
	}
	// 20 jobs over batches of 6 means 3 cool-downs between 4 batches
	cooldowns := 0
	for _, d := range sl.durations {
		if d == batchCooldown {
			cooldowns++
		}
	}
	if cooldowns != 3 {
		t.Fatalf("cooldowns: %d, want 3", cooldowns)
	}
}
