// Package imagegen fans out one image job per headline across many
// territories with bounded parallelism, per-job retry and full failure
// isolation. Batches run strictly sequentially; jobs inside a batch run
// concurrently, so in-flight provider calls never exceed the batch size.
package imagegen

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"territorylab/internal/genclient"
	t "territorylab/internal/types"
)

const (
	// batchSize is rate-limit driven: the provider tolerates six concurrent
	// image requests before throttling.
	batchSize     = 6
	maxAttempts   = 3
	batchCooldown = time.Second
)

// job states for the attempt-counter state machine.
type jobState int

const (
	stateRequested jobState = iota
	stateRetry
	stateDone
	stateExhausted
)

// ImageJob is one (territory, headline) pair. Transient: owned exclusively by
// a single batch run.
type ImageJob struct {
	TerritoryIndex int
	HeadlineIndex  int
	Prompt         string
	Attempt        int

	state    jobState
	fallback string
}

// ImageResult reports the outcome of one job. A nil ImageRef with a non-nil
// Err means the job exhausted its attempts; it is never a caller-visible
// failure of the run.
type ImageResult struct {
	TerritoryIndex int
	HeadlineIndex  int
	ImageRef       *t.ImageRef
	Err            error
}

// ImageJobExhausted marks a single job that consumed all its retries.
type ImageJobExhausted struct {
	TerritoryIndex int
	HeadlineIndex  int
	Attempts       int
	LastErr        error
}

func (e *ImageJobExhausted) Error() string {
	return fmt.Sprintf("image job (%d,%d) exhausted after %d attempts: %v",
		e.TerritoryIndex, e.HeadlineIndex, e.Attempts, e.LastErr)
}
func (e *ImageJobExhausted) Unwrap() error { return e.LastErr }

// Orchestrator drives the batch runs. Sleep is injectable so tests can skip
// real backoff waits; nil means a context-aware time.Sleep.
type Orchestrator struct {
	Client genclient.GenerationClient
	Log    *zap.Logger
	Sleep  func(ctx context.Context, d time.Duration) error
}

func (o *Orchestrator) logger() *zap.Logger {
	if o.Log != nil {
		return o.Log
	}
	return zap.NewNop()
}

func (o *Orchestrator) sleep(ctx context.Context, d time.Duration) error {
	if o.Sleep != nil {
		return o.Sleep(ctx, d)
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// Run generates one image per headline. The result slice always has exactly
// one entry per (territory, headline) pair, in flattened input order,
// regardless of per-job completion order or failures.
func (o *Orchestrator) Run(ctx context.Context, territories []t.Territory, briefContext string) []ImageResult {
	jobs := flatten(territories, briefContext)
	results := make([]ImageResult, len(jobs))
	log := o.logger()

	for start := 0; start < len(jobs); start += batchSize {
		end := min(start+batchSize, len(jobs))
		log.Info("image batch start",
			zap.Int("batch", start/batchSize),
			zap.Int("jobs", end-start))

		// one goroutine per job; the batch size bounds in-flight calls
		g, gctx := errgroup.WithContext(ctx)
		for i := start; i < end; i++ {
			i := i
			g.Go(func() error {
				results[i] = o.runJob(gctx, jobs[i])
				return nil
			})
		}
		_ = g.Wait()

		if end < len(jobs) {
			if err := o.sleep(ctx, batchCooldown); err != nil {
				// abandoning the run: remaining jobs resolve as exhausted
				for i := end; i < len(jobs); i++ {
					results[i] = ImageResult{
						TerritoryIndex: jobs[i].TerritoryIndex,
						HeadlineIndex:  jobs[i].HeadlineIndex,
						Err: &ImageJobExhausted{
							TerritoryIndex: jobs[i].TerritoryIndex,
							HeadlineIndex:  jobs[i].HeadlineIndex,
							LastErr:        err,
						},
					}
				}
				return results
			}
		}
	}
	return results
}

// runJob is the per-job attempt-counter state machine:
// REQUESTED -> RETRY(n) -> DONE | EXHAUSTED.
// Attempt 1 uses the content-derived prompt; later attempts use the generic
// fallback. Backoff before retry n is 2^(n-1) seconds.
func (o *Orchestrator) runJob(ctx context.Context, j ImageJob) ImageResult {
	log := o.logger()
	var lastErr error

	j.state = stateRequested
	for j.Attempt = 1; j.Attempt <= maxAttempts; j.Attempt++ {
		prompt := j.Prompt
		if j.Attempt > 1 {
			prompt = j.fallback
		}
		ref, err := o.Client.GenerateImage(ctx, prompt)
		if err == nil {
			j.state = stateDone
			return ImageResult{
				TerritoryIndex: j.TerritoryIndex,
				HeadlineIndex:  j.HeadlineIndex,
				ImageRef:       &ref,
			}
		}
		lastErr = err
		log.Warn("image job attempt failed",
			zap.Int("territory", j.TerritoryIndex),
			zap.Int("headline", j.HeadlineIndex),
			zap.Int("attempt", j.Attempt),
			zap.Error(err))

		if j.Attempt < maxAttempts {
			j.state = stateRetry
			backoff := time.Duration(1<<j.Attempt) * time.Second // 2s, 4s
			if err := o.sleep(ctx, backoff); err != nil {
				lastErr = err
				break
			}
		}
	}

	j.state = stateExhausted
	return ImageResult{
		TerritoryIndex: j.TerritoryIndex,
		HeadlineIndex:  j.HeadlineIndex,
		Err: &ImageJobExhausted{
			TerritoryIndex: j.TerritoryIndex,
			HeadlineIndex:  j.HeadlineIndex,
			Attempts:       maxAttempts,
			LastErr:        lastErr,
		},
	}
}

// Apply attaches results positionally back onto the territories. A nil
// ImageRef leaves the headline without an image.
func Apply(territories []t.Territory, results []ImageResult) {
	for _, r := range results {
		if r.ImageRef == nil {
			continue
		}
		if r.TerritoryIndex >= len(territories) {
			continue
		}
		hs := territories[r.TerritoryIndex].Headlines
		if r.HeadlineIndex >= len(hs) {
			continue
		}
		hs[r.HeadlineIndex].ImageRef = r.ImageRef
	}
}

// flatten builds all (territory, headline) jobs preserving original order,
// which Apply relies on for positional re-attachment.
func flatten(territories []t.Territory, briefContext string) []ImageJob {
	var jobs []ImageJob
	for ti, terr := range territories {
		for hi, h := range terr.Headlines {
			jobs = append(jobs, ImageJob{
				TerritoryIndex: ti,
				HeadlineIndex:  hi,
				Prompt:         headlinePrompt(terr, h, briefContext),
				fallback:       fallbackPrompt(briefContext),
			})
		}
	}
	return jobs
}

// headlinePrompt is the content-derived first-attempt prompt.
func headlinePrompt(terr t.Territory, h t.Headline, briefContext string) string {
	return fmt.Sprintf(
		"Advertising photograph for the campaign idea %q. Headline: %q. Positioning: %s. Tone: %s. Brief context: %s. Vertical mobile format, no text overlays.",
		terr.Title, h.Text, terr.Positioning, terr.Tone, briefContext)
}

// fallbackPrompt is the simplified generic variant used on retries.
func fallbackPrompt(briefContext string) string {
	return fmt.Sprintf(
		"Clean premium advertising photograph related to: %s. Vertical mobile format, no text overlays.",
		briefContext)
}
