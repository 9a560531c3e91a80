package estimator

import (
	"context"
	"time"

	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"

	"github.com/sokoflow/quote-go/internal/application/port"
)

// SleepFunc waits for a delay or until the context is cancelled. It is
// injectable so retry timing can be asserted in tests without wall-clock
// sleeps.
type SleepFunc func(ctx context.Context, d time.Duration) error

// ctxSleep is the production SleepFunc.
func ctxSleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// FallbackConfig tunes the retry and fan-out policy.
type FallbackConfig struct {
	// MaxAttempts is how many times the AI strategy is tried per item.
	MaxAttempts int

	// BackoffBase is the unit delay; attempt n waits BackoffBase * 2^n.
	BackoffBase time.Duration

	// Concurrency bounds the number of in-flight provider calls during
	// batch estimation. Values < 1 mean sequential processing.
	Concurrency int
}

// DefaultFallbackConfig returns the default retry policy: three attempts
// with exponential backoff (2s, 4s, 8s) and four concurrent provider calls.
func DefaultFallbackConfig() FallbackConfig {
	return FallbackConfig{
		MaxAttempts: 3,
		BackoffBase: time.Second,
		Concurrency: 4,
	}
}

// Fallback is the public estimation entry point. It tries the AI strategy
// with bounded retry and exponential backoff, then delegates to the
// rule-based strategy on exhaustion. It never fails: every description
// yields an estimate.
type Fallback struct {
	ai    Estimator
	rules *RuleBased
	cfg   FallbackConfig
	sleep SleepFunc
	log   port.Logger
}

// NewFallback composes the two strategies under the given retry policy.
func NewFallback(ai Estimator, rules *RuleBased, cfg FallbackConfig, log port.Logger) *Fallback {
	if cfg.MaxAttempts < 1 {
		cfg.MaxAttempts = 1
	}
	return &Fallback{
		ai:    ai,
		rules: rules,
		cfg:   cfg,
		sleep: ctxSleep,
		log:   log,
	}
}

// WithSleep overrides the backoff sleeper. Intended for tests.
func (f *Fallback) WithSleep(sleep SleepFunc) *Fallback {
	f.sleep = sleep
	return f
}

// EstimateItem estimates a single description. The AI strategy is retried
// per the configured policy; once retries are exhausted the rule-based
// strategy takes over and the result is tagged with its source.
func (f *Fallback) EstimateItem(ctx context.Context, description string) WeightEstimate {
	var lastErr error

	for attempt := 1; attempt <= f.cfg.MaxAttempts; attempt++ {
		estimate, err := f.ai.EstimateWeight(ctx, description)
		if err == nil {
			return estimate
		}
		lastErr = err

		f.log.Warn("ai estimation attempt failed",
			"attempt", attempt,
			"max_attempts", f.cfg.MaxAttempts,
			"error", err,
		)

		delay := f.cfg.BackoffBase << attempt
		if sleepErr := f.sleep(ctx, delay); sleepErr != nil {
			// Request timed out or was cancelled mid-backoff; stop
			// retrying and use the deterministic strategy.
			break
		}
	}

	f.log.Info("falling back to rule-based estimation", "error", lastErr)
	return f.rules.Estimate(description)
}

// BatchItem is one entry of a batch result: either an estimate or a
// per-item validation error. Invalid items never abort the batch.
type BatchItem struct {
	Estimate *WeightEstimate
	Err      error
}

// BatchResult aggregates a batch of estimates. The chargeable total is
// max(sum of real, sum of volumetric) across valid items, not the sum of
// the per-item maxima.
type BatchResult struct {
	Items                   []BatchItem
	TotalRealWeightKg       float64
	TotalVolumetricWeightKg float64
	TotalChargeableWeightKg float64
}

// EstimateBatch estimates every prompt of a batch, preserving input order.
// Prompts arrive untyped from JSON; any entry that is not a non-empty
// string produces a per-item error. Valid items fan out to the provider
// with bounded concurrency.
func (f *Fallback) EstimateBatch(ctx context.Context, prompts []any) BatchResult {
	items := make([]BatchItem, len(prompts))

	g := new(errgroup.Group)
	g.SetLimit(max(f.cfg.Concurrency, 1))

	for i, raw := range prompts {
		description, ok := raw.(string)
		if !ok || description == "" {
			items[i] = BatchItem{Err: ErrEmptyPrompt}
			continue
		}

		i, description := i, description
		g.Go(func() error {
			estimate := f.EstimateItem(ctx, description)
			items[i] = BatchItem{Estimate: &estimate}
			return nil
		})
	}

	// EstimateItem never fails, so Wait only synchronizes the fan-out.
	_ = g.Wait()

	estimates := lo.FilterMap(items, func(it BatchItem, _ int) (WeightEstimate, bool) {
		if it.Estimate == nil {
			return WeightEstimate{}, false
		}
		return *it.Estimate, true
	})

	totalReal := round2(lo.SumBy(estimates, func(e WeightEstimate) float64 { return e.RealWeightKg }))
	totalVolumetric := round2(lo.SumBy(estimates, func(e WeightEstimate) float64 { return e.VolumetricWeightKg }))

	return BatchResult{
		Items:                   items,
		TotalRealWeightKg:       totalReal,
		TotalVolumetricWeightKg: totalVolumetric,
		TotalChargeableWeightKg: round2(maxFloat(totalReal, totalVolumetric)),
	}
}

func maxFloat(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
