// Package interpret orchestrates per-criterion semantic interpretation:
// cache lookup, bounded retries with exponential backoff, response decoding,
// and graceful fallback when the external service cannot be made to answer.
package interpret

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/michaelljiang/mcg-extractor/internal/cache"
	"github.com/michaelljiang/mcg-extractor/internal/llm"
	"github.com/michaelljiang/mcg-extractor/internal/model"
	"github.com/michaelljiang/mcg-extractor/internal/ratelimit"
)

// call is the pending-result handle late arrivals for the same criterion
// text wait on. It guarantees at most one in-flight external call per
// distinct text even under concurrent fan-out.
type call struct {
	done   chan struct{}
	result model.Interpretation
	errMsg string
}

// Interpreter produces structured interpretations for criterion records.
// Interpret never returns an error: irrecoverable failures yield the minimal
// fallback structure with InterpretationError set.
type Interpreter struct {
	provider llm.Provider
	store    cache.Cache // optional persistent layer, nil when disabled
	limiter  *ratelimit.Limiter
	cfg      model.LLMConfig
	verbose  bool

	mu       sync.Mutex
	inflight map[string]*call

	// sleep is injectable for tests; it must honor ctx cancellation.
	sleep func(ctx context.Context, d time.Duration) error
}

// New creates an interpreter. store may be nil to disable persistent caching;
// the in-run coalescing map is always active.
func New(provider llm.Provider, store cache.Cache, cfg model.LLMConfig, verbose bool) *Interpreter {
	return &Interpreter{
		provider: provider,
		store:    store,
		limiter:  ratelimit.NewLimiter(cfg.RequestsPerSecond, cfg.Burst),
		cfg:      cfg,
		verbose:  verbose,
		inflight: make(map[string]*call),
		sleep:    sleepCtx,
	}
}

// InterpretAll interprets every record with a bounded worker pool, recording
// each result against its originating index so output order matches input
// order regardless of completion order.
func (it *Interpreter) InterpretAll(ctx context.Context, records []model.CriterionRecord) []model.InterpretedCriterion {
	results := make([]model.InterpretedCriterion, len(records))

	workers := it.cfg.Workers
	if workers <= 0 {
		workers = 1
	}
	semaphore := make(chan struct{}, workers)

	var wg sync.WaitGroup
	for i, rec := range records {
		wg.Add(1)
		go func(idx int, rec model.CriterionRecord) {
			defer wg.Done()

			select {
			case <-ctx.Done():
				results[idx] = it.fallback(rec, fmt.Errorf("interpretation canceled: %w", ctx.Err()))
				return
			case semaphore <- struct{}{}:
			}
			defer func() { <-semaphore }()

			results[idx] = it.Interpret(ctx, rec)
		}(i, rec)
	}
	wg.Wait()

	return results
}

// Interpret produces the interpretation for one record. Identical criterion
// texts collapse to a single external call; all callers receive identical
// interpreted content.
func (it *Interpreter) Interpret(ctx context.Context, rec model.CriterionRecord) model.InterpretedCriterion {
	key := rec.CriterionText

	it.mu.Lock()
	if c, ok := it.inflight[key]; ok {
		it.mu.Unlock()
		select {
		case <-c.done:
			return assemble(rec, c.result, c.errMsg)
		case <-ctx.Done():
			return it.fallback(rec, fmt.Errorf("interpretation canceled: %w", ctx.Err()))
		}
	}
	c := &call{done: make(chan struct{})}
	it.inflight[key] = c
	it.mu.Unlock()

	c.result, c.errMsg = it.interpretText(ctx, rec)
	close(c.done)

	return assemble(rec, c.result, c.errMsg)
}

// interpretText does the actual work for one distinct criterion text.
func (it *Interpreter) interpretText(ctx context.Context, rec model.CriterionRecord) (model.Interpretation, string) {
	// Persistent cache short-circuits the external call entirely.
	if it.store != nil {
		if data, found := it.store.Get(cache.Key(rec.CriterionText)); found {
			var interp model.Interpretation
			if err := json.Unmarshal(data, &interp); err == nil {
				return interp, ""
			}
			// Corrupt entry, drop it and re-interpret
			_ = it.store.Delete(cache.Key(rec.CriterionText))
		}
	}

	if it.provider == nil {
		return model.FallbackInterpretation(rec), "no interpretation provider configured"
	}

	raw, err := it.completeWithRetry(ctx, BuildPrompt(rec))
	if err != nil {
		return model.FallbackInterpretation(rec), err.Error()
	}

	interp, err := DecodeResponse(raw)
	if err != nil {
		if it.verbose {
			fmt.Fprintf(os.Stderr, "Warning: undecodable response for %s: %v\n", rec.CriterionID, err)
		}
		return model.FallbackInterpretation(rec), err.Error()
	}

	if it.store != nil {
		if data, err := json.Marshal(interp); err == nil {
			_ = it.store.Set(cache.Key(rec.CriterionText), data, 0)
		}
	}

	return interp, ""
}

// completeWithRetry calls the provider under the bounded-retry policy.
// Attempt n waits RetryDelay * 2^n before the next try. Only transient
// failures are retried; backoff sleeps are cancellable.
func (it *Interpreter) completeWithRetry(ctx context.Context, prompt string) (string, error) {
	attempts := it.cfg.RetryAttempts
	if attempts <= 0 {
		attempts = 1
	}

	opts := llm.Options{
		Temperature: it.cfg.Temperature,
		MaxTokens:   it.cfg.MaxTokens,
	}

	var lastErr error
	for attempt := 0; attempt < attempts; attempt++ {
		if err := it.limiter.Wait(ctx); err != nil {
			return "", fmt.Errorf("interpretation canceled: %w", err)
		}

		raw, err := it.provider.Complete(ctx, prompt, opts)
		if err == nil {
			return raw, nil
		}
		lastErr = err

		if !llm.IsTransient(err) {
			return "", err
		}
		if it.verbose {
			fmt.Fprintf(os.Stderr, "Warning: completion attempt %d/%d failed: %v\n", attempt+1, attempts, err)
		}

		if attempt < attempts-1 {
			delay := it.cfg.RetryDelay * time.Duration(1<<uint(attempt))
			if err := it.sleep(ctx, delay); err != nil {
				return "", fmt.Errorf("interpretation canceled: %w", err)
			}
		}
	}

	return "", fmt.Errorf("all %d attempts failed: %w", attempts, lastErr)
}

func (it *Interpreter) fallback(rec model.CriterionRecord, err error) model.InterpretedCriterion {
	return assemble(rec, model.FallbackInterpretation(rec), err.Error())
}

func assemble(rec model.CriterionRecord, interp model.Interpretation, errMsg string) model.InterpretedCriterion {
	return model.InterpretedCriterion{
		CriterionID:         rec.CriterionID,
		CriterionText:       rec.CriterionText,
		Interpreted:         interp,
		InterpretationError: errMsg,
	}
}

// sleepCtx sleeps for d or until ctx is canceled.
func sleepCtx(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
