package scraper

import (
	"context"
	"time"
)

// ScrollOutcome says why the convergence loop stopped. Both outcomes
// are successes; a lazily-loaded feed has no end-of-data signal, so
// repeated stalls are the only termination heuristic and the attempt
// cap guarantees the loop ends even through loading hiccups.
type ScrollOutcome int

const (
	// OutcomeStalled: the count stopped growing for StallLimit
	// consecutive attempts; the feed is considered exhausted.
	OutcomeStalled ScrollOutcome = iota
	// OutcomeCapReached: MaxAttempts elapsed while the feed was still
	// producing. Callers may warn that more content was likely left.
	OutcomeCapReached
)

// ScrollOptions tunes one convergence session.
type ScrollOptions struct {
	MaxAttempts int
	StallLimit  int           // consecutive no-growth attempts before stopping
	SettleDelay time.Duration // post-scroll render settle; no predicate exists for this
	ExtraDelay  time.Duration // applied once per attempt when a loader is visible
	// LoadingVisible reports whether a loading indicator is currently
	// shown. Nil disables the extra delay.
	LoadingVisible func(ctx context.Context) bool
}

// Converge drives an infinite-scroll feed until the item count stalls
// or the attempt cap is reached, and returns the final observed count.
// countFn is polled once per attempt; errors from it count as zero.
func Converge(ctx context.Context, page Page, countFn func(ctx context.Context) int, opts ScrollOptions) (int, ScrollOutcome, error) {
	stallLimit := opts.StallLimit
	if stallLimit <= 0 {
		stallLimit = 3
	}

	previous := 0
	stallStreak := 0

	for attempt := 0; attempt < opts.MaxAttempts; attempt++ {
		current := countFn(ctx)

		if attempt > 0 {
			if current == previous {
				stallStreak++
				if stallStreak >= stallLimit {
					return current, OutcomeStalled, nil
				}
			} else if current > previous {
				stallStreak = 0
			}
		}
		previous = current

		if err := page.ScrollToBottom(ctx); err != nil {
			return current, OutcomeCapReached, err
		}
		if err := sleepCtx(ctx, opts.SettleDelay); err != nil {
			return current, OutcomeCapReached, err
		}
		if opts.LoadingVisible != nil && opts.LoadingVisible(ctx) {
			if err := sleepCtx(ctx, opts.ExtraDelay); err != nil {
				return current, OutcomeCapReached, err
			}
		}
	}

	return countFn(ctx), OutcomeCapReached, nil
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(d):
		return nil
	}
}
