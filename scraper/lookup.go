package scraper

import (
	"context"
	"strings"
	"time"
)

// Elem is a handle to one DOM node. An Elem is itself a Scope, so
// per-field strategies can be evaluated against a single listing card.
type Elem interface {
	Text(ctx context.Context) (string, error)
	Attr(ctx context.Context, name string) (string, bool, error)
	QueryAll(ctx context.Context, selector string) ([]Elem, error)
}

// Scope is anything strategies can be evaluated against: a loaded page
// or a sub-tree node.
type Scope interface {
	QueryAll(ctx context.Context, selector string) ([]Elem, error)
}

// Page is the browser capability set the pipelines drive. Any
// automation backend that can satisfy it is interchangeable.
type Page interface {
	Scope
	Navigate(ctx context.Context, url string) error
	ScrollToBottom(ctx context.Context) error
	Location(ctx context.Context) (string, error)
}

// Strategy is one lookup attempt: a selector plus an extraction mode.
// An empty Attr means trimmed text; otherwise the named attribute.
type Strategy struct {
	Selector string
	Attr     string
}

// Chain is an ordered list of strategies tried until one produces a
// non-empty value. Strategies never merge partial results: the first
// hit wins outright.
type Chain []Strategy

// Text builds a chain of text-mode strategies from selectors.
func Text(selectors ...string) Chain {
	chain := make(Chain, len(selectors))
	for i, sel := range selectors {
		chain[i] = Strategy{Selector: sel}
	}
	return chain
}

// Lookup evaluates the chain against scope and returns the first
// non-empty result, or "" when scope is nil or nothing matched.
// Underlying lookup failures count as misses and advance the chain:
// a field being absent from one page's markup is normal, and the
// caller tells "absent" from "error" by the empty-string sentinel.
func Lookup(ctx context.Context, scope Scope, chain Chain) string {
	if scope == nil {
		return ""
	}
	for _, strat := range chain {
		els, err := scope.QueryAll(ctx, strat.Selector)
		if err != nil || len(els) == 0 {
			continue
		}
		el := els[0]
		if strat.Attr != "" {
			v, ok, err := el.Attr(ctx, strat.Attr)
			if err != nil || !ok {
				continue
			}
			if v = strings.TrimSpace(v); v != "" {
				return v
			}
			continue
		}
		v, err := el.Text(ctx)
		if err != nil {
			continue
		}
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}

// CountAny returns the largest element count any of the selector
// families yields. Query failures count as zero.
func CountAny(ctx context.Context, scope Scope, selectors []string) int {
	max := 0
	for _, sel := range selectors {
		els, err := scope.QueryAll(ctx, sel)
		if err != nil {
			continue
		}
		if len(els) > max {
			max = len(els)
		}
	}
	return max
}

// WaitForAny polls until at least one of the selector families matches
// or the timeout elapses. It reports whether the page became ready;
// timing out is not an error, callers warn and carry on.
func WaitForAny(ctx context.Context, scope Scope, selectors []string, timeout, poll time.Duration) (bool, error) {
	deadline := time.Now().Add(timeout)
	for {
		if CountAny(ctx, scope, selectors) > 0 {
			return true, nil
		}
		if time.Now().After(deadline) {
			return false, nil
		}
		select {
		case <-ctx.Done():
			return false, ctx.Err()
		case <-time.After(poll):
		}
	}
}
