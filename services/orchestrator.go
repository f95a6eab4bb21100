// Package services composes the extraction components into the two
// site pipelines. Each pipeline is one logical browser-controlling
// actor: discovery, extraction and scrolling run strictly
// sequentially, and records are emitted lazily in discovery order.
package services

import (
	"context"
	"time"

	"golang.org/x/time/rate"

	"github.com/Zavian3/truck-listings-scrapper/config"
	"github.com/Zavian3/truck-listings-scrapper/progress"
	"github.com/Zavian3/truck-listings-scrapper/session"
)

// readinessPoll is how often a bounded readiness wait re-checks its
// predicate.
const readinessPoll = time.Second

// Orchestrator owns the run-wide collaborators: configuration, the
// progress reporter, the session store and the pacing limiter.
type Orchestrator struct {
	cfg      config.Config
	rep      progress.Reporter
	sessions session.FileStore
	limiter  *rate.Limiter
}

func NewOrchestrator(cfg config.Config, rep progress.Reporter) *Orchestrator {
	perSecond := cfg.DetailRate
	if perSecond <= 0 {
		perSecond = 0.5
	}
	return &Orchestrator{
		cfg:      cfg,
		rep:      rep,
		sessions: session.FileStore{Dir: cfg.SessionDir},
		limiter:  rate.NewLimiter(rate.Limit(perSecond), 1),
	}
}

// pace blocks until the next unit of browser work may start. Cancelled
// contexts surface as errors so pipelines stop between units.
func (o *Orchestrator) pace(ctx context.Context) error {
	return o.limiter.Wait(ctx)
}
