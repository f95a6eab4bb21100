package services

import (
	"context"

	"github.com/Zavian3/truck-listings-scrapper/models"
	"github.com/Zavian3/truck-listings-scrapper/progress"
	"github.com/Zavian3/truck-listings-scrapper/scraper"
	"github.com/Zavian3/truck-listings-scrapper/session"
)

const (
	facebookScope   = "facebook"
	FacebookSiteKey = "facebook"
)

// SessionPage extends the page capability set with the cookie
// operations session replay needs.
type SessionPage interface {
	scraper.Page
	Cookies(ctx context.Context) ([]session.Cookie, error)
	AddCookie(ctx context.Context, c session.Cookie) error
}

// PageOpener produces a fresh browser context. The headless flag is
// false only for the interactive login fallback, where a human needs a
// visible window.
type PageOpener func(ctx context.Context, headless bool) (SessionPage, func(), error)

// LoginPrompter is the externally-resolved half of the login
// checkpoint: AwaitLogin blocks until the outside actor confirms the
// browser window is authenticated (or ctx is cancelled).
type LoginPrompter interface {
	AwaitLogin(ctx context.Context) error
}

// Facebook runs the scroll-then-bulk-extract pipeline. It first tries
// to replay a stored session headlessly; if the replayed session shows
// zero listings the browser context is discarded and the interactive
// login fallback runs exactly once. Once authenticated, the feed is
// scrolled to convergence and every item container is extracted in
// DOM order, deduplicated by URL.
func (o *Orchestrator) Facebook(ctx context.Context, open PageOpener, marketplaceURL string, login LoginPrompter) <-chan models.ListingRecord {
	out := make(chan models.ListingRecord)

	go func() {
		defer close(out)

		page, cleanup, err := o.facebookSession(ctx, open, marketplaceURL, login)
		if err != nil {
			progress.Errorf(o.rep, facebookScope, "establish session: %v", err)
			return
		}
		defer cleanup()

		ready, err := scraper.WaitForAny(ctx, page, scraper.FacebookCountSelectors,
			o.cfg.ReadinessTimeout, readinessPoll)
		if err != nil {
			progress.Errorf(o.rep, facebookScope, "wait for feed: %v", err)
			return
		}
		if !ready {
			progress.Warnf(o.rep, facebookScope, "no listings visible yet, scrolling anyway")
		}

		countFn := func(ctx context.Context) int {
			return scraper.CountAny(ctx, page, scraper.FacebookCountSelectors)
		}
		final, outcome, err := scraper.Converge(ctx, page, countFn, scraper.ScrollOptions{
			MaxAttempts: o.cfg.ScrollAttempts,
			StallLimit:  o.cfg.StallLimit,
			SettleDelay: o.cfg.ScrollSettleDelay,
			ExtraDelay:  o.cfg.LoaderExtraDelay,
			LoadingVisible: func(ctx context.Context) bool {
				return scraper.CountAny(ctx, page, scraper.FacebookLoadingSelectors) > 0
			},
		})
		if err != nil {
			progress.Errorf(o.rep, facebookScope, "scroll feed: %v", err)
			return
		}
		if outcome == scraper.OutcomeCapReached {
			progress.Warnf(o.rep, facebookScope, "scroll cap reached at %d listings; feed may hold more", final)
		} else {
			progress.Successf(o.rep, facebookScope, "feed converged at %d listings", final)
		}

		records, err := scraper.ExtractFeedRecords(ctx, page)
		if err != nil {
			progress.Errorf(o.rep, facebookScope, "extract feed: %v", err)
			return
		}

		for i, rec := range records {
			select {
			case out <- rec:
			case <-ctx.Done():
				return
			}
			progress.Successf(o.rep, facebookScope, "listing %d/%d extracted", i+1, len(records))
		}
		progress.Successf(o.rep, facebookScope, "done: %d unique listings", len(records))
	}()

	return out
}

// facebookSession returns a page already sitting on the marketplace
// feed with a working login. Replay is tried first; the interactive
// fallback runs at most once and persists the fresh cookie set before
// handing the page back.
func (o *Orchestrator) facebookSession(ctx context.Context, open PageOpener, marketplaceURL string, login LoginPrompter) (SessionPage, func(), error) {
	cookies, found, err := o.sessions.Load(FacebookSiteKey)
	if err != nil {
		progress.Warnf(o.rep, facebookScope, "load saved session: %v", err)
	}

	if found {
		progress.Infof(o.rep, facebookScope, "saved session found, trying headless replay")
		page, cleanup, err := open(ctx, true)
		if err != nil {
			return nil, nil, err
		}
		if o.replaySession(ctx, page, cookies, marketplaceURL) {
			progress.Successf(o.rep, facebookScope, "session replay succeeded")
			return page, cleanup, nil
		}
		// Stale session: discard the whole browser context, not just
		// the cookies, and fall through to interactive login.
		progress.Warnf(o.rep, facebookScope, "replayed session shows no listings, falling back to interactive login")
		cleanup()
		if err := o.sessions.Clear(FacebookSiteKey); err != nil {
			progress.Warnf(o.rep, facebookScope, "clear stale session: %v", err)
		}
	}

	page, cleanup, err := open(ctx, false)
	if err != nil {
		return nil, nil, err
	}
	if err := page.Navigate(ctx, scraper.FacebookRootURL); err != nil {
		cleanup()
		return nil, nil, err
	}

	progress.Infof(o.rep, facebookScope, "awaiting interactive login")
	if err := login.AwaitLogin(ctx); err != nil {
		cleanup()
		return nil, nil, err
	}
	progress.Successf(o.rep, facebookScope, "login confirmed")

	fresh, err := page.Cookies(ctx)
	if err != nil {
		progress.Warnf(o.rep, facebookScope, "read cookies after login: %v", err)
	} else if err := o.sessions.Save(FacebookSiteKey, fresh); err != nil {
		progress.Warnf(o.rep, facebookScope, "persist session: %v", err)
	} else {
		progress.Successf(o.rep, facebookScope, "session saved for future runs")
	}

	if err := page.Navigate(ctx, marketplaceURL); err != nil {
		cleanup()
		return nil, nil, err
	}
	return page, cleanup, nil
}

// replaySession reapplies stored cookies and probes the target page.
// Cookies can only attach once the browser's active domain matches, so
// the site root is visited first. The probe allows one extra settle
// before declaring the session stale.
func (o *Orchestrator) replaySession(ctx context.Context, page SessionPage, cookies []session.Cookie, marketplaceURL string) bool {
	if err := page.Navigate(ctx, scraper.FacebookRootURL); err != nil {
		progress.Warnf(o.rep, facebookScope, "open site root: %v", err)
		return false
	}
	for _, c := range cookies {
		if err := page.AddCookie(ctx, c); err != nil {
			progress.Warnf(o.rep, facebookScope, "add cookie %s: %v", c.Name, err)
		}
	}
	if err := page.Navigate(ctx, marketplaceURL); err != nil {
		progress.Warnf(o.rep, facebookScope, "open marketplace: %v", err)
		return false
	}

	if scraper.CountAny(ctx, page, scraper.FacebookCountSelectors) > 0 {
		return true
	}
	ready, err := scraper.WaitForAny(ctx, page, scraper.FacebookCountSelectors,
		o.cfg.SessionProbeWait, readinessPoll)
	if err != nil {
		return false
	}
	return ready
}
