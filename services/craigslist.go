package services

import (
	"context"

	"github.com/Zavian3/truck-listings-scrapper/models"
	"github.com/Zavian3/truck-listings-scrapper/progress"
	"github.com/Zavian3/truck-listings-scrapper/scraper"
)

const craigslistScope = "craigslist"

// Craigslist runs the enumerate-then-visit pipeline: wait for the
// search page to be ready, discover every detail URL, then visit each
// one in order and emit the records that carry signal. The returned
// channel is lazy, finite and non-restartable; it closes when the run
// is done or ctx is cancelled. Per-URL failures are reported and
// skipped, never aborting the batch.
func (o *Orchestrator) Craigslist(ctx context.Context, page scraper.Page, searchURL string) <-chan models.ListingRecord {
	out := make(chan models.ListingRecord)

	go func() {
		defer close(out)

		progress.Infof(o.rep, craigslistScope, "loading search page %s", searchURL)
		if err := page.Navigate(ctx, searchURL); err != nil {
			progress.Errorf(o.rep, craigslistScope, "load search page: %v", err)
			return
		}

		ready, err := scraper.WaitForAny(ctx, page, scraper.CraigslistContainerSelectors,
			o.cfg.ReadinessTimeout, readinessPoll)
		if err != nil {
			progress.Errorf(o.rep, craigslistScope, "wait for listings: %v", err)
			return
		}
		if !ready {
			progress.Warnf(o.rep, craigslistScope, "timed out waiting for listings, continuing anyway")
		}

		urls, err := scraper.DiscoverListingURLs(ctx, page, searchURL, scraper.DiscoverConfig{
			ContainerSelectors: scraper.CraigslistContainerSelectors,
			AnchorSelector:     scraper.CraigslistAnchorSelector,
			PathMarker:         scraper.CraigslistDetailMarker,
		})
		if err != nil {
			progress.Errorf(o.rep, craigslistScope, "discover listing urls: %v", err)
			return
		}
		if len(urls) == 0 {
			progress.Errorf(o.rep, craigslistScope, "no listing urls found")
			return
		}
		progress.Successf(o.rep, craigslistScope, "discovered %d listing urls", len(urls))

		if o.cfg.MaxListings > 0 && len(urls) > o.cfg.MaxListings {
			urls = urls[:o.cfg.MaxListings]
			progress.Infof(o.rep, craigslistScope, "limited to first %d listings", len(urls))
		}

		kept := 0
		for i, u := range urls {
			if err := o.pace(ctx); err != nil {
				return
			}

			rec, ok, err := scraper.BuildDetailRecord(ctx, page, u)
			if err != nil {
				progress.Warnf(o.rep, craigslistScope, "listing %d/%d: %v", i+1, len(urls), err)
				continue
			}
			if !ok {
				progress.Warnf(o.rep, craigslistScope, "listing %d/%d: no usable data at %s", i+1, len(urls), u)
				continue
			}

			select {
			case out <- rec:
			case <-ctx.Done():
				return
			}
			kept++
			progress.Successf(o.rep, craigslistScope, "listing %d/%d extracted", i+1, len(urls))
		}

		progress.Successf(o.rep, craigslistScope, "done: %d/%d listings extracted", kept, len(urls))
	}()

	return out
}
