package scraper

import (
	"context"
	"net/url"
	"strings"
	"unicode"

	"github.com/Zavian3/truck-listings-scrapper/models"
)

// US state codes seen in marketplace card locations near the search
// region. Used to tell "Bend, OR" apart from other comma'd text.
var stateSuffixes = []string{", OR", ", WA", ", CA", ", ID", ", NV"}

// ExtractFeedRecords walks every marketplace item container currently
// in the DOM, in document order, and assembles one record per unique
// URL. Card hrefs are relative paths in the DOM, so each is resolved
// to an absolute URL before keying; the url column is also the upsert
// key downstream. Duplicate URLs (the feed renders some items twice)
// are dropped, first seen wins.
func ExtractFeedRecords(ctx context.Context, page Page) ([]models.ListingRecord, error) {
	cards, err := page.QueryAll(ctx, FacebookItemSelector)
	if err != nil {
		return nil, err
	}
	base := feedBase(ctx, page)

	var records []models.ListingRecord
	seen := make(map[string]struct{}, len(cards))

	for _, card := range cards {
		href, ok, err := card.Attr(ctx, "href")
		if err != nil || !ok || strings.TrimSpace(href) == "" {
			continue
		}
		abs := resolveURL(base, href)
		if abs == "" {
			continue
		}
		if _, dup := seen[abs]; dup {
			continue
		}
		seen[abs] = struct{}{}

		rec := models.NewListingRecord(abs, models.SourceFacebook)
		rec.Title = cardTitle(ctx, card)
		rec.Price = cardPrice(ctx, card)
		rec.Location, rec.Mileage = cardLocationMileage(ctx, card)
		records = append(records, rec)
	}

	return records, nil
}

// feedBase is the URL card hrefs resolve against: the page's current
// location, or the site root when that cannot be read.
func feedBase(ctx context.Context, page Page) *url.URL {
	if loc, err := page.Location(ctx); err == nil {
		if u, err := url.Parse(loc); err == nil && u.Host != "" {
			return u
		}
	}
	base, _ := url.Parse(FacebookRootURL)
	return base
}

// cardTitle reads the item's image alt text, the only stable title
// carrier in the obfuscated card markup.
func cardTitle(ctx context.Context, card Elem) string {
	imgs, err := card.QueryAll(ctx, "img")
	if err != nil || len(imgs) == 0 {
		return ""
	}
	alt, ok, err := imgs[0].Attr(ctx, "alt")
	if err != nil || !ok {
		return ""
	}
	return strings.TrimSpace(alt)
}

// cardPrice scans the card's spans for something shaped like a price:
// starts with "$", contains a digit, short enough to not be prose. The
// dir="auto" spans are tried first, any span second.
func cardPrice(ctx context.Context, card Elem) string {
	for _, sel := range []string{FacebookSpanSelector, "span"} {
		spans, err := card.QueryAll(ctx, sel)
		if err != nil {
			continue
		}
		for _, span := range spans {
			text, err := span.Text(ctx)
			if err != nil {
				continue
			}
			if p := strings.TrimSpace(text); looksLikePrice(p) {
				return p
			}
		}
	}
	return ""
}

func looksLikePrice(s string) bool {
	if !strings.HasPrefix(s, "$") || len(s) < 2 || len(s) >= 30 {
		return false
	}
	return strings.ContainsFunc(s, unicode.IsDigit)
}

// cardLocationMileage pulls the "City, ST" line and the "NNk miles"
// line out of the card's text spans. The two share markup, so each
// candidate is classified by shape.
func cardLocationMileage(ctx context.Context, card Elem) (location, mileage string) {
	spans, err := card.QueryAll(ctx, FacebookSpanSelector)
	if err != nil {
		return "", ""
	}
	for _, span := range spans {
		text, err := span.Text(ctx)
		if err != nil {
			continue
		}
		text = strings.TrimSpace(text)
		if text == "" || len(text) >= 50 {
			continue
		}
		lower := strings.ToLower(text)
		switch {
		case mileage == "" && strings.Contains(lower, "mile"):
			mileage = text
		case location == "" && looksLikeLocation(text):
			location = text
		}
		if location != "" && mileage != "" {
			break
		}
	}
	return location, mileage
}

func looksLikeLocation(s string) bool {
	if !strings.Contains(s, ", ") {
		return false
	}
	for _, suffix := range stateSuffixes {
		if strings.Contains(s, suffix) {
			return true
		}
	}
	return false
}
