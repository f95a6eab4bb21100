package scraper

import (
	"context"
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/Zavian3/truck-listings-scrapper/models"
)

// Leading "<4-digit year> <make> <model...>" pattern in listing titles.
var titleRe = regexp.MustCompile(`^(\d{4})\s+([A-Za-z]+)\s+([A-Za-z0-9\-\s]+)`)

// Trailing "google map" boilerplate appended to Craigslist addresses.
var mapSuffixRe = regexp.MustCompile(`(?i)google map.*$`)

var slugCaser = cases.Title(language.AmericanEnglish)

// BuildDetailRecord navigates to one Craigslist listing and assembles a
// record from the per-field chains. The boolean is false when the page
// produced no usable signal (empty title, price and VIN); such a scrape
// is not a record.
func BuildDetailRecord(ctx context.Context, page Page, listingURL string) (models.ListingRecord, bool, error) {
	if err := page.Navigate(ctx, listingURL); err != nil {
		return models.ListingRecord{}, false, fmt.Errorf("navigate %s: %w", listingURL, err)
	}
	rec := ExtractDetailFields(ctx, page, listingURL)
	if !rec.HasSignal() {
		return models.ListingRecord{}, false, nil
	}
	// A record can carry signal through price or VIN alone; give it a
	// display title derived from the URL slug then.
	if rec.Title == "" {
		rec.Title = TitleFromURL(listingURL)
	}
	return rec, true, nil
}

// ExtractDetailFields populates a record from an already-loaded detail
// page. Split from BuildDetailRecord so fixtures can exercise it
// without a navigation step.
func ExtractDetailFields(ctx context.Context, page Scope, listingURL string) models.ListingRecord {
	rec := models.NewListingRecord(listingURL, models.SourceCraigslist)

	if title := Lookup(ctx, page, CraigslistTitleChain); title != "" {
		rec.Title = title
		rec.Year, rec.Make, rec.Model = ParseTitle(title)
	}

	rec.Price = Lookup(ctx, page, CraigslistPriceChain)
	rec.VIN = Lookup(ctx, page, CraigslistVINChain)
	rec.Mileage = Lookup(ctx, page, CraigslistMileageChain)
	rec.Cylinders = Lookup(ctx, page, CraigslistCylindersChain)
	rec.Drive = Lookup(ctx, page, CraigslistDriveChain)
	rec.Fuel = Lookup(ctx, page, CraigslistFuelChain)
	rec.Color = Lookup(ctx, page, CraigslistColorChain)
	rec.Transmission = Lookup(ctx, page, CraigslistTransmissionChain)
	rec.BodyType = Lookup(ctx, page, CraigslistBodyTypeChain)

	rec.Location = AssembleLocation(
		Lookup(ctx, page, CraigslistPrimaryLocationChain),
		Lookup(ctx, page, CraigslistMapAddressChain),
	)
	rec.MapLink = Lookup(ctx, page, CraigslistMapLinkChain)
	rec.DatePosted = Lookup(ctx, page, CraigslistDatePostedChain)

	return rec
}

// ParseTitle splits a leading "2021 Ford F-150 XLT" style title into
// year, make and model. A title without the leading year yields three
// empty strings; the title itself is left to the caller untouched.
func ParseTitle(title string) (year, make, model string) {
	m := titleRe.FindStringSubmatch(title)
	if m == nil {
		return "", "", ""
	}
	return m[1], m[2], strings.TrimSpace(m[3])
}

// TitleFromURL synthesizes a display title from the URL's last path
// segment: extension stripped, separators spaced, title-cased.
func TitleFromURL(listingURL string) string {
	seg := listingURL
	if u, err := url.Parse(listingURL); err == nil && u.Path != "" {
		seg = u.Path
	}
	if i := strings.LastIndex(seg, "/"); i >= 0 {
		seg = seg[i+1:]
	}
	seg = strings.TrimSuffix(seg, ".html")
	seg = strings.ReplaceAll(seg, "-", " ")
	seg = strings.ReplaceAll(seg, "_", " ")
	return slugCaser.String(strings.TrimSpace(seg))
}

// AssembleLocation joins the cleaned posting-title location and the
// cleaned map address with " - ". Each part is included only when
// non-empty and not a duplicate of the other.
func AssembleLocation(primary, address string) string {
	var parts []string

	primary = strings.TrimSpace(strings.NewReplacer("(", "", ")", "").Replace(primary))
	if primary != "" {
		parts = append(parts, primary)
	}

	address = strings.TrimSpace(mapSuffixRe.ReplaceAllString(address, ""))
	if address != "" && !contains(parts, address) {
		parts = append(parts, address)
	}

	return strings.Join(parts, " - ")
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
