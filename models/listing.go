package models

import "time"

// Source identifies which marketplace a record was extracted from.
type Source string

const (
	SourceCraigslist Source = "Craigslist"
	SourceFacebook   Source = "Facebook Marketplace"
)

// ListingRecord holds all scraped data for a single vehicle listing.
// Every field is always present (empty string when unknown) so the
// tabulated output has a stable column set.
type ListingRecord struct {
	URL          string `json:"url"`
	Title        string `json:"title"`
	Price        string `json:"price"`
	Year         string `json:"year"`
	Make         string `json:"make"`
	Model        string `json:"model"`
	VIN          string `json:"vin"`
	Mileage      string `json:"mileage"`
	Cylinders    string `json:"cylinders"`
	Drive        string `json:"drive"`
	Fuel         string `json:"fuel"`
	Color        string `json:"color"`
	Transmission string `json:"transmission"`
	BodyType     string `json:"body_type"`
	Location     string `json:"location"`
	MapLink      string `json:"map_link"`
	DatePosted   string `json:"date_posted"`
	DateScraped  string `json:"date_scraped"`
	Source       Source `json:"source"`
}

// NewListingRecord returns a record for url with DateScraped stamped now.
func NewListingRecord(url string, source Source) ListingRecord {
	return ListingRecord{
		URL:         url,
		Source:      source,
		DateScraped: time.Now().Format("2006-01-02 15:04:05"),
	}
}

// Columns is the fixed column order for every tabular output (CSV, sheet,
// database). Row below must stay aligned with it.
func Columns() []string {
	return []string{
		"url", "title", "price", "year", "make", "model", "vin",
		"mileage", "cylinders", "drive", "fuel", "color", "transmission",
		"body_type", "location", "map_link", "date_posted", "date_scraped",
		"source",
	}
}

// Row renders the record as one cell per column, in Columns order.
func (r ListingRecord) Row() []string {
	return []string{
		r.URL, r.Title, r.Price, r.Year, r.Make, r.Model, r.VIN,
		r.Mileage, r.Cylinders, r.Drive, r.Fuel, r.Color, r.Transmission,
		r.BodyType, r.Location, r.MapLink, r.DatePosted, r.DateScraped,
		string(r.Source),
	}
}

// HasSignal reports whether the record carries at least one of the
// fields that make it worth keeping. A scrape where title, price and
// VIN all came back empty is noise, not data.
func (r ListingRecord) HasSignal() bool {
	return r.Title != "" || r.Price != "" || r.VIN != ""
}
