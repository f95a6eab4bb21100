package scraper

// CSS selectors used across the scraper.
// Centralising them makes future markup updates trivial.

// Craigslist search results page. The three container families are
// tried in order; later ones exist to survive a results-page redesign.
var CraigslistContainerSelectors = []string{
	".result-node",
	".cl-search-result",
	"[data-pid]",
}

const (
	// Anchor inside a result container pointing at a detail page.
	CraigslistAnchorSelector = "a.cl-app-anchor"
	// Path segment that marks a Craigslist detail page URL.
	CraigslistDetailMarker = "/d/"
)

// Craigslist detail page field chains.
var (
	CraigslistTitleChain = Text(
		"#titletextonly",
		".postingtitletext .titletextonly",
		"h1 .titletextonly",
		".postingtitle",
	)

	CraigslistDatePostedChain = Chain{
		{Selector: "time.date.timeago", Attr: "datetime"},
		{Selector: "time.date.timeago", Attr: "title"},
		{Selector: "time.date.timeago"},
		{Selector: ".postinginfos .postinginfo:first-child .date"},
	}

	CraigslistPriceChain        = Text(".price")
	CraigslistVINChain          = Text(".attr.auto_vin .valu")
	CraigslistMileageChain      = Text(".attr.auto_miles .valu")
	CraigslistCylindersChain    = Text(".attr.auto_cylinders .valu")
	CraigslistDriveChain        = Text(".attr.auto_drivetrain .valu")
	CraigslistFuelChain         = Text(".attr.auto_fuel_type .valu")
	CraigslistColorChain        = Text(".attr.auto_paint .valu")
	CraigslistTransmissionChain = Text(".attr.auto_transmission .valu")
	CraigslistBodyTypeChain     = Text(".attr.auto_bodytype .valu")

	CraigslistPrimaryLocationChain = Text(".postingtitletext small")
	CraigslistMapAddressChain      = Text(".mapaddress")
	CraigslistMapLinkChain         = Chain{{Selector: ".mapaddress a", Attr: "href"}}
)

// Facebook Marketplace feed.
var (
	// Families used both for the readiness probe and the scroll
	// convergence count; the anchor one is the most reliable.
	FacebookCountSelectors = []string{
		`a[href*="/marketplace/item/"]`,
		`[data-testid*="marketplace"]`,
		`div[data-testid="marketplace-grid"] a`,
		`div[role="main"] a[href*="/marketplace/item/"]`,
	}

	FacebookLoadingSelectors = []string{
		`[role="progressbar"]`,
		`[aria-label*="Loading"]`,
	}
)

const (
	// Container selector the bulk pass walks in DOM order.
	FacebookItemSelector = `a[href*="/marketplace/item/"]`
	// Spans carrying prices, locations and mileage inside a card.
	FacebookSpanSelector = `span[dir="auto"]`
	FacebookRootURL      = "https://www.facebook.com"
)
