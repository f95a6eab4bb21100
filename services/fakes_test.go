package services

import (
	"context"
	"strings"

	"github.com/Zavian3/truck-listings-scrapper/config"
	"github.com/Zavian3/truck-listings-scrapper/scraper"
	"github.com/Zavian3/truck-listings-scrapper/session"
)

func testConfig() config.Config {
	cfg := config.Default()
	cfg.ReadinessTimeout = 0
	cfg.SessionProbeWait = 0
	cfg.PageSettleDelay = 0
	cfg.ScrollSettleDelay = 0
	cfg.LoaderExtraDelay = 0
	cfg.ScrollAttempts = 2
	cfg.StallLimit = 3
	cfg.DetailRate = 1000
	return cfg
}

type stubElem struct {
	text  string
	attrs map[string]string
	kids  map[string][]scraper.Elem
}

func (e *stubElem) Text(ctx context.Context) (string, error) {
	return e.text, nil
}

func (e *stubElem) Attr(ctx context.Context, name string) (string, bool, error) {
	v, ok := e.attrs[name]
	return v, ok, nil
}

func (e *stubElem) QueryAll(ctx context.Context, selector string) ([]scraper.Elem, error) {
	return e.kids[selector], nil
}

// sitePage serves per-URL selector fixtures; Navigate switches which
// fixture answers queries, like a tab moving between pages.
type sitePage struct {
	pages   map[string]map[string][]scraper.Elem
	current string
	navs    []string
}

func (p *sitePage) Navigate(ctx context.Context, url string) error {
	p.current = url
	p.navs = append(p.navs, url)
	return nil
}

func (p *sitePage) QueryAll(ctx context.Context, selector string) ([]scraper.Elem, error) {
	return p.pages[p.current][selector], nil
}

func (p *sitePage) ScrollToBottom(ctx context.Context) error { return nil }

func (p *sitePage) Location(ctx context.Context) (string, error) { return p.current, nil }

// fbPage is a marketplace tab: items are only visible once the tab sits
// on the marketplace URL, mimicking a feed behind a login wall.
type fbPage struct {
	marketURL string
	items     []scraper.Elem
	fresh     []session.Cookie // what Cookies() reports after login
	current   string
	navs      []string
	added     []session.Cookie
	closed    bool
}

func (p *fbPage) Navigate(ctx context.Context, url string) error {
	p.current = url
	p.navs = append(p.navs, url)
	return nil
}

func (p *fbPage) QueryAll(ctx context.Context, selector string) ([]scraper.Elem, error) {
	if p.current == p.marketURL && strings.Contains(selector, "marketplace") {
		return p.items, nil
	}
	return nil, nil
}

func (p *fbPage) ScrollToBottom(ctx context.Context) error { return nil }

func (p *fbPage) Location(ctx context.Context) (string, error) { return p.current, nil }

func (p *fbPage) Cookies(ctx context.Context) ([]session.Cookie, error) { return p.fresh, nil }

func (p *fbPage) AddCookie(ctx context.Context, c session.Cookie) error {
	p.added = append(p.added, c)
	return nil
}

// openerStub hands out pre-built pages in order and records the
// headless flag of every open.
type openerStub struct {
	pages    []*fbPage
	headless []bool
	next     int
}

func (o *openerStub) open(ctx context.Context, headless bool) (SessionPage, func(), error) {
	p := o.pages[o.next]
	o.next++
	o.headless = append(o.headless, headless)
	return p, func() { p.closed = true }, nil
}

type stubPrompter struct {
	calls int
	err   error
}

func (p *stubPrompter) AwaitLogin(ctx context.Context) error {
	p.calls++
	return p.err
}
