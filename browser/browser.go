// Package browser backs the scraper's page capability set with
// chromedp. It is the only package that talks the DevTools protocol;
// everything above it sees selectors, node handles and cookies.
package browser

import (
	"context"
	"time"

	"github.com/chromedp/cdproto/cdp"
	"github.com/chromedp/cdproto/network"
	"github.com/chromedp/chromedp"

	"github.com/Zavian3/truck-listings-scrapper/config"
	"github.com/Zavian3/truck-listings-scrapper/scraper"
	"github.com/Zavian3/truck-listings-scrapper/session"
)

// NewAllocator creates a Chrome exec allocator context from the given
// Config. The flags normalize the automation fingerprint; anything
// beyond that is out of scope.
func NewAllocator(parent context.Context, cfg config.Config, headless bool) (context.Context, context.CancelFunc) {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", headless),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("disable-blink-features", "AutomationControlled"),
		chromedp.UserAgent(cfg.UserAgent),
		chromedp.WindowSize(1920, 1080),
	)
	return chromedp.NewExecAllocator(parent, opts...)
}

// Page drives one browser tab. It implements scraper.Page.
type Page struct {
	tab    context.Context
	settle time.Duration
}

// Open launches a browser (fresh allocator and tab) and returns the
// page plus a cleanup func releasing both. A failure here is fatal to
// the run: nothing can be extracted without a browser.
func Open(parent context.Context, cfg config.Config, headless bool) (*Page, context.CancelFunc, error) {
	allocCtx, cancelAlloc := NewAllocator(parent, cfg, headless)
	tabCtx, cancelTab := chromedp.NewContext(allocCtx)

	// Force the browser process to start now so setup failures surface
	// here rather than on the first navigation.
	if err := chromedp.Run(tabCtx); err != nil {
		cancelTab()
		cancelAlloc()
		return nil, nil, err
	}

	cleanup := func() {
		cancelTab()
		cancelAlloc()
	}
	return &Page{tab: tabCtx, settle: cfg.PageSettleDelay}, cleanup, nil
}

func (p *Page) Navigate(ctx context.Context, url string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return chromedp.Run(p.tab,
		chromedp.Navigate(url),
		chromedp.Sleep(p.settle),
	)
}

func (p *Page) Location(ctx context.Context) (string, error) {
	var url string
	err := chromedp.Run(p.tab, chromedp.Location(&url))
	return url, err
}

func (p *Page) ScrollToBottom(ctx context.Context) error {
	return chromedp.Run(p.tab,
		chromedp.Evaluate(`window.scrollTo(0, document.body.scrollHeight);`, nil),
	)
}

func (p *Page) QueryAll(ctx context.Context, selector string) ([]scraper.Elem, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var nodes []*cdp.Node
	err := chromedp.Run(p.tab,
		chromedp.Nodes(selector, &nodes, chromedp.ByQueryAll, chromedp.AtLeast(0)),
	)
	if err != nil {
		return nil, err
	}
	els := make([]scraper.Elem, len(nodes))
	for i, n := range nodes {
		els[i] = &node{page: p, n: n}
	}
	return els, nil
}

// Cookies returns every cookie of the active browser context.
func (p *Page) Cookies(ctx context.Context) ([]session.Cookie, error) {
	var out []session.Cookie
	err := chromedp.Run(p.tab, chromedp.ActionFunc(func(ctx context.Context) error {
		cookies, err := network.GetCookies().Do(ctx)
		if err != nil {
			return err
		}
		for _, c := range cookies {
			out = append(out, session.Cookie{
				Name:     c.Name,
				Value:    c.Value,
				Domain:   c.Domain,
				Path:     c.Path,
				Expires:  c.Expires,
				Secure:   c.Secure,
				HTTPOnly: c.HTTPOnly,
			})
		}
		return nil
	}))
	return out, err
}

// AddCookie replays one stored cookie onto the browser context. The
// active domain must already match the cookie domain, so callers
// navigate to the site root before replaying.
func (p *Page) AddCookie(ctx context.Context, c session.Cookie) error {
	return chromedp.Run(p.tab, chromedp.ActionFunc(func(ctx context.Context) error {
		param := network.SetCookie(c.Name, c.Value).
			WithDomain(c.Domain).
			WithPath(c.Path).
			WithSecure(c.Secure).
			WithHTTPOnly(c.HTTPOnly)
		if c.Expires > 0 {
			exp := cdp.TimeSinceEpoch(time.Unix(int64(c.Expires), 0))
			param = param.WithExpires(&exp)
		}
		return param.Do(ctx)
	}))
}

// node wraps one cdp node handle; scoped queries and reads all go
// through the owning tab.
type node struct {
	page *Page
	n    *cdp.Node
}

func (nd *node) Text(ctx context.Context) (string, error) {
	var out string
	err := chromedp.Run(nd.page.tab,
		chromedp.Text([]cdp.NodeID{nd.n.NodeID}, &out, chromedp.ByNodeID),
	)
	return out, err
}

func (nd *node) Attr(ctx context.Context, name string) (string, bool, error) {
	var value string
	var ok bool
	err := chromedp.Run(nd.page.tab,
		chromedp.AttributeValue([]cdp.NodeID{nd.n.NodeID}, name, &value, &ok, chromedp.ByNodeID),
	)
	return value, ok, err
}

func (nd *node) QueryAll(ctx context.Context, selector string) ([]scraper.Elem, error) {
	var nodes []*cdp.Node
	err := chromedp.Run(nd.page.tab,
		chromedp.Nodes(selector, &nodes, chromedp.ByQueryAll, chromedp.FromNode(nd.n), chromedp.AtLeast(0)),
	)
	if err != nil {
		return nil, err
	}
	els := make([]scraper.Elem, len(nodes))
	for i, n := range nodes {
		els[i] = &node{page: nd.page, n: n}
	}
	return els, nil
}
