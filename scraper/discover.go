package scraper

import (
	"context"
	"net/url"
	"strings"
)

// DiscoverConfig describes how detail-page URLs are found on a search
// results page.
type DiscoverConfig struct {
	// ContainerSelectors are tried in priority order. A later family is
	// only consulted when every earlier one produced zero URLs, so a
	// site redesign is tolerated as long as one family still matches.
	ContainerSelectors []string
	// AnchorSelector locates the link inside a container. Empty falls
	// back to any anchor.
	AnchorSelector string
	// PathMarker must appear in the anchor's destination path.
	PathMarker string
}

// DiscoverListingURLs walks the container families against a loaded
// search page and returns absolute detail-page URLs, deduplicated,
// first seen wins, in container order. The caller must have waited for
// readiness already (WaitForAny); discovery itself never blocks.
func DiscoverListingURLs(ctx context.Context, page Scope, baseURL string, cfg DiscoverConfig) ([]string, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, err
	}

	anchorSel := cfg.AnchorSelector
	if anchorSel == "" {
		anchorSel = "a"
	}

	var urls []string
	seen := make(map[string]struct{})

	for _, containerSel := range cfg.ContainerSelectors {
		containers, err := page.QueryAll(ctx, containerSel)
		if err != nil {
			continue
		}
		for _, node := range containers {
			href := anchorHref(ctx, node, anchorSel, cfg.PathMarker)
			if href == "" {
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
			urls = append(urls, abs)
		}
		// Escalation short-circuit: once any family yields URLs the
		// remaining families stay untouched.
		if len(urls) > 0 {
			break
		}
	}

	return urls, nil
}

// anchorHref returns the first link under node whose destination
// carries the detail-page marker.
func anchorHref(ctx context.Context, node Elem, anchorSel, marker string) string {
	links, err := node.QueryAll(ctx, anchorSel)
	if err != nil || len(links) == 0 {
		// The container may be the anchor itself.
		if href, ok, err := node.Attr(ctx, "href"); err == nil && ok && strings.Contains(href, marker) {
			return href
		}
		return ""
	}
	for _, link := range links {
		href, ok, err := link.Attr(ctx, "href")
		if err != nil || !ok {
			continue
		}
		if strings.Contains(href, marker) {
			return href
		}
	}
	return ""
}

func resolveURL(base *url.URL, href string) string {
	ref, err := url.Parse(strings.TrimSpace(href))
	if err != nil {
		return ""
	}
	return base.ResolveReference(ref).String()
}
