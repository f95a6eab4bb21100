package scraper

import "context"

// In-memory DOM fakes. A fakeElem is both an element and a scope, so
// fixtures can nest card structures the way real pages do.

type fakeElem struct {
	text    string
	textErr error
	attrs   map[string]string
	kids    map[string][]Elem
}

func (e *fakeElem) Text(ctx context.Context) (string, error) {
	return e.text, e.textErr
}

func (e *fakeElem) Attr(ctx context.Context, name string) (string, bool, error) {
	v, ok := e.attrs[name]
	return v, ok, nil
}

func (e *fakeElem) QueryAll(ctx context.Context, selector string) ([]Elem, error) {
	return e.kids[selector], nil
}

func textElem(text string) *fakeElem {
	return &fakeElem{text: text}
}

func attrElem(attrs map[string]string) *fakeElem {
	return &fakeElem{attrs: attrs}
}

// fakeScope records every selector queried so tests can assert which
// strategy families were consulted.
type fakeScope struct {
	matches map[string][]Elem
	errs    map[string]error
	queried []string
}

func (s *fakeScope) QueryAll(ctx context.Context, selector string) ([]Elem, error) {
	s.queried = append(s.queried, selector)
	if err := s.errs[selector]; err != nil {
		return nil, err
	}
	return s.matches[selector], nil
}

func (s *fakeScope) timesQueried(selector string) int {
	n := 0
	for _, q := range s.queried {
		if q == selector {
			n++
		}
	}
	return n
}

type fakePage struct {
	fakeScope
	navigated []string
	navErr    error
	scrolls   int
}

func (p *fakePage) Navigate(ctx context.Context, url string) error {
	if p.navErr != nil {
		return p.navErr
	}
	p.navigated = append(p.navigated, url)
	return nil
}

func (p *fakePage) ScrollToBottom(ctx context.Context) error {
	p.scrolls++
	return nil
}

func (p *fakePage) Location(ctx context.Context) (string, error) {
	if len(p.navigated) == 0 {
		return "", nil
	}
	return p.navigated[len(p.navigated)-1], nil
}
