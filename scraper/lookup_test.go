package scraper

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookupFirstNonEmptyWins(t *testing.T) {
	scope := &fakeScope{matches: map[string][]Elem{
		".primary":  {textElem("first value")},
		".fallback": {textElem("second value")},
	}}

	got := Lookup(context.Background(), scope, Text(".primary", ".fallback"))

	assert.Equal(t, "first value", got)
	assert.Equal(t, []string{".primary"}, scope.queried)
}

func TestLookupAdvancesPastMisses(t *testing.T) {
	scope := &fakeScope{
		matches: map[string][]Elem{
			".empty":    {textElem("   ")},
			".fallback": {textElem("  kept  ")},
		},
		errs: map[string]error{".broken": errors.New("query failed")},
	}

	got := Lookup(context.Background(), scope, Text(".broken", ".missing", ".empty", ".fallback"))

	assert.Equal(t, "kept", got)
}

func TestLookupAttrMode(t *testing.T) {
	scope := &fakeScope{matches: map[string][]Elem{
		"time.date": {attrElem(map[string]string{"title": "2024-01-15 10:00"})},
	}}

	chain := Chain{
		{Selector: "time.date", Attr: "datetime"}, // attribute absent
		{Selector: "time.date", Attr: "title"},
	}
	got := Lookup(context.Background(), scope, chain)

	assert.Equal(t, "2024-01-15 10:00", got)
}

func TestLookupNeverMergesStrategies(t *testing.T) {
	scope := &fakeScope{matches: map[string][]Elem{
		".a": {textElem("partial")},
		".b": {textElem("rest")},
	}}

	got := Lookup(context.Background(), scope, Text(".a", ".b"))

	assert.Equal(t, "partial", got)
}

func TestLookupNilScope(t *testing.T) {
	assert.Equal(t, "", Lookup(context.Background(), nil, Text(".anything")))
}

func TestLookupExhaustedChain(t *testing.T) {
	scope := &fakeScope{}
	assert.Equal(t, "", Lookup(context.Background(), scope, Text(".a", ".b")))
}

func TestCountAnyTakesLargestFamily(t *testing.T) {
	scope := &fakeScope{
		matches: map[string][]Elem{
			".sparse": {textElem("x")},
			".dense":  {textElem("a"), textElem("b"), textElem("c")},
		},
		errs: map[string]error{".broken": errors.New("query failed")},
	}

	got := CountAny(context.Background(), scope, []string{".sparse", ".broken", ".dense"})

	assert.Equal(t, 3, got)
}

func TestWaitForAnyImmediatelyReady(t *testing.T) {
	scope := &fakeScope{matches: map[string][]Elem{".item": {textElem("x")}}}

	ready, err := WaitForAny(context.Background(), scope, []string{".item"}, time.Second, time.Millisecond)

	require.NoError(t, err)
	assert.True(t, ready)
}

func TestWaitForAnyTimeoutIsNotAnError(t *testing.T) {
	scope := &fakeScope{}

	ready, err := WaitForAny(context.Background(), scope, []string{".item"}, 0, time.Millisecond)

	require.NoError(t, err)
	assert.False(t, ready)
}

func TestWaitForAnyCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	scope := &fakeScope{}

	_, err := WaitForAny(ctx, scope, []string{".item"}, time.Minute, time.Millisecond)

	assert.ErrorIs(t, err, context.Canceled)
}
