package fpml

import (
	"strconv"

	"github.com/gpan-isda/fpml/dom"
)

// cacheKey is the closed set of slots a transform may stash under. Keys
// are scoped to one step invocation; the cache is never shared across
// steps or concurrent conversions.
type cacheKey int

const (
	// cacheCalculationAgentReference holds the trade-header calculation
	// agent reference until its trigger or fallback position.
	cacheCalculationAgentReference cacheKey = iota
	// cacheDateRelativeID holds the identifier linking a relocated
	// early-termination date to its href consumers.
	cacheDateRelativeID
)

// cacheEntry is either a stashed element awaiting re-emission or a
// synthesized identifier, never both.
type cacheEntry struct {
	element *dom.Element
	ident   string
}

// stepCache is the transformation-scoped store created at the start of
// a step and discarded at its end.
type stepCache map[cacheKey]cacheEntry

func newStepCache() stepCache {
	return make(stepCache)
}

// stash stores an element removed from its source position.
func (c stepCache) stash(key cacheKey, el *dom.Element) {
	c[key] = cacheEntry{element: el}
}

// takeElement removes and returns a stashed element.
func (c stepCache) takeElement(key cacheKey) (*dom.Element, bool) {
	entry, ok := c[key]
	if !ok || entry.element == nil {
		return nil, false
	}
	delete(c, key)
	return entry.element, true
}

// setIdent stores a synthesized identifier.
func (c stepCache) setIdent(key cacheKey, id string) {
	c[key] = cacheEntry{ident: id}
}

// ident returns a synthesized identifier without consuming it; an id may
// have several href consumers.
func (c stepCache) ident(key cacheKey) (string, bool) {
	entry, ok := c[key]
	if !ok || entry.ident == "" {
		return "", false
	}
	return entry.ident, true
}

// freeID probes prefix1, prefix2, ... against the in-progress target
// document and returns the first identifier not already used as an id.
func freeID(doc *dom.Document, prefix string) string {
	for n := 1; ; n++ {
		id := prefix + strconv.Itoa(n)
		if doc.ElementByID(id) == nil {
			return id
		}
	}
}
