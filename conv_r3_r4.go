package fpml

import (
	"strings"

	"github.com/gpan-isda/fpml/dom"
)

// Enumeration spellings that changed between 3-0 and 4-0, keyed by the
// uppercased 3-0 token. Unknown tokens pass through trimmed.
var (
	quoteBasisTokens = map[string]string{
		"CURRENCY1PERCURRENCY2": "Currency1PerCurrency2",
		"CURRENCY2PERCURRENCY1": "Currency2PerCurrency1",
	}
	sideRateBasisTokens = map[string]string{
		"CURRENCY1PERBASECURRENCY": "Currency1PerBaseCurrency",
		"BASECURRENCYPERCURRENCY1": "BaseCurrencyPerCurrency1",
		"CURRENCY2PERBASECURRENCY": "Currency2PerBaseCurrency",
		"BASECURRENCYPERCURRENCY2": "BaseCurrencyPerCurrency2",
	}
	premiumQuoteBasisTokens = map[string]string{
		"PERCENTAGEOFCALLCURRENCYAMOUNT": "PercentageOfCallCurrencyAmount",
		"PERCENTAGEOFPUTCURRENCYAMOUNT":  "PercentageOfPutCurrencyAmount",
		"CALLCURRENCYPERPUTCURRENCY":     "CallCurrencyPerPutCurrency",
		"PUTCURRENCYPERCALLCURRENCY":     "PutCurrencyPerCallCurrency",
		"EXPLICIT":                       "Explicit",
	}
	strikeQuoteBasisTokens = map[string]string{
		"CALLCURRENCYPERPUTCURRENCY": "CallCurrencyPerPutCurrency",
		"PUTCURRENCYPERCALLCURRENCY": "PutCurrencyPerCallCurrency",
	}
	fxBarrierTypeTokens = map[string]string{
		"KNOCKIN":         "Knockin",
		"KNOCKOUT":        "Knockout",
		"REVERSEKNOCKIN":  "ReverseKnockin",
		"REVERSEKNOCKOUT": "ReverseKnockout",
	}
)

// r3ToR4 upgrades 3-0 documents to 4-0 DataDocument form. This is the
// widest gap in the family: the DTD-era product structures are reshaped
// into their schema equivalents, several enumerations change spelling
// and the calculation agent moves into its own container.
type r3ToR4 struct {
	direct
}

func (c *r3ToR4) Convert(source *dom.Document, _ *Helper) (*dom.Document, error) {
	doc, err := newTargetDocument(c.target, source, "FpML")
	if err != nil {
		return nil, err
	}
	newRoot := doc.Root()
	newRoot.SetAttrNS(dom.XSINamespace, "type", "DataDocument")

	cache := newStepCache()
	for _, child := range source.Root().Nodes() {
		c.transcribe(child, doc, newRoot, cache)
	}
	return doc, nil
}

func (c *r3ToR4) transcribe(src dom.Node, doc *dom.Document, parent *dom.Element, cache stepCache) {
	el, ok := src.(*dom.Element)
	if !ok {
		copyTree(src, parent, c.source.namespace, c.target.namespace)
		return
	}
	ns := c.target.namespace

	// The calculation agent reference is held back until the position
	// its 4-0 container belongs at.
	if el.Local() == "calculationAgentPartyReference" &&
		el.Parent() != nil && el.Parent().Local() == "tradeHeader" {
		cache.stash(cacheCalculationAgentReference, el)
		return
	}

	switch el.Local() {
	case "buyerParty", "sellerParty":
		clone := dom.NewElement(ns, strings.TrimSuffix(el.Local(), "Party")+"PartyReference")
		if ref := el.Child("partyReference"); ref != nil {
			clone.SetAttr("href", ref.Attr("href"))
		}
		parent.AppendChild(clone)
		return

	case "underlying":
		clone := dom.NewElement(ns, "underlyer")
		single := dom.NewElement(ns, "singleUnderlyer")
		var asset *dom.Element
		if len(el.Descendants("extraordinaryEvents")) == 0 {
			asset = dom.NewElement(ns, "index")
		} else {
			asset = dom.NewElement(ns, "equity")
		}
		for _, id := range el.Descendants("instrumentId") {
			copyTree(id, asset, c.source.namespace, ns)
		}
		if desc := el.Child("description"); desc != nil {
			replacement := dom.NewElement(ns, "description")
			replacement.SetText(desc.InnerText())
			asset.AppendChild(replacement)
		}
		for _, name := range []string{"currency", "exchangeId", "clearanceSystem"} {
			if optional := el.Child(name); optional != nil {
				copyTree(optional, asset, c.source.namespace, ns)
			}
		}
		single.AppendChild(asset)
		clone.AppendChild(single)
		parent.AppendChild(clone)
		return

	case "settlementDate":
		clone := dom.NewElement(ns, "settlementDate")
		relative := dom.NewElement(ns, "relativeDate")
		copyChildren(el, relative, c.source.namespace, ns)
		clone.AppendChild(relative)
		parent.AppendChild(clone)
		return

	case "fixing":
		clone := dom.NewElement(ns, "fixing")
		for _, name := range []string{"primaryRateSource", "secondaryRateSource",
			"fixingTime", "quotedCurrencyPair", "fixingDate"} {
			if child := el.Child(name); child != nil {
				copyTree(child, clone, c.source.namespace, ns)
			}
		}
		parent.AppendChild(clone)
		return
	}

	name := el.Local()
	if name == "informationSource" && el.Parent() != nil && el.Parent().Local() == "fxSpotRateSource" {
		name = "primaryRateSource"
	}
	clone := dom.NewElement(ns, name)

	// The stashed calculation agent re-emerges, wrapped in its 4-0
	// container, just before the first element that follows it in the
	// 4-0 content model.
	switch el.Local() {
	case "calculationAgentBusinessCenter", "governingLaw", "documentation":
		c.flushCalculationAgent(parent, cache)
	}

	parent.AppendChild(clone)

	switch el.Local() {
	case "fraDiscounting":
		if strings.TrimSpace(el.InnerText()) == "true" {
			clone.SetText("ISDA")
		} else {
			clone.SetText("NONE")
		}
		return
	case "quoteBasis":
		remapEnum(el, clone, quoteBasisTokens)
		return
	case "sideRateBasis":
		remapEnum(el, clone, sideRateBasisTokens)
		return
	case "premiumQuoteBasis":
		remapEnum(el, clone, premiumQuoteBasisTokens)
		return
	case "strikeQuoteBasis", "averageRateQuoteBasis":
		remapEnum(el, clone, strikeQuoteBasisTokens)
		return
	case "fxBarrierType":
		remapEnum(el, clone, fxBarrierTypeTokens)
		return
	case "optionType", "nationalisationOrInsolvency", "delisting":
		// Scheme-coded in 3-0, plain enumerations in 4-0.
		clone.SetText(strings.TrimSpace(el.InnerText()))
		return
	}

	for _, a := range el.Attrs() {
		if a.Space == "" && (a.Local == "type" || a.Local == "base") {
			continue
		}
		clone.SetAttrNS(a.Space, a.Local, a.Value)
	}

	switch el.Local() {
	case "mandatoryEarlyTermination":
		cache.setIdent(cacheDateRelativeID, el.Attr("id"))
		clone.RemoveAttr("id")
	case "mandatoryEarlyTerminationDate":
		if id, ok := cache.ident(cacheDateRelativeID); ok {
			clone.SetAttr("id", id)
		}
	case "dateRelativeTo":
		if el.Parent() != nil && el.Parent().Local() == "cashSettlementValuationDate" {
			if ancestor(el, 3) == nil || ancestor(el, 3).Local() != "mandatoryEarlyTermination" {
				cache.setIdent(cacheDateRelativeID, freeID(doc, "AutoRef"))
			}
			if id, ok := cache.ident(cacheDateRelativeID); ok {
				clone.SetAttr("href", id)
			}
		}
		return
	case "cashSettlementPaymentDate":
		if id, ok := cache.ident(cacheDateRelativeID); ok {
			clone.SetAttr("id", id)
		}
	}

	for _, child := range el.Nodes() {
		c.transcribe(child, doc, clone, cache)
	}

	// A trade with none of the trigger elements still gets its agent
	// back at the end of the trade content.
	if el.Local() == "trade" {
		c.flushCalculationAgent(clone, cache)
	}
}

// flushCalculationAgent emits the stashed calculation agent reference
// inside a calculationAgent container, if one is pending.
func (c *r3ToR4) flushCalculationAgent(parent *dom.Element, cache stepCache) {
	agent, ok := cache.takeElement(cacheCalculationAgentReference)
	if !ok {
		return
	}
	container := dom.NewElement(c.target.namespace, "calculationAgent")
	copyTree(agent, container, c.source.namespace, c.target.namespace)
	parent.AppendChild(container)
}

// remapEnum rewrites the element text through an uppercase token table,
// passing unknown values through trimmed.
func remapEnum(el, clone *dom.Element, tokens map[string]string) {
	trimmed := strings.TrimSpace(el.InnerText())
	if mapped, ok := tokens[strings.ToUpper(trimmed)]; ok {
		clone.SetText(mapped)
		return
	}
	clone.SetText(trimmed)
}

// ancestor returns the n-th ancestor element, nil when the tree is too
// shallow.
func ancestor(el *dom.Element, n int) *dom.Element {
	cur := el
	for i := 0; i < n && cur != nil; i++ {
		cur = cur.Parent()
	}
	return cur
}
