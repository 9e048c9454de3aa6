package fpml

import (
	"strings"

	"github.com/gpan-isda/fpml/dom"
	fpmlerrors "github.com/gpan-isda/fpml/errors"
)

// Element renames shared by the 4-x equity derivative upgrades.
var equityRenames = map[string]string{
	"equityOptionFeatures":            "equityFeatures",
	"automaticExerciseApplicable":     "automaticExercise",
	"equityBermudanExercise":          "equityBermudaExercise",
	"bermudanExerciseDates":           "bermudaExerciseDates",
	"fxSource":                        "fxSpotRateSource",
	"fxDetermination":                 "fxSpotRateSource",
	"futuresPriceValuationApplicable": "futuresPriceValuation",
	"equityValuationDate":             "valuationDate",
	"equityValuationDates":            "valuationDates",
	"fxTerms":                         "fxFeature",
}

// equityFxUpgrade reshapes the equity derivative and fx feature content
// models. The 4-0 to 4-1 and 4-1 to 4-2 upgrades apply exactly the same
// rewriting, so one implementation serves both pairs. Synthesizing the
// quanto and composite fx features needs business context the document
// does not carry, supplied through the Helper.
type equityFxUpgrade struct {
	direct
}

func (c *equityFxUpgrade) Convert(source *dom.Document, helper *Helper) (*dom.Document, error) {
	doc, err := newTargetDocument(c.target, source, "")
	if err != nil {
		return nil, err
	}
	newRoot := doc.Root()
	transferSchemeDefaults(source.Root(), newRoot, c.source, c.target)
	for _, child := range source.Root().Nodes() {
		if err := c.transcribe(child, newRoot, helper); err != nil {
			return nil, err
		}
	}
	return doc, nil
}

func (c *equityFxUpgrade) transcribe(src dom.Node, parent *dom.Element, helper *Helper) error {
	el, ok := src.(*dom.Element)
	if !ok {
		copyTree(src, parent, c.source.namespace, c.target.namespace)
		return nil
	}
	ns := c.target.namespace

	// failureToDeliverApplicable is folded into extraordinaryEvents
	// below rather than copied in place.
	if el.Local() == "failureToDeliverApplicable" {
		return nil
	}

	name := el.Local()
	if renamed, ok := equityRenames[name]; ok {
		name = renamed
	}
	clone := dom.NewElement(ns, name)
	parent.AppendChild(clone)

	switch el.Local() {
	case "clearanceSystem":
		clone.SetAttr("clearanceSystemScheme", el.Attr("clearanceSystemIdScheme"))
		clone.SetText(el.InnerText())
		return nil
	case "routingId":
		clone.SetAttr("routingIdCodeScheme", el.Attr("routingIdScheme"))
		clone.SetText(el.InnerText())
		return nil
	}

	for _, a := range el.Attrs() {
		clone.SetAttrNS(a.Space, a.Local, a.Value)
	}

	switch el.Local() {
	case "equityOption":
		c.rebuildEquityOption(el, clone)
		return nil
	case "swaption":
		c.rebuildSwaption(el, clone)
		return nil
	case "fxFeature":
		return c.rebuildFxFeature(el, clone, helper)
	case "fxTerms":
		c.rebuildFxTerms(el, clone)
		return nil
	case "equitySwap":
		c.rebuildEquitySwap(el, clone)
		return nil
	case "initialPrice", "valuationPriceFinal":
		c.rebuildPrice(el, clone, "equityValuationDate")
		return nil
	case "valuationPriceInterim":
		c.rebuildPrice(el, clone, "equityValuationDates")
		return nil
	case "constituentWeight":
		if pct := el.Child("basketPercentage"); pct != nil {
			c.copy(pct, clone)
		} else if units := el.Child("openUnits"); units != nil {
			c.copy(units, clone)
		}
		return nil
	case "extraordinaryEvents":
		c.rebuildExtraordinaryEvents(el, clone)
		return nil
	}

	for _, child := range el.Nodes() {
		if err := c.transcribe(child, clone, helper); err != nil {
			return err
		}
	}
	return nil
}

// copy imports a source subtree verbatim apart from the namespace swap.
func (c *equityFxUpgrade) copy(el *dom.Element, parent *dom.Element) {
	copyTree(el, parent, c.source.namespace, c.target.namespace)
}

func (c *equityFxUpgrade) copyFirst(owner, parent *dom.Element, names ...string) {
	for _, name := range names {
		if child := owner.Child(name); child != nil {
			c.copy(child, parent)
		}
	}
}

func (c *equityFxUpgrade) copyAll(owner, parent *dom.Element, name string) {
	for _, child := range owner.Descendants(name) {
		c.copy(child, parent)
	}
}

// rebuildEquityOption reorders the option content and adds the premium
// and extraordinary events structures that became mandatory.
func (c *equityFxUpgrade) rebuildEquityOption(el, clone *dom.Element) {
	ns := c.target.namespace
	premium := dom.NewElement(ns, "equityPremium")
	payer := dom.NewElement(ns, "payerPartyReference")
	receiver := dom.NewElement(ns, "receiverPartyReference")
	if buyer := el.Child("buyerPartyReference"); buyer != nil {
		c.copy(buyer, clone)
		payer.SetAttr("href", buyer.Attr("href"))
	}
	if seller := el.Child("sellerPartyReference"); seller != nil {
		c.copy(seller, clone)
		receiver.SetAttr("href", seller.Attr("href"))
	}
	c.copyFirst(el, clone, "optionType", "equityEffectiveDate", "underlyer",
		"notional", "equityExercise", "fxFeature", "methodOfAdjustment")
	if events := el.Child("extraordinaryEvents"); events != nil {
		c.copy(events, clone)
	} else {
		events := dom.NewElement(ns, "extraordinaryEvents")
		events.AppendChild(c.failureToDeliver(el))
		clone.AppendChild(events)
	}
	c.copyFirst(el, clone, "equityOptionFeatures", "strike", "spot",
		"numberOfOptions", "optionEntitlement")
	premium.AppendChild(payer)
	premium.AppendChild(receiver)
	clone.AppendChild(premium)
}

// rebuildSwaption groups the calculation agent references into a
// calculationAgent container.
func (c *equityFxUpgrade) rebuildSwaption(el, clone *dom.Element) {
	c.copyFirst(el, clone, "buyerPartyReference", "sellerPartyReference")
	c.copyAll(el, clone, "premium")
	c.copyFirst(el, clone, "americanExercise", "bermudaExercise",
		"europeanExercise", "exerciseProcedure")
	agent := dom.NewElement(c.target.namespace, "calculationAgent")
	clone.AppendChild(agent)
	c.copyAll(el, agent, "calculationAgentPartyReference")
	c.copyFirst(el, clone, "cashSettlement", "swaptionStraddle",
		"swaptionAdjustedDates", "swap")
}

// rebuildFxFeature expands the fxFeatureType code into the composite or
// quanto structure, pulling the reference currency and quanto terms
// from the Helper.
func (c *equityFxUpgrade) rebuildFxFeature(el, clone *dom.Element, helper *Helper) error {
	ns := c.target.namespace
	if helper.ReferenceCurrency == nil {
		return fpmlerrors.MissingCapability("fxFeature reference currency", el.Location())
	}
	currency, err := helper.ReferenceCurrency(el)
	if err != nil {
		return err
	}
	reference := dom.NewElement(ns, "referenceCurrency")
	reference.SetText(currency)
	clone.AppendChild(reference)

	kind := ""
	if t := el.Child("fxFeatureType"); t != nil {
		kind = strings.ToUpper(strings.TrimSpace(t.InnerText()))
	}
	if kind == "COMPOSITE" {
		composite := dom.NewElement(ns, "composite")
		if source := el.Child("fxSource"); source != nil {
			c.copy(source, composite)
		}
		clone.AppendChild(composite)
		return nil
	}

	if helper.QuantoTerms == nil {
		return fpmlerrors.MissingCapability("fxFeature quanto currencies", el.Location())
	}
	terms, err := helper.QuantoTerms(el)
	if err != nil {
		return err
	}
	quanto := dom.NewElement(ns, "quanto")
	pair := dom.NewElement(ns, "quotedCurrencyPair")
	for _, part := range []struct{ name, value string }{
		{"currency1", terms.Currency1},
		{"currency2", terms.Currency2},
		{"quoteBasis", terms.QuoteBasis},
	} {
		child := dom.NewElement(ns, part.name)
		child.SetText(part.value)
		pair.AppendChild(child)
	}
	rate := dom.NewElement(ns, "fxRate")
	value := dom.NewElement(ns, "rate")
	if src := el.Child("fxRate"); src != nil {
		value.SetText(src.InnerText())
	} else {
		value.SetText("0.0000")
	}
	rate.AppendChild(pair)
	rate.AppendChild(value)
	quanto.AppendChild(rate)
	if source := el.Child("fxSource"); source != nil {
		c.copy(source, quanto)
	}
	clone.AppendChild(quanto)
	return nil
}

// rebuildFxTerms flattens the old quanto and compositeFx wrappers into
// the fxFeature content model.
func (c *equityFxUpgrade) rebuildFxTerms(el, clone *dom.Element) {
	ns := c.target.namespace
	if quanto := el.Child("quanto"); quanto != nil {
		if reference := quanto.Child("referenceCurrency"); reference != nil {
			c.copy(reference, clone)
		}
		child := dom.NewElement(ns, "quanto")
		c.copyAll(quanto, child, "fxRate")
		clone.AppendChild(child)
	}
	if composite := el.Child("compositeFx"); composite != nil {
		if reference := composite.Child("referenceCurrency"); reference != nil {
			c.copy(reference, clone)
		}
		child := dom.NewElement(ns, "composite")
		c.copyFirst(composite, child, "determinationMethod", "relativeDate", "fxDetermination")
		clone.AppendChild(child)
	}
}

// rebuildEquitySwap derives the swap-level buyer and seller references
// from the first equity leg.
func (c *equityFxUpgrade) rebuildEquitySwap(el, clone *dom.Element) {
	ns := c.target.namespace
	c.copyFirst(el, clone, "productType")
	c.copyAll(el, clone, "productId")
	legs := el.Descendants("equityLeg")
	if len(legs) > 0 {
		buyer := dom.NewElement(ns, "buyerPartyReference")
		seller := dom.NewElement(ns, "sellerPartyReference")
		if payer := legs[0].Child("payerPartyReference"); payer != nil {
			buyer.SetAttr("href", payer.Attr("href"))
		}
		if receiver := legs[0].Child("receiverPartyReference"); receiver != nil {
			seller.SetAttr("href", receiver.Attr("href"))
		}
		clone.AppendChild(buyer)
		clone.AppendChild(seller)
	}
	for _, leg := range legs {
		c.copy(leg, clone)
	}
	c.copyAll(el, clone, "interestLeg")
	c.copyFirst(el, clone, "principalExchangeFeatures")
	c.copyAll(el, clone, "additionalPayment")
	c.copyAll(el, clone, "earlyTermination")
}

// rebuildPrice regroups the valuation date and time elements into the
// equityValuation structure. dateName selects the single or plural date
// element of the source price.
func (c *equityFxUpgrade) rebuildPrice(el, clone *dom.Element, dateName string) {
	c.copyFirst(el, clone, "commission", "determinationMethod", "amountRelativeTo",
		"grossPrice", "netPrice", "accruedInterestPrice", "fxConversion")
	valuation := dom.NewElement(c.target.namespace, "equityValuation")
	c.copyFirst(el, valuation, dateName, "valuationTimeType", "valuationTime")
	clone.AppendChild(valuation)
}

// rebuildExtraordinaryEvents inserts the failureToDeliver element
// sourced from the sibling equityExercise flag.
func (c *equityFxUpgrade) rebuildExtraordinaryEvents(el, clone *dom.Element) {
	c.copyFirst(el, clone, "mergerEvents")
	owner := el.Parent()
	if owner == nil {
		owner = el
	}
	clone.AppendChild(c.failureToDeliver(owner))
	c.copyFirst(el, clone, "nationalisationOrInsolvency", "delisting")
}

// failureToDeliver builds the 4-1 failureToDeliver element from the
// owner's equityExercise flag, defaulting to false.
func (c *equityFxUpgrade) failureToDeliver(owner *dom.Element) *dom.Element {
	failure := dom.NewElement(c.target.namespace, "failureToDeliver")
	if flag := owner.Path("equityExercise", "failureToDeliverApplicable"); flag != nil {
		failure.SetText(flag.InnerText())
	} else {
		failure.SetText("false")
	}
	return failure
}
