package fpml

import "sync"

// Namespaces of the built-in releases. The 5-x releases share one
// namespace per view and carry the version in the fpmlVersion root
// attribute instead.
const (
	namespaceR1           = "http://www.fpml.org/spec/fpml-1-0"
	namespaceR2           = "http://www.fpml.org/spec/fpml-2-0"
	namespaceR3           = "http://www.fpml.org/spec/fpml-3-0"
	namespaceR4Prefix     = "http://www.fpml.org/2005/FpML-"
	namespaceConfirmation = "http://www.fpml.org/FpML-5/confirmation"
	namespaceReporting    = "http://www.fpml.org/FpML-5/reporting"
)

func dtdEraSchemeDefaults() map[string]string {
	return map[string]string{
		"averagingMethodSchemeDefault":       "http://www.fpml.org/spec/2000/averaging-method-1-0",
		"businessCenterSchemeDefault":        "http://www.fpml.org/spec/2000/business-center-1-0",
		"businessDayConventionSchemeDefault": "http://www.fpml.org/spec/2000/business-day-convention-1-0",
		"compoundingMethodSchemeDefault":     "http://www.fpml.org/spec/2000/compounding-method-1-0",
		"currencySchemeDefault":              "http://www.fpml.org/ext/iso4217",
		"dayCountFractionSchemeDefault":      "http://www.fpml.org/spec/2000/day-count-fraction-1-0",
		"floatingRateIndexSchemeDefault":     "http://www.fpml.org/ext/isda-2000-definitions",
		"partyIdSchemeDefault":               "http://www.fpml.org/ext/iso9362",
	}
}

func r3SchemeDefaults() map[string]string {
	return map[string]string{
		"averagingMethodSchemeDefault":       "http://www.fpml.org/spec/2001/averaging-method-1-0",
		"businessCenterSchemeDefault":        "http://www.fpml.org/spec/2001/business-center-1-0",
		"businessDayConventionSchemeDefault": "http://www.fpml.org/spec/2001/business-day-convention-1-0",
		"compoundingMethodSchemeDefault":     "http://www.fpml.org/spec/2001/compounding-method-1-0",
		"currencySchemeDefault":              "http://www.fpml.org/ext/iso4217-2001-08-15",
		"dayCountFractionSchemeDefault":      "http://www.fpml.org/spec/2001/day-count-fraction-1-0",
		"floatingRateIndexSchemeDefault":     "http://www.fpml.org/ext/isda-2000-definitions",
		"partyIdSchemeDefault":               "http://www.fpml.org/ext/iso9362",
	}
}

var confirmationRoots = []string{
	"dataDocument", "requestConfirmation", "executionNotification", "executionAdvice",
}

var reportingRoots = []string{"dataDocument", "valuationReport"}

// DefaultCatalog returns the built-in release descriptors, oldest
// first.
func DefaultCatalog() []*Release {
	releases := []*Release{
		NewRelease("1-0", namespaceR1, WithSchemeDefaults(dtdEraSchemeDefaults())),
		NewRelease("2-0", namespaceR2, WithSchemeDefaults(dtdEraSchemeDefaults())),
		NewRelease("3-0", namespaceR3, WithSchemeDefaults(r3SchemeDefaults())),
	}
	for _, v := range []string{"4-0", "4-1", "4-2", "4-3", "4-4", "4-5", "4-6", "4-7", "4-8", "4-9", "4-10"} {
		releases = append(releases, NewRelease(v, namespaceR4Prefix+v))
	}
	for _, v := range []string{"5-0", "5-1", "5-2", "5-3", "5-4", "5-5", "5-6",
		"5-7", "5-8", "5-9", "5-10", "5-11", "5-12", "5-13"} {
		releases = append(releases, NewRelease(v, namespaceConfirmation,
			WithVariant(VariantConfirmation),
			WithRootElements(confirmationRoots...),
			WithVersionAttribute("fpmlVersion")))
	}
	for _, v := range []string{"5-0", "5-1"} {
		releases = append(releases, NewRelease(v, namespaceReporting,
			WithVariant(VariantReporting),
			WithRootElements(reportingRoots...),
			WithVersionAttribute("fpmlVersion")))
	}
	return releases
}

// conversionSpec names a standard conversion by its endpoints; the
// build function is only invoked when both endpoints exist in the
// registry, so a trimmed catalog simply lacks those edges.
type conversionSpec struct {
	sourceVersion string
	sourceVariant Variant
	targetVersion string
	targetVariant Variant
	build         func(source, target *Release) Conversion
}

func buildPassThrough(source, target *Release) Conversion {
	return NewPassThrough(source, target, "")
}

func standardConversionSpecs() []conversionSpec {
	specs := []conversionSpec{
		{"1-0", VariantNone, "2-0", VariantNone,
			func(s, t *Release) Conversion { return NewPassThrough(s, t, "FpML") }},
		{"2-0", VariantNone, "3-0", VariantNone,
			func(s, t *Release) Conversion { return &r2ToR3{direct{s, t}} }},
		{"3-0", VariantNone, "4-0", VariantNone,
			func(s, t *Release) Conversion { return &r3ToR4{direct{s, t}} }},
		{"4-0", VariantNone, "4-1", VariantNone,
			func(s, t *Release) Conversion { return &equityFxUpgrade{direct{s, t}} }},
		{"4-1", VariantNone, "4-2", VariantNone,
			func(s, t *Release) Conversion { return &equityFxUpgrade{direct{s, t}} }},
	}
	for _, pair := range [][2]string{
		{"4-2", "4-3"}, {"4-3", "4-4"}, {"4-4", "4-5"}, {"4-5", "4-6"},
		{"4-6", "4-7"}, {"4-7", "4-8"}, {"4-8", "4-9"}, {"4-9", "4-10"},
	} {
		specs = append(specs, conversionSpec{pair[0], VariantNone, pair[1], VariantNone, buildPassThrough})
	}
	specs = append(specs, conversionSpec{"4-10", VariantNone, "5-0", VariantConfirmation, buildPassThrough})
	for _, pair := range [][2]string{
		{"5-0", "5-1"}, {"5-1", "5-2"}, {"5-2", "5-3"}, {"5-3", "5-4"},
		{"5-4", "5-5"}, {"5-5", "5-6"}, {"5-6", "5-7"}, {"5-7", "5-8"},
		{"5-8", "5-9"}, {"5-9", "5-10"}, {"5-10", "5-11"}, {"5-11", "5-12"},
		{"5-12", "5-13"},
	} {
		specs = append(specs, conversionSpec{pair[0], VariantConfirmation, pair[1], VariantConfirmation, buildPassThrough})
	}
	specs = append(specs, conversionSpec{"5-0", VariantReporting, "5-1", VariantReporting, buildPassThrough})
	return specs
}

// RegisterStandardConversions registers the built-in conversion chain
// for every release pair whose endpoints the registry knows. Pairs with
// a missing endpoint are skipped; the resulting gap surfaces as a
// no-path error at conversion time.
func (g *Registry) RegisterStandardConversions() error {
	for _, spec := range standardConversionSpecs() {
		source := g.Release(spec.sourceVersion, spec.sourceVariant)
		target := g.Release(spec.targetVersion, spec.targetVariant)
		if source == nil || target == nil {
			continue
		}
		if err := g.Register(spec.build(source, target)); err != nil {
			return err
		}
	}
	return nil
}

var (
	defaultRegistryOnce sync.Once
	defaultRegistry     *Registry
)

// DefaultRegistry returns the shared registry over the built-in
// catalog with all standard conversions registered.
func DefaultRegistry() *Registry {
	defaultRegistryOnce.Do(func() {
		defaultRegistry = NewRegistry(DefaultCatalog()...)
		if err := defaultRegistry.RegisterStandardConversions(); err != nil {
			panic("fpml: building default registry: " + err.Error())
		}
	})
	return defaultRegistry
}
