package fpml

import (
	"strings"

	"github.com/gpan-isda/fpml/dom"
	fpmlerrors "github.com/gpan-isda/fpml/errors"
)

// Variant distinguishes document views that share a version label.
type Variant int

const (
	// VariantNone marks releases with a single document view.
	VariantNone Variant = iota
	// VariantConfirmation marks the confirmation view of a release.
	VariantConfirmation
	// VariantReporting marks the reporting view of a release.
	VariantReporting
)

// String returns the catalog spelling of the variant.
func (v Variant) String() string {
	switch v {
	case VariantConfirmation:
		return "confirmation"
	case VariantReporting:
		return "reporting"
	default:
		return ""
	}
}

// ParseVariant resolves a catalog variant label. The empty string is
// VariantNone.
func ParseVariant(s string) (Variant, bool) {
	switch s {
	case "":
		return VariantNone, true
	case "confirmation":
		return VariantConfirmation, true
	case "reporting":
		return VariantReporting, true
	}
	return VariantNone, false
}

// SchemeDefaults maps scheme-default attribute local names (for example
// "currencySchemeDefault") to the classification URI a release assumes
// when a document does not override it.
type SchemeDefaults struct {
	byAttribute map[string]string
}

// NewSchemeDefaults builds a table from attribute local name to default
// URI. The scheme attribute for each entry is derived by dropping the
// "Default" suffix, so "currencySchemeDefault" answers for
// "currencyScheme".
func NewSchemeDefaults(defaults map[string]string) SchemeDefaults {
	table := make(map[string]string, len(defaults))
	for name, uri := range defaults {
		table[name] = uri
	}
	return SchemeDefaults{byAttribute: table}
}

// DefaultURIForAttribute returns the default classification URI assumed
// for a scheme-default attribute, or the empty string.
func (s SchemeDefaults) DefaultURIForAttribute(name string) string {
	return s.byAttribute[name]
}

// DefaultAttributeForScheme returns the scheme-default attribute that
// provides the default for a scheme attribute such as "currencyScheme",
// or the empty string when the release defines none.
func (s SchemeDefaults) DefaultAttributeForScheme(scheme string) string {
	if !strings.HasSuffix(scheme, "Scheme") {
		return ""
	}
	name := scheme + "Default"
	if _, ok := s.byAttribute[name]; ok {
		return name
	}
	return ""
}

// Release describes one version of the schema family: its namespace,
// legal root elements and scheme defaults. Releases are immutable once
// constructed.
type Release struct {
	version        string
	variant        Variant
	namespace      string
	rootElements   []string
	schemeDefaults SchemeDefaults
	versionAttr    string
}

// ReleaseOption configures a Release at construction.
type ReleaseOption func(*Release)

// WithVariant sets the document view of the release.
func WithVariant(v Variant) ReleaseOption {
	return func(r *Release) { r.variant = v }
}

// WithRootElements sets the legal root element local names.
func WithRootElements(names ...string) ReleaseOption {
	return func(r *Release) { r.rootElements = names }
}

// WithSchemeDefaults sets the release's scheme-default table.
func WithSchemeDefaults(defaults map[string]string) ReleaseOption {
	return func(r *Release) { r.schemeDefaults = NewSchemeDefaults(defaults) }
}

// WithVersionAttribute names the root attribute that carries the version
// for releases sharing one namespace across versions (FpML 5.x uses
// "fpmlVersion").
func WithVersionAttribute(name string) ReleaseOption {
	return func(r *Release) { r.versionAttr = name }
}

// NewRelease constructs an immutable release descriptor.
func NewRelease(version, namespace string, opts ...ReleaseOption) *Release {
	r := &Release{
		version:   version,
		namespace: namespace,
	}
	for _, opt := range opts {
		opt(r)
	}
	if len(r.rootElements) == 0 {
		r.rootElements = []string{"FpML"}
	}
	return r
}

// Version returns the release's version label.
func (r *Release) Version() string { return r.version }

// Variant returns the release's document view.
func (r *Release) Variant() Variant { return r.variant }

// Namespace returns the release's namespace URI.
func (r *Release) Namespace() string { return r.namespace }

// RootElements returns a copy of the legal root element names.
func (r *Release) RootElements() []string {
	out := make([]string, len(r.rootElements))
	copy(out, r.rootElements)
	return out
}

// HasRootElement reports whether name is a legal root for the release.
func (r *Release) HasRootElement(name string) bool {
	for _, root := range r.rootElements {
		if root == name {
			return true
		}
	}
	return false
}

// SchemeDefaults returns the release's scheme-default table.
func (r *Release) SchemeDefaults() SchemeDefaults { return r.schemeDefaults }

// VersionAttribute returns the root attribute naming the version within
// a shared namespace, or the empty string.
func (r *Release) VersionAttribute() string { return r.versionAttr }

// String returns "version" or "version (variant)".
func (r *Release) String() string {
	if r.variant == VariantNone {
		return r.version
	}
	return r.version + " (" + r.variant.String() + ")"
}

// NewDocument builds an empty document conforming to the release with
// the given root element. An empty root selects the preferred root. The
// root must be legal for the release.
func (r *Release) NewDocument(root string) (*dom.Document, error) {
	if root == "" {
		root = r.preferredRoot()
	}
	if !r.HasRootElement(root) {
		return nil, fpmlerrors.TargetConstruction(r.version, []string{root})
	}
	el := dom.NewElement(r.namespace, root)
	if r.versionAttr != "" {
		el.SetAttr(r.versionAttr, r.version)
	}
	return dom.NewDocument(el), nil
}

// preferredRoot picks the root used when the source document's root has
// no counterpart: a data-document root first, then FpML, then the first
// declared root.
func (r *Release) preferredRoot() string {
	for _, name := range r.rootElements {
		if strings.EqualFold(name, "dataDocument") {
			return name
		}
	}
	for _, name := range r.rootElements {
		if name == "FpML" {
			return name
		}
	}
	return r.rootElements[0]
}
