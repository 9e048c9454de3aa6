package fpml

import (
	"strings"

	"github.com/gpan-isda/fpml/dom"
)

// Conversion transforms documents from one release into another. A
// conversion never mutates its input document.
type Conversion interface {
	SourceRelease() *Release
	TargetRelease() *Release
	Convert(source *dom.Document, helper *Helper) (*dom.Document, error)
}

// QuantoTerms carries the currency pair and quoting basis of a quanto
// feature, values implied by business context rather than present in the
// source document.
type QuantoTerms struct {
	Currency1  string
	Currency2  string
	QuoteBasis string
}

// Helper supplies externally derived values a conversion step cannot
// compute from the source document alone. A nil func means the caller
// does not provide that capability; a step that needs it fails rather
// than guessing.
type Helper struct {
	// ReferenceCurrency resolves the reference currency for an fx
	// feature context element.
	ReferenceCurrency func(context *dom.Element) (string, error)
	// QuantoTerms resolves the currency pair and quoting basis for a
	// quanto feature context element.
	QuantoTerms func(context *dom.Element) (QuantoTerms, error)
}

// direct carries the release pair of a registered conversion.
type direct struct {
	source *Release
	target *Release
}

// SourceRelease returns the release the conversion reads.
func (d direct) SourceRelease() *Release { return d.source }

// TargetRelease returns the release the conversion produces.
func (d direct) TargetRelease() *Release { return d.target }

// newTargetDocument builds the output document for a conversion step.
// The root name is resolved from the source document unless forced, and
// the source root's xsi:type is carried over when the new root has none.
func newTargetDocument(target *Release, source *dom.Document, rootName string) (*dom.Document, error) {
	oldRoot := source.Root()
	if rootName == "" {
		rootName = resolveRootName(target, oldRoot)
	}
	doc, err := target.NewDocument(rootName)
	if err != nil {
		return nil, err
	}
	newRoot := doc.Root()
	if oldType := oldRoot.AttrNS(dom.XSINamespace, "type"); oldType != "" {
		if newRoot.AttrNS(dom.XSINamespace, "type") == "" {
			newRoot.SetAttrNS(dom.XSINamespace, "type", oldType)
		}
	}
	return doc, nil
}

// resolveRootName keeps the source root when the target release still
// declares it, avoiding the generic FpML wrapper where possible.
func resolveRootName(target *Release, oldRoot *dom.Element) string {
	if oldRoot != nil && oldRoot.Local() != "FpML" && target.HasRootElement(oldRoot.Local()) {
		return oldRoot.Local()
	}
	return ""
}

// transferSchemeDefaults copies the root's scheme-default attributes,
// remapping values that equal the source release's default URI to the
// target's default. Author-customized values pass through untouched.
func transferSchemeDefaults(oldRoot, newRoot *dom.Element, source, target *Release) {
	for _, a := range oldRoot.Attrs() {
		if a.Space != "" || !strings.HasSuffix(a.Local, "SchemeDefault") {
			continue
		}
		value := a.Value
		if source.SchemeDefaults().DefaultURIForAttribute(a.Local) == value {
			if mapped := target.SchemeDefaults().DefaultURIForAttribute(a.Local); mapped != "" {
				value = mapped
			}
		}
		newRoot.SetAttr(a.Local, value)
	}
}
