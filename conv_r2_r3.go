package fpml

import (
	"strings"

	"github.com/gpan-isda/fpml/dom"
)

// r2ToR3 upgrades 2-0 documents to 3-0. The releases differ in their
// scheme URI defaults and in where party definitions live: parties move
// from their original positions to the end of the document element.
type r2ToR3 struct {
	direct
}

func (c *r2ToR3) Convert(source *dom.Document, _ *Helper) (*dom.Document, error) {
	doc, err := newTargetDocument(c.target, source, "")
	if err != nil {
		return nil, err
	}
	oldRoot, newRoot := source.Root(), doc.Root()
	transferSchemeDefaults(oldRoot, newRoot, c.source, c.target)

	var parties []*dom.Element
	for _, child := range oldRoot.Nodes() {
		el, ok := child.(*dom.Element)
		if ok && el.Local() == "party" {
			parties = append(parties, el)
			continue
		}
		c.transcribe(child, newRoot)
	}
	for _, p := range parties {
		c.transcribe(p, newRoot)
	}
	return doc, nil
}

func (c *r2ToR3) transcribe(src dom.Node, parent *dom.Element) {
	el, ok := src.(*dom.Element)
	if !ok {
		copyTree(src, parent, c.source.namespace, c.target.namespace)
		return
	}

	space := el.Space()
	if space == c.source.namespace {
		space = c.target.namespace
	}
	clone := dom.NewElement(space, el.Local())
	for _, a := range el.Attrs() {
		switch {
		case a.Space == "" && (a.Local == "type" || a.Local == "base"):
			// Dropped in 3-0; content typing moved into the schema.
		case a.Space == "" && a.Local == "href":
			clone.SetAttr("href", strings.TrimPrefix(a.Value, "#"))
		case a.Space == "" && strings.HasSuffix(a.Local, "Scheme"):
			clone.SetAttr(a.Local, c.remapSchemeURI(a.Local, a.Value))
		default:
			clone.SetAttrNS(a.Space, a.Local, a.Value)
		}
	}
	parent.AppendChild(clone)
	for _, child := range el.Nodes() {
		c.transcribe(child, clone)
	}
}

// remapSchemeURI rewrites a scheme URI equal to the 2-0 default for that
// scheme into the 3-0 default. Customized URIs pass through untouched.
func (c *r2ToR3) remapSchemeURI(scheme, value string) string {
	name := c.source.schemeDefaults.DefaultAttributeForScheme(scheme)
	if name == "" || c.source.schemeDefaults.DefaultURIForAttribute(name) != value {
		return value
	}
	if mapped := c.target.schemeDefaults.DefaultURIForAttribute(name); mapped != "" {
		return mapped
	}
	return value
}
