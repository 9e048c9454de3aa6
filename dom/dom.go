// Package dom provides a minimal mutable, namespace-aware document tree
// for FpML instance documents. Elements carry a namespace URI and local
// name; attributes are namespace-qualified and unique per element.
package dom

import "strings"

// Kind classifies nodes in the document tree.
type Kind int

const (
	// KindElement identifies an element node.
	KindElement Kind = iota + 1
	// KindText identifies a character data node.
	KindText
	// KindComment identifies a comment node.
	KindComment
	// KindProcInst identifies a processing instruction node.
	KindProcInst
)

// Common XML namespaces.
const (
	// XMLNamespace is the XML namespace URI.
	XMLNamespace = "http://www.w3.org/XML/1998/namespace"
	// XSINamespace is the XML Schema instance namespace URI.
	XSINamespace = "http://www.w3.org/2001/XMLSchema-instance"
)

// Node is implemented by every member of a document tree.
type Node interface {
	Kind() Kind
}

// Text is a character data node.
type Text struct {
	Data string
}

// Kind returns KindText.
func (*Text) Kind() Kind { return KindText }

// Comment is a comment node.
type Comment struct {
	Data string
}

// Kind returns KindComment.
func (*Comment) Kind() Kind { return KindComment }

// ProcInst is a processing instruction node.
type ProcInst struct {
	Target string
	Data   string
}

// Kind returns KindProcInst.
func (*ProcInst) Kind() Kind { return KindProcInst }

// Attr is a namespace-qualified attribute. Space is the namespace URI,
// empty for unqualified attributes.
type Attr struct {
	Space string
	Local string
	Value string
}

// Element is an element node with an ordered attribute set and ordered
// child sequence.
type Element struct {
	space  string
	local  string
	attrs  []Attr
	nodes  []Node
	parent *Element
}

// NewElement returns a detached element in the given namespace. An empty
// space places the element in no namespace.
func NewElement(space, local string) *Element {
	return &Element{space: space, local: local}
}

// Kind returns KindElement.
func (*Element) Kind() Kind { return KindElement }

// Space returns the element's namespace URI.
func (e *Element) Space() string { return e.space }

// Local returns the element's local name.
func (e *Element) Local() string { return e.local }

// Parent returns the parent element, nil for a detached element or the
// document root.
func (e *Element) Parent() *Element { return e.parent }

// Attrs returns a copy of the element's attributes in document order.
func (e *Element) Attrs() []Attr {
	out := make([]Attr, len(e.attrs))
	copy(out, e.attrs)
	return out
}

// Attr returns the value of the unqualified attribute with the given
// local name, or the empty string.
func (e *Element) Attr(local string) string {
	return e.AttrNS("", local)
}

// AttrNS returns the value of the attribute with the given namespace and
// local name, or the empty string.
func (e *Element) AttrNS(space, local string) string {
	for _, a := range e.attrs {
		if a.Space == space && a.Local == local {
			return a.Value
		}
	}
	return ""
}

// HasAttr reports whether the unqualified attribute is present.
func (e *Element) HasAttr(local string) bool {
	for _, a := range e.attrs {
		if a.Space == "" && a.Local == local {
			return true
		}
	}
	return false
}

// SetAttr sets an unqualified attribute, replacing any existing value.
func (e *Element) SetAttr(local, value string) {
	e.SetAttrNS("", local, value)
}

// SetAttrNS sets a namespace-qualified attribute, replacing any existing
// value for the same namespace and local name.
func (e *Element) SetAttrNS(space, local, value string) {
	for i, a := range e.attrs {
		if a.Space == space && a.Local == local {
			e.attrs[i].Value = value
			return
		}
	}
	e.attrs = append(e.attrs, Attr{Space: space, Local: local, Value: value})
}

// RemoveAttr removes the unqualified attribute with the given local name.
func (e *Element) RemoveAttr(local string) {
	for i, a := range e.attrs {
		if a.Space == "" && a.Local == local {
			e.attrs = append(e.attrs[:i], e.attrs[i+1:]...)
			return
		}
	}
}

// Nodes returns a copy of the child node sequence.
func (e *Element) Nodes() []Node {
	out := make([]Node, len(e.nodes))
	copy(out, e.nodes)
	return out
}

// Children returns the child elements in document order.
func (e *Element) Children() []*Element {
	var out []*Element
	for _, n := range e.nodes {
		if c, ok := n.(*Element); ok {
			out = append(out, c)
		}
	}
	return out
}

// AppendChild appends a node. Element children are re-parented; a node
// must not be appended while still attached elsewhere.
func (e *Element) AppendChild(n Node) {
	if c, ok := n.(*Element); ok {
		c.parent = e
	}
	e.nodes = append(e.nodes, n)
}

// Child returns the first child element with the given local name,
// regardless of namespace, or nil.
func (e *Element) Child(local string) *Element {
	for _, c := range e.Children() {
		if c.local == local {
			return c
		}
	}
	return nil
}

// Path follows a chain of first-child lookups and returns the element it
// ends on, or nil if any step is missing.
func (e *Element) Path(locals ...string) *Element {
	cur := e
	for _, name := range locals {
		if cur = cur.Child(name); cur == nil {
			return nil
		}
	}
	return cur
}

// Descendants returns all descendant elements with the given local name
// in document order, excluding the element itself.
func (e *Element) Descendants(local string) []*Element {
	var out []*Element
	var walk func(*Element)
	walk = func(el *Element) {
		for _, c := range el.Children() {
			if c.local == local {
				out = append(out, c)
			}
			walk(c)
		}
	}
	walk(e)
	return out
}

// Text returns the concatenated character data directly under the
// element.
func (e *Element) Text() string {
	var sb strings.Builder
	for _, n := range e.nodes {
		if t, ok := n.(*Text); ok {
			sb.WriteString(t.Data)
		}
	}
	return sb.String()
}

// InnerText returns the concatenated character data of the whole
// subtree.
func (e *Element) InnerText() string {
	var sb strings.Builder
	var walk func(*Element)
	walk = func(el *Element) {
		for _, n := range el.nodes {
			switch t := n.(type) {
			case *Text:
				sb.WriteString(t.Data)
			case *Element:
				walk(t)
			}
		}
	}
	walk(e)
	return sb.String()
}

// SetText replaces the element's entire content with a single text node.
func (e *Element) SetText(s string) {
	e.nodes = e.nodes[:0]
	e.nodes = append(e.nodes, &Text{Data: s})
}

// Location returns the slash-separated local-name path from the root to
// the element, for error reporting.
func (e *Element) Location() string {
	var names []string
	for cur := e; cur != nil; cur = cur.parent {
		names = append(names, cur.local)
	}
	for i, j := 0, len(names)-1; i < j; i, j = i+1, j-1 {
		names[i], names[j] = names[j], names[i]
	}
	return strings.Join(names, "/")
}

// Document is an ordered tree with a single root element plus any
// comments and processing instructions outside it.
type Document struct {
	prolog []Node
	root   *Element
	epilog []Node
}

// NewDocument returns a document owning the given root element.
func NewDocument(root *Element) *Document {
	return &Document{root: root}
}

// Root returns the document element, nil for an empty document.
func (d *Document) Root() *Element { return d.root }

// SetRoot replaces the document element.
func (d *Document) SetRoot(root *Element) { d.root = root }

// ElementByID returns the element carrying an unqualified "id" attribute
// with the given value, or nil. IDs are unique within a document.
func (d *Document) ElementByID(id string) *Element {
	if d.root == nil || id == "" {
		return nil
	}
	var find func(*Element) *Element
	find = func(el *Element) *Element {
		if el.Attr("id") == id {
			return el
		}
		for _, c := range el.Children() {
			if hit := find(c); hit != nil {
				return hit
			}
		}
		return nil
	}
	return find(d.root)
}
