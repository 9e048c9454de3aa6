package dom

import (
	"encoding/xml"
	"fmt"
	"io"
	"strings"
)

// wellKnownPrefixes are emitted for attribute namespaces that have a
// conventional prefix; other namespaces are assigned ns1, ns2, ...
var wellKnownPrefixes = map[string]string{
	XSINamespace: "xsi",
}

// WriteTo serializes the document as UTF-8 XML. Element namespaces are
// emitted as default-namespace declarations scoped to where they change;
// attribute namespaces are bound to prefixes declared on the root.
func (d *Document) WriteTo(w io.Writer) error {
	if d.root == nil {
		return fmt.Errorf("document has no root element")
	}
	sw := &treeWriter{w: w, prefixes: map[string]string{XMLNamespace: "xml"}}
	sw.collectAttrNamespaces(d.root)
	if err := sw.write("<?xml version=\"1.0\" encoding=\"UTF-8\"?>\n"); err != nil {
		return err
	}
	for _, n := range d.prolog {
		if err := sw.writeOutOfLine(n); err != nil {
			return err
		}
	}
	if err := sw.writeElement(d.root, "", true); err != nil {
		return err
	}
	for _, n := range d.epilog {
		if err := sw.writeOutOfLine(n); err != nil {
			return err
		}
	}
	return sw.write("\n")
}

// String serializes the document to a string.
func (d *Document) String() string {
	var sb strings.Builder
	if err := d.WriteTo(&sb); err != nil {
		return ""
	}
	return sb.String()
}

type treeWriter struct {
	w        io.Writer
	prefixes map[string]string // attribute namespace URI -> prefix
	next     int
}

func (t *treeWriter) collectAttrNamespaces(e *Element) {
	for _, a := range e.attrs {
		if a.Space == "" || a.Space == XMLNamespace {
			continue
		}
		if _, ok := t.prefixes[a.Space]; ok {
			continue
		}
		if p, ok := wellKnownPrefixes[a.Space]; ok {
			t.prefixes[a.Space] = p
			continue
		}
		t.next++
		t.prefixes[a.Space] = fmt.Sprintf("ns%d", t.next)
	}
	for _, c := range e.Children() {
		t.collectAttrNamespaces(c)
	}
}

func (t *treeWriter) writeElement(e *Element, inheritedNS string, root bool) error {
	if err := t.write("<" + e.local); err != nil {
		return err
	}
	if e.space != inheritedNS {
		if err := t.writeAttr("xmlns", e.space); err != nil {
			return err
		}
	}
	if root {
		for _, pp := range sortedPrefixes(t.prefixes) {
			if pp.uri == XMLNamespace {
				continue
			}
			if err := t.writeAttr("xmlns:"+pp.prefix, pp.uri); err != nil {
				return err
			}
		}
	}
	for _, a := range e.attrs {
		name := a.Local
		if a.Space == XMLNamespace {
			name = "xml:" + a.Local
		} else if a.Space != "" {
			name = t.prefixes[a.Space] + ":" + a.Local
		}
		if err := t.writeAttr(name, a.Value); err != nil {
			return err
		}
	}
	if len(e.nodes) == 0 {
		return t.write("/>")
	}
	if err := t.write(">"); err != nil {
		return err
	}
	for _, n := range e.nodes {
		var err error
		switch c := n.(type) {
		case *Element:
			err = t.writeElement(c, e.space, false)
		case *Text:
			err = t.writeEscaped(c.Data)
		case *Comment:
			err = t.write("<!--" + c.Data + "-->")
		case *ProcInst:
			err = t.write("<?" + c.Target + " " + c.Data + "?>")
		}
		if err != nil {
			return err
		}
	}
	return t.write("</" + e.local + ">")
}

func (t *treeWriter) writeOutOfLine(n Node) error {
	switch c := n.(type) {
	case *Comment:
		return t.write("<!--" + c.Data + "-->\n")
	case *ProcInst:
		return t.write("<?" + c.Target + " " + c.Data + "?>\n")
	}
	return nil
}

func (t *treeWriter) writeAttr(name, value string) error {
	if err := t.write(" " + name + "=\""); err != nil {
		return err
	}
	if err := t.writeEscaped(value); err != nil {
		return err
	}
	return t.write("\"")
}

func (t *treeWriter) writeEscaped(s string) error {
	return xml.EscapeText(t.w, []byte(s))
}

func (t *treeWriter) write(s string) error {
	_, err := io.WriteString(t.w, s)
	return err
}

type prefixPair struct {
	uri    string
	prefix string
}

// sortedPrefixes returns prefix bindings ordered by prefix so output is
// deterministic.
func sortedPrefixes(m map[string]string) []prefixPair {
	out := make([]prefixPair, 0, len(m))
	for uri, prefix := range m {
		out = append(out, prefixPair{uri: uri, prefix: prefix})
	}
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && out[j].prefix < out[j-1].prefix; j-- {
			out[j], out[j-1] = out[j-1], out[j]
		}
	}
	return out
}
