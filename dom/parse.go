package dom

import (
	"encoding/xml"
	"fmt"
	"io"
	"unicode"
)

// Parse builds a document tree from XML input. Namespace declarations
// are resolved into element and attribute namespace URIs and are not
// retained as attributes; prefixes are re-derived on output.
func Parse(r io.Reader) (*Document, error) {
	decoder := xml.NewDecoder(r)

	doc := &Document{}
	var stack []*Element
	rootClosed := false

	for {
		tok, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			if rootClosed {
				return nil, fmt.Errorf("unexpected element %s after document end", t.Name.Local)
			}
			elem := NewElement(t.Name.Space, t.Name.Local)
			for _, a := range t.Attr {
				if isNamespaceDecl(a.Name) {
					continue
				}
				elem.SetAttrNS(a.Name.Space, a.Name.Local, a.Value)
			}
			if len(stack) > 0 {
				stack[len(stack)-1].AppendChild(elem)
			} else {
				doc.root = elem
			}
			stack = append(stack, elem)

		case xml.EndElement:
			if len(stack) > 0 {
				stack = stack[:len(stack)-1]
				if len(stack) == 0 && doc.root != nil {
					rootClosed = true
				}
			}

		case xml.CharData:
			if len(stack) == 0 {
				if !isIgnorableOutsideRoot(string(t)) {
					return nil, fmt.Errorf("unexpected character data outside root element")
				}
				continue
			}
			stack[len(stack)-1].AppendChild(&Text{Data: string(t)})

		case xml.Comment:
			appendOutOfLine(doc, stack, rootClosed, &Comment{Data: string(t)})

		case xml.ProcInst:
			if t.Target == "xml" {
				continue
			}
			appendOutOfLine(doc, stack, rootClosed, &ProcInst{Target: t.Target, Data: string(t.Inst)})
		}
	}

	if doc.root == nil {
		return nil, io.ErrUnexpectedEOF
	}
	return doc, nil
}

func appendOutOfLine(doc *Document, stack []*Element, rootClosed bool, n Node) {
	switch {
	case len(stack) > 0:
		stack[len(stack)-1].AppendChild(n)
	case rootClosed:
		doc.epilog = append(doc.epilog, n)
	default:
		doc.prolog = append(doc.prolog, n)
	}
}

func isNamespaceDecl(name xml.Name) bool {
	return name.Space == "xmlns" || (name.Space == "" && name.Local == "xmlns")
}

func isIgnorableOutsideRoot(data string) bool {
	for _, r := range data {
		if r == '\uFEFF' {
			continue
		}
		if !unicode.IsSpace(r) {
			return false
		}
	}
	return true
}
