package dom

import (
	"strings"
	"testing"
)

func TestParseResolvesNamespaces(t *testing.T) {
	input := `<?xml version="1.0"?>` +
		`<FpML xmlns="urn:fpml" xmlns:xsi="http://www.w3.org/2001/XMLSchema-instance" xsi:type="DataDocument">` +
		`<trade><tradeHeader/></trade>` +
		`</FpML>`

	doc, err := Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	root := doc.Root()
	if root.Space() != "urn:fpml" || root.Local() != "FpML" {
		t.Fatalf("root = {%s}%s, want {urn:fpml}FpML", root.Space(), root.Local())
	}
	if got := root.AttrNS(XSINamespace, "type"); got != "DataDocument" {
		t.Fatalf("xsi:type = %q, want %q", got, "DataDocument")
	}
	if trade := root.Child("trade"); trade == nil || trade.Space() != "urn:fpml" {
		t.Fatalf("trade child not parsed into root namespace: %v", trade)
	}
}

func TestParseDropsNamespaceDeclarations(t *testing.T) {
	input := `<root xmlns="urn:a" xmlns:x="urn:b" x:attr="v"/>`

	doc, err := Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	root := doc.Root()
	attrs := root.Attrs()
	if len(attrs) != 1 {
		t.Fatalf("len(Attrs()) = %d, want only the qualified attribute, got %v", len(attrs), attrs)
	}
	if attrs[0].Space != "urn:b" || attrs[0].Local != "attr" || attrs[0].Value != "v" {
		t.Fatalf("attr = %+v, want {urn:b attr v}", attrs[0])
	}
}

func TestParseForeignNamespaceChild(t *testing.T) {
	input := `<root xmlns="urn:a"><child xmlns="urn:other"/></root>`

	doc, err := Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	child := doc.Root().Child("child")
	if child == nil || child.Space() != "urn:other" {
		t.Fatalf("foreign child = %v, want element in urn:other", child)
	}
}

func TestParseKeepsCommentsAndProcInsts(t *testing.T) {
	input := `<!-- prolog --><root xmlns="urn:a"><!-- inner --><?target data?></root><!-- epilog -->`

	doc, err := Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	nodes := doc.Root().Nodes()
	if len(nodes) != 2 {
		t.Fatalf("len(root nodes) = %d, want comment and proc inst", len(nodes))
	}
	if c, ok := nodes[0].(*Comment); !ok || c.Data != " inner " {
		t.Fatalf("nodes[0] = %#v, want inner comment", nodes[0])
	}
	if pi, ok := nodes[1].(*ProcInst); !ok || pi.Target != "target" {
		t.Fatalf("nodes[1] = %#v, want processing instruction", nodes[1])
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{name: "empty input", input: ""},
		{name: "text outside root", input: `<root/>text`},
		{name: "second root", input: `<root/><root/>`},
		{name: "unbalanced", input: `<root><child></root>`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Parse(strings.NewReader(tt.input)); err == nil {
				t.Fatal("Parse() error = nil, want error")
			}
		})
	}
}
