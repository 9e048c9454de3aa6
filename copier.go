package fpml

import "github.com/gpan-isda/fpml/dom"

// copyTree appends a copy of src under parent, recreating elements that
// belong to oldNS in newNS. Elements of any other namespace keep their
// own namespace; attributes always keep theirs. Text, comments and
// processing instructions are imported unchanged. The source tree is
// never mutated.
func copyTree(src dom.Node, parent *dom.Element, oldNS, newNS string) {
	switch n := src.(type) {
	case *dom.Element:
		space := n.Space()
		if space == oldNS {
			space = newNS
		}
		clone := dom.NewElement(space, n.Local())
		for _, a := range n.Attrs() {
			clone.SetAttrNS(a.Space, a.Local, a.Value)
		}
		parent.AppendChild(clone)
		for _, child := range n.Nodes() {
			copyTree(child, clone, oldNS, newNS)
		}
	case *dom.Text:
		parent.AppendChild(&dom.Text{Data: n.Data})
	case *dom.Comment:
		parent.AppendChild(&dom.Comment{Data: n.Data})
	case *dom.ProcInst:
		parent.AppendChild(&dom.ProcInst{Target: n.Target, Data: n.Data})
	}
}

// copyChildren copies every child node of src under parent with the
// same namespace substitution.
func copyChildren(src, parent *dom.Element, oldNS, newNS string) {
	for _, child := range src.Nodes() {
		copyTree(child, parent, oldNS, newNS)
	}
}
