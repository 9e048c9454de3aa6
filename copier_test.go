package fpml

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gpan-isda/fpml/dom"
)

func TestCopyTreeRewritesOnlyOldNamespace(t *testing.T) {
	src := dom.NewElement("urn:old", "trade")
	src.SetAttrNS("urn:attr", "marker", "v")
	inner := dom.NewElement("urn:old", "swap")
	foreign := dom.NewElement("urn:other", "extension")
	inner.AppendChild(foreign)
	src.AppendChild(inner)
	src.AppendChild(&dom.Text{Data: "tail"})
	src.AppendChild(&dom.Comment{Data: "note"})

	dst := dom.NewElement("urn:new", "root")
	copyTree(src, dst, "urn:old", "urn:new")

	clone := dst.Child("trade")
	require.NotNil(t, clone)
	assert.Equal(t, "urn:new", clone.Space())
	// Attribute namespaces are never rewritten.
	assert.Equal(t, "v", clone.AttrNS("urn:attr", "marker"))

	swap := clone.Child("swap")
	require.NotNil(t, swap)
	assert.Equal(t, "urn:new", swap.Space())
	assert.Equal(t, "urn:other", swap.Child("extension").Space())

	nodes := clone.Nodes()
	require.Len(t, nodes, 3)
	assert.Equal(t, "tail", nodes[1].(*dom.Text).Data)
	assert.Equal(t, "note", nodes[2].(*dom.Comment).Data)
}

func TestCopyTreeDoesNotMutateSource(t *testing.T) {
	src := dom.NewElement("urn:old", "trade")
	child := dom.NewElement("urn:old", "swap")
	src.AppendChild(child)

	dst := dom.NewElement("urn:new", "root")
	copyTree(src, dst, "urn:old", "urn:new")

	assert.Equal(t, "urn:old", src.Space())
	assert.Equal(t, "urn:old", child.Space())
	assert.Same(t, src, child.Parent())
}

func TestCopyTreeSameNamespaceIsIdentity(t *testing.T) {
	src := dom.NewElement("urn:ns", "trade")
	src.SetAttr("id", "t1")
	src.AppendChild(dom.NewElement("urn:ns", "swap"))

	dst := dom.NewElement("urn:ns", "root")
	copyTree(src, dst, "urn:ns", "urn:ns")

	clone := dst.Child("trade")
	require.NotNil(t, clone)
	assert.Equal(t, src.Space(), clone.Space())
	assert.Equal(t, src.Attrs(), clone.Attrs())
	assert.Equal(t, "urn:ns", clone.Child("swap").Space())
}

func TestCopyChildrenSkipsTheElementItself(t *testing.T) {
	src := dom.NewElement("urn:old", "FpML")
	src.AppendChild(dom.NewElement("urn:old", "trade"))
	src.AppendChild(dom.NewElement("urn:old", "party"))

	dst := dom.NewElement("urn:new", "FpML")
	copyChildren(src, dst, "urn:old", "urn:new")

	children := dst.Children()
	require.Len(t, children, 2)
	assert.Equal(t, "trade", children[0].Local())
	assert.Equal(t, "party", children[1].Local())
}
