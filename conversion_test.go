package fpml

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/gpan-isda/fpml/dom"
)

// testingDoc bundles a conversion result with its target release for
// shared assertions.
type testingDoc struct {
	doc    *dom.Document
	target *Release
}

// assertNamespace checks every element of the result lives in the
// target namespace.
func (d *testingDoc) assertNamespace(t *testing.T) {
	t.Helper()
	var walk func(*dom.Element)
	walk = func(el *dom.Element) {
		assert.Equal(t, d.target.Namespace(), el.Space(), "element %s", el.Location())
		for _, c := range el.Children() {
			walk(c)
		}
	}
	walk(d.doc.Root())
}

func TestHelperZeroValueHasNoCapabilities(t *testing.T) {
	var h Helper
	assert.Nil(t, h.ReferenceCurrency)
	assert.Nil(t, h.QuantoTerms)
}
