package fpml

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func convertVersions(t *testing.T, input, sourceVersion, targetVersion string, helper *Helper) *testingDoc {
	t.Helper()
	reg := DefaultRegistry()
	source := reg.Release(sourceVersion, VariantNone)
	target := reg.Release(targetVersion, VariantNone)
	require.NotNil(t, source)
	require.NotNil(t, target)
	conv := reg.ConversionFor(source, target)
	require.NotNil(t, conv)

	if helper == nil {
		helper = &Helper{}
	}
	out, err := conv.Convert(parseDoc(t, input), helper)
	require.NoError(t, err)
	return &testingDoc{doc: out, target: target}
}

func TestR2ToR3MovesPartiesToEnd(t *testing.T) {
	out := convertVersions(t, `<FpML xmlns="`+namespaceR2+`">`+
		`<party id="p1"><partyName>Alpha</partyName></party>`+
		`<trade><swap/></trade>`+
		`</FpML>`, "2-0", "3-0", nil)

	children := out.doc.Root().Children()
	require.Len(t, children, 2)
	assert.Equal(t, "trade", children[0].Local())
	assert.Equal(t, "party", children[1].Local())
	assert.Equal(t, "p1", children[1].Attr("id"))
	assert.Equal(t, "Alpha", children[1].Path("partyName").InnerText())
	out.assertNamespace(t)
}

func TestR2ToR3StripsHrefFragments(t *testing.T) {
	out := convertVersions(t, `<FpML xmlns="`+namespaceR2+`">`+
		`<trade><payerPartyReference href="#p1"/><receiverPartyReference href="p2"/></trade>`+
		`</FpML>`, "2-0", "3-0", nil)

	trade := out.doc.Root().Child("trade")
	require.NotNil(t, trade)
	assert.Equal(t, "p1", trade.Child("payerPartyReference").Attr("href"))
	assert.Equal(t, "p2", trade.Child("receiverPartyReference").Attr("href"))
}

func TestR2ToR3DropsTypeAndBaseAttributes(t *testing.T) {
	out := convertVersions(t, `<FpML xmlns="`+namespaceR2+`">`+
		`<trade><notional type="decimal" base="xs" amount="5"/></trade>`+
		`</FpML>`, "2-0", "3-0", nil)

	notional := out.doc.Root().Path("trade", "notional")
	require.NotNil(t, notional)
	assert.False(t, notional.HasAttr("type"))
	assert.False(t, notional.HasAttr("base"))
	assert.Equal(t, "5", notional.Attr("amount"))
}

func TestR2ToR3RemapsDefaultSchemeURIsAtAnyDepth(t *testing.T) {
	oldDefault := dtdEraSchemeDefaults()["currencySchemeDefault"]
	newDefault := r3SchemeDefaults()["currencySchemeDefault"]
	require.NotEqual(t, oldDefault, newDefault)

	out := convertVersions(t, `<FpML xmlns="`+namespaceR2+`" currencySchemeDefault="`+oldDefault+`">`+
		`<trade><swap><notional>`+
		`<currency currencyScheme="`+oldDefault+`">USD</currency>`+
		`<currency currencyScheme="urn:custom">XAU</currency>`+
		`</notional></swap></trade>`+
		`</FpML>`, "2-0", "3-0", nil)

	root := out.doc.Root()
	assert.Equal(t, newDefault, root.Attr("currencySchemeDefault"))

	currencies := root.Descendants("currency")
	require.Len(t, currencies, 2)
	assert.Equal(t, newDefault, currencies[0].Attr("currencyScheme"))
	assert.Equal(t, "urn:custom", currencies[1].Attr("currencyScheme"))
}
