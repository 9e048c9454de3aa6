package fpml

import (
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	fpmlerrors "github.com/gpan-isda/fpml/errors"
)

func TestConvertPassThroughChain(t *testing.T) {
	reg := DefaultRegistry()
	doc := parseDoc(t, `<FpML xmlns="http://www.fpml.org/2005/FpML-4-2">`+
		`<trade><tradeHeader><partyTradeIdentifier/></tradeHeader></trade></FpML>`)

	target := reg.Release("4-10", VariantNone)
	require.NotNil(t, target)

	out, err := reg.Convert(doc, target, nil)
	require.NoError(t, err)

	root := out.Root()
	assert.Equal(t, target.Namespace(), root.Space())
	header := root.Path("trade", "tradeHeader", "partyTradeIdentifier")
	if !assert.NotNil(t, header) {
		t.Log(spew.Sdump(root))
	}
	assert.Equal(t, target.Namespace(), root.Path("trade").Space())

	// Input document left untouched.
	assert.Equal(t, "http://www.fpml.org/2005/FpML-4-2", doc.Root().Space())
}

func TestConvertAcrossNamespaceGeneration(t *testing.T) {
	reg := DefaultRegistry()
	doc := parseDoc(t, `<FpML xmlns="http://www.fpml.org/2005/FpML-4-10"><trade/></FpML>`)

	target := reg.Release("5-2", VariantConfirmation)
	require.NotNil(t, target)

	out, err := reg.Convert(doc, target, nil)
	require.NoError(t, err)

	root := out.Root()
	assert.Equal(t, "dataDocument", root.Local())
	assert.Equal(t, "http://www.fpml.org/FpML-5/confirmation", root.Space())
	assert.Equal(t, "5-2", root.Attr("fpmlVersion"))
	assert.NotNil(t, root.Child("trade"))
	assert.Equal(t, target, reg.ReleaseForDocument(out))
}

func TestConvertMatchesManualStepChaining(t *testing.T) {
	reg := DefaultRegistry()
	input := `<FpML xmlns="http://www.fpml.org/2005/FpML-4-2"><trade><swap/></trade></FpML>`
	source := reg.Release("4-2", VariantNone)
	target := reg.Release("4-5", VariantNone)

	converted, err := reg.Convert(parseDoc(t, input), target, nil)
	require.NoError(t, err)

	chain, err := reg.Path(source, target)
	require.NoError(t, err)
	manual := parseDoc(t, input)
	for _, step := range chain {
		manual, err = step.Convert(manual, &Helper{})
		require.NoError(t, err)
	}

	assert.Equal(t, manual.String(), converted.String())
}

func TestConvertSameRelease(t *testing.T) {
	reg := DefaultRegistry()
	doc := parseDoc(t, `<FpML xmlns="http://www.fpml.org/2005/FpML-4-5"><trade/></FpML>`)

	out, err := reg.Convert(doc, reg.Release("4-5", VariantNone), nil)
	require.NoError(t, err)
	assert.Same(t, doc, out)
}

func TestConvertUnknownSource(t *testing.T) {
	reg := DefaultRegistry()
	doc := parseDoc(t, `<FpML xmlns="urn:not-fpml"/>`)

	_, err := reg.Convert(doc, reg.Release("4-0", VariantNone), nil)
	require.Error(t, err)
	code, ok := fpmlerrors.CodeOf(err)
	require.True(t, ok)
	assert.Equal(t, fpmlerrors.CodeNoPath, code)
}

func TestConvertWrapsStepErrors(t *testing.T) {
	reg := DefaultRegistry()
	doc := parseDoc(t, `<FpML xmlns="http://www.fpml.org/2005/FpML-4-0">`+
		`<trade><equityOptionTransactionSupplement>`+
		`<fxFeature><fxFeatureType>QUANTO</fxFeatureType></fxFeature>`+
		`</equityOptionTransactionSupplement></trade></FpML>`)

	_, err := reg.Convert(doc, reg.Release("4-1", VariantNone), &Helper{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "convert 4-0 -> 4-1")
	code, ok := fpmlerrors.CodeOf(err)
	require.True(t, ok)
	assert.Equal(t, fpmlerrors.CodeMissingCapability, code)
}

func TestConvertToVersion(t *testing.T) {
	reg := DefaultRegistry()
	doc := parseDoc(t, `<dataDocument xmlns="http://www.fpml.org/FpML-5/confirmation" fpmlVersion="5-0"><trade/></dataDocument>`)

	out, err := reg.ConvertToVersion(doc, "5-3", nil)
	require.NoError(t, err)
	assert.Equal(t, "5-3", out.Root().Attr("fpmlVersion"))

	_, err = reg.ConvertToVersion(doc, "9-9", nil)
	require.Error(t, err)
	code, _ := fpmlerrors.CodeOf(err)
	assert.Equal(t, fpmlerrors.CodeNoPath, code)
}
