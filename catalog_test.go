package fpml

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleCatalog = `
releases:
  - version: "6-0"
    variant: confirmation
    namespace: http://www.fpml.org/FpML-6/confirmation
    versionAttribute: fpmlVersion
    rootElements: [dataDocument, requestConfirmation]
  - version: "3-1"
    namespace: http://www.fpml.org/spec/fpml-3-1
    schemeDefaults:
      currencySchemeDefault: http://www.fpml.org/ext/iso4217-2001-08-15
`

func TestLoadCatalog(t *testing.T) {
	releases, err := LoadCatalog(strings.NewReader(sampleCatalog))
	require.NoError(t, err)
	require.Len(t, releases, 2)

	six := releases[0]
	assert.Equal(t, "6-0", six.Version())
	assert.Equal(t, VariantConfirmation, six.Variant())
	assert.Equal(t, "fpmlVersion", six.VersionAttribute())
	assert.True(t, six.HasRootElement("requestConfirmation"))
	assert.False(t, six.HasRootElement("FpML"))

	three := releases[1]
	assert.Equal(t, VariantNone, three.Variant())
	assert.True(t, three.HasRootElement("FpML"))
	assert.Equal(t, "http://www.fpml.org/ext/iso4217-2001-08-15",
		three.SchemeDefaults().DefaultURIForAttribute("currencySchemeDefault"))
}

func TestLoadCatalogErrors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr string
	}{
		{
			name:    "empty",
			input:   "releases: []\n",
			wantErr: "no releases",
		},
		{
			name:    "missing version",
			input:   "releases:\n  - namespace: urn:a\n",
			wantErr: "missing version",
		},
		{
			name:    "missing namespace",
			input:   "releases:\n  - version: \"6-0\"\n",
			wantErr: "missing namespace",
		},
		{
			name:    "unknown variant",
			input:   "releases:\n  - version: \"6-0\"\n    variant: draft\n    namespace: urn:a\n",
			wantErr: "unknown variant",
		},
		{
			name: "duplicate",
			input: "releases:\n" +
				"  - version: \"6-0\"\n    namespace: urn:a\n" +
				"  - version: \"6-0\"\n    namespace: urn:b\n",
			wantErr: "duplicate",
		},
		{
			name:    "unknown field",
			input:   "releases:\n  - version: \"6-0\"\n    namespace: urn:a\n    bogus: true\n",
			wantErr: "bogus",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadCatalog(strings.NewReader(tt.input))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoadedCatalogExtendsRegistry(t *testing.T) {
	releases, err := LoadCatalog(strings.NewReader(sampleCatalog))
	require.NoError(t, err)

	reg := NewRegistry(append(DefaultCatalog(), releases...)...)
	require.NoError(t, reg.RegisterStandardConversions())

	six := reg.Release("6-0", VariantConfirmation)
	require.NotNil(t, six)

	// No standard conversion reaches the new release.
	_, err = reg.Path(reg.Release("5-13", VariantConfirmation), six)
	require.Error(t, err)
}
