package errors

import (
	"fmt"
	"testing"
)

func TestConversionErrorFormatting(t *testing.T) {
	tests := []struct {
		name string
		err  *Conversion
		want string
	}{
		{
			name: "no path",
			err:  NoPath("1-0", "5-0"),
			want: "[conversion-no-path] no conversion path between releases (1-0 -> 5-0)",
		},
		{
			name: "missing capability",
			err:  MissingCapability("fxFeature reference currency", "FpML/trade/fxFeature"),
			want: "[conversion-missing-capability] cannot determine fxFeature reference currency at FpML/trade/fxFeature",
		},
		{
			name: "target construction",
			err:  TargetConstruction("4-0", []string{"bogusRoot"}),
			want: "[conversion-target-construction] no usable root element, tried bogusRoot ( -> 4-0)",
		},
		{
			name: "internal inconsistency",
			err:  InternalInconsistency("3-0", "4-0", ""),
			want: "[conversion-internal-inconsistency] converted document classified as no known release (3-0 -> 4-0)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Fatalf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCodeOf(t *testing.T) {
	err := NoPath("a", "b")
	code, ok := CodeOf(err)
	if !ok || code != CodeNoPath {
		t.Fatalf("CodeOf() = %v, %v, want %v, true", code, ok, CodeNoPath)
	}

	wrapped := fmt.Errorf("convert a -> b: %w", err)
	code, ok = CodeOf(wrapped)
	if !ok || code != CodeNoPath {
		t.Fatalf("CodeOf(wrapped) = %v, %v, want %v, true", code, ok, CodeNoPath)
	}

	if _, ok := CodeOf(fmt.Errorf("plain")); ok {
		t.Fatal("CodeOf(plain error) reported a code")
	}
}
