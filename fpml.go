// Package fpml converts FpML trade documents between releases of the
// standard. Each release is described by a namespace, its legal root
// elements and a scheme-default table; direct conversions between
// consecutive releases are registered in a Registry, which chains them
// to bridge any pair of connected releases.
//
// A minimal conversion looks like:
//
//	doc, err := dom.Parse(input)
//	if err != nil { ... }
//	reg := fpml.DefaultRegistry()
//	out, err := reg.Convert(doc, reg.Release("5-13", fpml.VariantConfirmation), nil)
//
// Conversions that synthesize content a document cannot express (for
// example the reference currency of an fx feature) take the values
// from a caller-supplied Helper.
package fpml
