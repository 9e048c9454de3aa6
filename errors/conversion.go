// Package errors defines the typed failures reported by the release
// conversion engine.
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Code identifies a class of conversion failure.
type Code string

const (
	// CodeMissingCapability indicates a step required a Helper-resolved
	// value the supplied Helper does not provide.
	CodeMissingCapability Code = "conversion-missing-capability"
	// CodeNoPath indicates no chain of registered conversions connects
	// the source release to the target release.
	CodeNoPath Code = "conversion-no-path"
	// CodeTargetConstruction indicates the target release has no usable
	// root element for the document being converted.
	CodeTargetConstruction Code = "conversion-target-construction"
	// CodeInternalInconsistency indicates a conversion chain completed
	// but the result does not classify as the requested target release.
	CodeInternalInconsistency Code = "conversion-internal-inconsistency"
)

// Conversion describes a conversion failure with release pair and
// element context where available.
type Conversion struct {
	Code    Code
	Message string
	Source  string // source release version, may be empty
	Target  string // target release version, may be empty
	Context string // element location that triggered the failure
}

// Error returns a compact single-line description.
func (e *Conversion) Error() string {
	var sb strings.Builder
	sb.WriteString("[")
	sb.WriteString(string(e.Code))
	sb.WriteString("] ")
	sb.WriteString(e.Message)
	if e.Source != "" || e.Target != "" {
		fmt.Fprintf(&sb, " (%s -> %s)", e.Source, e.Target)
	}
	if e.Context != "" {
		sb.WriteString(" at ")
		sb.WriteString(e.Context)
	}
	return sb.String()
}

// MissingCapability reports that a conversion step needed a business
// context value the Helper cannot supply.
func MissingCapability(capability, context string) *Conversion {
	return &Conversion{
		Code:    CodeMissingCapability,
		Message: "cannot determine " + capability,
		Context: context,
	}
}

// NoPath reports that no conversion chain connects two releases.
func NoPath(source, target string) *Conversion {
	return &Conversion{
		Code:    CodeNoPath,
		Message: "no conversion path between releases",
		Source:  source,
		Target:  target,
	}
}

// TargetConstruction reports that no root element of the target release
// could be used to build the output document.
func TargetConstruction(target string, attempts []string) *Conversion {
	return &Conversion{
		Code:    CodeTargetConstruction,
		Message: "no usable root element, tried " + strings.Join(attempts, ", "),
		Target:  target,
	}
}

// InternalInconsistency reports that a completed conversion chain
// produced a document the registry classifies as detected instead of the
// requested target. This is a defect in one of the applied steps.
func InternalInconsistency(source, target, detected string) *Conversion {
	return &Conversion{
		Code:    CodeInternalInconsistency,
		Message: "converted document classified as " + detectedOrNone(detected),
		Source:  source,
		Target:  target,
	}
}

func detectedOrNone(detected string) string {
	if detected == "" {
		return "no known release"
	}
	return detected
}

// CodeOf returns the conversion failure code carried by err, if any.
func CodeOf(err error) (Code, bool) {
	var conv *Conversion
	if errors.As(err, &conv) {
		return conv.Code, true
	}
	return "", false
}
