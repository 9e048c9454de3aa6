package fpml

import (
	"fmt"

	"github.com/gpan-isda/fpml/dom"
	fpmlerrors "github.com/gpan-isda/fpml/errors"
)

// Convert translates a document into the target release by chaining
// registered conversions. The source release is detected from the
// document itself; the input document is never modified. After the last
// step the result is re-classified and must identify as the target.
func (g *Registry) Convert(doc *dom.Document, target *Release, helper *Helper) (*dom.Document, error) {
	source := g.ReleaseForDocument(doc)
	if source == nil {
		return nil, fpmlerrors.NoPath("unrecognized document", releaseLabel(target))
	}
	if target == nil {
		return nil, fpmlerrors.NoPath(source.String(), "unknown")
	}
	chain, err := g.Path(source, target)
	if err != nil {
		return nil, err
	}
	if helper == nil {
		helper = &Helper{}
	}

	result := doc
	for _, step := range chain {
		result, err = step.Convert(result, helper)
		if err != nil {
			return nil, fmt.Errorf("convert %s -> %s: %w",
				step.SourceRelease(), step.TargetRelease(), err)
		}
	}

	if detected := g.ReleaseForDocument(result); detected != target {
		return nil, fpmlerrors.InternalInconsistency(
			source.String(), target.String(), releaseName(detected))
	}
	return result, nil
}

// ConvertToVersion resolves a version label to the release most
// compatible with the document's own view and converts to it.
func (g *Registry) ConvertToVersion(doc *dom.Document, version string, helper *Helper) (*dom.Document, error) {
	target := g.CompatibleRelease(doc, version)
	if target == nil {
		source := g.ReleaseForDocument(doc)
		return nil, fpmlerrors.NoPath(releaseLabel(source), version)
	}
	return g.Convert(doc, target, helper)
}

func releaseName(r *Release) string {
	if r == nil {
		return ""
	}
	return r.String()
}
