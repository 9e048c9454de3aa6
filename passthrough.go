package fpml

import "github.com/gpan-isda/fpml/dom"

// passThrough copies a document between releases whose content models
// are compatible, rewriting the namespace and remapping scheme defaults
// but leaving the structure alone.
type passThrough struct {
	direct
	rootName string
}

// NewPassThrough returns a structure-preserving conversion between two
// compatible releases. An empty rootName keeps the source root where
// the target declares it.
func NewPassThrough(source, target *Release, rootName string) Conversion {
	return &passThrough{direct: direct{source: source, target: target}, rootName: rootName}
}

func (p *passThrough) Convert(source *dom.Document, _ *Helper) (*dom.Document, error) {
	doc, err := newTargetDocument(p.target, source, p.rootName)
	if err != nil {
		return nil, err
	}
	oldRoot, newRoot := source.Root(), doc.Root()
	transferSchemeDefaults(oldRoot, newRoot, p.source, p.target)
	copyChildren(oldRoot, newRoot, p.source.namespace, p.target.namespace)
	return doc, nil
}
