package fpml

import (
	"fmt"

	"github.com/gpan-isda/fpml/dom"
)

// Registry holds all known releases and the registered direct
// conversions between them. It is populated once and read-only
// afterwards, so concurrent lookups need no locking.
type Registry struct {
	releases []*Release
	byPair   map[releasePair]Conversion
	outgoing map[*Release][]Conversion
}

type releasePair struct {
	source *Release
	target *Release
}

// NewRegistry returns a registry over the given releases with no
// conversions registered.
func NewRegistry(releases ...*Release) *Registry {
	return &Registry{
		releases: releases,
		byPair:   make(map[releasePair]Conversion),
		outgoing: make(map[*Release][]Conversion),
	}
}

// Releases returns a copy of the known releases in registration order.
func (g *Registry) Releases() []*Release {
	out := make([]*Release, len(g.releases))
	copy(out, g.releases)
	return out
}

// Release returns the release with the given version and variant, or
// nil.
func (g *Registry) Release(version string, variant Variant) *Release {
	for _, r := range g.releases {
		if r.version == version && r.variant == variant {
			return r
		}
	}
	return nil
}

// Register adds a direct conversion. Both endpoints must be known
// releases and at most one conversion may exist per ordered pair.
func (g *Registry) Register(c Conversion) error {
	source, target := c.SourceRelease(), c.TargetRelease()
	if !g.contains(source) {
		return fmt.Errorf("register conversion: unknown source release %s", source)
	}
	if !g.contains(target) {
		return fmt.Errorf("register conversion: unknown target release %s", target)
	}
	key := releasePair{source: source, target: target}
	if _, ok := g.byPair[key]; ok {
		return fmt.Errorf("register conversion: duplicate conversion %s -> %s", source, target)
	}
	g.byPair[key] = c
	g.outgoing[source] = append(g.outgoing[source], c)
	return nil
}

func (g *Registry) contains(r *Release) bool {
	for _, known := range g.releases {
		if known == r {
			return true
		}
	}
	return false
}

// ConversionFor returns the single direct conversion for an ordered
// release pair, or nil.
func (g *Registry) ConversionFor(source, target *Release) Conversion {
	return g.byPair[releasePair{source: source, target: target}]
}

// ReleaseForDocument identifies the release a parsed document conforms
// to, by root namespace and, for releases sharing a namespace, by the
// declared version attribute. Returns nil when no release matches.
func (g *Registry) ReleaseForDocument(doc *dom.Document) *Release {
	if doc == nil || doc.Root() == nil {
		return nil
	}
	root := doc.Root()
	var candidates []*Release
	for _, r := range g.releases {
		if r.namespace == root.Space() {
			candidates = append(candidates, r)
		}
	}
	if len(candidates) == 0 {
		return nil
	}
	if len(candidates) == 1 {
		return candidates[0]
	}
	for _, r := range candidates {
		if r.versionAttr != "" && root.Attr(r.versionAttr) == r.version {
			return r
		}
	}
	return nil
}

// CompatibleRelease resolves a caller-supplied version label to a
// concrete release, preferring the variant of the document's own
// release, then the confirmation view.
func (g *Registry) CompatibleRelease(doc *dom.Document, version string) *Release {
	var matches []*Release
	for _, r := range g.releases {
		if r.version == version {
			matches = append(matches, r)
		}
	}
	if len(matches) == 0 {
		return nil
	}
	if detected := g.ReleaseForDocument(doc); detected != nil {
		for _, r := range matches {
			if r.variant == detected.variant {
				return r
			}
		}
	}
	for _, r := range matches {
		if r.variant == VariantConfirmation {
			return r
		}
	}
	return matches[0]
}
