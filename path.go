package fpml

import (
	fpmlerrors "github.com/gpan-isda/fpml/errors"
)

// Path finds the shortest chain of registered conversions leading from
// source to target using breadth-first search, so among equally short
// chains the earliest-registered edges win. A source equal to the
// target yields an empty chain.
func (g *Registry) Path(source, target *Release) ([]Conversion, error) {
	if source == nil || target == nil {
		return nil, fpmlerrors.NoPath(releaseLabel(source), releaseLabel(target))
	}
	if source == target {
		return nil, nil
	}

	prev := map[*Release]Conversion{source: nil}
	queue := []*Release{source}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, c := range g.outgoing[cur] {
			next := c.TargetRelease()
			if _, seen := prev[next]; seen {
				continue
			}
			prev[next] = c
			if next == target {
				return rebuildPath(prev, source, target), nil
			}
			queue = append(queue, next)
		}
	}
	return nil, fpmlerrors.NoPath(source.String(), target.String())
}

func rebuildPath(prev map[*Release]Conversion, source, target *Release) []Conversion {
	var chain []Conversion
	for cur := target; cur != source; {
		step := prev[cur]
		chain = append(chain, step)
		cur = step.SourceRelease()
	}
	for i, j := 0, len(chain)-1; i < j; i, j = i+1, j-1 {
		chain[i], chain[j] = chain[j], chain[i]
	}
	return chain
}

func releaseLabel(r *Release) string {
	if r == nil {
		return "unknown"
	}
	return r.String()
}
