package graph

import (
	"errors"

	dgraph "github.com/dominikbraun/graph"
)

// BuildAccessGraph exports the stored entities and direct relationships into
// a directed graph keyed by entity key, with the relationship class stamped on
// each edge. Mapped relationships have no local far endpoint and are skipped.
// Reverse relationships are exported with their endpoints flipped so the edge
// always runs from logical subject to object.
func BuildAccessGraph(s Store) (dgraph.Graph[string, string], error) {
	g := dgraph.New(dgraph.StringHash, dgraph.Directed())

	err := s.IterateEntities(EntityFilter{}, func(e *Entity) error {
		if err := g.AddVertex(e.Key); err != nil && !errors.Is(err, dgraph.ErrVertexAlreadyExists) {
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	err = s.IterateRelationships(RelationshipFilter{}, func(r *Relationship) error {
		if r.Mapped() {
			return nil
		}
		from, to := r.FromKey, r.ToKey
		if r.Direction == DirectionReverse {
			from, to = to, from
		}
		err := g.AddEdge(from, to, dgraph.EdgeAttribute("class", r.Class))
		if err != nil && !errors.Is(err, dgraph.ErrEdgeAlreadyExists) &&
			!errors.Is(err, dgraph.ErrVertexNotFound) {
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return g, nil
}

// DirectNeighbors returns the keys of entities reachable from key over direct
// relationships of the given class (any class when class is empty).
func DirectNeighbors(s Store, key, class string) ([]string, error) {
	g, err := BuildAccessGraph(s)
	if err != nil {
		return nil, err
	}
	adjacency, err := g.AdjacencyMap()
	if err != nil {
		return nil, err
	}

	var out []string
	for target, edge := range adjacency[key] {
		if class != "" && edge.Properties.Attributes["class"] != class {
			continue
		}
		out = append(out, target)
	}
	return out, nil
}
