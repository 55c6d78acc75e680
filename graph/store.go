package graph

// EntityFilter selects entities during iteration. A zero filter matches
// everything.
type EntityFilter struct {
	Type string
}

// RelationshipFilter selects relationships during iteration. A zero filter
// matches everything.
type RelationshipFilter struct {
	Class string
}

// Store is the entity/relationship sink the ingestion pipeline writes into.
// Implementations must treat adds as idempotent: a second add with an
// existing key is a no-op that reports created=false, never an overwrite.
type Store interface {
	// AddEntity stores the entity unless its key already exists. Returns the
	// stored (possibly pre-existing) entity and whether this call created it.
	AddEntity(e *Entity) (*Entity, bool)

	// FindEntity returns the entity with the given key, or nil.
	FindEntity(key string) *Entity

	// IterateEntities calls fn for every stored entity matching the filter, in
	// insertion order. Iteration stops on the first error, which is returned.
	IterateEntities(f EntityFilter, fn func(*Entity) error) error

	// AddRelationship stores the relationship unless its key already exists.
	// Returns whether this call created it.
	AddRelationship(r *Relationship) bool

	// IterateRelationships calls fn for every stored relationship matching the
	// filter, in insertion order.
	IterateRelationships(f RelationshipFilter, fn func(*Relationship) error) error
}
