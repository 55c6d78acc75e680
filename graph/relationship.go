package graph

// Relationship direction. A reverse relationship points from the target back
// at the source entity; it matters for edge semantics like "user ASSIGNED
// binding" where the principal side is the logical subject.
const (
	DirectionForward = "FORWARD"
	DirectionReverse = "REVERSE"
)

// MappedTarget describes a relationship endpoint that is not locally known.
// FilterKeys is a list of property sets a remote reconciliation process
// matches against; each set carries _type and _key, or _key alone when no
// single type can be asserted. SkipTargetCreation controls whether the remote
// side may materialize a placeholder entity for the target.
type MappedTarget struct {
	FilterKeys         []map[string]any
	SkipTargetCreation bool
	// Properties to stamp onto a created placeholder, when creation is allowed.
	Properties map[string]any
}

// Relationship is one edge in the access graph. Direct relationships name
// both endpoints by key; mapped relationships describe the far endpoint with
// a MappedTarget instead of ToKey.
type Relationship struct {
	Key        string
	Class      string
	Direction  string
	FromKey    string
	ToKey      string
	Target     *MappedTarget
	Properties map[string]any
}

// Mapped reports whether the relationship's far endpoint is described by
// matching criteria rather than a concrete local entity.
func (r *Relationship) Mapped() bool {
	return r.Target != nil
}
