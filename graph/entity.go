// Package graph holds the entity/relationship model the ingestion pipeline
// writes into, plus an in-memory store implementation. Entities are immutable
// once added; relationships reference entities by key and may point at targets
// that only exist in a remote system (mapped relationships).
package graph

// Condition is a structured IAM condition expression attached to a binding.
type Condition struct {
	Title       string
	Description string
	Expression  string
}

// Entity is one node in the access graph. Properties carries the typed
// attributes queries filter on; Raw optionally retains the source payload for
// later inspection and is never interpreted by the store.
type Entity struct {
	Key        string
	Type       string
	Name       string
	Properties map[string]any
	Raw        []byte
}

// StringProperty returns the named property if it is a string, else "".
func (e *Entity) StringProperty(name string) string {
	if e.Properties == nil {
		return ""
	}
	if v, ok := e.Properties[name].(string); ok {
		return v
	}
	return ""
}

// StringSliceProperty returns the named property if it is a string slice.
// Slices stored as []any are converted element-wise, skipping non-strings.
func (e *Entity) StringSliceProperty(name string) []string {
	if e.Properties == nil {
		return nil
	}
	switch v := e.Properties[name].(type) {
	case []string:
		return v
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}

// BoolProperty returns the named property if it is a bool, else false.
func (e *Entity) BoolProperty(name string) bool {
	if e.Properties == nil {
		return false
	}
	if v, ok := e.Properties[name].(bool); ok {
		return v
	}
	return false
}

// ConditionProperty reassembles a Condition from the condition.* properties,
// or nil when the entity has none.
func (e *Entity) ConditionProperty() *Condition {
	title := e.StringProperty("condition.title")
	description := e.StringProperty("condition.description")
	expression := e.StringProperty("condition.expression")
	if title == "" && description == "" && expression == "" {
		return nil
	}
	return &Condition{Title: title, Description: description, Expression: expression}
}
