package iambindingservice

import (
	"sort"
	"strings"

	"github.com/praetorian-inc/graph-google-cloud-1/graph"
)

// BindingKey derives the deduplication key for one (binding, resource,
// project) triple. The member list is sorted before joining so two bindings
// that differ only in member order collapse to the same key, and the
// condition participates so conditional and unconditional grants of the same
// role stay distinct. The search API gives no dedup guarantee across pages;
// this key is the only identity bindings have.
func BindingKey(resource, projectName, role string, members []string, condition *graph.Condition) string {
	sorted := make([]string, len(members))
	copy(sorted, members)
	sort.Strings(sorted)

	parts := []string{"binding", resource, projectName, role, strings.Join(sorted, ",")}
	if condition != nil {
		parts = append(parts, condition.Title, condition.Description, condition.Expression)
	}
	return strings.Join(parts, "|")
}

// Relationship keys are prefixed per class; the three relationship passes
// share binding keys as the from-side but must never collide with each other.
func usesRelationshipKey(bindingKey, roleKey string) string {
	return strings.Join([]string{"uses", bindingKey, roleKey}, "|")
}

func principalRelationshipKey(bindingKey, class, principalKey string) string {
	return strings.Join([]string{"principal", strings.ToLower(class), bindingKey, principalKey}, "|")
}

func allowsRelationshipKey(bindingKey, resourceKey string) string {
	return strings.Join([]string{"allows", bindingKey, resourceKey}, "|")
}
