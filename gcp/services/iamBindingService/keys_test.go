package iambindingservice

import (
	"testing"

	"github.com/praetorian-inc/graph-google-cloud-1/graph"
)

func TestBindingKeyMemberOrderInsensitive(t *testing.T) {
	a := BindingKey("//r", "projects/p", "roles/viewer", []string{"user:a@x.com", "user:b@x.com"}, nil)
	b := BindingKey("//r", "projects/p", "roles/viewer", []string{"user:b@x.com", "user:a@x.com"}, nil)
	if a != b {
		t.Errorf("expected identical keys for reordered members, got %q vs %q", a, b)
	}
}

func TestBindingKeyDistinguishes(t *testing.T) {
	base := BindingKey("//r", "projects/p", "roles/viewer", []string{"user:a@x.com"}, nil)

	tests := []struct {
		name string
		key  string
	}{
		{
			"different resource",
			BindingKey("//r2", "projects/p", "roles/viewer", []string{"user:a@x.com"}, nil),
		},
		{
			"different role",
			BindingKey("//r", "projects/p", "roles/editor", []string{"user:a@x.com"}, nil),
		},
		{
			"different members",
			BindingKey("//r", "projects/p", "roles/viewer", []string{"user:b@x.com"}, nil),
		},
		{
			"with condition",
			BindingKey("//r", "projects/p", "roles/viewer", []string{"user:a@x.com"},
				&graph.Condition{Title: "t", Expression: "request.time < x"}),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.key == base {
				t.Errorf("expected key to differ from base %q", base)
			}
		})
	}
}

func TestBindingKeyDoesNotMutateMembers(t *testing.T) {
	members := []string{"user:b@x.com", "user:a@x.com"}
	BindingKey("//r", "projects/p", "roles/viewer", members, nil)
	if members[0] != "user:b@x.com" {
		t.Errorf("BindingKey sorted the caller's slice: %v", members)
	}
}

func TestRelationshipKeysNeverCollide(t *testing.T) {
	binding := "binding|//r|p|roles/viewer|user:a@x.com"
	keys := map[string]bool{
		usesRelationshipKey(binding, "roles/viewer"):                  true,
		allowsRelationshipKey(binding, "roles/viewer"):                true,
		principalRelationshipKey(binding, "ASSIGNED", "roles/viewer"): true,
		principalRelationshipKey(binding, "OPEN_TO", "roles/viewer"):  true,
	}
	if len(keys) != 4 {
		t.Errorf("expected 4 distinct relationship keys, got %d", len(keys))
	}
}
