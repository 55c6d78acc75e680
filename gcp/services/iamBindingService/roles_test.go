package iambindingservice

import (
	"context"
	"slices"
	"testing"

	"github.com/praetorian-inc/graph-google-cloud-1/graph"
)

func TestRoleKeyForBindingScopesBasicRoles(t *testing.T) {
	service, _, _ := newTestService(&fakeSearcher{}, nil)
	ctx := context.Background()

	tests := []struct {
		name     string
		resource string
		project  string
		role     string
		want     string
	}{
		{
			"basic role on project A",
			"//cloudresourcemanager.googleapis.com/projects/A",
			"projects/A",
			"roles/editor",
			"A/roles/editor",
		},
		{
			"same basic role on project B stays distinct",
			"//cloudresourcemanager.googleapis.com/projects/B",
			"projects/B",
			"roles/editor",
			"B/roles/editor",
		},
		{
			"basic role on organization",
			"//cloudresourcemanager.googleapis.com/organizations/123456",
			"",
			"roles/viewer",
			"123456/roles/viewer",
		},
		{
			"basic role on project-owned resource scopes by project",
			"//storage.googleapis.com/projects/_/buckets/my-bucket",
			"projects/my-proj",
			"roles/viewer",
			"my-proj/roles/viewer",
		},
		{
			"predefined role is unscoped",
			"//cloudresourcemanager.googleapis.com/projects/A",
			"projects/A",
			"roles/storage.admin",
			"roles/storage.admin",
		},
		{
			"custom role is unscoped",
			"//cloudresourcemanager.googleapis.com/projects/A",
			"projects/A",
			"projects/A/roles/myCustomRole",
			"projects/A/roles/myCustomRole",
		},
		{
			"malformed resource falls back to project",
			"bogus",
			"projects/A",
			"roles/owner",
			"A/roles/owner",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := service.RoleKeyForBinding(ctx, tt.resource, tt.project, tt.role)
			if got != tt.want {
				t.Errorf("RoleKeyForBinding(%q, %q, %q) = %q, want %q",
					tt.resource, tt.project, tt.role, got, tt.want)
			}
		})
	}
}

func TestRoleKeyForBindingCanonicalizesProjectNumber(t *testing.T) {
	service, _, _ := newTestService(&fakeSearcher{}, nil)
	ctx := context.Background()
	numberResource := "//cloudresourcemanager.googleapis.com/projects/123456"

	// a result carrying the project name pins the canonical scope key
	got := service.RoleKeyForBinding(ctx, numberResource, "projects/my-proj", "roles/viewer")
	if got != "my-proj/roles/viewer" {
		t.Fatalf("RoleKeyForBinding with project field = %q", got)
	}

	// a later result for the same project without the field reuses it
	got = service.RoleKeyForBinding(ctx, numberResource, "", "roles/viewer")
	if got != "my-proj/roles/viewer" {
		t.Errorf("RoleKeyForBinding without project field = %q, want the canonical key", got)
	}

	// an unrelated project stays on its own identifier
	got = service.RoleKeyForBinding(ctx, "//cloudresourcemanager.googleapis.com/projects/999", "", "roles/viewer")
	if got != "999/roles/viewer" {
		t.Errorf("unrelated project key = %q", got)
	}
}

func TestFindOrCreateRoleEntityCreatesBasicRolesOnly(t *testing.T) {
	service, store, _ := newTestService(&fakeSearcher{}, nil)
	ctx := context.Background()

	role := service.FindOrCreateRoleEntity(ctx, "A/roles/editor", "roles/editor")
	if role == nil {
		t.Fatal("expected basic role entity created")
	}
	if role.Type != RoleEntityType {
		t.Errorf("wrong entity type %s", role.Type)
	}
	if len(role.StringSliceProperty("permissions")) == 0 {
		t.Error("basic role entity should carry catalog permissions")
	}
	if store.FindEntity("A/roles/editor") == nil {
		t.Error("role entity not stored")
	}

	if custom := service.FindOrCreateRoleEntity(ctx, "projects/A/roles/custom", "projects/A/roles/custom"); custom != nil {
		t.Errorf("custom role must not be created, got %+v", custom)
	}

	// a role already in the store is returned regardless of kind
	store.AddEntity(&graph.Entity{Key: "projects/A/roles/custom", Type: RoleEntityType})
	if service.FindOrCreateRoleEntity(ctx, "projects/A/roles/custom", "projects/A/roles/custom") == nil {
		t.Error("existing custom role entity should be found")
	}
}

func TestResolvePermissionsPrefersStoredRole(t *testing.T) {
	service, store, _ := newTestService(&fakeSearcher{}, nil)
	ctx := context.Background()

	store.AddEntity(&graph.Entity{
		Key:  "projects/A/roles/custom",
		Type: RoleEntityType,
		Properties: map[string]any{
			"permissions": []string{"compute.instances.get"},
		},
	})

	got := service.ResolvePermissions(ctx, "projects/A/roles/custom", "projects/A/roles/custom")
	if !slices.Equal(got, []string{"compute.instances.get"}) {
		t.Errorf("expected stored permissions, got %v", got)
	}
}

func TestResolvePermissionsFallsBackToCatalogThenGetter(t *testing.T) {
	service, _, _ := newTestService(&fakeSearcher{}, nil)
	ctx := context.Background()

	if got := service.ResolvePermissions(ctx, "roles/pubsub.publisher", "roles/pubsub.publisher"); !slices.Contains(got, "pubsub.topics.publish") {
		t.Errorf("expected catalog permissions, got %v", got)
	}

	// not in catalog, no getter wired
	if got := service.ResolvePermissions(ctx, "roles/obscure.role", "roles/obscure.role"); got != nil {
		t.Errorf("expected nil for unknown role without getter, got %v", got)
	}

	service.RoleGetter = &fakeRoleGetter{roles: map[string]RoleCatalogEntry{
		"roles/obscure.role": {Title: "Obscure", Permissions: []string{"obscure.things.do"}},
	}}
	got := service.ResolvePermissions(ctx, "roles/obscure.role", "roles/obscure.role")
	if !slices.Equal(got, []string{"obscure.things.do"}) {
		t.Errorf("expected getter permissions, got %v", got)
	}

	// getter answers are cached in the catalog
	if _, ok := service.Catalog.Lookup("roles/obscure.role"); !ok {
		t.Error("getter result should be cached in the catalog")
	}

	// custom roles never hit the getter
	service.RoleGetter = &fakeRoleGetter{}
	if got := service.ResolvePermissions(ctx, "projects/A/roles/unknown", "projects/A/roles/unknown"); got != nil {
		t.Errorf("expected nil for unknown custom role, got %v", got)
	}
}
