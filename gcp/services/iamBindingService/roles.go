package iambindingservice

import (
	"context"
	"fmt"
	"strings"

	"github.com/praetorian-inc/graph-google-cloud-1/globals"
	"github.com/praetorian-inc/graph-google-cloud-1/graph"
)

// RoleKeyForBinding produces the role entity key for a binding's role string.
// Custom and managed roles have one global identity, so the role string is
// the key. Basic roles are bound independently at every attachment point and
// must be scoped: the key becomes "<scopeKey>/<roleName>", with the scope key
// taken from the binding's own resource identifier. For project-level
// attachment the owning project name wins over the raw identifier segment,
// since project-scoped entities key on the project name.
func (s *IAMBindingService) RoleKeyForBinding(ctx context.Context, resource, project, role string) string {
	if !IsBasicRole(role) {
		return role
	}

	scopeKey := ""
	if target := s.ResolveResourceTarget(ctx, resource, project); target != nil {
		switch target.Type() {
		case OrganizationEntityType, FolderEntityType:
			scopeKey = target.Key
		default:
			scopeKey = s.canonicalProjectKey(target, project)
		}
	} else if project != "" {
		scopeKey = shortProjectName(project)
	}

	if scopeKey == "" {
		// Nothing to scope by; better an unscoped key than none at all.
		return role
	}
	return scopeKey + "/" + role
}

// FindOrCreateRoleEntity looks up the role entity for the computed key,
// creating it only for basic roles. A missing custom or managed role is not
// created here: it may never be ingested locally, and the relationship pass
// emits a mapped target for it instead.
func (s *IAMBindingService) FindOrCreateRoleEntity(ctx context.Context, roleKey, roleName string) *graph.Entity {
	if existing := s.Store.FindEntity(roleKey); existing != nil {
		return existing
	}
	if !IsBasicRole(roleName) {
		return nil
	}

	entry, _ := s.Catalog.Lookup(roleName)
	entity := &graph.Entity{
		Key:  roleKey,
		Type: RoleEntityType,
		Name: roleName,
		Properties: map[string]any{
			"name":        roleName,
			"title":       entry.Title,
			"permissions": entry.Permissions,
			"custom":      false,
		},
	}
	stored, created := s.Store.AddEntity(entity)
	if created {
		s.Logger.DebugM(
			fmt.Sprintf("created basic role entity %s", roleKey),
			globals.GCP_BINDINGS_MODULE_NAME,
		)
	}
	return stored
}

// ResolvePermissions returns the effective permission set for a role key. An
// already-ingested role entity is authoritative; otherwise the managed-role
// catalog answers, optionally backfilled from the IAM API when a getter is
// wired. Unknown roles resolve to nil, not an error.
func (s *IAMBindingService) ResolvePermissions(ctx context.Context, roleKey, roleName string) []string {
	if existing := s.Store.FindEntity(roleKey); existing != nil && existing.Type == RoleEntityType {
		return existing.StringSliceProperty("permissions")
	}

	if entry, ok := s.Catalog.Lookup(roleName); ok {
		return entry.Permissions
	}

	if s.RoleGetter != nil && !strings.HasPrefix(roleName, "projects/") {
		title, permissions, err := s.RoleGetter.GetRole(ctx, roleName)
		if err != nil {
			s.Logger.DebugM(
				fmt.Sprintf("could not fetch role %s: %v", roleName, err),
				globals.GCP_BINDINGS_MODULE_NAME,
			)
			return nil
		}
		if s.Catalog != nil {
			s.Catalog[roleName] = RoleCatalogEntry{Title: title, Permissions: permissions}
		}
		return permissions
	}
	return nil
}

// canonicalProjectKey picks one identifier per project for scope keys. The
// project name from the search result wins; when it is present together with
// a differing identifier segment (the project number), the pairing is
// remembered so later results that omit the project field still scope by the
// same name.
func (s *IAMBindingService) canonicalProjectKey(target *ResourceTarget, project string) string {
	if project != "" {
		name := shortProjectName(project)
		if target.Type() == ProjectEntityType && target.Key != name {
			if s.projectAliases == nil {
				s.projectAliases = make(map[string]string)
			}
			s.projectAliases[target.Key] = name
		}
		return name
	}
	if alias, ok := s.projectAliases[target.Key]; ok {
		return alias
	}
	return target.Key
}

func shortProjectName(project string) string {
	return strings.TrimPrefix(project, "projects/")
}
