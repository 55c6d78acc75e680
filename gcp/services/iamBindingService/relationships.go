package iambindingservice

import (
	"context"
	"fmt"
	"strings"

	"github.com/praetorian-inc/graph-google-cloud-1/gcp/shared"
	"github.com/praetorian-inc/graph-google-cloud-1/globals"
	"github.com/praetorian-inc/graph-google-cloud-1/graph"
)

// RelationshipSummary reports what one relationship pass produced.
type RelationshipSummary struct {
	Count      int
	Duplicates int
	Skipped    int
}

// BuildRoleRelationships emits one USES edge per binding, pointing at the
// role the binding grants. Basic roles get their scoped entity created on the
// spot; custom and predefined roles that were never ingested locally become
// mapped targets with creation enabled, so the far side materializes a
// placeholder role.
//
// Mapped role targets are never cleaned up when the underlying role is later
// deleted; stale placeholders accumulate until a full re-sync.
func (s *IAMBindingService) BuildRoleRelationships(ctx context.Context) (RelationshipSummary, error) {
	var summary RelationshipSummary

	err := s.Store.IterateEntities(graph.EntityFilter{Type: BindingEntityType}, func(binding *graph.Entity) error {
		roleName := binding.StringProperty("role")
		roleKey := binding.StringProperty("roleKey")
		if roleName == "" || roleKey == "" {
			s.Logger.WarnM(
				fmt.Sprintf("binding %s has no role, skipping", binding.Key),
				globals.GCP_BINDINGS_MODULE_NAME,
			)
			summary.Skipped++
			return nil
		}

		relationship := &graph.Relationship{
			Key:        usesRelationshipKey(binding.Key, roleKey),
			Class:      UsesRelationshipClass,
			Direction:  graph.DirectionForward,
			FromKey:    binding.Key,
			Properties: conditionProperties(binding),
		}

		if role := s.FindOrCreateRoleEntity(ctx, roleKey, roleName); role != nil {
			relationship.ToKey = role.Key
		} else {
			// Placeholder carries the catalog definition when the role is a
			// known managed one, so the materialized role is not an empty shell.
			properties := map[string]any{
				"name":   roleName,
				"custom": isCustomRoleName(roleName),
			}
			if entry, ok := s.Catalog.Lookup(roleName); ok {
				properties["title"] = entry.Title
				properties["permissions"] = entry.Permissions
			}
			relationship.Target = &graph.MappedTarget{
				FilterKeys: []map[string]any{{"_type": RoleEntityType, "_key": roleKey}},
				Properties: properties,
			}
		}

		if s.Store.AddRelationship(relationship) {
			summary.Count++
		} else {
			summary.Duplicates++
		}
		return nil
	})
	if err != nil {
		return summary, err
	}

	s.Logger.SuccessM(
		fmt.Sprintf("created %d binding-role relationships (%d duplicates, %d skipped)", summary.Count, summary.Duplicates, summary.Skipped),
		globals.GCP_BINDINGS_MODULE_NAME,
	)
	return summary, nil
}

// BuildPrincipalRelationships connects every binding to the principals its
// member list names. Individually-addressable principals hang off an ASSIGNED
// edge pointing from the principal at the binding; allUsers and
// allAuthenticatedUsers become a forward OPEN_TO edge at the shared everyone
// entity. Deleted and unparseable members are skipped with a warning.
func (s *IAMBindingService) BuildPrincipalRelationships(ctx context.Context) (RelationshipSummary, error) {
	var summary RelationshipSummary

	err := s.Store.IterateEntities(graph.EntityFilter{Type: BindingEntityType}, func(binding *graph.Entity) error {
		for _, member := range binding.StringSliceProperty("members") {
			descriptor, err := ParseMember(member)
			if err != nil {
				s.Logger.WarnM(
					fmt.Sprintf("skipping member on binding %s: %v", binding.Key, err),
					globals.GCP_BINDINGS_MODULE_NAME,
				)
				summary.Skipped++
				continue
			}
			if descriptor.Deleted {
				s.Logger.WarnM(
					fmt.Sprintf("skipping deleted principal %s on binding %s", descriptor.Identifier, binding.Key),
					globals.GCP_BINDINGS_MODULE_NAME,
				)
				summary.Skipped++
				continue
			}

			edge := principalEdges[descriptor.Kind]
			principalKey := PrincipalKey(descriptor)

			relationship := &graph.Relationship{
				Key:       principalRelationshipKey(binding.Key, edge.class, principalKey),
				Class:     edge.class,
				Direction: edge.direction,
				FromKey:   binding.Key,
			}

			if existing := s.Store.FindEntity(principalKey); existing != nil {
				relationship.ToKey = existing.Key
			} else {
				relationship.Target = &graph.MappedTarget{
					FilterKeys: []map[string]any{{"_type": edge.entityType, "_key": principalKey}},
					Properties: principalPlaceholderProperties(descriptor),
				}
			}

			if s.Store.AddRelationship(relationship) {
				summary.Count++
			} else {
				summary.Duplicates++
			}
		}
		return nil
	})
	if err != nil {
		return summary, err
	}

	s.Logger.SuccessM(
		fmt.Sprintf("created %d binding-principal relationships (%d duplicates, %d skipped)", summary.Count, summary.Duplicates, summary.Skipped),
		globals.GCP_BINDINGS_MODULE_NAME,
	)
	return summary, nil
}

// BuildResourceRelationships emits one ALLOWS edge per binding, pointing at
// the resource the binding is attached to. Resources are never materialized
// from this side: a binding proves a resource's policy exists, not that the
// resource should appear in the graph, so mapped resource targets always
// disable placeholder creation.
func (s *IAMBindingService) BuildResourceRelationships(ctx context.Context) (RelationshipSummary, error) {
	var summary RelationshipSummary

	err := s.Store.IterateEntities(graph.EntityFilter{Type: BindingEntityType}, func(binding *graph.Entity) error {
		resource := binding.StringProperty("resource")
		project := binding.StringProperty("projectName")

		target := s.ResolveResourceTarget(ctx, resource, project)
		if target == nil {
			summary.Skipped++
			return nil
		}

		relationship := &graph.Relationship{
			Key:        allowsRelationshipKey(binding.Key, target.Key),
			Class:      AllowsRelationshipClass,
			Direction:  graph.DirectionForward,
			FromKey:    binding.Key,
			Properties: conditionProperties(binding),
		}

		if target.Entity != nil {
			relationship.ToKey = target.Entity.Key
		} else {
			relationship.Target = &graph.MappedTarget{
				FilterKeys:         target.FilterKeys(),
				SkipTargetCreation: true,
			}
		}

		if s.Store.AddRelationship(relationship) {
			summary.Count++
		} else {
			summary.Duplicates++
		}
		return nil
	})
	if err != nil {
		return summary, err
	}

	s.Logger.SuccessM(
		fmt.Sprintf("created %d binding-resource relationships (%d duplicates, %d skipped)", summary.Count, summary.Duplicates, summary.Skipped),
		globals.GCP_BINDINGS_MODULE_NAME,
	)
	return summary, nil
}

// conditionProperties copies a binding's condition onto a relationship, so
// conditional grants stay visibly conditional on the edge itself.
func conditionProperties(binding *graph.Entity) map[string]any {
	condition := binding.ConditionProperty()
	if condition == nil {
		return nil
	}
	return map[string]any{
		"condition.title":       condition.Title,
		"condition.description": condition.Description,
		"condition.expression":  condition.Expression,
	}
}

// principalPlaceholderProperties stamps enough identity onto a created
// principal placeholder for it to be recognizable before its own ingestion
// runs.
func principalPlaceholderProperties(d PrincipalDescriptor) map[string]any {
	switch d.Kind {
	case PrincipalServiceAccount:
		properties := map[string]any{"email": d.Identifier, "username": d.Identifier}
		if project := shared.ExtractServiceAccountProject(d.Identifier); project != "" {
			properties["projectId"] = project
		}
		return properties
	case PrincipalUser, PrincipalGroup:
		return map[string]any{"email": d.Identifier, "username": d.Identifier}
	case PrincipalDomain:
		return map[string]any{"domainName": d.Identifier}
	case PrincipalAllUsers, PrincipalAllAuthedUsers:
		return map[string]any{"public": true, "member": d.Raw}
	default:
		return map[string]any{"projectId": d.Identifier}
	}
}

func isCustomRoleName(role string) bool {
	return !strings.HasPrefix(role, "roles/")
}
