package iambindingservice

import (
	"context"
	"fmt"
	"slices"

	"github.com/praetorian-inc/graph-google-cloud-1/globals"
	"github.com/praetorian-inc/graph-google-cloud-1/graph"
)

// Grant is one answer row from WhoCanAccess: a principal that holds a role on
// the queried resource, through which binding, and whether the grant is
// public or gated by a condition.
type Grant struct {
	BindingKey  string
	Role        string
	Principal   string
	Kind        PrincipalKind
	Public      bool
	Conditional bool
}

// WhoCanAccess answers "who can touch this resource" from the ingested
// bindings. The resource argument matches either the raw resource identifier
// or the resolved target key; an empty permission matches every binding,
// otherwise only bindings whose denormalized permission set contains it.
// Deleted and unparseable members are left out of the answer.
func (s *IAMBindingService) WhoCanAccess(ctx context.Context, resource, permission string) ([]Grant, error) {
	var grants []Grant

	err := s.Store.IterateEntities(graph.EntityFilter{Type: BindingEntityType}, func(binding *graph.Entity) error {
		if !s.bindingCoversResource(ctx, binding, resource) {
			return nil
		}
		if permission != "" && !slices.Contains(binding.StringSliceProperty("permissions"), permission) {
			return nil
		}

		conditional := binding.ConditionProperty() != nil
		for _, member := range binding.StringSliceProperty("members") {
			descriptor, err := ParseMember(member)
			if err != nil || descriptor.Deleted {
				continue
			}
			grants = append(grants, Grant{
				BindingKey:  binding.Key,
				Role:        binding.StringProperty("role"),
				Principal:   descriptor.Identifier,
				Kind:        descriptor.Kind,
				Public:      descriptor.Kind == PrincipalAllUsers || descriptor.Kind == PrincipalAllAuthedUsers,
				Conditional: conditional,
			})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.Logger.DebugM(
		fmt.Sprintf("whocan query for %s matched %d grants", resource, len(grants)),
		globals.GCP_WHOCAN_MODULE_NAME,
	)
	return grants, nil
}

// PrincipalBindings returns the keys of bindings directly assigned to a
// principal, walking the exported access graph. Mapped relationships have no
// local endpoint and do not appear; this answers for principals the store
// actually holds.
func (s *IAMBindingService) PrincipalBindings(principalKey string) ([]string, error) {
	return graph.DirectNeighbors(s.Store, principalKey, AssignedRelationshipClass)
}

func (s *IAMBindingService) bindingCoversResource(ctx context.Context, binding *graph.Entity, resource string) bool {
	raw := binding.StringProperty("resource")
	if raw == resource {
		return true
	}
	target := s.ResolveResourceTarget(ctx, raw, binding.StringProperty("projectName"))
	return target != nil && target.Key == resource
}
