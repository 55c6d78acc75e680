package iambindingservice

import (
	"context"
	"errors"
	"fmt"

	assetpb "cloud.google.com/go/asset/apiv1/assetpb"
	"google.golang.org/genproto/googleapis/type/expr"
	"google.golang.org/protobuf/encoding/protojson"

	"github.com/praetorian-inc/graph-google-cloud-1/gcp/shared"
	"github.com/praetorian-inc/graph-google-cloud-1/globals"
	"github.com/praetorian-inc/graph-google-cloud-1/graph"
	gcpinternal "github.com/praetorian-inc/graph-google-cloud-1/internal/gcp"
)

// IngestSummary reports what one ingestion run produced.
type IngestSummary struct {
	Count      int
	Duplicates int
}

// IngestBindings walks every page of IAM policy search results for the scope
// and stores one binding entity per unique (binding, resource) pair. The
// search API repeats bindings across pages and gives no ordering guarantee,
// so duplicates are detected by key and counted, never re-stored.
//
// A permission-denied response is not fatal: the step logs it, notifies the
// missing-permission sink, and returns whatever was collected before the
// denial. Any other error aborts the run.
func (s *IAMBindingService) IngestBindings(ctx context.Context, scope string) (IngestSummary, error) {
	var summary IngestSummary
	seen := make(map[string]struct{})

	pageToken := ""
	for {
		page, err := s.Searcher.SearchIamPolicies(ctx, scope, pageToken)
		if err != nil {
			if errors.Is(err, gcpinternal.ErrPermissionDenied) {
				s.Logger.WarnM(
					fmt.Sprintf("IAM policy search denied for scope %s, returning partial results", scope),
					globals.GCP_BINDINGS_MODULE_NAME,
				)
				s.Notifier.NotifyMissingPermission(MissingPermissionEvent{
					StepID:     globals.STEP_FETCH_IAM_BINDINGS,
					Permission: globals.GCP_SEARCH_IAM_POLICIES_PERMISSION,
				})
				return summary, nil
			}
			return summary, err
		}

		for _, result := range page.Results {
			policy := result.GetPolicy()
			if policy == nil {
				continue
			}
			for _, binding := range policy.GetBindings() {
				if binding.GetRole() == "" {
					s.Logger.WarnM(
						fmt.Sprintf("skipping binding without role on %s", result.GetResource()),
						globals.GCP_BINDINGS_MODULE_NAME,
					)
					continue
				}

				condition := conditionFromExpr(binding.GetCondition())
				key := BindingKey(result.GetResource(), result.GetProject(), binding.GetRole(), binding.GetMembers(), condition)
				if _, dup := seen[key]; dup {
					summary.Duplicates++
					continue
				}
				seen[key] = struct{}{}

				if _, created := s.Store.AddEntity(s.bindingEntity(ctx, key, result, binding.GetRole(), binding.GetMembers(), condition)); created {
					summary.Count++
				} else {
					summary.Duplicates++
				}
			}
		}

		if page.NextPageToken == "" {
			break
		}
		pageToken = page.NextPageToken
	}

	s.Logger.SuccessM(
		fmt.Sprintf("ingested %d IAM bindings for scope %s (%d duplicates skipped)", summary.Count, scope, summary.Duplicates),
		globals.GCP_BINDINGS_MODULE_NAME,
	)
	return summary, nil
}

// bindingEntity builds the graph entity for one binding occurrence, with the
// role's permissions denormalized onto it so permission queries never need a
// join through the role entity.
func (s *IAMBindingService) bindingEntity(ctx context.Context, key string, result *assetpb.IamPolicySearchResult, role string, members []string, condition *graph.Condition) *graph.Entity {
	roleKey := s.RoleKeyForBinding(ctx, result.GetResource(), result.GetProject(), role)

	properties := map[string]any{
		"resource":    result.GetResource(),
		"projectName": shortProjectName(result.GetProject()),
		"role":        role,
		"roleKey":     roleKey,
		"members":     members,
		"permissions": s.ResolvePermissions(ctx, roleKey, role),
		"isPublic":    shared.HasPublicMember(members),
	}
	if condition != nil {
		properties["condition.title"] = condition.Title
		properties["condition.description"] = condition.Description
		properties["condition.expression"] = condition.Expression
	}

	entity := &graph.Entity{
		Key:        key,
		Type:       BindingEntityType,
		Name:       role,
		Properties: properties,
	}
	if raw, err := protojson.Marshal(result); err == nil {
		entity.Raw = raw
	} else {
		s.Logger.DebugM(
			fmt.Sprintf("could not retain raw payload for %s: %v", result.GetResource(), err),
			globals.GCP_BINDINGS_MODULE_NAME,
		)
	}
	return entity
}

func conditionFromExpr(e *expr.Expr) *graph.Condition {
	if e == nil {
		return nil
	}
	return &graph.Condition{
		Title:       e.GetTitle(),
		Description: e.GetDescription(),
		Expression:  e.GetExpression(),
	}
}
