// Package roleservice fetches managed and custom role definitions from the
// IAM admin API. Definitions are immutable enough for a run's lifetime that
// results are cached process-wide.
package roleservice

import (
	"context"

	gcpinternal "github.com/praetorian-inc/graph-google-cloud-1/internal/gcp"
	"github.com/praetorian-inc/graph-google-cloud-1/internal/gcp/sdk"
)

type roleDefinition struct {
	Title       string
	Permissions []string
}

type RoleService struct {
	session *gcpinternal.SafeSession
}

func New() *RoleService {
	return &RoleService{}
}

func NewWithSession(session *gcpinternal.SafeSession) *RoleService {
	return &RoleService{session: session}
}

// GetRole returns the title and included permissions of a role by its full
// name ("roles/storage.admin" or "projects/<id>/roles/<custom>").
func (s *RoleService) GetRole(ctx context.Context, name string) (string, []string, error) {
	cacheKey := sdk.CacheKey("role", name)
	if cached, ok := sdk.GetFromCache(cacheKey); ok {
		definition := cached.(roleDefinition)
		return definition.Title, definition.Permissions, nil
	}

	svc, err := sdk.GetIAMService(ctx, s.session)
	if err != nil {
		return "", nil, gcpinternal.ParseGCPError(err, "iam.googleapis.com")
	}

	role, err := svc.Roles.Get(name).Context(ctx).Do()
	if err != nil {
		return "", nil, gcpinternal.ParseGCPError(err, "iam.googleapis.com")
	}

	sdk.SetInCache(cacheKey, roleDefinition{Title: role.Title, Permissions: role.IncludedPermissions})
	return role.Title, role.IncludedPermissions, nil
}
