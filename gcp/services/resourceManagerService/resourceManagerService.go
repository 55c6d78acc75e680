// Package resourcemanagerservice resolves project metadata through the Cloud
// Resource Manager API. The bindings pipeline uses it to seed the scope's own
// project entity so attachment-point resolution has a local hit.
package resourcemanagerservice

import (
	"context"

	gcpinternal "github.com/praetorian-inc/graph-google-cloud-1/internal/gcp"
	"github.com/praetorian-inc/graph-google-cloud-1/internal/gcp/sdk"
)

// Project is the subset of project metadata the pipeline cares about.
type Project struct {
	ProjectID string
	Name      string
	Number    int64
	State     string
}

type ResourceManagerService struct {
	session *gcpinternal.SafeSession
}

func New() *ResourceManagerService {
	return &ResourceManagerService{}
}

func NewWithSession(session *gcpinternal.SafeSession) *ResourceManagerService {
	return &ResourceManagerService{session: session}
}

// GetProject fetches a project by ID. Results are cached for the run.
func (s *ResourceManagerService) GetProject(ctx context.Context, projectID string) (*Project, error) {
	cacheKey := sdk.CacheKey("project", projectID)
	if cached, ok := sdk.GetFromCache(cacheKey); ok {
		project := cached.(Project)
		return &project, nil
	}

	svc, err := sdk.GetResourceManagerService(ctx, s.session)
	if err != nil {
		return nil, gcpinternal.ParseGCPError(err, "cloudresourcemanager.googleapis.com")
	}

	result, err := svc.Projects.Get(projectID).Context(ctx).Do()
	if err != nil {
		return nil, gcpinternal.ParseGCPError(err, "cloudresourcemanager.googleapis.com")
	}

	project := Project{
		ProjectID: result.ProjectId,
		Name:      result.Name,
		Number:    result.ProjectNumber,
		State:     result.LifecycleState,
	}
	sdk.SetInCache(cacheKey, project)
	return &project, nil
}
