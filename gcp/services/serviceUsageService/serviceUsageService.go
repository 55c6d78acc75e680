package serviceusageservice

import (
	"context"
	"fmt"
	"strings"

	gcpinternal "github.com/praetorian-inc/graph-google-cloud-1/internal/gcp"
	"github.com/praetorian-inc/graph-google-cloud-1/internal/gcp/sdk"
	serviceusage "google.golang.org/api/serviceusage/v1"
)

// ServiceUsageService answers "which services are enabled on this project".
// Answers are cached for the run so every resource resolution does not hit
// the Service Usage API again.
type ServiceUsageService struct {
	session *gcpinternal.SafeSession
}

func New() *ServiceUsageService {
	return &ServiceUsageService{}
}

func NewWithSession(session *gcpinternal.SafeSession) *ServiceUsageService {
	return &ServiceUsageService{session: session}
}

// GetEnabledServiceNames returns the set of service names (e.g.
// "compute.googleapis.com") enabled on the project. project may be a bare
// project ID or the "projects/<id>" form returned by policy search.
func (s *ServiceUsageService) GetEnabledServiceNames(ctx context.Context, project string) (map[string]struct{}, error) {
	parent := project
	if !strings.HasPrefix(parent, "projects/") {
		parent = "projects/" + parent
	}

	cacheKey := sdk.CacheKey("enabled-services", parent)
	if cached, ok := sdk.GetFromCache(cacheKey); ok {
		return cached.(map[string]struct{}), nil
	}

	svc, err := sdk.GetServiceUsageService(ctx, s.session)
	if err != nil {
		return nil, gcpinternal.ParseGCPError(err, "serviceusage.googleapis.com")
	}

	enabled := make(map[string]struct{})
	req := svc.Services.List(parent).Filter("state:ENABLED")
	err = req.Pages(ctx, func(page *serviceusage.ListServicesResponse) error {
		for _, service := range page.Services {
			// Format: projects/123/services/compute.googleapis.com
			parts := strings.Split(service.Name, "/")
			enabled[parts[len(parts)-1]] = struct{}{}
		}
		return nil
	})
	if err != nil {
		return nil, gcpinternal.ParseGCPError(err, fmt.Sprintf("serviceusage.googleapis.com (%s)", parent))
	}

	sdk.SetInCache(cacheKey, enabled)
	return enabled, nil
}
