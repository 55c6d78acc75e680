package sdk

import (
	"context"
	"fmt"

	asset "cloud.google.com/go/asset/apiv1"
	gcpinternal "github.com/praetorian-inc/graph-google-cloud-1/internal/gcp"
	cloudresourcemanager "google.golang.org/api/cloudresourcemanager/v1"
	iam "google.golang.org/api/iam/v1"
	serviceusage "google.golang.org/api/serviceusage/v1"
)

// GetAssetClient returns a Cloud Asset client
func GetAssetClient(ctx context.Context, session *gcpinternal.SafeSession) (*asset.Client, error) {
	var client *asset.Client
	var err error
	if session != nil {
		client, err = asset.NewClient(ctx, session.GetClientOption())
	} else {
		client, err = asset.NewClient(ctx)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create asset client: %w", err)
	}
	return client, nil
}

// GetServiceUsageService returns a Service Usage service
func GetServiceUsageService(ctx context.Context, session *gcpinternal.SafeSession) (*serviceusage.Service, error) {
	var svc *serviceusage.Service
	var err error
	if session != nil {
		svc, err = serviceusage.NewService(ctx, session.GetClientOption())
	} else {
		svc, err = serviceusage.NewService(ctx)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create service usage service: %w", err)
	}
	return svc, nil
}

// GetIAMService returns an IAM Admin service
func GetIAMService(ctx context.Context, session *gcpinternal.SafeSession) (*iam.Service, error) {
	var svc *iam.Service
	var err error
	if session != nil {
		svc, err = iam.NewService(ctx, session.GetClientOption())
	} else {
		svc, err = iam.NewService(ctx)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create IAM service: %w", err)
	}
	return svc, nil
}

// GetResourceManagerService returns a Cloud Resource Manager service
func GetResourceManagerService(ctx context.Context, session *gcpinternal.SafeSession) (*cloudresourcemanager.Service, error) {
	var svc *cloudresourcemanager.Service
	var err error
	if session != nil {
		svc, err = cloudresourcemanager.NewService(ctx, session.GetClientOption())
	} else {
		svc, err = cloudresourcemanager.NewService(ctx)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create resource manager service: %w", err)
	}
	return svc, nil
}
