// Package iambindingservice converts IAM policy-search results into a
// deduplicated graph of binding entities connected to principals, roles, and
// resources. Ingestion and the three relationship passes are separate
// operations over the shared store because role, principal, and resource
// resolution fail and retry independently.
package iambindingservice

import (
	"context"

	policysearchservice "github.com/praetorian-inc/graph-google-cloud-1/gcp/services/policySearchService"
	"github.com/praetorian-inc/graph-google-cloud-1/globals"
	"github.com/praetorian-inc/graph-google-cloud-1/graph"
	"github.com/praetorian-inc/graph-google-cloud-1/internal"
)

// Graph entity types this engine reads and writes.
const (
	BindingEntityType        = "google_iam_binding"
	RoleEntityType           = "google_iam_role"
	UserEntityType           = "google_user"
	GroupEntityType          = "google_group"
	DomainEntityType         = "google_domain"
	ServiceAccountEntityType = "google_iam_service_account"
	EveryoneEntityType       = "google_everyone"
	ProjectEntityType        = "google_cloud_project"
	OrganizationEntityType   = "google_cloud_organization"
	FolderEntityType         = "google_cloud_folder"
)

// Relationship classes emitted by the three passes. Relationship keys are
// prefixed per class so the passes can never collide in the store.
const (
	UsesRelationshipClass     = "USES"
	AssignedRelationshipClass = "ASSIGNED"
	OpenToRelationshipClass   = "OPEN_TO"
	AllowsRelationshipClass   = "ALLOWS"
)

// PolicySearcher yields IAM policy search results one page at a time.
type PolicySearcher interface {
	SearchIamPolicies(ctx context.Context, scope, pageToken string) (*policysearchservice.PolicyPage, error)
}

// ServiceLister answers which services are enabled for a project.
type ServiceLister interface {
	GetEnabledServiceNames(ctx context.Context, project string) (map[string]struct{}, error)
}

// RoleGetter optionally fetches a role definition from the IAM API. Used to
// fill catalog gaps for predefined roles observed only through bindings.
type RoleGetter interface {
	GetRole(ctx context.Context, name string) (title string, permissions []string, err error)
}

// MissingPermissionEvent is emitted once per permission-denied condition so a
// single missing scope never fails the whole ingestion.
type MissingPermissionEvent struct {
	StepID     string
	Permission string
}

// MissingPermissionNotifier receives missing-permission events.
type MissingPermissionNotifier interface {
	NotifyMissingPermission(event MissingPermissionEvent)
}

// IAMBindingService is the binding resolution engine. All collaborators are
// injected; the zero-value fields filled by New are enough for a live run,
// and tests substitute fakes.
type IAMBindingService struct {
	Store    graph.Store
	Searcher PolicySearcher
	Services ServiceLister
	Notifier MissingPermissionNotifier
	Catalog  RoleCatalog
	// RoleGetter is optional; nil disables live role lookups.
	RoleGetter RoleGetter
	Logger     internal.Logger

	// projectAliases maps a project's identifier segment (often the project
	// number) to the project name seen alongside it, so basic-role scope keys
	// stay canonical when a search result omits the project field.
	projectAliases map[string]string
}

func New(store graph.Store, searcher PolicySearcher, services ServiceLister, logger internal.Logger) *IAMBindingService {
	return &IAMBindingService{
		Store:          store,
		Searcher:       searcher,
		Services:       services,
		Notifier:       loggingNotifier{logger: logger},
		Catalog:        DefaultRoleCatalog(),
		Logger:         logger,
		projectAliases: make(map[string]string),
	}
}

// loggingNotifier is the default notifier: it only logs. Deployments wire a
// real event sink instead.
type loggingNotifier struct {
	logger internal.Logger
}

func (n loggingNotifier) NotifyMissingPermission(event MissingPermissionEvent) {
	n.logger.WarnM(
		"step "+event.StepID+" is missing permission "+event.Permission,
		globals.GCP_BINDINGS_MODULE_NAME,
	)
}
