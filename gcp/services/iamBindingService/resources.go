package iambindingservice

import (
	"context"
	"fmt"
	"strings"

	"github.com/praetorian-inc/graph-google-cloud-1/globals"
	"github.com/praetorian-inc/graph-google-cloud-1/graph"
)

// resourceKindTypes maps "<service>/<kind>" extracted from a full resource
// name to the graph entity types that kind can ingest as. Entries with more
// than one candidate are ambiguous: the identifier alone cannot determine the
// entity type, so relationship matching for them must filter by key only.
var resourceKindTypes = map[string][]string{
	"cloudresourcemanager.googleapis.com/projects":      {ProjectEntityType},
	"cloudresourcemanager.googleapis.com/organizations": {OrganizationEntityType},
	"cloudresourcemanager.googleapis.com/folders":       {FolderEntityType},
	"storage.googleapis.com/buckets":                    {"google_storage_bucket"},
	"iam.googleapis.com/serviceAccounts":                {ServiceAccountEntityType},
	"compute.googleapis.com/instances":                  {"google_compute_instance"},
	"compute.googleapis.com/disks":                      {"google_compute_disk"},
	"compute.googleapis.com/images":                     {"google_compute_image"},
	"compute.googleapis.com/subnetworks":                {"google_compute_subnetwork"},
	"cloudfunctions.googleapis.com/functions":           {"google_cloud_function"},
	"run.googleapis.com/services":                       {"google_cloud_run_service"},
	"pubsub.googleapis.com/topics":                      {"google_pubsub_topic"},
	"pubsub.googleapis.com/subscriptions":               {"google_pubsub_subscription"},
	"bigquery.googleapis.com/datasets":                  {"google_bigquery_dataset"},
	"bigquery.googleapis.com/tables":                    {"google_bigquery_table"},
	"secretmanager.googleapis.com/secrets":              {"google_secret_manager_secret"},
	"cloudkms.googleapis.com/keyRings":                  {"google_kms_key_ring"},
	"cloudkms.googleapis.com/cryptoKeys":                {"google_kms_crypto_key"},
	"container.googleapis.com/clusters":                 {"google_container_cluster"},
	// Cloud SQL instances ingest as one of several engine-specific types; the
	// resource name does not say which.
	"sqladmin.googleapis.com/instances": {
		"google_sql_mysql_instance",
		"google_sql_postgres_instance",
		"google_sql_sql_server_instance",
	},
}

// Attachment-point kinds are keyed by their short identifier (the project ID,
// folder number, or organization number); everything else keys on the full
// resource name.
var attachmentPointKinds = map[string]bool{
	"cloudresourcemanager.googleapis.com/projects":      true,
	"cloudresourcemanager.googleapis.com/organizations": true,
	"cloudresourcemanager.googleapis.com/folders":       true,
}

// ResourceTarget is the outcome of resolving a resource identifier: the graph
// key the resource would have, the candidate entity types, and the local
// entity when one exists. Entity stays nil when the identifier is malformed,
// the owning service is disabled, or the resource was simply never ingested.
type ResourceTarget struct {
	Key       string
	Types     []string
	Ambiguous bool
	Entity    *graph.Entity
}

// Type returns the single candidate type, or "" when unknown or ambiguous.
func (t *ResourceTarget) Type() string {
	if t == nil || t.Ambiguous || len(t.Types) != 1 {
		return ""
	}
	return t.Types[0]
}

// FilterKeys builds the mapped-relationship filter for this target: type plus
// key normally, key only when no single type can be asserted.
func (t *ResourceTarget) FilterKeys() []map[string]any {
	if typ := t.Type(); typ != "" {
		return []map[string]any{{"_type": typ, "_key": t.Key}}
	}
	return []map[string]any{{"_key": t.Key}}
}

// ResolveResourceTarget maps a full resource name
// ("//<service>/<collection>/<id>/...") to a ResourceTarget. The service
// segment is checked against the project's enabled services first: a
// disabled service cannot have ingested entities, so its resources are
// treated as unresolved without a store lookup. Basic-role scoping reuses
// this to obtain an attachment point's own key.
func (s *IAMBindingService) ResolveResourceTarget(ctx context.Context, resource, project string) *ResourceTarget {
	segments := strings.Split(resource, "/")
	// "//<service>/<collection>/<id>" splits into five segments minimum
	if len(segments) < 5 || segments[2] == "" {
		s.Logger.WarnM(
			fmt.Sprintf("skipping malformed resource identifier %q", resource),
			globals.GCP_BINDINGS_MODULE_NAME,
		)
		return nil
	}

	service := segments[2]
	kind := service + "/" + segments[len(segments)-2]

	target := &ResourceTarget{Types: resourceKindTypes[kind]}
	target.Ambiguous = len(target.Types) > 1

	if attachmentPointKinds[kind] {
		target.Key = segments[len(segments)-1]
	} else {
		target.Key = resource
	}

	if !s.serviceEnabled(ctx, service, project) {
		return target
	}
	if target.Ambiguous {
		// No single type can be asserted, so a key-only store hit could not be
		// trusted either; leave resolution to key-only mapped matching.
		return target
	}

	target.Entity = s.Store.FindEntity(target.Key)
	return target
}

// serviceEnabled checks the enabled-service set for the project owning the
// binding. Lookup failures degrade to "not enabled": resolution falls back to
// a mapped relationship rather than failing the pass.
func (s *IAMBindingService) serviceEnabled(ctx context.Context, service, project string) bool {
	if project == "" {
		return false
	}
	enabled, err := s.Services.GetEnabledServiceNames(ctx, project)
	if err != nil {
		s.Logger.WarnM(
			fmt.Sprintf("could not list enabled services for %s: %v", project, err),
			globals.GCP_BINDINGS_MODULE_NAME,
		)
		return false
	}
	_, ok := enabled[service]
	return ok
}
