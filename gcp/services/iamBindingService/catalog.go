package iambindingservice

// Basic role names. These are the only roles that exist independently at
// every level of the resource hierarchy and therefore need scope-prefixed
// entity keys.
const (
	RoleOwner   = "roles/owner"
	RoleEditor  = "roles/editor"
	RoleViewer  = "roles/viewer"
	RoleBrowser = "roles/browser"
)

var basicRoles = map[string]bool{
	RoleOwner:   true,
	RoleEditor:  true,
	RoleViewer:  true,
	RoleBrowser: true,
}

// IsBasicRole reports whether role is one of the four basic roles.
func IsBasicRole(role string) bool {
	return basicRoles[role]
}

// RoleCatalogEntry is one managed role definition: its display title and the
// permissions it grants.
type RoleCatalogEntry struct {
	Title       string
	Permissions []string
}

// RoleCatalog is a read-only mapping from managed role name to definition.
// It is injected into the service at construction so tests can substitute a
// small fixed catalog.
type RoleCatalog map[string]RoleCatalogEntry

// Lookup returns the catalog entry for a role name.
func (c RoleCatalog) Lookup(role string) (RoleCatalogEntry, bool) {
	entry, ok := c[role]
	return entry, ok
}

// DefaultRoleCatalog covers the four basic roles and the predefined roles
// most commonly seen in bindings. Permission lists are the subsets relevant
// to posture analysis, not the full multi-thousand-entry expansions.
func DefaultRoleCatalog() RoleCatalog {
	return RoleCatalog{
		RoleBrowser: {
			Title: "Browser",
			Permissions: []string{
				"resourcemanager.folders.get",
				"resourcemanager.folders.list",
				"resourcemanager.organizations.get",
				"resourcemanager.projects.get",
				"resourcemanager.projects.getIamPolicy",
				"resourcemanager.projects.list",
			},
		},
		RoleViewer: {
			Title: "Viewer",
			Permissions: []string{
				"resourcemanager.projects.get",
				"resourcemanager.projects.list",
				"compute.instances.get",
				"compute.instances.list",
				"storage.buckets.get",
				"storage.buckets.list",
				"storage.objects.get",
				"storage.objects.list",
				"iam.roles.get",
				"iam.roles.list",
				"iam.serviceAccounts.get",
				"iam.serviceAccounts.list",
				"monitoring.timeSeries.list",
				"logging.logEntries.list",
			},
		},
		RoleEditor: {
			Title: "Editor",
			Permissions: []string{
				"resourcemanager.projects.get",
				"resourcemanager.projects.list",
				"compute.instances.create",
				"compute.instances.delete",
				"compute.instances.get",
				"compute.instances.list",
				"compute.instances.setMetadata",
				"storage.buckets.create",
				"storage.buckets.get",
				"storage.buckets.list",
				"storage.objects.create",
				"storage.objects.delete",
				"storage.objects.get",
				"storage.objects.list",
				"iam.serviceAccounts.actAs",
				"iam.serviceAccounts.get",
				"iam.serviceAccounts.list",
				"cloudfunctions.functions.create",
				"cloudfunctions.functions.update",
				"pubsub.topics.create",
				"pubsub.topics.publish",
			},
		},
		RoleOwner: {
			Title: "Owner",
			Permissions: []string{
				"resourcemanager.projects.get",
				"resourcemanager.projects.list",
				"resourcemanager.projects.setIamPolicy",
				"resourcemanager.projects.getIamPolicy",
				"compute.instances.create",
				"compute.instances.delete",
				"compute.instances.get",
				"compute.instances.list",
				"compute.instances.setMetadata",
				"compute.instances.setServiceAccount",
				"storage.buckets.create",
				"storage.buckets.delete",
				"storage.buckets.get",
				"storage.buckets.list",
				"storage.buckets.setIamPolicy",
				"storage.objects.create",
				"storage.objects.delete",
				"storage.objects.get",
				"storage.objects.list",
				"iam.roles.create",
				"iam.roles.update",
				"iam.serviceAccountKeys.create",
				"iam.serviceAccounts.actAs",
				"iam.serviceAccounts.create",
				"iam.serviceAccounts.delete",
				"iam.serviceAccounts.get",
				"iam.serviceAccounts.list",
			},
		},

		// Commonly-referenced predefined roles
		"roles/storage.admin": {
			Title: "Storage Admin",
			Permissions: []string{
				"storage.buckets.create",
				"storage.buckets.delete",
				"storage.buckets.get",
				"storage.buckets.getIamPolicy",
				"storage.buckets.list",
				"storage.buckets.setIamPolicy",
				"storage.buckets.update",
				"storage.objects.create",
				"storage.objects.delete",
				"storage.objects.get",
				"storage.objects.getIamPolicy",
				"storage.objects.list",
				"storage.objects.setIamPolicy",
				"storage.objects.update",
			},
		},
		"roles/storage.objectViewer": {
			Title: "Storage Object Viewer",
			Permissions: []string{
				"storage.objects.get",
				"storage.objects.list",
			},
		},
		"roles/iam.serviceAccountUser": {
			Title: "Service Account User",
			Permissions: []string{
				"iam.serviceAccounts.actAs",
				"iam.serviceAccounts.get",
				"iam.serviceAccounts.list",
			},
		},
		"roles/iam.serviceAccountTokenCreator": {
			Title: "Service Account Token Creator",
			Permissions: []string{
				"iam.serviceAccounts.getAccessToken",
				"iam.serviceAccounts.getOpenIdToken",
				"iam.serviceAccounts.implicitDelegation",
				"iam.serviceAccounts.signBlob",
				"iam.serviceAccounts.signJwt",
			},
		},
		"roles/pubsub.publisher": {
			Title: "Pub/Sub Publisher",
			Permissions: []string{
				"pubsub.topics.publish",
			},
		},
		"roles/pubsub.subscriber": {
			Title: "Pub/Sub Subscriber",
			Permissions: []string{
				"pubsub.subscriptions.consume",
				"pubsub.topics.attachSubscription",
			},
		},
		"roles/cloudfunctions.invoker": {
			Title: "Cloud Functions Invoker",
			Permissions: []string{
				"cloudfunctions.functions.invoke",
			},
		},
		"roles/run.invoker": {
			Title: "Cloud Run Invoker",
			Permissions: []string{
				"run.jobs.run",
				"run.routes.invoke",
			},
		},
		"roles/secretmanager.secretAccessor": {
			Title: "Secret Manager Secret Accessor",
			Permissions: []string{
				"secretmanager.versions.access",
			},
		},
		"roles/bigquery.dataViewer": {
			Title: "BigQuery Data Viewer",
			Permissions: []string{
				"bigquery.datasets.get",
				"bigquery.datasets.getIamPolicy",
				"bigquery.tables.get",
				"bigquery.tables.getData",
				"bigquery.tables.list",
			},
		},
		"roles/compute.admin": {
			Title: "Compute Admin",
			Permissions: []string{
				"compute.instances.create",
				"compute.instances.delete",
				"compute.instances.get",
				"compute.instances.list",
				"compute.instances.setMetadata",
				"compute.instances.setServiceAccount",
				"compute.networks.create",
				"compute.networks.delete",
				"compute.firewalls.create",
				"compute.firewalls.delete",
			},
		},
	}
}
