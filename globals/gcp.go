package globals

// Module names
const GCP_BINDINGS_MODULE_NAME string = "bindings"
const GCP_WHOCAN_MODULE_NAME string = "whocan"

// Step identifiers reported with missing-permission events and in the run
// report. One per pipeline stage, executed in this order.
const (
	STEP_FETCH_IAM_BINDINGS              string = "fetch-iam-bindings"
	STEP_BINDING_ROLE_RELATIONSHIPS      string = "build-binding-role-relationships"
	STEP_BINDING_PRINCIPAL_RELATIONSHIPS string = "build-binding-principal-relationships"
	STEP_BINDING_RESOURCE_RELATIONSHIPS  string = "build-binding-resource-relationships"
)

// Permission required by the policy search step. Surfaced in the
// missing-permission event when the Cloud Asset API rejects the search.
const GCP_SEARCH_IAM_POLICIES_PERMISSION string = "cloudasset.assets.searchAllIamPolicies"

// Run verbosity, raised by the -v flag.
var GCP_VERBOSITY int = 0
