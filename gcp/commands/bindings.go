package commands

import (
	"context"
	"fmt"

	iambindingservice "github.com/praetorian-inc/graph-google-cloud-1/gcp/services/iamBindingService"
	policysearchservice "github.com/praetorian-inc/graph-google-cloud-1/gcp/services/policySearchService"
	resourcemanagerservice "github.com/praetorian-inc/graph-google-cloud-1/gcp/services/resourceManagerService"
	roleservice "github.com/praetorian-inc/graph-google-cloud-1/gcp/services/roleService"
	serviceusageservice "github.com/praetorian-inc/graph-google-cloud-1/gcp/services/serviceUsageService"
	"github.com/praetorian-inc/graph-google-cloud-1/globals"
	"github.com/praetorian-inc/graph-google-cloud-1/graph"
	"github.com/praetorian-inc/graph-google-cloud-1/internal"
	gcpinternal "github.com/praetorian-inc/graph-google-cloud-1/internal/gcp"
	"github.com/spf13/cobra"
)

var GCPBindingsCommand = &cobra.Command{
	Use:     globals.GCP_BINDINGS_MODULE_NAME,
	Aliases: []string{"iam-bindings"},
	Short:   "Ingest IAM policy bindings and build the access graph",
	Long: `Ingest IAM policy bindings for a scope and connect them to roles,
principals, and resources.

Pipeline steps:
- Search all IAM policies in the scope (deduplicated across pages)
- Connect each binding to the role it grants (USES)
- Connect each binding to the principals it names (ASSIGNED / OPEN_TO)
- Connect each binding to the resource it is attached to (ALLOWS)`,
	Run: runGCPBindingsCommand,
}

// ------------------------------
// Module Struct
// ------------------------------
type BindingsModule struct {
	Scope   string
	Project string
	Store   *graph.MemStore
	Service *iambindingservice.IAMBindingService
	Logger  internal.Logger
	Report  internal.RunReport
}

// ------------------------------
// Command Entry Point
// ------------------------------
func runGCPBindingsCommand(cmd *cobra.Command, args []string) {
	logger := internal.NewLogger()
	logger.SetVerbosity(globals.GCP_VERBOSITY)

	scope, project, err := resolveScope(cmd)
	if err != nil {
		logger.FatalM(err.Error(), globals.GCP_BINDINGS_MODULE_NAME)
	}

	ctx := context.Background()
	session, err := gcpinternal.NewSafeSession(ctx)
	if err != nil {
		logger.FatalM(fmt.Sprintf("could not initialize credentials: %v", err), globals.GCP_BINDINGS_MODULE_NAME)
	}

	store := graph.NewMemStore()
	service := iambindingservice.New(
		store,
		policysearchservice.NewWithSession(session),
		serviceusageservice.NewWithSession(session),
		logger,
	)
	service.RoleGetter = roleservice.NewWithSession(session)

	module := &BindingsModule{
		Scope:   scope,
		Project: project,
		Store:   store,
		Service: service,
		Logger:  logger,
		Report:  internal.RunReport{Scope: scope},
	}

	module.seedScopeEntity(ctx, session)
	if err := module.Run(ctx); err != nil {
		logger.FatalM(err.Error(), globals.GCP_BINDINGS_MODULE_NAME)
	}

	internal.PrintRunReport(module.Report)
	outputDirectory, _ := cmd.Flags().GetString("output")
	if _, err := internal.WriteRunReport(outputDirectory, module.Report, logger); err != nil {
		logger.ErrorM(err.Error(), globals.GCP_BINDINGS_MODULE_NAME)
	}
}

// Run executes the four pipeline steps in order. Ingestion failure aborts;
// a relationship pass failure aborts with whatever the report holds so far.
func (m *BindingsModule) Run(ctx context.Context) error {
	ingest, err := m.Service.IngestBindings(ctx, m.Scope)
	if err != nil {
		return fmt.Errorf("binding ingestion failed: %w", err)
	}
	m.Report.Steps = append(m.Report.Steps, internal.StepResult{
		Step:       globals.STEP_FETCH_IAM_BINDINGS,
		Entities:   ingest.Count,
		Duplicates: ingest.Duplicates,
	})

	passes := []struct {
		step string
		run  func(context.Context) (iambindingservice.RelationshipSummary, error)
	}{
		{globals.STEP_BINDING_ROLE_RELATIONSHIPS, m.Service.BuildRoleRelationships},
		{globals.STEP_BINDING_PRINCIPAL_RELATIONSHIPS, m.Service.BuildPrincipalRelationships},
		{globals.STEP_BINDING_RESOURCE_RELATIONSHIPS, m.Service.BuildResourceRelationships},
	}
	for _, pass := range passes {
		summary, err := pass.run(ctx)
		if err != nil {
			return fmt.Errorf("%s failed: %w", pass.step, err)
		}
		m.Report.Steps = append(m.Report.Steps, internal.StepResult{
			Step:          pass.step,
			Relationships: summary.Count,
			Duplicates:    summary.Duplicates,
		})
	}
	return nil
}

// seedScopeEntity stores the scope's own project entity when the scope is a
// project, so attachment-point resolution finds a local hit instead of
// emitting a mapped edge for the project the run is scoped to. Failure is not
// fatal; resolution degrades to mapped targets.
func (m *BindingsModule) seedScopeEntity(ctx context.Context, session *gcpinternal.SafeSession) {
	if m.Project == "" {
		return
	}

	rm := resourcemanagerservice.NewWithSession(session)
	project, err := rm.GetProject(ctx, m.Project)
	if err != nil {
		m.Logger.WarnM(
			fmt.Sprintf("could not fetch project %s: %v", m.Project, err),
			globals.GCP_BINDINGS_MODULE_NAME,
		)
		return
	}

	m.Report.Account = project.ProjectID
	m.Store.AddEntity(&graph.Entity{
		Key:  project.ProjectID,
		Type: iambindingservice.ProjectEntityType,
		Name: project.Name,
		Properties: map[string]any{
			"projectId":     project.ProjectID,
			"projectNumber": project.Number,
			"state":         project.State,
		},
	})
}

// resolveScope turns the flag set into a policy-search scope. --scope wins;
// otherwise --organization or --project builds one.
func resolveScope(cmd *cobra.Command) (scope string, project string, err error) {
	scope, _ = cmd.Flags().GetString("scope")
	project, _ = cmd.Flags().GetString("project")
	organization, _ := cmd.Flags().GetString("organization")

	switch {
	case scope != "":
		return scope, project, nil
	case organization != "":
		return "organizations/" + organization, project, nil
	case project != "":
		return "projects/" + project, project, nil
	}
	return "", "", fmt.Errorf("a scope is required: pass --scope, --project, or --organization")
}
