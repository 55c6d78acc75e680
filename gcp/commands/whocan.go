package commands

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/aquasecurity/table"
	iambindingservice "github.com/praetorian-inc/graph-google-cloud-1/gcp/services/iamBindingService"
	policysearchservice "github.com/praetorian-inc/graph-google-cloud-1/gcp/services/policySearchService"
	roleservice "github.com/praetorian-inc/graph-google-cloud-1/gcp/services/roleService"
	serviceusageservice "github.com/praetorian-inc/graph-google-cloud-1/gcp/services/serviceUsageService"
	"github.com/praetorian-inc/graph-google-cloud-1/globals"
	"github.com/praetorian-inc/graph-google-cloud-1/graph"
	"github.com/praetorian-inc/graph-google-cloud-1/internal"
	gcpinternal "github.com/praetorian-inc/graph-google-cloud-1/internal/gcp"
	"github.com/spf13/cobra"
)

var GCPWhoCanCommand = &cobra.Command{
	Use:   globals.GCP_WHOCAN_MODULE_NAME,
	Short: "Answer who can access a resource, optionally filtered by permission",
	Long: `Ingest IAM bindings for the scope and report every principal with
access to the given resource. With --permission, only bindings whose role
grants that permission count.`,
	Run: runGCPWhoCanCommand,
}

func init() {
	GCPWhoCanCommand.Flags().String("resource", "", "Resource identifier or key to query (required)")
	GCPWhoCanCommand.Flags().String("permission", "", "Only report grants that include this permission")
	GCPWhoCanCommand.MarkFlagRequired("resource")
}

func runGCPWhoCanCommand(cmd *cobra.Command, args []string) {
	logger := internal.NewLogger()
	logger.SetVerbosity(globals.GCP_VERBOSITY)

	scope, _, err := resolveScope(cmd)
	if err != nil {
		logger.FatalM(err.Error(), globals.GCP_WHOCAN_MODULE_NAME)
	}
	resource, _ := cmd.Flags().GetString("resource")
	permission, _ := cmd.Flags().GetString("permission")

	ctx := context.Background()
	session, err := gcpinternal.NewSafeSession(ctx)
	if err != nil {
		logger.FatalM(fmt.Sprintf("could not initialize credentials: %v", err), globals.GCP_WHOCAN_MODULE_NAME)
	}

	service := iambindingservice.New(
		graph.NewMemStore(),
		policysearchservice.NewWithSession(session),
		serviceusageservice.NewWithSession(session),
		logger,
	)
	service.RoleGetter = roleservice.NewWithSession(session)

	if _, err := service.IngestBindings(ctx, scope); err != nil {
		logger.FatalM(fmt.Sprintf("binding ingestion failed: %v", err), globals.GCP_WHOCAN_MODULE_NAME)
	}

	grants, err := service.WhoCanAccess(ctx, resource, permission)
	if err != nil {
		logger.FatalM(fmt.Sprintf("whocan query failed: %v", err), globals.GCP_WHOCAN_MODULE_NAME)
	}
	if len(grants) == 0 {
		logger.InfoM(fmt.Sprintf("no grants found for %s", resource), globals.GCP_WHOCAN_MODULE_NAME)
		return
	}

	printGrants(grants)
}

func printGrants(grants []iambindingservice.Grant) {
	t := table.New(os.Stdout)
	t.SetHeaders("Principal", "Kind", "Role", "Public", "Conditional")
	t.SetHeaderStyle(table.StyleBold)
	t.SetDividers(table.UnicodeRoundedDividers)
	t.SetAlignment(table.AlignLeft)
	for _, grant := range grants {
		t.AddRow(
			grant.Principal,
			string(grant.Kind),
			grant.Role,
			strconv.FormatBool(grant.Public),
			strconv.FormatBool(grant.Conditional),
		)
	}
	t.Render()
}
