package cli

import (
	"github.com/praetorian-inc/graph-google-cloud-1/gcp/commands"
	"github.com/praetorian-inc/graph-google-cloud-1/globals"
	"github.com/praetorian-inc/graph-google-cloud-1/internal"
	"github.com/spf13/cobra"
)

var (
	// Scope selection options
	GCPScope        string
	GCPProjectID    string
	GCPOrganization string

	// Output options
	GCPOutputDirectory string

	// logger
	GCPLogger = internal.NewLogger()

	rootCmd = &cobra.Command{
		Use:   "gcp-iam-graph",
		Long:  `See "Available Commands" for the supported modules below`,
		Short: "Build an access graph from GCP IAM policy bindings",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			GCPLogger.SetVerbosity(globals.GCP_VERBOSITY)
		},
	}
)

func init() {
	// Scope selection: an explicit search scope wins over the project and
	// organization conveniences.
	rootCmd.PersistentFlags().StringVar(&GCPScope, "scope", "", "Policy search scope (projects/<id>, folders/<id>, or organizations/<id>)")
	rootCmd.PersistentFlags().StringVarP(&GCPProjectID, "project", "p", "", "GCP project ID")
	rootCmd.PersistentFlags().StringVarP(&GCPOrganization, "organization", "o", "", "Organization number")

	rootCmd.PersistentFlags().IntVarP(&globals.GCP_VERBOSITY, "verbosity", "v", 0, "Raise to print debug output")
	rootCmd.PersistentFlags().StringVar(&GCPOutputDirectory, "output", "", "Directory for the run report (omit to skip writing)")

	rootCmd.AddCommand(
		commands.GCPBindingsCommand,
		commands.GCPWhoCanCommand,
	)
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
