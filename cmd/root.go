package cmd

import (
	"fmt"
	"os"

	"github.com/RobsonDevCode/osvdesk/internal/clients"
	"github.com/RobsonDevCode/osvdesk/internal/configuration"
	"github.com/RobsonDevCode/osvdesk/internal/server"
	exportservice "github.com/RobsonDevCode/osvdesk/internal/services/exportService"
	previewservice "github.com/RobsonDevCode/osvdesk/internal/services/previewService"
	remoteloaderservice "github.com/RobsonDevCode/osvdesk/internal/services/remoteLoaderService"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// Dependencies are built in main and handed to the commands.
type Dependencies struct {
	Config       *configuration.Config
	Logger       *zap.Logger
	RemoteLoader remoteloaderservice.RemoteLoaderService
	Preview      previewservice.PreviewService
	Exporter     exportservice.ExportService
	TriageClient clients.TriageClientService
	Server       *server.Server
}

var deps = Dependencies{
	Config: configuration.Default(),
	Logger: zap.NewNop(),
}

var rootCmd = &cobra.Command{
	Use:   "osvdesk",
	Short: "author OSV records and triage vulnerabilities across sources",
	Long: `osvdesk builds OSV advisory records interactively, validates and previews them,
and compares what each upstream source knows about a vulnerability id.`,
	SilenceUsage: true,
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = deps.Logger.Sync()
	},
}

func SetDependencies(dependencies Dependencies) {
	deps = dependencies
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func printSuccess(cmd *cobra.Command, message string) {
	fmt.Fprint(cmd.OutOrStdout(), color.GreenString("\n %s\n", message))
}
