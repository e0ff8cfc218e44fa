package cmd

import (
	"fmt"

	"github.com/RobsonDevCode/osvdesk/internal/configuration"
	setupservice "github.com/RobsonDevCode/osvdesk/internal/services/setupService"
	triageservice "github.com/RobsonDevCode/osvdesk/internal/services/triageService"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var setUpCmd = &cobra.Command{
	Use:   "setup",
	Short: "save your triage preferences",
	Long: `setup stores the registry profile, default columns and proxy address used by
the 'triage' command so they do not need to be passed every time.`,
	Args: cobra.NoArgs,
	RunE: runSetUp,
}

const (
	ProfileFlag = "profile"
	ColumnsFlag = "columns"
	ProxyFlag   = "proxy"
)

func runSetUp(cmd *cobra.Command, args []string) error {
	profile, _ := cmd.Flags().GetString(ProfileFlag)
	columns, _ := cmd.Flags().GetStringSlice(ColumnsFlag)
	proxy, _ := cmd.Flags().GetString(ProxyFlag)

	userSettings := configuration.UsersSettings{
		Profile:      profile,
		Columns:      columns,
		ProxyBaseUrl: proxy,
	}

	registry, err := triageservice.NewRegistry(userSettings.Apply(deps.Config.TriageSettings))
	if err != nil {
		return err
	}

	fmt.Fprint(cmd.OutOrStdout(), "\n Saving settings...")

	if err := setupservice.CreateSetupFile(setupservice.FilePath, userSettings, registry.Keys()); err != nil {
		return err
	}

	fmt.Fprint(cmd.OutOrStdout(), color.GreenString("\n Settings saved, run the triage command to compare sources!\n"))
	return nil
}

func init() {
	setUpCmd.Flags().StringP(ProfileFlag, "p", "", "Registry profile used to resolve triage sources.")
	setUpCmd.Flags().StringSliceP(ColumnsFlag, "c", nil, "Sources shown when triage is run without --source.")
	setUpCmd.Flags().StringP(ProxyFlag, "u", "", "Base url of the triage proxy.")

	rootCmd.AddCommand(setUpCmd)
}
