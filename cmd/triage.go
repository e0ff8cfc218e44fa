package cmd

import (
	"fmt"
	"time"

	tablewriterservice "github.com/RobsonDevCode/osvdesk/internal/cmdLineWriters/tablewriter"
	"github.com/RobsonDevCode/osvdesk/internal/constants/exportOptions"
	triagesources "github.com/RobsonDevCode/osvdesk/internal/constants/triageSources"
	excelexportservice "github.com/RobsonDevCode/osvdesk/internal/services/excelExportService"
	triageservice "github.com/RobsonDevCode/osvdesk/internal/services/triageService"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var triageCmd = &cobra.Command{
	Use:   "triage [vulnerability-id]",
	Short: "compare what each source knows about a vulnerability",
	Long: fmt.Sprintf(`triage fetches the vulnerability from every selected source at once and prints
each document as soon as it arrives, followed by a summary table.

Sources default to the configured columns. Profiles: %v`, triagesources.Profiles),
	Args: cobra.MaximumNArgs(1),
	RunE: runTriage,
}

var (
	sourceFlags    []string
	triageProfile  string
	plainFlag      bool
	exportFlag     bool
	noExportFlag   bool
	listSourceFlag bool
)

func runTriage(cmd *cobra.Command, args []string) error {
	settings := deps.Config.TriageSettings
	if triageProfile != "" {
		settings.Profile = triageProfile
	}

	registry, err := triageservice.NewRegistry(settings)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if listSourceFlag {
		fmt.Fprintf(out, "Sources for profile %s:\n", registry.Profile())
		for _, key := range registry.Keys() {
			fmt.Fprintf(out, "  %s\n", key)
		}
		return nil
	}

	var id string
	if len(args) > 0 {
		id = args[0]
	}

	columns := sourceFlags
	if len(columns) == 0 {
		columns = settings.Columns
	}

	fetcher := triageservice.NewFetcher(registry, deps.TriageClient, settings.MaxConcurrentColumns, deps.Logger)

	fmt.Fprintf(out, "Loading %d source(s)...\n", len(columns))
	results := make([]triageservice.ColumnResult, len(columns))
	for result := range fetcher.Load(cmd.Context(), id, columns) {
		results[result.Index] = result
		printColumn(cmd, result)
	}

	tablewriterservice.DisplayTriageTable(out, results)

	if noExportFlag || id == "" {
		return nil
	}

	if !exportFlag {
		choice, err := excelexportservice.SelectExportTriageToExcel()
		if err != nil {
			return err
		}
		if choice != exportOptions.Yes {
			return nil
		}
	}

	path, err := excelexportservice.ExportTriageTable(id, results, deps.Config.ExportSettings.Directory, time.Now())
	if err != nil {
		return err
	}
	printSuccess(cmd, "Your file has been saved to: "+path)
	return nil
}

func printColumn(cmd *cobra.Command, result triageservice.ColumnResult) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "\n%s\n", color.HiMagentaString("== %s ==", result.Column))
	if result.Url != "" {
		fmt.Fprintln(out, color.HiBlackString(result.Url))
	}

	switch {
	case result.Status != triageservice.StatusOK:
		fmt.Fprintln(out, color.YellowString(result.Text))
	case plainFlag:
		fmt.Fprintln(out, result.Text)
	default:
		fmt.Fprintln(out, result.Terminal)
	}
}

func init() {
	triageCmd.Flags().StringArrayVarP(&sourceFlags, "source", "s", nil, "Source to show as a column, repeatable")
	triageCmd.Flags().StringVarP(&triageProfile, "profile", "p", "", "Registry profile to resolve sources with")
	triageCmd.Flags().BoolVar(&plainFlag, "plain", false, "Print documents without colour")
	triageCmd.Flags().BoolVarP(&exportFlag, "export", "e", false, "Export the results to excel without asking")
	triageCmd.Flags().BoolVar(&noExportFlag, "no-export", false, "Do not offer an excel export")
	triageCmd.Flags().BoolVarP(&listSourceFlag, "list", "l", false, "List the sources the profile knows about")

	rootCmd.AddCommand(triageCmd)
}
