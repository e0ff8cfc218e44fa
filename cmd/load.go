package cmd

import (
	formbuilderservice "github.com/RobsonDevCode/osvdesk/internal/services/formBuilderService"
	"github.com/spf13/cobra"
)

var loadCmd = &cobra.Command{
	Use:   "load [vulnerability-id]",
	Short: "load a published OSV record",
	Long: `load fetches a record from osv.dev, runs it through the record builder and
prints the result with validation suggestions.`,
	Args: cobra.ExactArgs(1),
	RunE: runLoad,
}

var (
	saveLoadedFlag bool
	copyLoadedFlag bool
)

func runLoad(cmd *cobra.Command, args []string) error {
	form := formbuilderservice.NewForm()
	if err := deps.RemoteLoader.Load(cmd.Context(), args[0], form); err != nil {
		return alertError(err)
	}

	record := form.Record()
	if err := printRecord(cmd.OutOrStdout(), record); err != nil {
		return err
	}

	if saveLoadedFlag {
		path, err := deps.Exporter.Save(record)
		if err != nil {
			return err
		}
		printSuccess(cmd, "Your file has been saved to: "+path)
	}

	if copyLoadedFlag {
		if err := deps.Exporter.CopyToClipboard(record); err != nil {
			return err
		}
		printSuccess(cmd, "Copied!")
	}

	return nil
}

func init() {
	loadCmd.Flags().BoolVarP(&saveLoadedFlag, "out", "o", false, "Save the record to the export directory")
	loadCmd.Flags().BoolVarP(&copyLoadedFlag, "copy", "c", false, "Copy the record JSON to the clipboard")

	rootCmd.AddCommand(loadCmd)
}
