package cmd

import (
	"github.com/spf13/cobra"
)

var previewCmd = &cobra.Command{
	Use:   "preview [record.json]",
	Short: "render an OSV record the way osv.dev shows it",
	Args:  cobra.ExactArgs(1),
	RunE:  runPreview,
}

var htmlFlag bool

func runPreview(cmd *cobra.Command, args []string) error {
	record, err := readRecord(args[0])
	if err != nil {
		return err
	}

	printPreview(cmd, record, htmlFlag)
	return nil
}

func init() {
	previewCmd.Flags().BoolVar(&htmlFlag, "html", false, "Print the rendered HTML instead of text")

	rootCmd.AddCommand(previewCmd)
}
