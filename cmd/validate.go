package cmd

import (
	"encoding/json"

	osvmodels "github.com/RobsonDevCode/osvdesk/internal/clients/models/osv"
	tablewriterservice "github.com/RobsonDevCode/osvdesk/internal/cmdLineWriters/tablewriter"
	validatorservice "github.com/RobsonDevCode/osvdesk/internal/services/validatorService"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"golang.org/x/xerrors"
)

var validateCmd = &cobra.Command{
	Use:   "validate [record.json]",
	Short: "list suggestions for an OSV record",
	Args:  cobra.ExactArgs(1),
	RunE:  runValidate,
}

var (
	strictFlag bool
	recordFs   = afero.NewOsFs()
)

func readRecord(path string) (osvmodels.Vulnerability, error) {
	data, err := afero.ReadFile(recordFs, path)
	if err != nil {
		return osvmodels.Vulnerability{}, xerrors.Errorf("cannot read %s: %w", path, err)
	}

	var record osvmodels.Vulnerability
	if err := json.Unmarshal(data, &record); err != nil {
		return osvmodels.Vulnerability{}, xerrors.Errorf("%s is not a valid OSV record: %w", path, err)
	}
	return record, nil
}

func runValidate(cmd *cobra.Command, args []string) error {
	record, err := readRecord(args[0])
	if err != nil {
		return err
	}

	messages := validatorservice.Validate(record)
	tablewriterservice.DisplayValidationTable(cmd.OutOrStdout(), messages)

	if strictFlag && len(messages) > 0 {
		return xerrors.Errorf("%d suggestion(s) for %s", len(messages), args[0])
	}
	return nil
}

func init() {
	validateCmd.Flags().BoolVarP(&strictFlag, "strict", "s", false, "Exit with an error when there are suggestions")

	rootCmd.AddCommand(validateCmd)
}
