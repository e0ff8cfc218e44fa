package cmd

import (
	"fmt"
	"io"

	osvmodels "github.com/RobsonDevCode/osvdesk/internal/clients/models/osv"
	tablewriterservice "github.com/RobsonDevCode/osvdesk/internal/cmdLineWriters/tablewriter"
	"github.com/RobsonDevCode/osvdesk/internal/constants/exportOptions"
	"github.com/RobsonDevCode/osvdesk/internal/formatting"
	formpromptservice "github.com/RobsonDevCode/osvdesk/internal/services/formPromptService"
	previewservice "github.com/RobsonDevCode/osvdesk/internal/services/previewService"
	remoteloaderservice "github.com/RobsonDevCode/osvdesk/internal/services/remoteLoaderService"
	validatorservice "github.com/RobsonDevCode/osvdesk/internal/services/validatorService"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/xerrors"
)

func printRecord(out io.Writer, record osvmodels.Vulnerability) error {
	highlighted, err := formatting.HighlightTerminal(record)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "\n%s\n", highlighted)
	tablewriterservice.DisplayValidationTable(out, validatorservice.Validate(record))
	return nil
}

func printPreview(cmd *cobra.Command, record osvmodels.Vulnerability, asHTML bool) {
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, color.HiBlackString(previewservice.LoadingText))

	pane := deps.Preview.Render(cmd.Context(), record)
	if !pane.Ok {
		fmt.Fprintln(out, color.RedString(pane.Content))
		return
	}

	if asHTML {
		fmt.Fprintln(out, pane.Content)
		return
	}

	text, err := previewservice.PlainText(pane.Content)
	if err != nil {
		fmt.Fprintln(out, color.RedString("Error: %s", err.Error()))
		return
	}
	fmt.Fprintf(out, "\n%s\n", text)
}

// recordActions offers what can be done with a finished record until the
// user is done.
func recordActions(cmd *cobra.Command, prompter formpromptservice.Prompter, record osvmodels.Vulnerability) error {
	for {
		choice, err := prompter.Select("What would you like to do with the record?", exportOptions.RecordOptions, exportOptions.Done)
		if err != nil {
			return err
		}

		switch choice {
		case exportOptions.SaveFile:
			path, err := deps.Exporter.Save(record)
			if err != nil {
				return err
			}
			printSuccess(cmd, "Your file has been saved to: "+path)
		case exportOptions.Copy:
			if err := deps.Exporter.CopyToClipboard(record); err != nil {
				fmt.Fprintln(cmd.OutOrStdout(), color.RedString(err.Error()))
				continue
			}
			printSuccess(cmd, "Copied!")
		case exportOptions.Preview:
			printPreview(cmd, record, false)
		default:
			return nil
		}
	}
}

// alertError turns a loader alert into the red message shown to the user.
func alertError(err error) error {
	var alert *remoteloaderservice.AlertError
	if xerrors.As(err, &alert) {
		return xerrors.New(color.RedString(alert.Message))
	}
	return err
}
