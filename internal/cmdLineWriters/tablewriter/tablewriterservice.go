package tablewriterservice

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/RobsonDevCode/osvdesk/internal/constants/tableHeaders"
	"github.com/RobsonDevCode/osvdesk/internal/extensions"
	triageservice "github.com/RobsonDevCode/osvdesk/internal/services/triageService"
	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/renderer"
	"github.com/olekukonko/tablewriter/tw"
)

func newTable(out io.Writer, maxWidth int) *tablewriter.Table {
	return tablewriter.NewTable(out,
		tablewriter.WithRenderer(renderer.NewBlueprint(tw.Rendition{
			Settings: tw.Settings{Separators: tw.Separators{BetweenRows: tw.On}},
		})),
		tablewriter.WithConfig(tablewriter.Config{
			Row: tw.CellConfig{
				Formatting: tw.CellFormatting{
					AutoWrap: tw.WrapNormal,
				},
				Alignment:    tw.CellAlignment{Global: tw.AlignLeft},
				ColMaxWidths: tw.CellWidth{Global: maxWidth},
			},
		}),
	)
}

// DisplayTriageTable summarises every column on one row. Content is cut
// short; the full documents are printed above the table or exported.
func DisplayTriageTable(out io.Writer, results []triageservice.ColumnResult) {
	if len(results) == 0 {
		return
	}

	table := newTable(out, 40)
	table.Header(tableHeaders.TriageTableHeaders)

	for _, result := range results {
		table.Append([]string{
			result.Column,
			extensions.TruncateStringStart(result.Url, 40),
			statusString(result.Status),
			extensions.TruncateString(strings.Join(strings.Fields(result.Text), " "), 60),
		})
	}

	table.Render()
}

// DisplayValidationTable lists the validator's suggestions.
func DisplayValidationTable(out io.Writer, messages []string) {
	if len(messages) == 0 {
		fmt.Fprint(out, color.GreenString("\n No suggestions, record looks complete!\n"))
		return
	}

	fmt.Fprintf(out, "%s", color.YellowString("\nValidation Suggestions: \n"))
	table := newTable(out, 80)
	table.Header(tableHeaders.ValidationTableHeaders)

	for i, message := range messages {
		table.Append([]string{strconv.Itoa(i + 1), message})
	}

	table.Render()
}

func statusString(status triageservice.Status) string {
	switch status {
	case triageservice.StatusOK:
		return color.GreenString(string(status))
	case triageservice.StatusPrompt:
		return color.CyanString(string(status))
	default:
		return color.RedString(string(status))
	}
}
