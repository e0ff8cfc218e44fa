package excelexportservice

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"time"
	"unicode/utf8"

	"github.com/AlecAivazis/survey/v2"
	"github.com/RobsonDevCode/osvdesk/internal/constants/exportOptions"
	"github.com/RobsonDevCode/osvdesk/internal/constants/tableHeaders"
	triageservice "github.com/RobsonDevCode/osvdesk/internal/services/triageService"
	"github.com/xuri/excelize/v2"
	"golang.org/x/xerrors"
)

const triageSheetName = "Triage"

// excel rejects cells longer than this
const maxCellLength = 32767

var unsafeFileChars = regexp.MustCompile(`[^A-Za-z0-9._-]`)

// ExportTriageTable writes one row per column result and returns the path of
// the saved workbook.
func ExportTriageTable(id string, results []triageservice.ColumnResult, directory string, now time.Time) (string, error) {
	if err := os.MkdirAll(directory, 0755); err != nil {
		return "", xerrors.Errorf("error creating directory %s, %w", directory, err)
	}

	file := excelize.NewFile()
	defer file.Close()

	if err := file.SetSheetName("Sheet1", triageSheetName); err != nil {
		return "", xerrors.Errorf("error naming sheet, %w", err)
	}
	for i, header := range tableHeaders.ExcelTriageTableHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		file.SetCellValue(triageSheetName, cell, header)
	}

	for i, result := range results {
		row := i + 2 // excel is 1 index and skip headers

		content := truncateCell(result.Text)

		rowData := []interface{}{
			id,
			result.Column,
			result.Url,
			string(result.Status),
			content,
		}
		if err := file.SetSheetRow(triageSheetName, fmt.Sprintf("A%d", row), &rowData); err != nil {
			return "", xerrors.Errorf("error writing row %d, %w", row, err)
		}
	}

	fileName := fmt.Sprintf("triage_%s_%s.xlsx", unsafeFileChars.ReplaceAllString(id, "_"), now.Format("2006-01-02T15-04-05"))
	fullPath := filepath.Join(directory, fileName)

	if err := file.SaveAs(fullPath); err != nil {
		return "", xerrors.Errorf("failed to save excel to %s, %w", fullPath, err)
	}

	return fullPath, nil
}

func SelectExportTriageToExcel() (string, error) {
	prompt := &survey.Select{
		Message: "Export Triage Table",
		Options: exportOptions.ExcelOptions,
	}

	var selectedIndex int
	err := survey.AskOne(prompt, &selectedIndex)
	if err != nil {
		fmt.Print("selection cancelled")
		return "", xerrors.Errorf("selection error: %w", err)
	}

	return exportOptions.ExcelOptions[selectedIndex], nil
}

// truncateCell cuts content to the cell limit, which excel counts in
// characters.
func truncateCell(content string) string {
	if utf8.RuneCountInString(content) <= maxCellLength {
		return content
	}
	return string([]rune(content)[:maxCellLength])
}
