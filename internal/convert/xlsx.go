package convert

import (
	"encoding/csv"
	"fmt"
	"os"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/docuforge/docuforge/internal/analyze"
)

// sectionRows flattens the document into tabular form shared by the
// spreadsheet targets: one row per section, or a single "Document" row
// when no sections are detected.
func sectionRows(content, title string) [][]string {
	rows := [][]string{{"Section", "Content", "Word Count"}}
	sections := analyze.SplitSections(content)
	if len(sections) == 0 {
		rows = append(rows, []string{title, content, fmt.Sprint(len(strings.Fields(content)))})
		return rows
	}
	for _, s := range sections {
		rows = append(rows, []string{
			strings.TrimSpace(s.Title),
			s.Content,
			fmt.Sprint(len(strings.Fields(s.Content))),
		})
	}
	return rows
}

func (c *Converter) toXLSX(content, title string) (string, error) {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Document"
	f.SetSheetName("Sheet1", sheet)

	for i, row := range sectionRows(content, title) {
		for j, val := range row {
			cell, err := excelize.CoordinatesToCellName(j+1, i+1)
			if err != nil {
				return "", fmt.Errorf("cell coordinates: %w", err)
			}
			if err := f.SetCellValue(sheet, cell, val); err != nil {
				return "", fmt.Errorf("set cell %s: %w", cell, err)
			}
		}
	}
	f.SetColWidth(sheet, "A", "A", 30)
	f.SetColWidth(sheet, "B", "B", 80)

	path, err := c.artifactPath(title, "xlsx")
	if err != nil {
		return "", err
	}
	return path, f.SaveAs(path)
}

func (c *Converter) toCSV(content, title string) (string, error) {
	path, err := c.artifactPath(title, "csv")
	if err != nil {
		return "", err
	}

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create artifact: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.WriteAll(sectionRows(content, title)); err != nil {
		return "", fmt.Errorf("write rows: %w", err)
	}
	return path, nil
}
