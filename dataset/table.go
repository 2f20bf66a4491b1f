// Package dataset loads the SRPO's exported Excel workbooks into plain
// in-memory tables. The exports carry multi-row headers (three rows for
// cycle data, two for individuals) above a rectangular data grid.
package dataset

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/srpo-tools/srpo/models"
)

// Table is a downloaded export split into its header rows and data grid.
// Every row is padded to the table's full width so the grid is rectangular;
// cells the export leaves blank come through as empty strings.
type Table struct {
	Headers [][]string
	Rows    [][]string
}

// ReadWorkbook loads the first sheet of an exported workbook, treating the
// first headerRows rows as headers.
func ReadWorkbook(path string, headerRows int) (*Table, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, models.NewPipelineError(
			models.ErrCodeDownloadFailed,
			fmt.Sprintf("failed to open workbook %q", path),
			err,
		)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	if sheet == "" {
		return nil, models.NewPipelineError(
			models.ErrCodeDownloadFailed,
			fmt.Sprintf("workbook %q has no sheets", path),
			nil,
		)
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, models.NewPipelineError(
			models.ErrCodeDownloadFailed,
			fmt.Sprintf("failed to read sheet %q", sheet),
			err,
		)
	}
	if len(rows) < headerRows {
		return nil, models.NewPipelineError(
			models.ErrCodeDownloadFailed,
			fmt.Sprintf("workbook has %d rows, expected at least %d header rows", len(rows), headerRows),
			nil,
		)
	}

	width := 0
	for _, row := range rows {
		if len(row) > width {
			width = len(row)
		}
	}
	padded := make([][]string, len(rows))
	for i, row := range rows {
		p := make([]string, width)
		copy(p, row)
		padded[i] = p
	}

	return &Table{
		Headers: padded[:headerRows],
		Rows:    padded[headerRows:],
	}, nil
}

// Grid returns the data rows as the loosely typed grid the Sheets API
// expects, headers excluded.
func (t *Table) Grid() [][]interface{} {
	grid := make([][]interface{}, len(t.Rows))
	for i, row := range t.Rows {
		cells := make([]interface{}, len(row))
		for j, cell := range row {
			cells[j] = cell
		}
		grid[i] = cells
	}
	return grid
}
