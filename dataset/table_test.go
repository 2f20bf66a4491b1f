package dataset

import (
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/srpo-tools/srpo/models"
)

// writeWorkbook creates a workbook whose first sheet holds the given rows.
func writeWorkbook(t *testing.T, rows [][]interface{}) string {
	t.Helper()
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			t.Fatalf("cell name: %v", err)
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			t.Fatalf("set row: %v", err)
		}
	}
	path := filepath.Join(t.TempDir(), "export.xlsx")
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("save workbook: %v", err)
	}
	return path
}

func TestReadWorkbook(t *testing.T) {
	path := writeWorkbook(t, [][]interface{}{
		{"Cluster", "Region", "Milestone"},
		{},
		{"", "", "Book 1"},
		{"BC03", "British Columbia", "M2"},
		{"BC01", "British Columbia"},
	})

	table, err := ReadWorkbook(path, 3)
	if err != nil {
		t.Fatalf("ReadWorkbook() error: %v", err)
	}

	if len(table.Headers) != 3 {
		t.Fatalf("expected 3 header rows, got %d", len(table.Headers))
	}
	if table.Headers[0][0] != "Cluster" {
		t.Errorf("header[0][0] = %q", table.Headers[0][0])
	}
	if len(table.Rows) != 2 {
		t.Fatalf("expected 2 data rows, got %d", len(table.Rows))
	}

	// Short rows pad out to the table's full width.
	for i, row := range table.Rows {
		if len(row) != 3 {
			t.Errorf("row %d has width %d, want 3", i, len(row))
		}
	}
	if table.Rows[1][2] != "" {
		t.Errorf("padded cell = %q, want empty", table.Rows[1][2])
	}
}

func TestReadWorkbookTooFewRows(t *testing.T) {
	path := writeWorkbook(t, [][]interface{}{{"only header"}})

	_, err := ReadWorkbook(path, 3)
	if err == nil {
		t.Fatal("expected error for workbook shorter than its header block")
	}
	if !models.IsCode(err, models.ErrCodeDownloadFailed) {
		t.Errorf("expected code %s, got %v", models.ErrCodeDownloadFailed, err)
	}
}

func TestReadWorkbookMissingFile(t *testing.T) {
	_, err := ReadWorkbook(filepath.Join(t.TempDir(), "absent.xlsx"), 2)
	if err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestGrid(t *testing.T) {
	table := &Table{
		Rows: [][]string{{"a", "b"}, {"c", ""}},
	}
	grid := table.Grid()
	if len(grid) != 2 || len(grid[0]) != 2 {
		t.Fatalf("unexpected grid shape: %v", grid)
	}
	if grid[1][0] != "c" || grid[1][1] != "" {
		t.Errorf("grid[1] = %v", grid[1])
	}
}
