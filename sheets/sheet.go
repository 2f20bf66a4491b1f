// Package sheets writes exported SRPO tables into a Google spreadsheet tab.
// Before accepting an update, the target tab's existing header rows are
// validated against the fixed signature expected for that data type, so a
// misconfigured tab name cannot silently clobber an unrelated sheet.
package sheets

import (
	"context"
	"fmt"

	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"github.com/srpo-tools/srpo/dataset"
	"github.com/srpo-tools/srpo/models"
)

// cgpSignature matches the first columns of the three header rows the
// cycle exports ("Latest Cycles" / "All Cycles") produce.
var cgpSignature = [][]string{
	{
		"Cluster",
		"Region",
		"National Community",
		"Milestone",
		"Start Date",
		"End Date",
		"Table 1: Youth and Adults Who Have Completed Courses of the Training Institute",
	},
	{},
	{"", "", "", "", "", "", "Book 1"},
}

// individualSignature matches the first columns of the two header rows the
// individuals export produces.
var individualSignature = [][]string{
	{
		"Name",
		"Gender",
		"Estimated Age",
		"Locality",
		"Focus Neighbourhood",
		"Registered Bahá’í",
	},
	{},
}

// Sheet is one spreadsheet tab to write SRPO data to.
type Sheet struct {
	spreadsheetID string
	tab           string
	svc           *sheets.Service
}

// New builds a Sheet from a spreadsheet ID (the segment of the sheet's URL
// after /d/), a tab name, and the JSON keyfile of a service account with
// editor access.
func New(ctx context.Context, spreadsheetID, tab, keyFile string) (*Sheet, error) {
	svc, err := sheets.NewService(ctx,
		option.WithCredentialsFile(keyFile),
		option.WithScopes(sheets.SpreadsheetsScope),
	)
	if err != nil {
		return nil, models.NewPipelineError(
			models.ErrCodeSheetFormat,
			"failed to build sheets service",
			err,
		)
	}
	return &Sheet{spreadsheetID: spreadsheetID, tab: tab, svc: svc}, nil
}

// HasCGPData reports whether the tab's headers match the cycle-data
// signature.
func (s *Sheet) HasCGPData(ctx context.Context) (bool, error) {
	return s.checkFormat(ctx, cgpSignature)
}

// HasIndividualData reports whether the tab's headers match the
// individuals-export signature.
func (s *Sheet) HasIndividualData(ctx context.Context) (bool, error) {
	return s.checkFormat(ctx, individualSignature)
}

// checkFormat pulls the range covered by the signature and compares it
// cell by cell.
func (s *Sheet) checkFormat(ctx context.Context, signature [][]string) (bool, error) {
	cellRange := fmt.Sprintf("A1:%c%d", rune('A'+len(signature[0])-1), len(signature))
	values, err := s.getRange(ctx, cellRange)
	if err != nil {
		return false, err
	}
	return matchesSignature(values, signature), nil
}

// matchesSignature compares fetched cell values against a header signature.
// Rows the signature leaves empty are not compared; cells the sheet is
// missing fail the match.
func matchesSignature(values [][]interface{}, signature [][]string) bool {
	for i, sigRow := range signature {
		for j, want := range sigRow {
			if i >= len(values) || j >= len(values[i]) {
				return false
			}
			got, ok := values[i][j].(string)
			if !ok || got != want {
				return false
			}
		}
	}
	return true
}

func (s *Sheet) getRange(ctx context.Context, cellRange string) ([][]interface{}, error) {
	rangeStr := fmt.Sprintf("'%s'!%s", s.tab, cellRange)
	resp, err := s.svc.Spreadsheets.Values.Get(s.spreadsheetID, rangeStr).Context(ctx).Do()
	if err != nil {
		return nil, models.NewPipelineError(
			models.ErrCodeSheetFormat,
			fmt.Sprintf("failed to read range %s", rangeStr),
			err,
		)
	}
	return resp.Values, nil
}

// Update clears the given cell range and writes the table's data grid into
// it, no header row included. The range should start below the tab's
// existing headers (e.g. "A4:BS" for cycle data). Clearing first matters in
// case the new grid is shorter than the previous one.
func (s *Sheet) Update(ctx context.Context, table *dataset.Table, cellRange string) error {
	rangeStr := fmt.Sprintf("'%s'!%s", s.tab, cellRange)

	if _, err := s.svc.Spreadsheets.Values.
		Clear(s.spreadsheetID, rangeStr, &sheets.ClearValuesRequest{}).
		Context(ctx).Do(); err != nil {
		return models.NewPipelineError(
			models.ErrCodeSheetFormat,
			fmt.Sprintf("failed to clear range %s", rangeStr),
			err,
		)
	}

	body := &sheets.ValueRange{
		MajorDimension: "ROWS",
		Range:          rangeStr,
		Values:         table.Grid(),
	}
	// USER_ENTERED makes the spreadsheet parse values as if typed in, so
	// dates and numbers keep their types.
	if _, err := s.svc.Spreadsheets.Values.
		Update(s.spreadsheetID, rangeStr, body).
		ValueInputOption("USER_ENTERED").
		Context(ctx).Do(); err != nil {
		return models.NewPipelineError(
			models.ErrCodeSheetFormat,
			fmt.Sprintf("failed to update range %s", rangeStr),
			err,
		)
	}
	return nil
}
