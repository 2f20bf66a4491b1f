package commands

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/srpo-tools/srpo/dataset"
	"github.com/srpo-tools/srpo/sheets"
	"github.com/srpo-tools/srpo/srpo"
)

func init() {
	var (
		flags    srpoFlags
		dataType string
		sheetID  string
		tabName  string
		keyPath  string
	)

	cmd := &cobra.Command{
		Use:   "update-sheet",
		Short: "Download an SRPO export and write it into a Google spreadsheet tab.",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			sheet, err := sheets.New(ctx, sheetID, tabName, keyPath)
			if err != nil {
				return err
			}

			// Validate the tab's headers before touching the SRPO, so a
			// misconfigured tab fails fast instead of after a full login.
			var (
				cellRange string
				fetch     func(context.Context, *srpo.Client) (*dataset.Table, error)
			)
			switch dataType {
			case "latestcycles":
				cellRange = "A4:BS"
				fetch = func(ctx context.Context, c *srpo.Client) (*dataset.Table, error) {
					return c.LatestCycles(ctx)
				}
				ok, err := sheet.HasCGPData(ctx)
				if err != nil {
					return err
				}
				if !ok {
					return fmt.Errorf("tab %q is not formatted for CGP data", tabName)
				}
			case "allcycles":
				cellRange = "A4:BS"
				fetch = func(ctx context.Context, c *srpo.Client) (*dataset.Table, error) {
					return c.AllCycles(ctx)
				}
				ok, err := sheet.HasCGPData(ctx)
				if err != nil {
					return err
				}
				if !ok {
					return fmt.Errorf("tab %q is not formatted for CGP data", tabName)
				}
			case "individuals":
				cellRange = "A3:BZ"
				fetch = func(ctx context.Context, c *srpo.Client) (*dataset.Table, error) {
					return c.IndividualsData(ctx)
				}
				ok, err := sheet.HasIndividualData(ctx)
				if err != nil {
					return err
				}
				if !ok {
					return fmt.Errorf("tab %q is not formatted for individual record data", tabName)
				}
			default:
				return fmt.Errorf("unknown data type %q (valid: latestcycles, allcycles, individuals)", dataType)
			}

			client, err := openSession(ctx, &flags, "")
			if err != nil {
				return err
			}

			table, err := fetch(ctx, client)
			client.Close()
			if err != nil {
				return err
			}
			slog.Info("export retrieved", "type", dataType, "rows", len(table.Rows))

			if err := sheet.Update(ctx, table, cellRange); err != nil {
				return err
			}
			slog.Info("sheet updated", "tab", tabName, "range", cellRange)
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVar(&dataType, "type", "", "data to import: latestcycles, allcycles, or individuals")
	cmd.Flags().StringVarP(&sheetID, "sheet-id", "i", "", "spreadsheet ID string from the sheet's URL")
	cmd.Flags().StringVarP(&tabName, "tab-name", "t", "", "name of the tab to write data to")
	cmd.Flags().StringVarP(&keyPath, "key-path", "k", "sheets-editor-key.json", "path to the service account JSON keyfile with edit access")
	_ = cmd.MarkFlagRequired("type")
	_ = cmd.MarkFlagRequired("sheet-id")
	_ = cmd.MarkFlagRequired("tab-name")

	rootCmd.AddCommand(cmd)
}
