package commands

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/srpo-tools/srpo/pdf"
)

func init() {
	var outputDir string

	cmd := &cobra.Command{
		Use:   "blank-forms",
		Short: "Generate blank forms for the three activity types.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireDir(outputDir); err != nil {
				return err
			}
			if err := pdf.GenerateBlankForms(outputDir); err != nil {
				return err
			}
			slog.Info("blank forms generated", "dir", outputDir)
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputDir, "output-dir", "o", "", "directory the PDF files are written to")
	_ = cmd.MarkFlagRequired("output-dir")

	rootCmd.AddCommand(cmd)
}
