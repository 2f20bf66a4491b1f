package commands

import (
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/srpo-tools/srpo/models"
	"github.com/srpo-tools/srpo/pdf"
	"github.com/srpo-tools/srpo/srpo"
)

var activityFilters = map[string]srpo.ActivityFilter{
	"all": srpo.FilterAll,
	"cc":  srpo.FilterChildrensClasses,
	"jy":  srpo.FilterJuniorYouthGroups,
	"sc":  srpo.FilterStudyCircles,
}

func init() {
	var (
		flags        srpoFlags
		activityType string
		outputDir    string
	)

	cmd := &cobra.Command{
		Use:   "activities",
		Short: "Retrieve activities in an area and generate one PDF form per record.",
		RunE: func(cmd *cobra.Command, args []string) error {
			filter, ok := activityFilters[activityType]
			if !ok {
				return fmt.Errorf("unknown activity type %q (valid: all, cc, jy, sc)", activityType)
			}
			if err := requireDir(outputDir); err != nil {
				return err
			}

			client, err := openSession(cmd.Context(), &flags, "")
			if err != nil {
				return err
			}
			defer client.Close()

			// PDFs are written as each record completes, so a run that
			// fails partway keeps everything extracted so far.
			var renderErr error
			activities, err := client.GetActivities(cmd.Context(), filter, func(seq int, a *models.Activity) {
				if renderErr != nil {
					return
				}
				name := fmt.Sprintf("%03d - %s.pdf", seq, a.String())
				if err := pdf.GenerateForm(a, filepath.Join(outputDir, name)); err != nil {
					renderErr = fmt.Errorf("failed to render %q: %w", name, err)
					return
				}
				slog.Info("form generated", "seq", seq, "activity", a.String())
			})
			if err != nil {
				return err
			}
			if renderErr != nil {
				return renderErr
			}

			slog.Info("done", "activities", len(activities))
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVarP(&activityType, "type", "t", "", "activity type to retrieve: all, cc, jy, or sc")
	cmd.Flags().StringVarP(&outputDir, "output-dir", "o", "", "directory the PDF files are written to")
	_ = cmd.MarkFlagRequired("type")
	_ = cmd.MarkFlagRequired("output-dir")

	rootCmd.AddCommand(cmd)
}
