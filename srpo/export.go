package srpo

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/srpo-tools/srpo/auth"
	"github.com/srpo-tools/srpo/dataset"
	"github.com/srpo-tools/srpo/models"
)

// LatestCycles downloads the most recent cycle data for each cluster in the
// current scope and parses it into a table.
func (c *Client) LatestCycles(ctx context.Context) (*dataset.Table, error) {
	return c.cyclesData(ctx, "Latest")
}

// AllCycles downloads all historical cycle data for each cluster in the
// current scope and parses it into a table.
func (c *Client) AllCycles(ctx context.Context) (*dataset.Table, error) {
	return c.cyclesData(ctx, "All")
}

// cyclesData navigates the Cycles listing for the given label ("Latest" or
// "All"), triggers the Excel export, and loads the downloaded workbook. The
// cycle exports carry three header rows. The file is deleted after parsing;
// if an output directory is configured, a copy is archived there first.
func (c *Client) cyclesData(ctx context.Context, label string) (*dataset.Table, error) {
	if err := c.click(ctx, ByText("a", "Cycles")); err != nil {
		return nil, err
	}
	// The cycles dropdown button's label varies with the current
	// selection but always ends in " Cycles".
	if err := c.click(ctx, ByText("button", " Cycles").Matching(HasSuffix)); err != nil {
		return nil, err
	}
	if err := c.click(ctx, ByText("a", label+" Cycles")); err != nil {
		return nil, err
	}
	c.settle(ctx, c.nav.ExportSettleDelay)

	if err := c.triggerExport(ctx); err != nil {
		return nil, err
	}

	path := filepath.Join(c.downloadDir, label+" Cycles.xlsx")
	if err := c.awaitDownload(ctx, path); err != nil {
		return nil, err
	}
	table, err := dataset.ReadWorkbook(path, 3)
	if err != nil {
		return nil, err
	}
	if c.outputDir != "" {
		if err := copyFile(path, filepath.Join(c.outputDir, filepath.Base(path))); err != nil {
			slog.Warn("failed to archive export", "path", path, "error", err)
		}
	}
	if err := os.Remove(path); err != nil {
		slog.Warn("failed to remove downloaded export", "path", path, "error", err)
	}
	return table, nil
}

// IndividualsData downloads the table of individual records for the current
// scope. The individuals export carries two header rows.
//
// When the scope is the whole region, the SRPO demands a fresh verification
// code before releasing the file. The prompt's absence is the normal case
// for cluster scopes, so a timeout waiting for it is swallowed rather than
// propagated.
func (c *Client) IndividualsData(ctx context.Context) (*dataset.Table, error) {
	if err := c.click(ctx, ByText("a", "Individuals")); err != nil {
		return nil, err
	}
	if err := c.triggerExport(ctx); err != nil {
		return nil, err
	}

	if el, err := c.waitFor(ctx, ByName("input", mfaPrompt)); err == nil {
		code, err := auth.Code(c.secret, time.Now())
		if err != nil {
			return nil, err
		}
		if err := el.Input(code); err != nil {
			return nil, models.NewPipelineError(
				models.ErrCodeNavigation,
				"failed to fill verification code for export",
				err,
			)
		}
		if err := c.click(ctx, ByName("button", "OK")); err != nil {
			return nil, err
		}
	} else if !models.IsCode(err, models.ErrCodeWaitTimeout) {
		return nil, err
	}

	path := filepath.Join(c.downloadDir, "All Individuals.xlsx")
	if err := c.awaitDownload(ctx, path); err != nil {
		return nil, err
	}
	table, err := dataset.ReadWorkbook(path, 2)
	if err != nil {
		return nil, err
	}
	if err := os.Remove(path); err != nil {
		slog.Warn("failed to remove downloaded export", "path", path, "error", err)
	}
	return table, nil
}

// triggerExport clicks through the export menu down to the Excel format.
func (c *Client) triggerExport(ctx context.Context) error {
	if err := c.click(ctx, ByName("button", "EXPORT DATA|")); err != nil {
		return err
	}
	return c.click(ctx, ByText("a", "Excel"))
}

// awaitDownload polls the download directory until the expected file exists.
// Chrome writes in-progress downloads under a temporary name and renames on
// completion, so existence of the final name means the file is whole.
func (c *Client) awaitDownload(ctx context.Context, path string) error {
	deadline := time.Now().Add(c.nav.DownloadTimeout)
	for {
		if _, err := os.Stat(path); err == nil {
			return nil
		}
		if time.Now().After(deadline) {
			return models.NewPipelineError(
				models.ErrCodeDownloadFailed,
				fmt.Sprintf("export %q never appeared", filepath.Base(path)),
				nil,
			)
		}
		select {
		case <-ctx.Done():
			return models.NewPipelineError(
				models.ErrCodeDownloadFailed,
				"download wait canceled",
				ctx.Err(),
			)
		case <-time.After(c.nav.PollInterval):
		}
	}
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()
	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer out.Close()
	_, err = io.Copy(out, in)
	return err
}
