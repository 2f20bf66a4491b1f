package srpo

import (
	"context"
	"fmt"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/proto"

	"github.com/srpo-tools/srpo/models"
)

// SetArea scopes the session to an area as labeled in the SRPO's tree view,
// e.g. "British Columbia" for a region or "BC03 - Southeast Victoria" for a
// cluster. It expects to run on the home page that loads after login.
//
// The tree renders incrementally and its nodes are plain spans, so readiness
// is detected by waiting for a minimum span count rather than a specific
// element. The area label legitimately appears twice in the tree (parent
// node and breadcrumb); only the occurrence deepest in render order is the
// real navigational target, so ties are broken by vertical offset.
func (c *Client) SetArea(ctx context.Context, area string) error {
	// The tree opens from the national root button, whose label carries
	// trailing decoration.
	if err := c.click(ctx, ByName("button", "Canada").Matching(HasPrefix)); err != nil {
		return err
	}

	spans, err := c.awaitTree(ctx)
	if err != nil {
		return err
	}

	var (
		candidates []*rod.Element
		offsets    []float64
	)
	for _, span := range spans {
		text, err := span.Text()
		if err != nil || text != area {
			continue
		}
		y, err := elementTop(span)
		if err != nil {
			continue
		}
		candidates = append(candidates, span)
		offsets = append(offsets, y)
	}
	if len(candidates) == 0 {
		return models.NewPipelineError(
			models.ErrCodeNavigation,
			fmt.Sprintf("area %q not found in tree", area),
			nil,
		)
	}

	target := candidates[deepestIndex(offsets)]
	if err := target.Click(proto.InputMouseButtonLeft, 1); err != nil {
		return models.NewPipelineError(
			models.ErrCodeNavigation,
			fmt.Sprintf("failed to click area %q", area),
			err,
		)
	}

	// Give the home page time to generate its SVG charts. Nothing in the
	// DOM signals chart completion, hence a delay instead of a wait.
	c.settle(ctx, c.nav.AreaSettleDelay)
	return nil
}

// awaitTree polls until the filter tree has rendered enough span elements to
// be considered expanded.
func (c *Client) awaitTree(ctx context.Context) (rod.Elements, error) {
	deadline := time.Now().Add(c.nav.WaitTimeout)
	for {
		spans, err := c.page.Elements("span")
		if err == nil && len(spans) > c.nav.TreeSpanThreshold {
			return spans, nil
		}
		if time.Now().After(deadline) {
			return nil, models.NewPipelineError(
				models.ErrCodeWaitTimeout,
				fmt.Sprintf("area tree never rendered more than %d spans", c.nav.TreeSpanThreshold),
				nil,
			)
		}
		select {
		case <-ctx.Done():
			return nil, models.NewPipelineError(
				models.ErrCodeWaitTimeout,
				"wait for area tree canceled",
				ctx.Err(),
			)
		case <-time.After(c.nav.PollInterval):
		}
	}
}

// elementTop returns the element's vertical offset in the viewport.
func elementTop(el *rod.Element) (float64, error) {
	res, err := el.Eval(`() => this.getBoundingClientRect().top`)
	if err != nil {
		return 0, err
	}
	return res.Value.Num(), nil
}

// deepestIndex picks the index of the largest vertical offset. Later render
// order wins ties, matching the DOM order of equal-position duplicates.
func deepestIndex(offsets []float64) int {
	best := 0
	for i, y := range offsets {
		if y >= offsets[best] {
			best = i
		}
	}
	return best
}
