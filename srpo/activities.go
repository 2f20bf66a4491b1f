package srpo

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/proto"

	"github.com/srpo-tools/srpo/models"
)

// ActivityFilter selects which category of activities a listing shows.
type ActivityFilter string

// The SRPO's four listing filters. The children's classes label uses a
// right single quotation mark, not an apostrophe; the filter link's text
// must match byte for byte.
const (
	FilterAll               ActivityFilter = "All Activities"
	FilterChildrensClasses  ActivityFilter = "Children’s Classes"
	FilterJuniorYouthGroups ActivityFilter = "Junior Youth Groups"
	FilterStudyCircles      ActivityFilter = "Study Circles"
)

var validFilters = []ActivityFilter{
	FilterAll,
	FilterChildrensClasses,
	FilterJuniorYouthGroups,
	FilterStudyCircles,
}

// RecordFunc receives each extracted activity together with its zero-based
// sequence number as soon as its record closes. A run that fails partway
// loses nothing delivered through the callback, which is the only way to
// capture partial results.
type RecordFunc func(seq int, a *models.Activity)

// recordOpener opens one record's overlay and extracts its activity.
type recordOpener func(ctx context.Context) (*models.Activity, error)

// listingOps are the per-page steps of the listing walk, split out as
// function fields so walkListing can be driven against a scripted listing.
// listing wires the real browser steps.
type listingOps struct {
	// awaitPager blocks until the pagination control has rendered. The
	// control renders together with the listing grid, so its presence is
	// the readiness signal for link enumeration.
	awaitPager func(ctx context.Context) error

	// records enumerates the openable records on the current page in DOM
	// order.
	records func(ctx context.Context) ([]recordOpener, error)

	// advance moves to the next listing page. It reports done when the
	// pagination control carries the disabled marker, meaning the current
	// page was the last; no click happens in that case.
	advance func(ctx context.Context) (done bool, err error)
}

// GetActivities opens the activity listing under the given filter and walks
// every page, opening each record, extracting it, and closing it again.
// Records within a page are processed in DOM order; pages strictly forward.
// The returned slice holds all extracted activities in processing order.
//
// Any wait timeout or malformed record aborts the walk and propagates;
// activities already delivered through fn are unaffected.
func (c *Client) GetActivities(ctx context.Context, filter ActivityFilter, fn RecordFunc) ([]*models.Activity, error) {
	if !validFilter(filter) {
		return nil, models.NewPipelineError(
			models.ErrCodeInvalidInput,
			fmt.Sprintf("unknown activity filter %q", string(filter)),
			nil,
		)
	}

	if err := c.click(ctx, ByText("a", "Activities")); err != nil {
		return nil, err
	}
	// The listing dropdown button's label is whichever filter is currently
	// applied, so it is matched against the whole set.
	if err := c.click(ctx, TextOneOf("button", filterStrings()...)); err != nil {
		return nil, err
	}
	if err := c.click(ctx, ByText("a", string(filter))); err != nil {
		return nil, err
	}
	c.settle(ctx, c.nav.ListingSettleDelay)

	return c.walkListing(ctx, c.listing(), fn)
}

// walkListing drives the page loop over the given listing steps. The pager
// wait runs before the first enumeration: the settle delay after filter
// selection is not a readiness signal, and a listing that renders slowly
// would otherwise yield an empty first page without error.
func (c *Client) walkListing(ctx context.Context, ops listingOps, fn RecordFunc) ([]*models.Activity, error) {
	if err := ops.awaitPager(ctx); err != nil {
		return nil, err
	}

	var activities []*models.Activity
	seq := 0
	page := 0
	for {
		openers, err := ops.records(ctx)
		if err != nil {
			return nil, err
		}
		slog.Info("processing listing page", "page", page, "records", len(openers))

		for _, open := range openers {
			if c.limiter != nil {
				if err := c.limiter.Wait(ctx); err != nil {
					return nil, models.NewPipelineError(
						models.ErrCodeNavigation,
						"record pacing interrupted",
						err,
					)
				}
			}
			a, err := open(ctx)
			if err != nil {
				return nil, models.NewPipelineError(
					models.ErrCodeNavigation,
					fmt.Sprintf("record %d on page %d failed", seq, page),
					err,
				)
			}
			activities = append(activities, a)
			if fn != nil {
				fn(seq, a)
			}
			seq++
		}

		done, err := ops.advance(ctx)
		if err != nil {
			return nil, err
		}
		if done {
			break
		}
		page++
	}
	return activities, nil
}

// listing builds the browser-backed listing steps for the current page.
func (c *Client) listing() listingOps {
	return listingOps{
		awaitPager: func(ctx context.Context) error {
			_, err := c.waitFor(ctx, ByName("a", "Next page"))
			return err
		},
		records: func(ctx context.Context) ([]recordOpener, error) {
			links, err := c.activityLinks()
			if err != nil {
				return nil, err
			}
			openers := make([]recordOpener, len(links))
			for i, link := range links {
				link := link
				openers[i] = func(ctx context.Context) (*models.Activity, error) {
					return c.retrieveActivity(ctx, link)
				}
			}
			return openers, nil
		},
		advance: func(ctx context.Context) (bool, error) {
			next, err := c.waitFor(ctx, ByName("a", "Next page"))
			if err != nil {
				return false, err
			}
			classAttr, err := next.Attribute("class")
			if err != nil {
				return false, models.NewPipelineError(
					models.ErrCodeNavigation,
					"failed to inspect next-page control",
					err,
				)
			}
			if classAttr == nil || pageExhausted(*classAttr) {
				return true, nil
			}
			if err := next.Click(proto.InputMouseButtonLeft, 1); err != nil {
				return false, models.NewPipelineError(
					models.ErrCodeNavigation,
					"failed to advance to next page",
					err,
				)
			}
			c.settle(ctx, c.nav.PageSettleDelay)
			return false, nil
		},
	}
}

// retrieveActivity opens one record's modal overlay, extracts the activity
// from the rendered page, and closes the overlay again.
func (c *Client) retrieveActivity(ctx context.Context, link *rod.Element) (*models.Activity, error) {
	if err := link.Click(proto.InputMouseButtonLeft, 1); err != nil {
		return nil, models.NewPipelineError(
			models.ErrCodeNavigation,
			"failed to open record",
			err,
		)
	}
	// Modal animation has no completion signal.
	c.settle(ctx, c.nav.RecordSettleDelay)

	// The close glyph doubles as the signal that the overlay has rendered.
	closeButton, err := c.waitFor(ctx, ByText("span", "×"))
	if err != nil {
		return nil, err
	}

	pageSource, err := c.page.HTML()
	if err != nil {
		return nil, models.NewPipelineError(
			models.ErrCodeNavigation,
			"failed to capture record page source",
			err,
		)
	}
	activity, err := c.parser.Parse(pageSource)
	if err != nil {
		return nil, err
	}

	if err := closeButton.Click(proto.InputMouseButtonLeft, 1); err != nil {
		return nil, models.NewPipelineError(
			models.ErrCodeNavigation,
			"failed to close record",
			err,
		)
	}
	return activity, nil
}

// pageExhausted reports whether the next-page control carries the disabled
// marker, meaning the current page is the last one.
func pageExhausted(classAttr string) bool {
	for _, class := range strings.Fields(classAttr) {
		if class == "k-state-disabled" {
			return true
		}
	}
	return false
}

func validFilter(f ActivityFilter) bool {
	for _, v := range validFilters {
		if f == v {
			return true
		}
	}
	return false
}

func filterStrings() []string {
	s := make([]string, len(validFilters))
	for i, f := range validFilters {
		s[i] = string(f)
	}
	return s
}
