package srpo

import (
	"context"
	"strings"
	"testing"

	"github.com/srpo-tools/srpo/models"
)

func TestPageExhausted(t *testing.T) {
	tests := []struct {
		classAttr string
		want      bool
	}{
		{"k-link k-state-disabled", true},
		{"k-state-disabled", true},
		{"k-link", false},
		{"", false},
		// Marker must match as a whole class, not a substring.
		{"k-state-disabled-alt", false},
	}
	for _, tt := range tests {
		if got := pageExhausted(tt.classAttr); got != tt.want {
			t.Errorf("pageExhausted(%q) = %v, want %v", tt.classAttr, got, tt.want)
		}
	}
}

func TestValidFilter(t *testing.T) {
	for _, f := range validFilters {
		if !validFilter(f) {
			t.Errorf("filter %q should be valid", f)
		}
	}
	if validFilter(ActivityFilter("Children's Classes")) {
		t.Error("ASCII-apostrophe label must not validate; the SRPO uses a right single quotation mark")
	}
	if validFilter(ActivityFilter("Everything")) {
		t.Error("unknown filter should not validate")
	}
}

func TestChildrensClassesFilterUsesSpecialApostrophe(t *testing.T) {
	// The filter link's text must match byte for byte, special apostrophe
	// included.
	if !strings.Contains(string(FilterChildrensClasses), "’") {
		t.Errorf("FilterChildrensClasses = %q lacks U+2019", FilterChildrensClasses)
	}
}

func scriptedOpeners(stages []string) []recordOpener {
	openers := make([]recordOpener, len(stages))
	for i, stage := range stages {
		stage := stage
		openers[i] = func(ctx context.Context) (*models.Activity, error) {
			return &models.Activity{Stage: stage, Locality: "Victoria"}, nil
		}
	}
	return openers
}

func TestWalkListingPagination(t *testing.T) {
	pages := [][]string{
		{
			"Book 1, Reflections on the Life of the Spirit",
			"Grade 2 - Saturday class",
			"Breezes of Confirmation",
		},
		{
			"Grade 1 - Tuesday class",
			"Book 3, Teaching Children's Classes",
		},
	}

	var (
		ready        bool
		page         int
		recordCalls  int
		advanceCalls int
	)
	ops := listingOps{
		awaitPager: func(ctx context.Context) error {
			ready = true
			return nil
		},
		records: func(ctx context.Context) ([]recordOpener, error) {
			if !ready {
				t.Fatal("records enumerated before the listing rendered")
			}
			recordCalls++
			return scriptedOpeners(pages[page]), nil
		},
		advance: func(ctx context.Context) (bool, error) {
			advanceCalls++
			if page == len(pages)-1 {
				return true, nil
			}
			page++
			return false, nil
		},
	}

	var seqs []int
	activities, err := (&Client{}).walkListing(context.Background(), ops, func(seq int, a *models.Activity) {
		seqs = append(seqs, seq)
	})
	if err != nil {
		t.Fatalf("walkListing() error: %v", err)
	}

	if len(activities) != 5 {
		t.Fatalf("expected 5 activities from 3+2 records, got %d", len(activities))
	}
	if activities[0].Stage != pages[0][0] || activities[4].Stage != pages[1][1] {
		t.Error("activities not in page-then-DOM order")
	}
	if len(seqs) != 5 {
		t.Fatalf("callback ran %d times, want 5", len(seqs))
	}
	for i, seq := range seqs {
		if seq != i {
			t.Errorf("callback seq[%d] = %d, want %d", i, seq, i)
		}
	}
	if recordCalls != len(pages) {
		t.Errorf("records enumerated %d times, want once per page", recordCalls)
	}
	// The disabled marker ends the walk; nothing advances past it.
	if advanceCalls != len(pages) {
		t.Errorf("advance called %d times, want %d", advanceCalls, len(pages))
	}
}

func TestWalkListingSinglePage(t *testing.T) {
	ops := listingOps{
		awaitPager: func(ctx context.Context) error { return nil },
		records: func(ctx context.Context) ([]recordOpener, error) {
			return scriptedOpeners([]string{"Glimmerings of Hope"}), nil
		},
		advance: func(ctx context.Context) (bool, error) { return true, nil },
	}
	activities, err := (&Client{}).walkListing(context.Background(), ops, nil)
	if err != nil {
		t.Fatalf("walkListing() error: %v", err)
	}
	if len(activities) != 1 {
		t.Errorf("expected 1 activity, got %d", len(activities))
	}
}

func TestWalkListingStopsWhenPagerNeverRenders(t *testing.T) {
	ops := listingOps{
		awaitPager: func(ctx context.Context) error {
			return models.NewPipelineError(models.ErrCodeWaitTimeout, "no pagination control", nil)
		},
		records: func(ctx context.Context) ([]recordOpener, error) {
			t.Fatal("records must not be enumerated when the listing never renders")
			return nil, nil
		},
		advance: func(ctx context.Context) (bool, error) { return true, nil },
	}
	_, err := (&Client{}).walkListing(context.Background(), ops, nil)
	if !models.IsCode(err, models.ErrCodeWaitTimeout) {
		t.Errorf("expected code %s, got %v", models.ErrCodeWaitTimeout, err)
	}
}

func TestWalkListingRecordFailureAborts(t *testing.T) {
	broken := models.NewPipelineError(models.ErrCodeMalformedRecord, "no start date", nil)
	ops := listingOps{
		awaitPager: func(ctx context.Context) error { return nil },
		records: func(ctx context.Context) ([]recordOpener, error) {
			return []recordOpener{
				func(ctx context.Context) (*models.Activity, error) {
					return &models.Activity{Stage: "Grade 1 - Tuesday class"}, nil
				},
				func(ctx context.Context) (*models.Activity, error) {
					return nil, broken
				},
			}, nil
		},
		advance: func(ctx context.Context) (bool, error) {
			t.Fatal("walk must abort before advancing")
			return true, nil
		},
	}

	var delivered int
	_, err := (&Client{}).walkListing(context.Background(), ops, func(seq int, a *models.Activity) {
		delivered++
	})
	if err == nil {
		t.Fatal("expected record failure to propagate")
	}
	// Records extracted before the failure were already delivered.
	if delivered != 1 {
		t.Errorf("callback ran %d times before the failure, want 1", delivered)
	}
}
