package srpo

import (
	"strings"

	"github.com/go-rod/rod"

	"github.com/srpo-tools/srpo/models"
)

var activityPrefixes = models.ActivityPrefixes()

// IsActivityLink reports whether an anchor's accessible name denotes an
// openable record rather than navigation chrome. A record link's label
// starts with a grade label, a curriculum-book label, or a junior youth
// text title. The name is matched raw; record links carry no icon
// decoration, so a leading glyph marks chrome.
func IsActivityLink(name string) bool {
	for _, prefix := range activityPrefixes {
		if strings.HasPrefix(name, prefix) {
			return true
		}
	}
	return false
}

// activityLinks scans the anchors on the current listing page and returns
// the ones that open records, in DOM order.
func (c *Client) activityLinks() ([]*rod.Element, error) {
	anchors, err := c.page.Elements("a")
	if err != nil {
		return nil, models.NewPipelineError(
			models.ErrCodeNavigation,
			"failed to enumerate listing anchors",
			err,
		)
	}
	var links []*rod.Element
	for _, a := range anchors {
		name, err := c.accessibleName(a)
		if err != nil {
			continue
		}
		if IsActivityLink(name) {
			links = append(links, a)
		}
	}
	return links, nil
}
