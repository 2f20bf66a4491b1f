// Package parser converts the rendered markup of one opened SRPO record into
// a typed Activity. The SRPO exposes no stable element IDs; everything is
// located through structural markers (data-bind payloads, widget parameter
// strings, class names) that double as selectors.
package parser

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"
	"golang.org/x/net/html"

	"github.com/srpo-tools/srpo/models"
)

// Precompiled marker selectors. cascadia.Selector implements
// goquery.Matcher, so these compile once and serve every record.
var (
	selTableBody     = cascadia.MustCompile("tbody")
	selScreenTitle   = cascadia.MustCompile("h1.app-screen-title")
	selLocationField = cascadia.MustCompile("native-ui-location-field")
	selDateField     = cascadia.MustCompile("native-ui-date-field")
	selParagraph     = cascadia.MustCompile("p")
)

// Data-binding payloads used as structural markers.
const (
	bindFacilitators    = "foreach: facilitators"
	bindParticipants    = "foreach: participants"
	bindSubdivision     = "text: subdivisionName"
	bindStartDate       = "text: displayStartDate"
	bindServiceProjects = "text: hasServiceProjectsText"
)

// ActivityParser extracts Activity values from record page source.
type ActivityParser struct{}

// New returns a new ActivityParser.
func New() *ActivityParser {
	return &ActivityParser{}
}

// Parse extracts one Activity from the full page source of an opened record.
//
// Absent facilitator/participant tables and absent neighbourhood or
// service-project markers are legitimate states and resolve to empty/unset
// values. Violations of the expected singleton cardinality (title heading,
// more than one table per role, no start date) fail with MALFORMED_RECORD.
func (p *ActivityParser) Parse(pageSource string) (*models.Activity, error) {
	root, err := html.Parse(strings.NewReader(pageSource))
	if err != nil {
		return nil, models.NewPipelineError(
			models.ErrCodeMalformedRecord,
			"record page source is not parseable HTML",
			err,
		)
	}
	doc := goquery.NewDocumentFromNode(root)

	facilitators, err := p.personTable(doc, bindFacilitators)
	if err != nil {
		return nil, err
	}
	participants, err := p.personTable(doc, bindParticipants)
	if err != nil {
		return nil, err
	}

	stage, locality, err := p.screenTitle(doc)
	if err != nil {
		return nil, err
	}

	startDate, err := p.startDate(doc)
	if err != nil {
		return nil, err
	}

	return &models.Activity{
		Locality:             locality,
		Neighbourhood:        p.neighbourhood(doc),
		StartDate:            startDate,
		Stage:                stage,
		Facilitators:         facilitators,
		Participants:         participants,
		DoingServiceProjects: p.serviceProjects(doc),
	}, nil
}

// personTable locates the zero-or-one table body bound to the given role and
// parses its rows. A missing table means the activity simply has nobody in
// that role and yields an empty slice.
func (p *ActivityParser) personTable(doc *goquery.Document, binding string) ([]models.Person, error) {
	tables := doc.FindMatcher(selTableBody).FilterFunction(func(_ int, s *goquery.Selection) bool {
		bind, ok := s.Attr("data-bind")
		return ok && bind == binding
	})
	switch tables.Length() {
	case 0:
		return []models.Person{}, nil
	case 1:
		return p.parsePersons(tables.First(), binding == bindParticipants), nil
	default:
		return nil, models.NewPipelineError(
			models.ErrCodeMalformedRecord,
			fmt.Sprintf("multiple tables bound to %q", binding),
			nil,
		)
	}
}

// parsePersons converts table rows into Person records. Each cell dispatches
// on its structural class marker; a row whose name never resolves is dropped
// without affecting its siblings.
func (p *ActivityParser) parsePersons(table *goquery.Selection, participants bool) []models.Person {
	people := []models.Person{}
	table.Find("tr").Each(func(_ int, row *goquery.Selection) {
		var (
			name      string
			locality  string
			isCurrent bool
			isReg     *bool
		)
		row.Find("td").Each(func(_ int, cell *goquery.Selection) {
			classAttr, _ := cell.Attr("class")
			switch classifyCell(classAttr) {
			case cellIsCurrent:
				// The flag is rendered as a styled span, not as text.
				isCurrent = cell.Find("span").First().HasClass("checked")
			case cellName:
				name = strings.TrimSpace(cell.Find("button").First().Text())
			case cellLocality:
				locality = strings.TrimSpace(cell.Find("button").First().Text())
			case cellIsRegistered:
				if participants {
					reg := strings.TrimSpace(cell.Find("span").First().Text()) == "Yes"
					isReg = &reg
				}
			}
		})
		if name == "" {
			return
		}
		people = append(people, models.Person{
			Name:         name,
			Locality:     locality,
			IsCurrent:    isCurrent,
			IsRegistered: isReg,
		})
	})
	return people
}

// screenTitle locates the unique page-title heading and splits it into the
// stage label and locality. Stage labels for study circles contain ", "
// themselves ("Book 1, ..."), so the locality is taken from the last
// separator, not the first.
func (p *ActivityParser) screenTitle(doc *goquery.Document) (stage, locality string, err error) {
	titles := doc.FindMatcher(selScreenTitle)
	if n := titles.Length(); n != 1 {
		return "", "", models.NewPipelineError(
			models.ErrCodeMalformedRecord,
			fmt.Sprintf("expected exactly one screen title heading, found %d", n),
			nil,
		)
	}
	text := strings.TrimSpace(titles.First().Text())
	idx := strings.LastIndex(text, ", ")
	if idx < 0 {
		return "", "", models.NewPipelineError(
			models.ErrCodeMalformedRecord,
			fmt.Sprintf("screen title %q has no stage/locality separator", text),
			nil,
		)
	}
	return text[:idx], text[idx+2:], nil
}

// neighbourhood returns the text of the location-field widget bound to the
// subdivision name, which the SRPO uses to mean the focus neighbourhood.
// Absence is a legitimate state and yields the empty string; the value is
// never inherited from a previously parsed record.
func (p *ActivityParser) neighbourhood(doc *goquery.Document) string {
	var neighbourhood string
	doc.FindMatcher(selLocationField).EachWithBreak(func(_ int, s *goquery.Selection) bool {
		params, ok := s.Attr("params")
		if !ok || !strings.Contains(params, bindSubdivision) {
			return true
		}
		neighbourhood = strings.TrimSpace(s.FindMatcher(selParagraph).First().Text())
		return false
	})
	return neighbourhood
}

// startDate returns the text of the first date-field widget bound to the
// display start date.
func (p *ActivityParser) startDate(doc *goquery.Document) (string, error) {
	var (
		startDate string
		found     bool
	)
	doc.FindMatcher(selDateField).EachWithBreak(func(_ int, s *goquery.Selection) bool {
		params, ok := s.Attr("params")
		if !ok || !strings.Contains(params, bindStartDate) {
			return true
		}
		startDate = strings.TrimSpace(s.FindMatcher(selParagraph).First().Text())
		found = true
		return false
	})
	if !found {
		return "", models.NewPipelineError(
			models.ErrCodeMalformedRecord,
			"record has no start date field",
			nil,
		)
	}
	return startDate, nil
}

// serviceProjects resolves the service-projects flag from its paragraph
// marker. The marker only exists on junior youth group records; elsewhere
// the flag stays unset.
func (p *ActivityParser) serviceProjects(doc *goquery.Document) *bool {
	var flag *bool
	doc.FindMatcher(selParagraph).EachWithBreak(func(_ int, s *goquery.Selection) bool {
		bind, ok := s.Attr("data-bind")
		if !ok || bind != bindServiceProjects {
			return true
		}
		v := strings.TrimSpace(s.Text()) == "Yes"
		flag = &v
		return false
	})
	return flag
}
