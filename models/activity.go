package models

import (
	"fmt"
	"strings"
)

// Kind is the derived type of an educational activity.
type Kind string

const (
	KindChildrensClass   Kind = "Children's Class"
	KindJuniorYouthGroup Kind = "Junior Youth Group"
	KindStudyCircle      Kind = "Study Circle"
	KindUnknown          Kind = "Unknown Activity"
)

// Person is one row of a facilitators or participants table. Identity is
// positional within a record; nothing is tracked across records.
type Person struct {
	Name     string
	Locality string

	// IsCurrent reports whether the person is currently
	// facilitating/participating.
	IsCurrent bool

	// IsRegistered is only meaningful for participants; it stays nil for
	// facilitators.
	IsRegistered *bool
}

// Activity is the data extracted from one opened record view. Values are
// never mutated after construction.
type Activity struct {
	Locality      string
	Neighbourhood string

	// StartDate is kept in the site's own display format.
	StartDate string

	// Stage is the grade label, curriculum-book label, or junior-youth text
	// title that discriminates the activity kind.
	Stage string

	Facilitators []Person
	Participants []Person

	// DoingServiceProjects is only meaningful for junior youth groups; it
	// stays nil for other kinds.
	DoingServiceProjects *bool

	// KindOverride forces Kind() to a fixed value. It is only set on the
	// construction path for blank form templates, where there is no stage
	// string to derive the kind from.
	KindOverride Kind
}

// ChildrensClassGrades are the stage prefixes identifying a children's class.
func ChildrensClassGrades() []string {
	grades := make([]string, 0, 6)
	for x := 1; x <= 6; x++ {
		grades = append(grades, fmt.Sprintf("Grade %d", x))
	}
	return grades
}

// StudyCircleBooks are the stage prefixes identifying a study circle. Later
// books are split into units, so their prefixes carry the unit suffix. Every
// prefix ends with a comma so that e.g. "Book 1," cannot collide with a
// hypothetical "Book 10" title.
func StudyCircleBooks() []string {
	books := make([]string, 0, 7+7*3)
	for x := 1; x <= 7; x++ {
		books = append(books, fmt.Sprintf("Book %d,", x))
	}
	for x := 8; x <= 14; x++ {
		for y := 1; y <= 3; y++ {
			books = append(books, fmt.Sprintf("Book %d (U%d),", x, y))
		}
	}
	return books
}

// JuniorYouthTexts are the stage prefixes identifying a junior youth group.
func JuniorYouthTexts() []string {
	return []string{
		"Breezes of Confirmation",
		"Wellspring of Joy",
		"Habits of an Orderly Mind",
		"Glimmerings of Hope",
		"Walking the Straight Path",
		"Learning About Excellence",
		"Thinking About Numbers",
		"Observation and Insight",
		"The Human Temple",
		"Drawing on the Power of the Word",
		"Spirit of Faith",
		"Power of the Holy Spirit",
	}
}

// ActivityPrefixes is the union of all stage prefixes. An anchor on the
// listing page whose accessible name starts with one of these denotes an
// openable record.
func ActivityPrefixes() []string {
	grades := ChildrensClassGrades()
	books := StudyCircleBooks()
	texts := JuniorYouthTexts()

	all := make([]string, 0, len(grades)+len(books)+len(texts))
	all = append(all, grades...)
	all = append(all, books...)
	all = append(all, texts...)
	return all
}

// KindOf derives the activity kind from a stage string. The lists are tested
// in a fixed order and the first list containing a matching prefix wins.
// A stage matching nothing classifies as KindUnknown; the function is total
// over all strings.
func KindOf(stage string) Kind {
	for _, g := range ChildrensClassGrades() {
		if strings.HasPrefix(stage, g) {
			return KindChildrensClass
		}
	}
	for _, b := range StudyCircleBooks() {
		if strings.HasPrefix(stage, b) {
			return KindStudyCircle
		}
	}
	for _, t := range JuniorYouthTexts() {
		if strings.HasPrefix(stage, t) {
			return KindJuniorYouthGroup
		}
	}
	return KindUnknown
}

// Kind returns the activity's derived kind, honoring KindOverride when set.
func (a *Activity) Kind() Kind {
	if a.KindOverride != "" {
		return a.KindOverride
	}
	return KindOf(a.Stage)
}

// String renders the activity's display label, used for PDF file names and
// progress logging.
func (a *Activity) String() string {
	return fmt.Sprintf("%s, %s - %s", a.Kind(), a.Stage, a.Locality)
}
