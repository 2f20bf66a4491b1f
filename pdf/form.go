// Package pdf renders printable activity forms from extracted activities.
// Layout only; all data comes in as an already-built Activity.
package pdf

import (
	"fmt"
	"path/filepath"

	"github.com/go-pdf/fpdf"

	"github.com/srpo-tools/srpo/models"
)

const (
	nameColWidth     = 70
	localityColWidth = 50
	flagColWidth     = 35

	// minTableRows pads person tables so a sparse or blank form still has
	// room to be filled in by hand.
	minTableRows = 8
)

// GenerateForm writes one activity's form to the given path.
func GenerateForm(a *models.Activity, path string) error {
	pdf := fpdf.New("P", "mm", "Letter", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.CellFormat(0, 10, tr(string(a.Kind())), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "", 11)
	writeField(pdf, tr, "Stage", a.Stage)
	writeField(pdf, tr, "Locality", a.Locality)
	writeField(pdf, tr, "Neighbourhood", a.Neighbourhood)
	writeField(pdf, tr, "Start date", a.StartDate)
	if a.Kind() == models.KindJuniorYouthGroup {
		writeField(pdf, tr, "Doing service projects", flagText(a.DoingServiceProjects))
	}
	pdf.Ln(4)

	writePersonTable(pdf, tr, facilitatorLabel(a.Kind()), a.Facilitators, false)
	pdf.Ln(6)
	writePersonTable(pdf, tr, "Participants", a.Participants, true)

	return pdf.OutputFileAndClose(path)
}

// GenerateBlankForms writes an empty form for each of the three activity
// kinds into dir. A blank activity has no stage to derive its kind from, so
// the kind is forced through the override on the construction path.
func GenerateBlankForms(dir string) error {
	kinds := []models.Kind{
		models.KindChildrensClass,
		models.KindJuniorYouthGroup,
		models.KindStudyCircle,
	}
	for _, kind := range kinds {
		blank := &models.Activity{
			Facilitators: []models.Person{},
			Participants: []models.Person{},
			KindOverride: kind,
		}
		path := filepath.Join(dir, fmt.Sprintf("%s Blank.pdf", kind))
		if err := GenerateForm(blank, path); err != nil {
			return err
		}
	}
	return nil
}

// facilitatorLabel names the facilitator role for the activity kind.
func facilitatorLabel(kind models.Kind) string {
	switch kind {
	case models.KindChildrensClass:
		return "Teachers"
	case models.KindJuniorYouthGroup:
		return "Animators"
	case models.KindStudyCircle:
		return "Tutors"
	default:
		return "Facilitators"
	}
}

func writeField(pdf *fpdf.Fpdf, tr func(string) string, label, value string) {
	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(50, 7, tr(label+":"), "", 0, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 11)
	if value == "" {
		value = "____________________"
	}
	pdf.CellFormat(0, 7, tr(value), "", 1, "L", false, 0, "")
}

func writePersonTable(pdf *fpdf.Fpdf, tr func(string) string, label string, people []models.Person, participants bool) {
	pdf.SetFont("Helvetica", "B", 13)
	pdf.CellFormat(0, 8, tr(label), "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(nameColWidth, 7, "Name", "1", 0, "L", false, 0, "")
	pdf.CellFormat(localityColWidth, 7, "Locality", "1", 0, "L", false, 0, "")
	pdf.CellFormat(flagColWidth, 7, "Current", "1", 0, "C", false, 0, "")
	if participants {
		pdf.CellFormat(flagColWidth, 7, "Registered", "1", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 10)
	rows := len(people)
	if rows < minTableRows {
		rows = minTableRows
	}
	for i := 0; i < rows; i++ {
		var p models.Person
		if i < len(people) {
			p = people[i]
		}
		pdf.CellFormat(nameColWidth, 7, tr(p.Name), "1", 0, "L", false, 0, "")
		pdf.CellFormat(localityColWidth, 7, tr(p.Locality), "1", 0, "L", false, 0, "")
		current := ""
		if i < len(people) {
			current = checkbox(p.IsCurrent)
		}
		pdf.CellFormat(flagColWidth, 7, current, "1", 0, "C", false, 0, "")
		if participants {
			registered := ""
			if i < len(people) {
				registered = flagText(p.IsRegistered)
			}
			pdf.CellFormat(flagColWidth, 7, registered, "1", 0, "C", false, 0, "")
		}
		pdf.Ln(-1)
	}
}

func checkbox(set bool) string {
	if set {
		return "[X]"
	}
	return "[ ]"
}

// flagText renders an optional flag; unset flags stay blank rather than
// defaulting to No.
func flagText(flag *bool) string {
	switch {
	case flag == nil:
		return ""
	case *flag:
		return "Yes"
	default:
		return "No"
	}
}
