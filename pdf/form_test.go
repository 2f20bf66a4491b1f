package pdf

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/srpo-tools/srpo/models"
)

func boolPtr(b bool) *bool { return &b }

func TestGenerateForm(t *testing.T) {
	registered := boolPtr(true)
	a := &models.Activity{
		Locality:      "Victoria",
		Neighbourhood: "Fernwood",
		StartDate:     "12 Jan 2023",
		Stage:         "Breezes of Confirmation",
		Facilitators: []models.Person{
			{Name: "Alice Example", Locality: "Victoria", IsCurrent: true},
		},
		Participants: []models.Person{
			{Name: "Carol Example", Locality: "Victoria", IsCurrent: true, IsRegistered: registered},
		},
		DoingServiceProjects: boolPtr(true),
	}

	path := filepath.Join(t.TempDir(), "form.pdf")
	if err := GenerateForm(a, path); err != nil {
		t.Fatalf("GenerateForm() error: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("form not written: %v", err)
	}
	if info.Size() == 0 {
		t.Error("form is empty")
	}
}

func TestGenerateFormUnknownKind(t *testing.T) {
	// An unclassifiable stage must still render, just with the generic
	// facilitator label.
	a := &models.Activity{Stage: "Mystery Session", Locality: "Sooke"}

	path := filepath.Join(t.TempDir(), "unknown.pdf")
	if err := GenerateForm(a, path); err != nil {
		t.Fatalf("GenerateForm() error: %v", err)
	}
}

func TestGenerateBlankForms(t *testing.T) {
	dir := t.TempDir()
	if err := GenerateBlankForms(dir); err != nil {
		t.Fatalf("GenerateBlankForms() error: %v", err)
	}

	for _, name := range []string{
		"Children's Class Blank.pdf",
		"Junior Youth Group Blank.pdf",
		"Study Circle Blank.pdf",
	} {
		info, err := os.Stat(filepath.Join(dir, name))
		if err != nil {
			t.Errorf("blank form %q not written: %v", name, err)
			continue
		}
		if info.Size() == 0 {
			t.Errorf("blank form %q is empty", name)
		}
	}
}

func TestFacilitatorLabel(t *testing.T) {
	tests := []struct {
		kind models.Kind
		want string
	}{
		{models.KindChildrensClass, "Teachers"},
		{models.KindJuniorYouthGroup, "Animators"},
		{models.KindStudyCircle, "Tutors"},
		{models.KindUnknown, "Facilitators"},
	}
	for _, tt := range tests {
		if got := facilitatorLabel(tt.kind); got != tt.want {
			t.Errorf("facilitatorLabel(%q) = %q, want %q", tt.kind, got, tt.want)
		}
	}
}
