package models

import (
	"strings"
	"testing"
)

func TestKindOf(t *testing.T) {
	tests := []struct {
		name  string
		stage string
		want  Kind
	}{
		{"grade 1", "Grade 1", KindChildrensClass},
		{"grade 6 with suffix", "Grade 6 - Lesson 12", KindChildrensClass},
		{"grade 7 does not exist", "Grade 7", KindUnknown},
		{"early book", "Book 1, Reflections on the Life of the Spirit", KindStudyCircle},
		{"late book with unit", "Book 8 (U2), The Covenant", KindStudyCircle},
		{"book without separator", "Book 1", KindUnknown},
		{"junior youth text", "Breezes of Confirmation", KindJuniorYouthGroup},
		{"junior youth text with suffix", "Spirit of Faith (continuing)", KindJuniorYouthGroup},
		{"empty", "", KindUnknown},
		{"chrome label", "Next page", KindUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := KindOf(tt.stage); got != tt.want {
				t.Errorf("KindOf(%q) = %q, want %q", tt.stage, got, tt.want)
			}
		})
	}
}

func TestKindOfIsTotal(t *testing.T) {
	// Classification must be deterministic and total over arbitrary input.
	inputs := []string{
		"", " ", "\t", "Grade", "Book", "Book 14 (U3),", "日本語",
		strings.Repeat("x", 10_000),
	}
	for _, in := range inputs {
		first := KindOf(in)
		second := KindOf(in)
		if first != second {
			t.Errorf("KindOf(%q) not deterministic: %q then %q", in, first, second)
		}
	}
}

func TestStudyCircleBooks(t *testing.T) {
	books := StudyCircleBooks()

	// 7 whole books plus 7 unit-split books with 3 units each.
	if len(books) != 28 {
		t.Fatalf("expected 28 book prefixes, got %d", len(books))
	}
	for _, b := range books {
		if !strings.HasSuffix(b, ",") {
			t.Errorf("book prefix %q lacks its trailing separator", b)
		}
	}
	if books[0] != "Book 1," {
		t.Errorf("first book prefix = %q, want %q", books[0], "Book 1,")
	}
	if books[7] != "Book 8 (U1)," {
		t.Errorf("first unit-split prefix = %q, want %q", books[7], "Book 8 (U1),")
	}
}

func TestActivityPrefixes(t *testing.T) {
	prefixes := ActivityPrefixes()
	want := 6 + 28 + 12
	if len(prefixes) != want {
		t.Fatalf("expected %d prefixes, got %d", want, len(prefixes))
	}
}

func TestActivityString(t *testing.T) {
	a := &Activity{
		Stage:    "Breezes of Confirmation",
		Locality: "Victoria",
	}
	want := "Junior Youth Group, Breezes of Confirmation - Victoria"
	if got := a.String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestActivityStringUnknownKindDegrades(t *testing.T) {
	a := &Activity{Stage: "Mystery Session", Locality: "Sooke"}
	want := "Unknown Activity, Mystery Session - Sooke"
	if got := a.String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestKindOverride(t *testing.T) {
	a := &Activity{KindOverride: KindStudyCircle}
	if got := a.Kind(); got != KindStudyCircle {
		t.Errorf("Kind() with override = %q, want %q", got, KindStudyCircle)
	}

	// Without the override the blank stage would classify as unknown.
	b := &Activity{}
	if got := b.Kind(); got != KindUnknown {
		t.Errorf("Kind() without override = %q, want %q", got, KindUnknown)
	}
}
