package srpo

import (
	"testing"

	"github.com/srpo-tools/srpo/models"
)

func TestAreaLabel(t *testing.T) {
	tests := []struct {
		code string
		want string
	}{
		{"BC", "British Columbia"},
		{"BC01", "BC01 - Sooke"},
		{"BC03", "BC03 - Southeast Victoria"},
		{"BC41", "BC41 - Haida Gwaii"},
	}
	for _, tt := range tests {
		got, err := AreaLabel(tt.code)
		if err != nil {
			t.Errorf("AreaLabel(%q) error: %v", tt.code, err)
			continue
		}
		if got != tt.want {
			t.Errorf("AreaLabel(%q) = %q, want %q", tt.code, got, tt.want)
		}
	}
}

func TestAreaLabelUnknownCode(t *testing.T) {
	_, err := AreaLabel("BC99")
	if err == nil {
		t.Fatal("expected error for unknown code")
	}
	if !models.IsCode(err, models.ErrCodeInvalidInput) {
		t.Errorf("expected code %s, got %v", models.ErrCodeInvalidInput, err)
	}
}

func TestAreaCodesSorted(t *testing.T) {
	codes := AreaCodes()
	if len(codes) != len(validAreas) {
		t.Fatalf("expected %d codes, got %d", len(validAreas), len(codes))
	}
	for i := 1; i < len(codes); i++ {
		if codes[i-1] >= codes[i] {
			t.Fatalf("codes not sorted at %d: %q >= %q", i, codes[i-1], codes[i])
		}
	}
}
