package mdreview

import (
	"errors"
	"testing"

	"github.com/alnah/go-mdreview/internal/diff"
)

func TestPageSettings_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		page    *PageSettings
		wantErr error
	}{
		{name: "nil is valid", page: nil},
		{name: "defaults are valid", page: DefaultPageSettings()},
		{name: "case insensitive", page: &PageSettings{Size: "A4", Orientation: "Landscape", Margin: 1}},
		{name: "unknown size", page: &PageSettings{Size: "a5", Orientation: "portrait", Margin: 1}, wantErr: ErrInvalidPageSize},
		{name: "unknown orientation", page: &PageSettings{Size: "a4", Orientation: "square", Margin: 1}, wantErr: ErrInvalidOrientation},
		{name: "margin too small", page: &PageSettings{Size: "a4", Orientation: "portrait", Margin: 0.1}, wantErr: ErrInvalidMargin},
		{name: "margin too large", page: &PageSettings{Size: "a4", Orientation: "portrait", Margin: 3.5}, wantErr: ErrInvalidMargin},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := tt.page.Validate()
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("Validate() unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestFooter_Validate(t *testing.T) {
	t.Parallel()

	var nilFooter *Footer
	if err := nilFooter.Validate(); err != nil {
		t.Errorf("nil footer: unexpected error %v", err)
	}
	for _, pos := range []string{"", "left", "CENTER", "right"} {
		if err := (&Footer{Position: pos}).Validate(); err != nil {
			t.Errorf("position %q: unexpected error %v", pos, err)
		}
	}
	if err := (&Footer{Position: "bottom"}).Validate(); !errors.Is(err, ErrInvalidFooterPosition) {
		t.Errorf("position bottom: error = %v, want ErrInvalidFooterPosition", err)
	}
}

func TestToEdits(t *testing.T) {
	t.Parallel()

	got := toEdits(diff.Diff("Patient has mild pain", "Patient has severe pain"))
	want := []Edit{
		{Op: EditEqual, Text: "Patient has "},
		{Op: EditDelete, Text: "mild"},
		{Op: EditInsert, Text: "severe"},
		{Op: EditEqual, Text: " pain"},
	}
	if len(got) != len(want) {
		t.Fatalf("toEdits() = %#v, want %#v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("edit %d = %#v, want %#v", i, got[i], want[i])
		}
	}

	if !(&Result{Edits: got}).Changed() {
		t.Error("Changed() = false, want true")
	}
	if (&Result{Edits: toEdits(diff.Diff("same", "same"))}).Changed() {
		t.Error("Changed() = true for identical input")
	}
}

func TestSafeHTML_ZeroValue(t *testing.T) {
	t.Parallel()

	var h SafeHTML
	if !h.IsZero() || h.String() != "" {
		t.Errorf("zero SafeHTML = %q, IsZero %v", h.String(), h.IsZero())
	}
}
