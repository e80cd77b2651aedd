package mdreview

import (
	"fmt"
	"strings"

	"github.com/alnah/go-mdreview/internal/diff"
	"github.com/alnah/go-mdreview/internal/pipeline"
)

// Page size constants.
const (
	PageSizeLetter = "letter"
	PageSizeA4     = "a4"
	PageSizeLegal  = "legal"
)

// Orientation constants.
const (
	OrientationPortrait  = "portrait"
	OrientationLandscape = "landscape"
)

// Margin bounds in inches.
const (
	MinMargin     = 0.25
	MaxMargin     = 3.0
	DefaultMargin = 0.5
)

// PageSettings configures PDF page dimensions.
type PageSettings struct {
	Size        string  // "letter", "a4", "legal"
	Orientation string  // "portrait", "landscape"
	Margin      float64 // inches, applied to all sides
}

// DefaultPageSettings returns page settings with default values.
func DefaultPageSettings() *PageSettings {
	return &PageSettings{
		Size:        PageSizeLetter,
		Orientation: OrientationPortrait,
		Margin:      DefaultMargin,
	}
}

// Validate checks that page settings are valid.
// Returns nil if p is nil (nil means use defaults).
func (p *PageSettings) Validate() error {
	if p == nil {
		return nil
	}

	switch strings.ToLower(p.Size) {
	case PageSizeLetter, PageSizeA4, PageSizeLegal:
	default:
		return fmt.Errorf("%w: %q", ErrInvalidPageSize, p.Size)
	}

	switch strings.ToLower(p.Orientation) {
	case OrientationPortrait, OrientationLandscape:
	default:
		return fmt.Errorf("%w: %q", ErrInvalidOrientation, p.Orientation)
	}

	if p.Margin < MinMargin || p.Margin > MaxMargin {
		return fmt.Errorf("%w: %.2f (must be between %.2f and %.2f)", ErrInvalidMargin, p.Margin, MinMargin, MaxMargin)
	}

	return nil
}

// Footer configures the PDF footer.
type Footer struct {
	Position       string // "left", "center", "right" (default: "right")
	ShowPageNumber bool
	Date           string
	Status         string
	Text           string
}

// Validate checks that footer settings are valid.
// Returns nil if f is nil (nil means no footer).
func (f *Footer) Validate() error {
	if f == nil {
		return nil
	}
	switch strings.ToLower(f.Position) {
	case "", "left", "center", "right":
		return nil
	default:
		return fmt.Errorf("%w: %q (must be left, center, or right)", ErrInvalidFooterPosition, f.Position)
	}
}

// Annotation is a discrepancy flagged in the report: Text is the flagged
// span, Note the reviewer-facing explanation.
type Annotation struct {
	Note string `yaml:"note"`
	Text string `yaml:"text"`
}

// EditOp is the kind of an Edit.
type EditOp string

// Edit operations.
const (
	EditEqual  EditOp = "equal"
	EditInsert EditOp = "insert"
	EditDelete EditOp = "delete"
)

// Edit is one segment of the change between two report versions.
type Edit struct {
	Op   EditOp `yaml:"op"`
	Text string `yaml:"text"`
}

// Result is the output of a render.
type Result struct {
	HTML        SafeHTML     // Sanitized fragment
	Annotations []Annotation // Discrepancies in document order
	Edits       []Edit       // Set by RenderDiff; nil for Render
}

// Changed reports whether the result carries a diff with at least one
// inserted or deleted segment.
func (r *Result) Changed() bool {
	for _, e := range r.Edits {
		if e.Op != EditEqual {
			return true
		}
	}
	return false
}

func toAnnotations(in []pipeline.Annotation) []Annotation {
	if len(in) == 0 {
		return nil
	}
	out := make([]Annotation, len(in))
	for i, a := range in {
		out[i] = Annotation(a)
	}
	return out
}

func toEdits(script diff.Script) []Edit {
	out := make([]Edit, 0, len(script))
	for _, e := range script {
		var op EditOp
		switch e.Op {
		case diff.Insert:
			op = EditInsert
		case diff.Delete:
			op = EditDelete
		default:
			op = EditEqual
		}
		out = append(out, Edit{Op: op, Text: e.Text})
	}
	return out
}
