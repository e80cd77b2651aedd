package main

// Notes:
// - exitCodeFor: we test the sentinel errors of the mdreview, config and
//   pipeline packages plus CLI sentinels, and wrapped errors to verify the
//   errors.Is chain.
// These are acceptable gaps: we test observable behavior, not implementation details.

import (
	"context"
	"errors"
	"fmt"
	"os"
	"testing"

	mdreview "github.com/alnah/go-mdreview"
	"github.com/alnah/go-mdreview/internal/config"
	"github.com/alnah/go-mdreview/internal/pipeline"
)

func TestExitCodeFor(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		err  error
		want int
	}{
		// Success
		{"nil error", nil, ExitSuccess},

		// Browser errors (exit 4)
		{"browser connect", mdreview.ErrBrowserConnect, ExitBrowser},
		{"page create", mdreview.ErrPageCreate, ExitBrowser},
		{"page load", mdreview.ErrPageLoad, ExitBrowser},
		{"pdf generation", mdreview.ErrPDFGeneration, ExitBrowser},
		{"deadline exceeded", fmt.Errorf("converting to PDF: %w", context.DeadlineExceeded), ExitBrowser},
		{"wrapped browser connect", fmt.Errorf("failed: %w", mdreview.ErrBrowserConnect), ExitBrowser},

		// I/O errors (exit 3)
		{"file not exist", os.ErrNotExist, ExitIO},
		{"permission denied", os.ErrPermission, ExitIO},
		{"read input", ErrReadInput, ExitIO},
		{"write output", ErrWriteOutput, ExitIO},
		{"no input", ErrNoInput, ExitIO},
		{"wrapped file not exist", fmt.Errorf("reading: %w", os.ErrNotExist), ExitIO},

		// Usage/config/validation errors (exit 2)
		{"usage", ErrUsage, ExitUsage},
		{"invalid timeout", ErrInvalidTimeout, ExitUsage},
		{"invalid format", ErrInvalidFormat, ExitUsage},
		{"config not found", config.ErrConfigNotFound, ExitUsage},
		{"config not found type", &config.NotFoundError{Tried: []string{"x.yaml"}}, ExitUsage},
		{"config parse", config.ErrConfigParse, ExitUsage},
		{"field too long", config.ErrFieldTooLong, ExitUsage},
		{"invalid config value", config.ErrInvalidValue, ExitUsage},
		{"empty markdown", mdreview.ErrEmptyMarkdown, ExitUsage},
		{"invalid page size", mdreview.ErrInvalidPageSize, ExitUsage},
		{"invalid orientation", mdreview.ErrInvalidOrientation, ExitUsage},
		{"invalid margin", mdreview.ErrInvalidMargin, ExitUsage},
		{"invalid footer position", mdreview.ErrInvalidFooterPosition, ExitUsage},
		{"style not found", mdreview.ErrStyleNotFound, ExitUsage},
		{"invalid asset path", mdreview.ErrInvalidAssetPath, ExitUsage},
		{"unknown highlight style", pipeline.ErrUnknownHighlightStyle, ExitUsage},
		{"wrapped config parse", fmt.Errorf("loading: %w", config.ErrConfigParse), ExitUsage},

		// General errors (exit 1)
		{"unknown error", errors.New("something unexpected"), ExitGeneral},
		{"unrenderable", mdreview.ErrUnrenderable, ExitGeneral},
		{"wrapped unknown", fmt.Errorf("context: %w", errors.New("unknown")), ExitGeneral},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := exitCodeFor(tt.err)
			if got != tt.want {
				t.Errorf("exitCodeFor(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}

func TestExitCodeConstants(t *testing.T) {
	t.Parallel()

	if ExitSuccess != 0 || ExitGeneral != 1 || ExitUsage != 2 {
		t.Errorf("standard exit codes changed: %d %d %d", ExitSuccess, ExitGeneral, ExitUsage)
	}
	for _, code := range []int{ExitIO, ExitBrowser} {
		if code <= ExitUsage || code >= 126 {
			t.Errorf("custom exit code %d should be in (2, 126)", code)
		}
	}
}
