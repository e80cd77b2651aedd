package main

import (
	"context"
	"errors"
	"os"

	mdreview "github.com/alnah/go-mdreview"
	"github.com/alnah/go-mdreview/internal/config"
	"github.com/alnah/go-mdreview/internal/pipeline"
)

// Exit codes for the mdreview CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess = 0 // Successful run
	ExitGeneral = 1 // General/unexpected error
	ExitUsage   = 2 // Invalid flags, config, or validation
	ExitIO      = 3 // File not found, permission denied
	ExitBrowser = 4 // Browser/Chrome errors
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// Browser errors (exit 4)
	if errors.Is(err, mdreview.ErrBrowserConnect) ||
		errors.Is(err, mdreview.ErrPageCreate) ||
		errors.Is(err, mdreview.ErrPageLoad) ||
		errors.Is(err, mdreview.ErrPDFGeneration) ||
		errors.Is(err, context.DeadlineExceeded) {
		return ExitBrowser
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, ErrReadInput) ||
		errors.Is(err, ErrWriteOutput) ||
		errors.Is(err, ErrNoInput) {
		return ExitIO
	}

	// Usage/config/validation errors (exit 2)
	if errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrFieldTooLong) ||
		errors.Is(err, config.ErrInvalidValue) ||
		errors.Is(err, mdreview.ErrEmptyMarkdown) ||
		errors.Is(err, mdreview.ErrInvalidPageSize) ||
		errors.Is(err, mdreview.ErrInvalidOrientation) ||
		errors.Is(err, mdreview.ErrInvalidMargin) ||
		errors.Is(err, mdreview.ErrInvalidFooterPosition) ||
		errors.Is(err, mdreview.ErrStyleNotFound) ||
		errors.Is(err, mdreview.ErrInvalidAssetPath) ||
		errors.Is(err, pipeline.ErrUnknownHighlightStyle) ||
		errors.Is(err, ErrUsage) ||
		errors.Is(err, ErrInvalidTimeout) ||
		errors.Is(err, ErrInvalidFormat) {
		return ExitUsage
	}

	return ExitGeneral
}
