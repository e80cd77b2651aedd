package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	mdreview "github.com/alnah/go-mdreview"
	"github.com/alnah/go-mdreview/internal/config"
	"github.com/alnah/go-mdreview/internal/fileutil"
	"github.com/alnah/go-mdreview/internal/report"
)

// runRender renders one report to HTML or PDF.
func runRender(ctx context.Context, args []string, env *Environment) error {
	flags, positional, err := parseRenderFlags(args, env.Stderr)
	if err != nil {
		return err
	}
	if len(positional) > 1 {
		return fmt.Errorf("%w: render takes at most one input, got %d", ErrUsage, len(positional))
	}
	input := ""
	if len(positional) == 1 {
		input = positional[0]
	}

	cfg, timeout, err := setup(flags, env)
	if err != nil {
		return err
	}
	start := env.Now()

	text, err := readReport(input, cfg, env)
	if err != nil {
		return err
	}

	r, err := mdreview.NewRenderer(rendererOptions(cfg, timeout, env.Now)...)
	if err != nil {
		return err
	}
	defer r.Close()

	result, err := r.Render(ctx, text)
	if err != nil {
		return fmt.Errorf("rendering %s: %w", displayName(input), err)
	}
	env.Logger.Debug("rendered report", "input", displayName(input), "annotations", len(result.Annotations))

	return writeDocument(ctx, r, result, flags, cfg, input, start, env)
}

// runDiff renders the current report with its changes against the previous
// version marked up.
func runDiff(ctx context.Context, args []string, env *Environment) error {
	flags, positional, err := parseDiffFlags(args, env.Stderr)
	if err != nil {
		return err
	}

	cfg, timeout, err := setup(flags, env)
	if err != nil {
		return err
	}
	start := env.Now()

	previousPath, currentPath, err := resolveDiffInputs(positional, cfg)
	if err != nil {
		return err
	}
	if isStdin(previousPath) && isStdin(currentPath) {
		return fmt.Errorf("%w: only one version can be read from stdin", ErrUsage)
	}

	previous, err := readReport(previousPath, cfg, env)
	if err != nil {
		return err
	}
	current, err := readReport(currentPath, cfg, env)
	if err != nil {
		return err
	}

	r, err := mdreview.NewRenderer(rendererOptions(cfg, timeout, env.Now)...)
	if err != nil {
		return err
	}
	defer r.Close()

	result, err := r.RenderDiff(ctx, previous, current)
	if err != nil {
		return fmt.Errorf("diffing %s against %s: %w", displayName(currentPath), displayName(previousPath), err)
	}
	env.Logger.Debug("rendered diff",
		"previous", displayName(previousPath),
		"current", displayName(currentPath),
		"changes", countChanges(result.Edits),
		"annotations", len(result.Annotations))

	if err := writeDocument(ctx, r, result, flags, cfg, currentPath, start, env); err != nil {
		return err
	}
	if !flags.common.quiet && !writesToStdout(flags, currentPath) {
		fmt.Fprintf(env.Stdout, "%d change(s), %d annotation(s)\n", countChanges(result.Edits), len(result.Annotations))
	}
	return nil
}

// resolveDiffInputs returns the previous and current report paths from the
// positional arguments, falling back to input.previous when only the
// current version is given.
func resolveDiffInputs(positional []string, cfg *config.Config) (previous, current string, err error) {
	switch len(positional) {
	case 2:
		return positional[0], positional[1], nil
	case 1:
		if cfg.Input.Previous == "" {
			return "", "", fmt.Errorf("%w: previous version required (argument, --previous, or input.previous)", ErrNoInput)
		}
		return cfg.Input.Previous, positional[0], nil
	case 0:
		return "", "", fmt.Errorf("%w: diff needs the current report", ErrNoInput)
	default:
		return "", "", fmt.Errorf("%w: diff takes at most two inputs, got %d", ErrUsage, len(positional))
	}
}

// setup resolves logging, configuration and timeout for a document command.
func setup(flags *reviewFlags, env *Environment) (*config.Config, time.Duration, error) {
	if flags.common.verbose {
		env.Logger = verboseLogger(env.Stderr)
	}
	if !flags.common.quiet {
		warnUnknownEnvVars(env.Stderr)
	}

	envCfg := loadEnvConfig()
	cfg, err := loadConfig(flags, envCfg)
	if err != nil {
		return nil, 0, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, 0, err
	}
	env.Config = cfg

	timeout, err := resolveTimeout(flags.timeout, envCfg)
	if err != nil {
		return nil, 0, err
	}
	env.Logger.Debug("configuration resolved",
		"style", cfg.Style.Name,
		"page", cfg.Page.Size,
		"footer", cfg.Footer.Enabled,
		"timeout", timeout)
	return cfg, timeout, nil
}

// readInput reads a report from path, or from stdin when path is "" or "-".
func readInput(path string, env *Environment) (string, error) {
	var data []byte
	var err error
	if isStdin(path) {
		data, err = io.ReadAll(env.Stdin)
	} else {
		data, err = os.ReadFile(path) // #nosec G304 -- user-provided path
	}
	if err != nil {
		return "", fmt.Errorf("%w %s: %w", ErrReadInput, displayName(path), err)
	}
	return string(data), nil
}

// readReport reads a report and, when keyword extraction is enabled, strips
// its keywords comment.
func readReport(path string, cfg *config.Config, env *Environment) (string, error) {
	text, err := readInput(path, env)
	if err != nil {
		return "", err
	}
	if !cfg.Report.ExtractKeywords {
		return text, nil
	}
	rep := report.Split(text)
	env.Logger.Debug("stripped keywords", "input", displayName(path), "keywords", rep.Keywords)
	return rep.Body, nil
}

// writeDocument exports result as HTML or PDF to the output file, the
// derived output path, or stdout.
func writeDocument(ctx context.Context, r *mdreview.Renderer, result *mdreview.Result, flags *reviewFlags, cfg *config.Config, input string, start time.Time, env *Environment) error {
	asPDF := flags.output.pdf || strings.EqualFold(filepath.Ext(flags.output.path), ".pdf")
	title := documentTitle(cfg, input)

	var data []byte
	ext := "html"
	if asPDF {
		ext = "pdf"
		pdf, err := r.ExportPDF(ctx, result, title)
		if err != nil {
			return err
		}
		data = pdf
	} else {
		doc, err := r.Document(ctx, result, title)
		if err != nil {
			return err
		}
		data = []byte(doc)
	}

	if writesToStdout(flags, input) {
		if _, err := env.Stdout.Write(data); err != nil {
			return fmt.Errorf("%w: %w", ErrWriteOutput, err)
		}
		return nil
	}

	dest := flags.output.path
	if dest == "" {
		dest = fileutil.ReplaceExt(input, cfg.Output.DefaultDir, ext)
	}
	if err := fileutil.WriteOutput(dest, data); err != nil {
		return fmt.Errorf("%w: %w", ErrWriteOutput, err)
	}

	switch {
	case flags.common.quiet:
	case flags.common.verbose:
		fmt.Fprintf(env.Stdout, "%s -> %s (%v)\n", input, dest, env.Now().Sub(start).Round(time.Millisecond))
	default:
		fmt.Fprintf(env.Stdout, "Created %s\n", dest)
	}
	return nil
}

// writesToStdout reports whether the document goes to stdout: with -o -,
// or with no -o when the input itself came from stdin.
func writesToStdout(flags *reviewFlags, input string) bool {
	return flags.output.path == "-" || (flags.output.path == "" && isStdin(input))
}

// documentTitle returns report.title, or the input file's base name.
func documentTitle(cfg *config.Config, input string) string {
	if cfg.Report.Title != "" {
		return cfg.Report.Title
	}
	if isStdin(input) {
		return ""
	}
	base := filepath.Base(input)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// displayName names an input in messages.
func displayName(path string) string {
	if isStdin(path) {
		return "<stdin>"
	}
	return path
}

// countChanges counts inserted and deleted runs.
func countChanges(edits []mdreview.Edit) int {
	n := 0
	for _, e := range edits {
		if e.Op != mdreview.EditEqual {
			n++
		}
	}
	return n
}
