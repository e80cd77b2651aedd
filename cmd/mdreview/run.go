package main

import (
	"context"
	"errors"
	"fmt"

	flag "github.com/spf13/pflag"

	mdreview "github.com/alnah/go-mdreview"
	"github.com/alnah/go-mdreview/internal/assets"
	"github.com/alnah/go-mdreview/internal/config"
	"github.com/alnah/go-mdreview/internal/hints"
)

// Sentinel errors for CLI operations.
var (
	ErrUsage          = errors.New("invalid usage")
	ErrNoInput        = errors.New("no input specified")
	ErrReadInput      = errors.New("failed to read input")
	ErrWriteOutput    = errors.New("failed to write output")
	ErrInvalidTimeout = errors.New("invalid timeout")
	ErrInvalidFormat  = errors.New("invalid output format")
)

// runMain runs the CLI and returns the process exit code.
func runMain(args []string, env *Environment) int {
	ctx, stop := notifyContext(context.Background())
	defer stop()

	err := run(ctx, args, env)
	if errors.Is(err, flag.ErrHelp) {
		return ExitSuccess
	}
	if err != nil {
		fmt.Fprintf(env.Stderr, "error: %v%s\n", err, hintFor(err))
	}
	return exitCodeFor(err)
}

// run dispatches args[0] to its command.
func run(ctx context.Context, args []string, env *Environment) error {
	if len(args) == 0 {
		printUsage(env.Stderr)
		return fmt.Errorf("%w: missing command", ErrUsage)
	}

	cmd, rest := args[0], args[1:]
	switch cmd {
	case "render":
		return runRender(ctx, rest, env)
	case "diff":
		return runDiff(ctx, rest, env)
	case "annotations":
		return runAnnotations(ctx, rest, env)
	case "keywords":
		return runKeywords(rest, env)
	case "version", "--version":
		fmt.Fprintf(env.Stdout, "go-mdreview %s\n", Version)
		return nil
	case "help", "-h", "--help":
		runHelp(rest, env)
		return nil
	default:
		printUsage(env.Stderr)
		return fmt.Errorf("%w: unknown command %q", ErrUsage, cmd)
	}
}

// hintFor returns the actionable hint matching err, or "".
func hintFor(err error) string {
	switch {
	case errors.Is(err, mdreview.ErrBrowserConnect):
		return hints.ForBrowserConnect()
	case errors.Is(err, context.DeadlineExceeded):
		return hints.ForTimeout()
	case errors.Is(err, config.ErrConfigNotFound):
		var notFound *config.NotFoundError
		if errors.As(err, &notFound) {
			return hints.ForConfigNotFound(notFound.Tried)
		}
		return hints.ForConfigNotFound(nil)
	case errors.Is(err, mdreview.ErrStyleNotFound):
		return hints.ForStyleNotFound(assets.Styles())
	case errors.Is(err, mdreview.ErrEmptyMarkdown), errors.Is(err, ErrNoInput):
		return hints.ForEmptyInput()
	case errors.Is(err, ErrWriteOutput):
		return hints.ForOutputDirectory()
	}
	return ""
}

// isStdin reports whether path designates standard input.
func isStdin(path string) bool {
	return path == "" || path == "-"
}
