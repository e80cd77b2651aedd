package main

import (
	"context"
	"fmt"

	mdreview "github.com/alnah/go-mdreview"
	"github.com/alnah/go-mdreview/internal/report"
	"github.com/alnah/go-mdreview/internal/yamlutil"
)

// Output formats of the annotations command.
const (
	formatText = "text"
	formatYAML = "yaml"
)

// annotationsDoc is the YAML shape of the annotations command output.
type annotationsDoc struct {
	Annotations []mdreview.Annotation `yaml:"annotations"`
	Edits       []mdreview.Edit       `yaml:"edits,omitempty"`
}

// runAnnotations lists the discrepancy notes of a report. With --previous
// the report is diffed first and the YAML output carries the edit script.
func runAnnotations(ctx context.Context, args []string, env *Environment) error {
	flags, positional, err := parseAnnotationsFlags(args, env.Stderr)
	if err != nil {
		return err
	}
	if flags.format != formatText && flags.format != formatYAML {
		return fmt.Errorf("%w: %q (must be text or yaml)", ErrInvalidFormat, flags.format)
	}
	if len(positional) > 1 {
		return fmt.Errorf("%w: annotations takes at most one input, got %d", ErrUsage, len(positional))
	}
	input := ""
	if len(positional) == 1 {
		input = positional[0]
	}

	cfg, _, err := setup(flags, env)
	if err != nil {
		return err
	}

	text, err := readReport(input, cfg, env)
	if err != nil {
		return err
	}

	r, err := mdreview.NewRenderer(rendererOptions(cfg, defaultTimeout, env.Now)...)
	if err != nil {
		return err
	}
	defer r.Close()

	var result *mdreview.Result
	if flags.previous != "" {
		previous, err := readReport(flags.previous, cfg, env)
		if err != nil {
			return err
		}
		result, err = r.RenderDiff(ctx, previous, text)
		if err != nil {
			return fmt.Errorf("diffing %s against %s: %w", displayName(input), flags.previous, err)
		}
	} else {
		result, err = r.Render(ctx, text)
		if err != nil {
			return fmt.Errorf("rendering %s: %w", displayName(input), err)
		}
	}

	if flags.format == formatYAML {
		out, err := yamlutil.Marshal(annotationsDoc{Annotations: result.Annotations, Edits: result.Edits})
		if err != nil {
			return fmt.Errorf("encoding annotations: %w", err)
		}
		_, err = env.Stdout.Write(out)
		return err
	}

	for _, a := range result.Annotations {
		fmt.Fprintf(env.Stdout, "%s\t%s\n", a.Text, a.Note)
	}
	return nil
}

// runKeywords prints the keywords of a report's keywords comment, one per line.
func runKeywords(args []string, env *Environment) error {
	flags, positional, err := parseKeywordsFlags(args, env.Stderr)
	if err != nil {
		return err
	}
	if len(positional) > 1 {
		return fmt.Errorf("%w: keywords takes at most one input, got %d", ErrUsage, len(positional))
	}
	input := ""
	if len(positional) == 1 {
		input = positional[0]
	}
	if flags.verbose {
		env.Logger = verboseLogger(env.Stderr)
	}

	text, err := readInput(input, env)
	if err != nil {
		return err
	}
	rep := report.Split(text)
	env.Logger.Debug("split report", "input", displayName(input), "keywords", len(rep.Keywords))

	for _, k := range rep.Keywords {
		fmt.Fprintln(env.Stdout, k)
	}
	return nil
}
