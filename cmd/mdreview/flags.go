package main

import (
	"errors"
	"fmt"
	"io"

	flag "github.com/spf13/pflag"
)

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
}

// outputFlags holds output destination flags.
type outputFlags struct {
	path  string // "-" writes to stdout
	pdf   bool
	title string
}

// assetFlags holds stylesheet and highlighting flags.
type assetFlags struct {
	style          string
	printStyle     string
	assetPath      string
	highlightStyle string
	noHighlight    bool
}

// pageFlags holds page layout flags.
type pageFlags struct {
	size        string
	orientation string
	margin      float64
}

// footerFlags holds footer-related flags.
type footerFlags struct {
	enabled    bool
	position   string
	text       string
	status     string
	date       string
	pageNumber bool
	disabled   bool
}

// reportFlags holds report post-processing flags.
type reportFlags struct {
	placeholder string
	keywords    bool
}

// reviewFlags holds the flags of the render, diff and annotations commands.
type reviewFlags struct {
	common   commonFlags
	output   outputFlags
	timeout  string
	previous string
	format   string
	assets   assetFlags
	page     pageFlags
	footer   footerFlags
	report   reportFlags
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show debug logs")
}

// addOutputFlags adds output flags to a FlagSet.
func addOutputFlags(fs *flag.FlagSet, f *outputFlags) {
	fs.StringVarP(&f.path, "output", "o", "", "output file (- for stdout)")
	fs.BoolVar(&f.pdf, "pdf", false, "export PDF instead of HTML")
	fs.StringVar(&f.title, "title", "", "document title")
}

// addAssetFlags adds stylesheet flags to a FlagSet.
func addAssetFlags(fs *flag.FlagSet, f *assetFlags) {
	fs.StringVar(&f.style, "style", "", "screen style name or CSS file path")
	fs.StringVar(&f.printStyle, "print-style", "", "PDF style name or CSS file path")
	fs.StringVar(&f.assetPath, "asset-path", "", "directory overriding embedded styles")
	fs.StringVar(&f.highlightStyle, "highlight-style", "", "chroma style for code blocks")
	fs.BoolVar(&f.noHighlight, "no-highlight", false, "disable syntax highlighting")
}

// addPageFlags adds page flags to a FlagSet.
func addPageFlags(fs *flag.FlagSet, f *pageFlags) {
	fs.StringVarP(&f.size, "page-size", "p", "", "page size: letter, a4, legal")
	fs.StringVar(&f.orientation, "orientation", "", "portrait or landscape")
	fs.Float64Var(&f.margin, "margin", 0, "margin in inches (0.25-3.0)")
}

// addFooterFlags adds footer flags to a FlagSet.
func addFooterFlags(fs *flag.FlagSet, f *footerFlags) {
	fs.BoolVar(&f.enabled, "footer", false, "enable the PDF footer")
	fs.StringVar(&f.position, "footer-position", "", "footer position: left, center, right")
	fs.StringVar(&f.text, "footer-text", "", "custom footer text")
	fs.StringVar(&f.status, "footer-status", "", "status shown in the footer (DRAFT, FINAL)")
	fs.StringVar(&f.date, "footer-date", "", `footer date, "auto" for today`)
	fs.BoolVar(&f.pageNumber, "footer-page-number", false, "show page numbers")
	fs.BoolVar(&f.disabled, "no-footer", false, "disable the PDF footer")
}

// addReportFlags adds report flags to a FlagSet.
func addReportFlags(fs *flag.FlagSet, f *reportFlags) {
	fs.StringVar(&f.placeholder, "placeholder", "", "missing-information phrase rendered in italics")
	fs.BoolVarP(&f.keywords, "keywords", "k", false, "strip the keywords comment before rendering")
}

// newFlagSet creates a FlagSet that reports errors instead of exiting.
func newFlagSet(name string, stderr io.Writer, usage func(io.Writer)) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() { usage(stderr) }
	return fs
}

// parseFlags runs fs.Parse and classifies failures as usage errors.
// flag.ErrHelp is returned unwrapped.
func parseFlags(fs *flag.FlagSet, args []string) ([]string, error) {
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", ErrUsage, err)
	}
	return fs.Args(), nil
}

// parseRenderFlags parses render command flags and returns positional args.
func parseRenderFlags(args []string, stderr io.Writer) (*reviewFlags, []string, error) {
	f := &reviewFlags{}
	fs := newFlagSet("render", stderr, printRenderUsage)
	addDocumentFlags(fs, f)

	positional, err := parseFlags(fs, args)
	if err != nil {
		return nil, nil, err
	}
	return f, positional, nil
}

// parseDiffFlags parses diff command flags and returns positional args.
func parseDiffFlags(args []string, stderr io.Writer) (*reviewFlags, []string, error) {
	f := &reviewFlags{}
	fs := newFlagSet("diff", stderr, printDiffUsage)
	addDocumentFlags(fs, f)
	fs.StringVar(&f.previous, "previous", "", "previous report version")

	positional, err := parseFlags(fs, args)
	if err != nil {
		return nil, nil, err
	}
	return f, positional, nil
}

// parseAnnotationsFlags parses annotations command flags and returns positional args.
func parseAnnotationsFlags(args []string, stderr io.Writer) (*reviewFlags, []string, error) {
	f := &reviewFlags{}
	fs := newFlagSet("annotations", stderr, printAnnotationsUsage)
	addCommonFlags(fs, &f.common)
	addReportFlags(fs, &f.report)
	fs.StringVar(&f.previous, "previous", "", "previous report version (adds edits to yaml output)")
	fs.StringVarP(&f.format, "format", "f", formatText, "output format: text, yaml")

	positional, err := parseFlags(fs, args)
	if err != nil {
		return nil, nil, err
	}
	return f, positional, nil
}

// parseKeywordsFlags parses keywords command flags and returns positional args.
func parseKeywordsFlags(args []string, stderr io.Writer) (*commonFlags, []string, error) {
	f := &commonFlags{}
	fs := newFlagSet("keywords", stderr, printKeywordsUsage)
	addCommonFlags(fs, f)

	positional, err := parseFlags(fs, args)
	if err != nil {
		return nil, nil, err
	}
	return f, positional, nil
}

// addDocumentFlags adds the flag groups of commands producing documents.
func addDocumentFlags(fs *flag.FlagSet, f *reviewFlags) {
	fs.StringVarP(&f.timeout, "timeout", "t", "", "PDF export timeout (e.g., 30s, 2m)")
	addCommonFlags(fs, &f.common)
	addOutputFlags(fs, &f.output)
	addAssetFlags(fs, &f.assets)
	addPageFlags(fs, &f.page)
	addFooterFlags(fs, &f.footer)
	addReportFlags(fs, &f.report)
}
