package main

import (
	"fmt"
	"io"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: mdreview <command> [flags] [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  render       Render a report to HTML or PDF")
	fmt.Fprintln(w, "  diff         Render the changes between two report versions")
	fmt.Fprintln(w, "  annotations  List the discrepancy notes of a report")
	fmt.Fprintln(w, "  keywords     Print the reference keywords of a report")
	fmt.Fprintln(w, "  version      Show version information")
	fmt.Fprintln(w, "  help         Show help for a command")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'mdreview help <command>' for details on a specific command.")
}

// printRenderUsage prints usage for the render command.
func printRenderUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: mdreview render [input] [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Render a markdown report to a standalone HTML document or PDF.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Arguments:")
	fmt.Fprintln(w, "  input    Markdown file (omit or - to read stdin)")
	printDocumentFlags(w)
}

// printDiffUsage prints usage for the diff command.
func printDiffUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: mdreview diff [previous] <current> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Render the current report with word-level changes against the")
	fmt.Fprintln(w, "previous version highlighted.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Arguments:")
	fmt.Fprintln(w, "  previous  Previous version (or --previous, or input.previous in config)")
	fmt.Fprintln(w, "  current   Current version (- to read stdin)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Diff:")
	fmt.Fprintln(w, "      --previous <path>     Previous report version")
	printDocumentFlags(w)
}

// printAnnotationsUsage prints usage for the annotations command.
func printAnnotationsUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: mdreview annotations [input] [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "List the discrepancy notes of a report, in document order.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "  -f, --format <s>          Output format: text, yaml")
	fmt.Fprintln(w, "      --previous <path>     Previous version; yaml output includes edits")
	fmt.Fprintln(w, "      --placeholder <s>     Missing-information phrase")
	fmt.Fprintln(w, "  -k, --keywords            Strip the keywords comment first")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
}

// printKeywordsUsage prints usage for the keywords command.
func printKeywordsUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: mdreview keywords [input]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Print the keywords of the report's \"<!-- keywords: ... -->\" comment,")
	fmt.Fprintln(w, "one per line.")
}

// printDocumentFlags prints the flags shared by render and diff.
func printDocumentFlags(w io.Writer) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Input/Output:")
	fmt.Fprintln(w, "  -o, --output <path>       Output file (- for stdout)")
	fmt.Fprintln(w, "      --pdf                 Export PDF (implied by a .pdf output)")
	fmt.Fprintln(w, "      --title <s>           Document title")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	fmt.Fprintln(w, "  -t, --timeout <d>         PDF export timeout (default 30s)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Report:")
	fmt.Fprintln(w, "      --placeholder <s>     Missing-information phrase rendered in italics")
	fmt.Fprintln(w, "  -k, --keywords            Strip the keywords comment before rendering")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Styling:")
	fmt.Fprintln(w, "      --style <name|path>   Screen style (default, print, or a CSS file)")
	fmt.Fprintln(w, "      --print-style <s>     Style used for PDF export")
	fmt.Fprintln(w, "      --asset-path <dir>    Directory overriding embedded styles")
	fmt.Fprintln(w, "      --highlight-style <s> Chroma style for code blocks")
	fmt.Fprintln(w, "      --no-highlight        Disable syntax highlighting")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Page:")
	fmt.Fprintln(w, "  -p, --page-size <s>       Page size: letter, a4, legal")
	fmt.Fprintln(w, "      --orientation <s>     Orientation: portrait, landscape")
	fmt.Fprintln(w, "      --margin <f>          Margin in inches (0.25-3.0)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Footer:")
	fmt.Fprintln(w, "      --footer              Enable the PDF footer")
	fmt.Fprintln(w, "      --footer-position <s> Position: left, center, right")
	fmt.Fprintln(w, "      --footer-text <s>     Custom footer text")
	fmt.Fprintln(w, "      --footer-status <s>   Status (DRAFT, FINAL)")
	fmt.Fprintln(w, "      --footer-date <s>     Date, or \"auto\" for today")
	fmt.Fprintln(w, "      --footer-page-number  Show page numbers")
	fmt.Fprintln(w, "      --no-footer           Disable footer")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output Control:")
	fmt.Fprintln(w, "  -q, --quiet               Only show errors")
	fmt.Fprintln(w, "  -v, --verbose             Show debug logs")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Environment:")
	fmt.Fprintln(w, "  MDREVIEW_CONFIG, MDREVIEW_STYLE, MDREVIEW_TIMEOUT, MDREVIEW_OUTPUT_DIR,")
	fmt.Fprintln(w, "  MDREVIEW_PAGE_SIZE, MDREVIEW_PLACEHOLDER")
}

// runHelp prints help for a specific command.
func runHelp(args []string, env *Environment) {
	if len(args) == 0 {
		printUsage(env.Stdout)
		return
	}

	switch args[0] {
	case "render":
		printRenderUsage(env.Stdout)
	case "diff":
		printDiffUsage(env.Stdout)
	case "annotations":
		printAnnotationsUsage(env.Stdout)
	case "keywords":
		printKeywordsUsage(env.Stdout)
	case "version":
		fmt.Fprintln(env.Stdout, "Usage: mdreview version")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show version information.")
	case "help":
		fmt.Fprintln(env.Stdout, "Usage: mdreview help [command]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show help for a command.")
	default:
		fmt.Fprintf(env.Stderr, "Unknown command: %s\n", args[0])
		printUsage(env.Stderr)
	}
}
