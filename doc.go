// Package mdreview renders AI-generated report markdown as sanitized HTML,
// shows the changes between two report versions inline, and surfaces
// flagged discrepancies as hoverable annotations.
//
// # Quick Start
//
//	r, err := mdreview.NewRenderer()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer r.Close()
//
//	result, err := r.RenderDiff(ctx, previous, current)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(result.HTML)
//
// # Pipeline
//
// Every render follows the same stages:
//
//  1. Reserved placeholder characters are stripped from the input.
//  2. For diffs, the two versions are compared character by character and
//     the changed region is wrapped in placeholders.
//  3. Markdown preprocessing (line endings, ==highlight==, italic
//     missing-information phrase).
//  4. Markdown to HTML via Goldmark (GFM, footnotes, code highlighting,
//     <discrepancy note="..."> annotations). Raw HTML is never passed
//     through.
//  5. Placeholders become diff-add, diff-del and mark elements.
//  6. The sanitizer removes everything outside the pipeline's vocabulary.
//
// Only the sanitizer stage produces SafeHTML, so holding one proves the
// markup may be displayed.
//
// # Diff Granularity
//
// The diff isolates a single changed region between the longest common
// prefix and suffix. Several scattered edits collapse into one deletion and
// one insertion spanning them.
//
// # Viewing
//
// A Viewer owns one document. Show and ShowDiff render asynchronously;
// a slower, older render never overwrites a newer one. Pointer events are
// resolved against the displayed content by a single delegated listener:
//
//	v := mdreview.NewViewer(r)
//	_ = v.OnTooltip(func(t mdreview.Tooltip) { ... })
//	v.ShowDiff(ctx, previous, current)
//	v.Wait()
//
// # Export
//
// Document wraps a result in a standalone HTML file with the screen style.
// ExportPDF prints it with the print style through headless Chrome (go-rod),
// where discrepancy notes appear inline.
package mdreview
