package pipeline

import (
	"bytes"
	"regexp"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
)

// DiscrepancyClass is the class carried by rendered discrepancy spans.
const DiscrepancyClass = "discrepancy-highlight"

// discrepancyParserPriority runs the discrepancy parser ahead of Goldmark's
// code span (100), autolink (300) and raw HTML (400) parsers.
const discrepancyParserPriority = 90

var (
	// discrepancyPattern matches <discrepancy note="NOTE">TEXT</discrepancy>
	// at the current position of a line.
	discrepancyPattern = regexp.MustCompile(`^<discrepancy note="([^"]+)">(.+?)</discrepancy>`)

	// discrepancySpanPattern finds whole discrepancy tags anywhere in a text.
	discrepancySpanPattern = regexp.MustCompile(`<discrepancy note="[^"\n]+">.+?</discrepancy>`)

	discrepancyOpenPrefix  = []byte("<discrepancy")
	discrepancyClosePrefix = []byte("</discrepancy")
)

// KindDiscrepancy is the node kind of Discrepancy.
var KindDiscrepancy = ast.NewNodeKind("Discrepancy")

var _ ast.Node = (*Discrepancy)(nil)

// Discrepancy is an inline node flagging source text with an explanatory note.
// Note and Flagged are literal copies of the source bytes.
type Discrepancy struct {
	ast.BaseInline
	Note    []byte
	Flagged []byte
}

// Kind implements ast.Node.
func (n *Discrepancy) Kind() ast.NodeKind {
	return KindDiscrepancy
}

// Dump implements ast.Node.
func (n *Discrepancy) Dump(source []byte, level int) {
	ast.DumpHelper(n, source, level, map[string]string{
		"Note":    string(n.Note),
		"Flagged": string(n.Flagged),
	}, nil)
}

// discrepancyParser recognizes the discrepancy tag as one atomic inline token.
type discrepancyParser struct{}

func (p *discrepancyParser) Trigger() []byte {
	return []byte{'<'}
}

// Parse consumes a well-formed discrepancy tag. A malformed one has its
// leading '<' consumed as plain text, so the tag is shown literally instead
// of being treated as raw HTML.
func (p *discrepancyParser) Parse(_ ast.Node, block text.Reader, _ parser.Context) ast.Node {
	line, segment := block.PeekLine()

	if m := discrepancyPattern.FindSubmatchIndex(line); m != nil {
		node := &Discrepancy{
			Note:    bytes.Clone(line[m[2]:m[3]]),
			Flagged: bytes.Clone(line[m[4]:m[5]]),
		}
		block.Advance(m[1])
		return node
	}

	if bytes.HasPrefix(line, discrepancyOpenPrefix) || bytes.HasPrefix(line, discrepancyClosePrefix) {
		block.Advance(1)
		return ast.NewTextSegment(text.NewSegment(segment.Start, segment.Start+1))
	}

	return nil
}

// discrepancyHTMLRenderer renders Discrepancy nodes as hoverable spans.
type discrepancyHTMLRenderer struct{}

func (r *discrepancyHTMLRenderer) RegisterFuncs(reg renderer.NodeRendererFuncRegisterer) {
	reg.Register(KindDiscrepancy, r.renderDiscrepancy)
}

func (r *discrepancyHTMLRenderer) renderDiscrepancy(w util.BufWriter, _ []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		return ast.WalkContinue, nil
	}
	n := node.(*Discrepancy)
	_, _ = w.WriteString(`<span class="` + DiscrepancyClass + `" data-note="`)
	_, _ = w.Write(util.EscapeHTML(n.Note))
	_, _ = w.WriteString(`">`)
	_, _ = w.Write(util.EscapeHTML(n.Flagged))
	_, _ = w.WriteString(`</span>`)
	return ast.WalkSkipChildren, nil
}

// discrepancyExtension wires the parser and renderer into Goldmark.
type discrepancyExtension struct{}

// Discrepancies is a Goldmark extension for inline
// <discrepancy note="...">...</discrepancy> annotations.
var Discrepancies goldmark.Extender = &discrepancyExtension{}

func (e *discrepancyExtension) Extend(m goldmark.Markdown) {
	m.Parser().AddOptions(parser.WithInlineParsers(
		util.Prioritized(&discrepancyParser{}, discrepancyParserPriority),
	))
	m.Renderer().AddOptions(renderer.WithNodeRenderers(
		util.Prioritized(&discrepancyHTMLRenderer{}, 500),
	))
}

// Annotation pairs a flagged span of text with its explanatory note.
type Annotation struct {
	Note string
	Text string
}

// DiscrepancySpans returns the byte ranges of the discrepancy tags in text.
// Diffs are widened to these ranges so a change never splits a tag.
func DiscrepancySpans(text string) [][]int {
	return discrepancySpanPattern.FindAllStringIndex(text, -1)
}

// collectAnnotations returns the discrepancy annotations of a parsed
// document in source order, with placeholders removed. Discrepancies inside
// a deleted diff region are no longer part of the report and are skipped.
func collectAnnotations(doc ast.Node, source []byte) []Annotation {
	var (
		annotations []Annotation
		deleted     int
	)
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch n := n.(type) {
		case *ast.Text:
			deleted = trackDeletions(deleted, n.Segment.Value(source))
		case *Discrepancy:
			if deleted == 0 {
				annotations = append(annotations, Annotation{
					Note: StripPlaceholders(string(n.Note)),
					Text: StripPlaceholders(string(n.Flagged)),
				})
			}
			return ast.WalkSkipChildren, nil
		}
		return ast.WalkContinue, nil
	})
	return annotations
}

// trackDeletions updates the depth of open delete regions with the
// placeholders found in text.
func trackDeletions(depth int, text []byte) int {
	for _, r := range string(text) {
		switch r {
		case '\uE004':
			depth++
		case '\uE005':
			if depth > 0 {
				depth--
			}
		}
	}
	return depth
}
