package pipeline

import (
	"context"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/alnah/go-mdreview/internal/diff"
)

// Placeholders use Unicode Private Use Area characters.
// These are guaranteed to not conflict with any standard characters
// and will pass through Goldmark unchanged (no WithUnsafe needed).
// Post-processing converts each start/end pair to markup after HTML
// generation, once block structure has been resolved.
const (
	MarkStartPlaceholder   = "\uE000" // ==highlight== start
	MarkEndPlaceholder     = "\uE001" // ==highlight== end
	InsertStartPlaceholder = "\uE002" // inserted diff region start
	InsertEndPlaceholder   = "\uE003" // inserted diff region end
	DeleteStartPlaceholder = "\uE004" // deleted diff region start
	DeleteEndPlaceholder   = "\uE005" // deleted diff region end
)

// DefaultMissingInfoPlaceholder is the phrase report writers use when the
// source notes did not contain a required detail. It is rendered in italics.
const DefaultMissingInfoPlaceholder = "[Details not provided in the initial notes]"

// Precompiled regex patterns for performance.
var (
	// Line ending normalization
	crlfOrCR = regexp.MustCompile(`\r\n?`)

	// Compress multiple blank lines to max 2
	multipleBlankLines = regexp.MustCompile(`\n{3,}`)

	// Highlight syntax ==text==
	highlightPattern = regexp.MustCompile(`==(.*?)==`)

	// Block markers that must start a line for Goldmark to see the block:
	// ATX heading, bullet or ordered list item, blockquote, table row.
	blockMarker = regexp.MustCompile(`^(?:#{1,6}[ \t]+|[-*+][ \t]+|\d{1,9}[.)][ \t]+|>[ \t]?|\|)`)
)

// placeholderStripper removes every reserved placeholder character.
var placeholderStripper = strings.NewReplacer(
	MarkStartPlaceholder, "",
	MarkEndPlaceholder, "",
	InsertStartPlaceholder, "",
	InsertEndPlaceholder, "",
	DeleteStartPlaceholder, "",
	DeleteEndPlaceholder, "",
)

// StripPlaceholders removes reserved placeholder characters from untrusted
// text, so that only the pipeline itself can introduce them.
func StripPlaceholders(content string) string {
	return placeholderStripper.Replace(content)
}

// Annotate renders an edit script as markdown source in which inserted and
// deleted regions are wrapped in placeholder pairs. Equal text is copied
// verbatim. The placeholders survive markdown parsing and are turned into
// spans by ConvertPlaceholders. Placeholders at the start of a line are moved
// after its block markers, so the markers themselves stay unwrapped.
func Annotate(script diff.Script) string {
	var b strings.Builder
	for _, e := range script {
		switch e.Op {
		case diff.Insert:
			b.WriteString(InsertStartPlaceholder)
			b.WriteString(e.Text)
			b.WriteString(InsertEndPlaceholder)
		case diff.Delete:
			b.WriteString(DeleteStartPlaceholder)
			b.WriteString(e.Text)
			b.WriteString(DeleteEndPlaceholder)
		default:
			b.WriteString(e.Text)
		}
	}
	return liftPlaceholders(b.String())
}

// liftPlaceholders moves placeholders that precede a line's indentation and
// block markers to just after them.
func liftPlaceholders(content string) string {
	if !strings.ContainsAny(content, placeholders) {
		return content
	}
	lines := strings.SplitAfter(content, "\n")
	for i, line := range lines {
		lines[i] = liftLine(line)
	}
	return strings.Join(lines, "")
}

func liftLine(line string) string {
	var (
		lifted strings.Builder
		prefix strings.Builder
		marked bool
	)
	rest := line
	for rest != "" {
		r, size := utf8.DecodeRuneInString(rest)
		if isPlaceholder(r) {
			lifted.WriteString(rest[:size])
			rest = rest[size:]
			continue
		}
		if r == ' ' || r == '\t' {
			prefix.WriteString(rest[:size])
			rest = rest[size:]
			continue
		}
		loc := blockMarker.FindStringIndex(rest)
		if loc == nil {
			break
		}
		prefix.WriteString(rest[:loc[1]])
		rest = rest[loc[1]:]
		marked = true
	}
	if !marked || lifted.Len() == 0 {
		return line
	}
	return prefix.String() + lifted.String() + rest
}

// isPlaceholder reports whether r is a reserved placeholder character.
func isPlaceholder(r rune) bool {
	return r >= '\uE000' && r <= '\uE005'
}

// MarkdownPreprocessor defines the contract for markdown preprocessing.
type MarkdownPreprocessor interface {
	PreprocessMarkdown(ctx context.Context, content string) string
}

// CommonMarkPreprocessor applies transformations before CommonMark conversion.
// Placeholder is the missing-information phrase to italicize; empty uses
// DefaultMissingInfoPlaceholder.
type CommonMarkPreprocessor struct {
	Placeholder string
}

// PreprocessMarkdown applies all transformations to prepare Markdown for conversion.
func (p *CommonMarkPreprocessor) PreprocessMarkdown(ctx context.Context, content string) string {
	// Check for cancellation before processing
	if ctx.Err() != nil {
		return content
	}

	phrase := p.Placeholder
	if phrase == "" {
		phrase = DefaultMissingInfoPlaceholder
	}

	content = NormalizeLineEndings(content)
	content = emphasizePlaceholder(content, phrase)
	content = convertHighlights(content)
	content = compressBlankLines(content)
	return content
}

// NormalizeLineEndings converts \r\n and \r to \n.
func NormalizeLineEndings(content string) string {
	return crlfOrCR.ReplaceAllString(content, "\n")
}

// compressBlankLines limits consecutive blank lines to 2 maximum.
func compressBlankLines(content string) string {
	return multipleBlankLines.ReplaceAllString(content, "\n\n")
}

// convertHighlights transforms ==text== to placeholder markers.
// The placeholders are converted to <mark> tags after Goldmark processing
// via ConvertPlaceholders. This avoids needing html.WithUnsafe().
func convertHighlights(content string) string {
	return highlightPattern.ReplaceAllString(content, MarkStartPlaceholder+"$1"+MarkEndPlaceholder)
}

// emphasizePlaceholder wraps every verbatim occurrence of phrase in *...*.
// Occurrences the author already wrapped in emphasis are left alone.
func emphasizePlaceholder(content, phrase string) string {
	if phrase == "" || !strings.Contains(content, phrase) {
		return content
	}

	var b strings.Builder
	b.Grow(len(content) + 8)
	rest := content
	for {
		idx := strings.Index(rest, phrase)
		if idx < 0 {
			b.WriteString(rest)
			break
		}
		end := idx + len(phrase)
		b.WriteString(rest[:idx])
		if isEmphasisDelimiter(rest, idx-1) && isEmphasisDelimiter(rest, end) {
			b.WriteString(phrase)
		} else {
			b.WriteString("*" + phrase + "*")
		}
		rest = rest[end:]
	}
	return b.String()
}

// isEmphasisDelimiter reports whether s[i] is a markdown emphasis character.
func isEmphasisDelimiter(s string, i int) bool {
	return i >= 0 && i < len(s) && (s[i] == '*' || s[i] == '_')
}
