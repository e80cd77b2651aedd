package pipeline

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Markup emitted for placeholder regions.
const (
	DiffAddOpen  = `<span class="diff-add">`
	DiffDelOpen  = `<span class="diff-del">`
	spanClose    = "</span>"
	markOpen     = "<mark>"
	markClose    = "</mark>"
	placeholders = MarkStartPlaceholder + MarkEndPlaceholder +
		InsertStartPlaceholder + InsertEndPlaceholder +
		DeleteStartPlaceholder + DeleteEndPlaceholder
)

// placeholderRegion maps a placeholder pair to its markup.
type placeholderRegion struct {
	start, end  rune
	open, close string
}

var placeholderRegions = []placeholderRegion{
	{start: '\uE000', end: '\uE001', open: markOpen, close: markClose},
	{start: '\uE002', end: '\uE003', open: DiffAddOpen, close: spanClose},
	{start: '\uE004', end: '\uE005', open: DiffDelOpen, close: spanClose},
}

// encodedPlaceholderPrefix is the percent-encoded form of U+E000 to U+E005
// minus its last hex digit, as Goldmark writes it in link destinations.
const encodedPlaceholderPrefix = "%EE%80%8"

// placeholderOnlyParagraph matches a paragraph holding nothing but
// placeholders and whitespace, left behind by whitespace-only edits.
var placeholderOnlyParagraph = regexp.MustCompile(`<p>[\s\x{E000}-\x{E005}]*</p>\n?`)

// ConvertPlaceholders converts placeholder pairs in rendered HTML to markup:
// highlight pairs become <mark>, insert pairs <span class="diff-add"> and
// delete pairs <span class="diff-del">.
//
// Called after Goldmark HTML conversion, when block structure is final.
// A region is closed before every tag and reopened before the next
// non-blank text, so a region that crosses paragraphs, list items or inline
// elements still yields balanced markup. Blank text between tags is never
// wrapped. Inside a tag, deleted text is dropped and the placeholders
// removed, so attributes carry the new value.
func ConvertPlaceholders(content string) string {
	if !strings.ContainsAny(content, placeholders) && !hasEncodedPlaceholder(content) {
		return content
	}
	content = placeholderOnlyParagraph.ReplaceAllStringFunc(content, keepPlaceholders)

	var (
		b       strings.Builder
		pending strings.Builder // blank text seen while regions are not yet opened
		active  []placeholderRegion
		opened  int // active[:opened] have their open markup written
	)
	b.Grow(len(content) + 64)

	closeFrom := func(idx int) {
		for i := opened - 1; i >= idx; i-- {
			b.WriteString(active[i].close)
		}
		if opened > idx {
			opened = idx
		}
	}
	flushPending := func() {
		if pending.Len() > 0 {
			b.WriteString(pending.String())
			pending.Reset()
		}
	}

	for i := 0; i < len(content); {
		if content[i] == '<' {
			end := strings.IndexByte(content[i:], '>')
			tagEnd := len(content)
			if end >= 0 {
				tagEnd = i + end + 1
			}
			closeFrom(0)
			flushPending()
			var tag string
			tag, active = resolveTag(content[i:tagEnd], active)
			b.WriteString(tag)
			i = tagEnd
			continue
		}

		r, size := utf8.DecodeRuneInString(content[i:])
		chunk := content[i : i+size]
		i += size

		if region, ok := regionStartingWith(r); ok {
			active = append(active, region)
			continue
		}
		if isPlaceholder(r) {
			if idx := lastRegionEndingWith(active, r); idx >= 0 {
				closeFrom(idx)
				active = append(active[:idx], active[idx+1:]...)
			}
			continue
		}

		if len(active) == 0 {
			flushPending()
			b.WriteString(chunk)
			continue
		}
		if opened < len(active) && unicode.IsSpace(r) {
			pending.WriteString(chunk)
			continue
		}
		for opened < len(active) {
			b.WriteString(active[opened].open)
			opened++
		}
		flushPending()
		b.WriteString(chunk)
	}

	closeFrom(0)
	flushPending()
	return b.String()
}

func regionStartingWith(r rune) (placeholderRegion, bool) {
	for _, region := range placeholderRegions {
		if region.start == r {
			return region, true
		}
	}
	return placeholderRegion{}, false
}

func lastRegionEndingWith(active []placeholderRegion, r rune) int {
	for i := len(active) - 1; i >= 0; i-- {
		if active[i].end == r {
			return i
		}
	}
	return -1
}

// resolveTag removes placeholders from a tag and drops text deleted within
// it. Regions opened or closed inside the tag update active. A deletion
// left open at the end of the tag is kept, since dropping the rest would
// break the tag.
func resolveTag(tag string, active []placeholderRegion) (string, []placeholderRegion) {
	var resolved, stripped strings.Builder
	deleted := 0
	for i := 0; i < len(tag); {
		r, size := tagPlaceholderAt(tag, i)
		if size == 0 {
			stripped.WriteByte(tag[i])
			if deleted == 0 {
				resolved.WriteByte(tag[i])
			}
			i++
			continue
		}
		i += size

		if region, ok := regionStartingWith(r); ok {
			active = append(active, region)
			if r == '\uE004' {
				deleted++
			}
			continue
		}
		if idx := lastRegionEndingWith(active, r); idx >= 0 {
			active = append(active[:idx], active[idx+1:]...)
		}
		if r == '\uE005' && deleted > 0 {
			deleted--
		}
	}
	if deleted > 0 {
		return stripped.String(), active
	}
	return resolved.String(), active
}

// tagPlaceholderAt returns the placeholder at s[i], raw or percent-encoded,
// and its byte length. The length is zero when there is none.
func tagPlaceholderAt(s string, i int) (rune, int) {
	if r, size := utf8.DecodeRuneInString(s[i:]); isPlaceholder(r) {
		return r, size
	}
	n := len(encodedPlaceholderPrefix)
	if len(s)-i > n && strings.EqualFold(s[i:i+n], encodedPlaceholderPrefix) {
		if d := s[i+n]; d >= '0' && d <= '5' {
			return '\uE000' + rune(d-'0'), n + 1
		}
	}
	return 0, 0
}

func hasEncodedPlaceholder(content string) bool {
	for i := 0; i < len(content); i++ {
		if content[i] != '%' {
			continue
		}
		if _, size := tagPlaceholderAt(content, i); size > 0 {
			return true
		}
	}
	return false
}

// keepPlaceholders reduces a match to its placeholder characters.
func keepPlaceholders(s string) string {
	return strings.Map(func(r rune) rune {
		if isPlaceholder(r) {
			return r
		}
		return -1
	}, s)
}
