package pipeline

import (
	"regexp"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

// Sanitizer removes active content from untrusted HTML.
type Sanitizer interface {
	Sanitize(html string) string
}

var (
	classPattern    = regexp.MustCompile(`^[A-Za-z0-9_-]+( [A-Za-z0-9_-]+)*$`)
	idPattern       = regexp.MustCompile(`^[\p{L}\p{N}_:.-]+$`)
	rolePattern     = regexp.MustCompile(`^doc-[a-z]+$`)
	alignPattern    = regexp.MustCompile(`^(left|right|center)$`)
	checkboxPattern = regexp.MustCompile(`^checkbox$`)
	flagPattern     = regexp.MustCompile(`^(checked|disabled)?$`)
)

// PolicySanitizer sanitizes HTML with an allow-list covering what the
// Markdown pipeline emits: GFM blocks, footnotes, highlighted code, diff
// spans and discrepancy annotations. Everything else is dropped, including
// scripts, event handler attributes, inline styles and javascript: URLs.
type PolicySanitizer struct {
	once   sync.Once
	policy *bluemonday.Policy
}

// Compile-time interface check.
var _ Sanitizer = (*PolicySanitizer)(nil)

// NewPolicySanitizer creates a PolicySanitizer.
func NewPolicySanitizer() *PolicySanitizer {
	return &PolicySanitizer{}
}

// Sanitize returns html with everything outside the allow-list removed.
// It never fails: input the policy cannot process yields an empty string.
func (s *PolicySanitizer) Sanitize(html string) (out string) {
	s.once.Do(func() { s.policy = newReviewPolicy() })

	defer func() {
		if r := recover(); r != nil {
			out = ""
		}
	}()
	return s.policy.Sanitize(html)
}

func newReviewPolicy() *bluemonday.Policy {
	p := bluemonday.NewPolicy()

	p.AllowElements(
		"p", "br", "hr",
		"h1", "h2", "h3", "h4", "h5", "h6",
		"strong", "em", "del", "mark", "sup", "sub",
		"blockquote", "ul", "ol", "li",
		"table", "thead", "tbody", "tr", "th", "td",
		"pre", "code", "section", "div", "span",
	)

	p.AllowAttrs("class").Matching(classPattern).OnElements("span", "pre", "code", "div", "a", "li", "sup")
	p.AllowAttrs("data-note").OnElements("span")
	p.AllowAttrs("id").Matching(idPattern).OnElements("h1", "h2", "h3", "h4", "h5", "h6", "li", "sup", "div")
	p.AllowAttrs("role").Matching(rolePattern).OnElements("a", "div", "section")
	p.AllowAttrs("start").Matching(bluemonday.Integer).OnElements("ol")

	p.AllowAttrs("align").Matching(alignPattern).OnElements("th", "td")
	p.AllowStyles("text-align").MatchingEnum("left", "right", "center").OnElements("th", "td")

	p.AllowURLSchemes("http", "https", "mailto")
	p.AllowRelativeURLs(true)
	p.RequireParseableURLs(true)
	p.AllowAttrs("href", "title").OnElements("a")
	p.AllowAttrs("src", "alt", "title").OnElements("img")

	p.AllowAttrs("type").Matching(checkboxPattern).OnElements("input")
	p.AllowAttrs("checked", "disabled").Matching(flagPattern).OnElements("input")

	return p
}
