// Package report separates a generated report body from its out-of-band
// metadata.
//
// Report generators append reference keywords as a hidden HTML comment,
// for example "<!-- keywords: pneumonia, chest x-ray -->". The comment must be
// removed before the body is diffed or rendered.
package report

import (
	"regexp"
	"strings"
)

var keywordComment = regexp.MustCompile(`<!--\s*keywords:\s*([^>]+?)\s*-->`)

// Report is a report body with its extracted keywords.
type Report struct {
	Body     string
	Keywords []string
}

// Split removes the first keyword comment from text and returns the trimmed
// body with the comment's comma-separated keywords. Keywords are trimmed and
// empty entries dropped. Without a comment, Keywords is nil.
func Split(text string) Report {
	loc := keywordComment.FindStringSubmatchIndex(text)
	if loc == nil {
		return Report{Body: strings.TrimSpace(text)}
	}

	body := strings.TrimSpace(text[:loc[0]] + text[loc[1]:])

	var keywords []string
	for k := range strings.SplitSeq(text[loc[2]:loc[3]], ",") {
		if k = strings.TrimSpace(k); k != "" {
			keywords = append(keywords, k)
		}
	}
	return Report{Body: body, Keywords: keywords}
}
