// Package diff computes a single-region edit script between two texts.
//
// The engine trims the common prefix and the common suffix and reports the
// remaining middle as one deletion followed by one insertion. It runs in linear
// time and never produces more than one changed region, which keeps the
// rendered diff easy to annotate. Scattered edits therefore collapse into a
// single Delete+Insert covering everything between the first and the last
// change.
package diff

import (
	"strings"
	"unicode/utf8"
)

// Op identifies the kind of an edit.
type Op int

// Edit operations.
const (
	Equal Op = iota
	Insert
	Delete
)

// String returns the lowercase operation name.
func (o Op) String() string {
	switch o {
	case Equal:
		return "equal"
	case Insert:
		return "insert"
	case Delete:
		return "delete"
	}
	return "unknown"
}

// Edit is one operation of a Script. Text is never empty in a Script
// returned by Diff.
type Edit struct {
	Op   Op
	Text string
}

// Script is an ordered list of edits transforming a left text into a right
// text. Adjacent edits never share the same Op.
type Script []Edit

// Diff returns the edit script transforming left into right.
// Prefix and suffix boundaries are moved back to code point starts, so edits
// never split a multi-byte UTF-8 sequence.
func Diff(left, right string) Script {
	return DiffAtomic(left, right, nil)
}

// DiffAtomic is Diff with the changed region widened until neither of its
// boundaries falls strictly inside a span reported by atoms for either text.
// atoms returns [start, end) byte ranges; a nil atoms behaves like Diff.
func DiffAtomic(left, right string, atoms func(string) [][]int) Script {
	if left == right {
		if left == "" {
			return nil
		}
		return Script{{Op: Equal, Text: left}}
	}

	prefix := commonPrefixLen(left, right)
	suffix := commonSuffixLen(left[prefix:], right[prefix:])
	if atoms != nil {
		prefix, suffix = widen(left, right, prefix, suffix, atoms)
	}

	script := make(Script, 0, 4)
	script = appendEdit(script, Equal, left[:prefix])
	script = appendEdit(script, Delete, left[prefix:len(left)-suffix])
	script = appendEdit(script, Insert, right[prefix:len(right)-suffix])
	script = appendEdit(script, Equal, left[len(left)-suffix:])

	return script.Merge()
}

// widen shrinks the common prefix and suffix until the changed region starts
// and ends outside every atom of both texts. Widening in one text can move a
// boundary into an atom of the other, so it repeats until stable.
func widen(left, right string, prefix, suffix int, atoms func(string) [][]int) (int, int) {
	texts := [2]string{left, right}
	spans := [2][][]int{atoms(left), atoms(right)}

	for changed := true; changed; {
		changed = false
		for i, text := range texts {
			for _, span := range spans[i] {
				start, end := span[0], span[1]
				if start < prefix && prefix < end {
					prefix = start
					changed = true
				}
				if regionEnd := len(text) - suffix; start < regionEnd && regionEnd < end {
					suffix = len(text) - end
					changed = true
				}
			}
		}
	}
	return prefix, suffix
}

// commonPrefixLen returns the byte length of the longest common prefix,
// bounded by the shorter input and aligned to a code point boundary.
func commonPrefixLen(a, b string) int {
	n := min(len(a), len(b))
	i := 0
	for i < n && a[i] == b[i] {
		i++
	}
	for i > 0 && (midRune(a, i) || midRune(b, i)) {
		i--
	}
	return i
}

// commonSuffixLen returns the byte length of the longest common suffix,
// bounded by the shorter input and aligned to a code point boundary.
// Callers pass the inputs with the common prefix already removed, which keeps
// prefix and suffix from claiming the same bytes.
func commonSuffixLen(a, b string) int {
	n := min(len(a), len(b))
	i := 0
	for i < n && a[len(a)-1-i] == b[len(b)-1-i] {
		i++
	}
	for i > 0 && (midRune(a, len(a)-i) || midRune(b, len(b)-i)) {
		i--
	}
	return i
}

// midRune reports whether byte offset i falls inside a UTF-8 sequence.
func midRune(s string, i int) bool {
	return i < len(s) && !utf8.RuneStart(s[i])
}

// appendEdit appends a non-empty edit.
func appendEdit(s Script, op Op, text string) Script {
	if text == "" {
		return s
	}
	return append(s, Edit{Op: op, Text: text})
}

// Merge returns a copy of s with empty edits dropped and adjacent edits of
// the same Op joined.
func (s Script) Merge() Script {
	if len(s) == 0 {
		return nil
	}
	merged := make(Script, 0, len(s))
	for _, e := range s {
		if e.Text == "" {
			continue
		}
		if last := len(merged) - 1; last >= 0 && merged[last].Op == e.Op {
			merged[last].Text += e.Text
			continue
		}
		merged = append(merged, e)
	}
	if len(merged) == 0 {
		return nil
	}
	return merged
}

// Left reconstructs the left input from the Equal and Delete edits.
func (s Script) Left() string {
	return s.join(Delete)
}

// Right reconstructs the right input from the Equal and Insert edits.
func (s Script) Right() string {
	return s.join(Insert)
}

func (s Script) join(side Op) string {
	var b strings.Builder
	for _, e := range s {
		if e.Op == Equal || e.Op == side {
			b.WriteString(e.Text)
		}
	}
	return b.String()
}

// Changed reports whether the script contains any insertion or deletion.
func (s Script) Changed() bool {
	for _, e := range s {
		if e.Op != Equal {
			return true
		}
	}
	return false
}
