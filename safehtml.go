package mdreview

// SafeHTML is markup that has passed the sanitizer. Values can only be
// produced inside this package, after sanitization, so holding a SafeHTML
// is proof that the markup may be displayed.
type SafeHTML struct {
	s string
}

// String returns the sanitized markup.
func (h SafeHTML) String() string {
	return h.s
}

// IsZero reports whether h holds no markup.
func (h SafeHTML) IsZero() bool {
	return h.s == ""
}
