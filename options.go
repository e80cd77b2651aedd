package mdreview

import (
	"time"

	"github.com/alnah/go-mdreview/internal/pipeline"
)

// defaultTimeout is used when no timeout is specified.
const defaultTimeout = 30 * time.Second

// Option configures a Renderer.
type Option func(*Renderer)

// rendererConfig holds internal configuration for Renderer.
type rendererConfig struct {
	timeout        time.Duration
	style          string // screen style name or CSS file path
	printStyle     string // PDF style name or CSS file path
	assetPath      string
	placeholder    string
	highlighting   bool
	highlightStyle string
	page           *PageSettings
	footer         *Footer
}

// WithTimeout sets the PDF export timeout.
// Panics if d <= 0 (programmer error, similar to time.NewTicker).
func WithTimeout(d time.Duration) Option {
	if d <= 0 {
		panic("mdreview: WithTimeout duration must be positive")
	}
	return func(r *Renderer) {
		r.cfg.timeout = d
	}
}

// WithStyle sets the stylesheet of standalone HTML documents: an asset
// name ("default") or a path to a CSS file.
func WithStyle(nameOrPath string) Option {
	return func(r *Renderer) {
		r.cfg.style = nameOrPath
	}
}

// WithPrintStyle sets the stylesheet used for PDF export.
func WithPrintStyle(nameOrPath string) Option {
	return func(r *Renderer) {
		r.cfg.printStyle = nameOrPath
	}
}

// WithAssetPath sets a directory whose styles/ subdirectory overrides the
// embedded styles.
func WithAssetPath(path string) Option {
	return func(r *Renderer) {
		r.cfg.assetPath = path
	}
}

// WithPlaceholder sets the missing-information phrase rendered in italics.
func WithPlaceholder(phrase string) Option {
	return func(r *Renderer) {
		r.cfg.placeholder = phrase
	}
}

// WithHighlighting toggles syntax highlighting of fenced code blocks.
func WithHighlighting(enabled bool) Option {
	return func(r *Renderer) {
		r.cfg.highlighting = enabled
	}
}

// WithHighlightStyle sets the chroma style of highlighted code.
func WithHighlightStyle(name string) Option {
	return func(r *Renderer) {
		r.cfg.highlightStyle = name
	}
}

// WithPage sets the PDF page settings.
func WithPage(p *PageSettings) Option {
	return func(r *Renderer) {
		r.cfg.page = p
	}
}

// WithFooter enables the PDF footer.
func WithFooter(f *Footer) Option {
	return func(r *Renderer) {
		r.cfg.footer = f
	}
}

// withHTMLConverter replaces the Markdown converter (tests).
func withHTMLConverter(c pipeline.HTMLConverter) Option {
	return func(r *Renderer) {
		r.htmlConverter = c
	}
}

// withPDFConverter replaces the PDF backend (tests).
func withPDFConverter(c pdfConverter) Option {
	return func(r *Renderer) {
		r.pdfConverter = c
	}
}
