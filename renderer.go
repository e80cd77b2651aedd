package mdreview

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/alnah/go-mdreview/internal/assets"
	"github.com/alnah/go-mdreview/internal/diff"
	"github.com/alnah/go-mdreview/internal/fileutil"
	"github.com/alnah/go-mdreview/internal/pipeline"
)

// Compile-time interface implementation checks.
var (
	_ pipeline.MarkdownPreprocessor = (*pipeline.CommonMarkPreprocessor)(nil)
	_ pipeline.HTMLConverter        = (*pipeline.GoldmarkConverter)(nil)
	_ pipeline.Sanitizer            = (*pipeline.PolicySanitizer)(nil)
	_ pipeline.CSSInjector          = (*pipeline.CSSInjection)(nil)
	_ ResultRenderer                = (*Renderer)(nil)
)

// Renderer turns report markdown into sanitized HTML, diffs report versions
// and exports standalone documents.
// Create with NewRenderer and call Close when done.
// Render and RenderDiff are safe for concurrent use.
type Renderer struct {
	cfg           rendererConfig
	assetLoader   assets.AssetLoader
	preprocessor  pipeline.MarkdownPreprocessor
	htmlConverter pipeline.HTMLConverter
	sanitizer     pipeline.Sanitizer
	cssInjector   pipeline.CSSInjector

	screenCSS string
	printCSS  string

	pdfMu        sync.Mutex
	pdfConverter pdfConverter
}

// NewRenderer creates a Renderer. Styles are resolved eagerly, so an unknown
// style or an invalid asset path fails here rather than at export time.
func NewRenderer(opts ...Option) (*Renderer, error) {
	r := &Renderer{
		cfg: rendererConfig{
			timeout:        defaultTimeout,
			style:          assets.DefaultStyleName,
			printStyle:     assets.PrintStyleName,
			highlighting:   true,
			highlightStyle: pipeline.DefaultHighlightStyle,
		},
		sanitizer:   pipeline.NewPolicySanitizer(),
		cssInjector: &pipeline.CSSInjection{},
	}

	for _, opt := range opts {
		opt(r)
	}

	if err := r.cfg.page.Validate(); err != nil {
		return nil, err
	}
	if err := r.cfg.footer.Validate(); err != nil {
		return nil, err
	}

	resolver, err := assets.NewAssetResolver(r.cfg.assetPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidAssetPath, err)
	}
	r.assetLoader = resolver

	r.preprocessor = &pipeline.CommonMarkPreprocessor{Placeholder: r.cfg.placeholder}
	if r.htmlConverter == nil {
		r.htmlConverter = pipeline.NewGoldmarkConverter(pipeline.WithHighlighting(r.cfg.highlighting))
	}

	if r.screenCSS, err = r.resolveStyle(r.cfg.style); err != nil {
		return nil, err
	}
	if r.printCSS, err = r.resolveStyle(r.cfg.printStyle); err != nil {
		return nil, err
	}
	if r.cfg.highlighting {
		codeCSS, err := pipeline.HighlightCSS(r.cfg.highlightStyle)
		if err != nil {
			return nil, err
		}
		r.screenCSS += "\n" + codeCSS
		r.printCSS += "\n" + codeCSS
	}

	if r.pdfConverter == nil {
		r.pdfConverter = newRodConverter(r.cfg.timeout)
	}

	return r, nil
}

// Render converts report markdown to sanitized HTML and collects its
// discrepancy annotations.
// Recovers from internal panics to prevent crashes from propagating to callers.
func (r *Renderer) Render(ctx context.Context, markdown string) (result *Result, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			result, err = nil, fmt.Errorf("%w: internal error: %v", ErrUnrenderable, rec)
		}
	}()

	markdown = pipeline.StripPlaceholders(markdown)
	if strings.TrimSpace(markdown) == "" {
		return nil, ErrEmptyMarkdown
	}
	return r.render(ctx, markdown, nil)
}

// RenderDiff renders current with the changes from previous marked inline:
// removed text in diff-del spans, added text in diff-add spans. The diff is
// computed on the markdown source, before rendering.
func (r *Renderer) RenderDiff(ctx context.Context, previous, current string) (result *Result, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			result, err = nil, fmt.Errorf("%w: internal error: %v", ErrUnrenderable, rec)
		}
	}()

	previous = pipeline.NormalizeLineEndings(pipeline.StripPlaceholders(previous))
	current = pipeline.NormalizeLineEndings(pipeline.StripPlaceholders(current))
	if strings.TrimSpace(previous) == "" && strings.TrimSpace(current) == "" {
		return nil, ErrEmptyMarkdown
	}

	script := diff.DiffAtomic(previous, current, pipeline.DiscrepancySpans)
	return r.render(ctx, pipeline.Annotate(script), toEdits(script))
}

// render runs the pipeline stages shared by Render and RenderDiff.
func (r *Renderer) render(ctx context.Context, source string, edits []Edit) (*Result, error) {
	source = r.preprocessor.PreprocessMarkdown(ctx, source)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	rendered, err := r.htmlConverter.ToHTML(ctx, source)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil && errors.Is(err, ctxErr) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", ErrUnrenderable, err)
	}

	markup := pipeline.ConvertPlaceholders(rendered.HTML)
	return &Result{
		HTML:        SafeHTML{s: r.sanitizer.Sanitize(markup)},
		Annotations: toAnnotations(rendered.Annotations),
		Edits:       edits,
	}, nil
}

// Document wraps a result in a standalone HTML5 document styled with the
// screen stylesheet.
func (r *Renderer) Document(ctx context.Context, result *Result, title string) (string, error) {
	return r.document(ctx, result, title, r.screenCSS)
}

// ExportPDF renders a result to PDF with the print stylesheet, page
// settings and footer. Exports are serialized on the shared browser.
func (r *Renderer) ExportPDF(ctx context.Context, result *Result, title string) ([]byte, error) {
	doc, err := r.document(ctx, result, title, r.printCSS)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, r.cfg.timeout)
	defer cancel()

	r.pdfMu.Lock()
	defer r.pdfMu.Unlock()

	pdf, err := r.pdfConverter.ToPDF(ctx, doc, &pdfOptions{Footer: r.cfg.footer, Page: r.cfg.page})
	if err != nil {
		return nil, fmt.Errorf("converting to PDF: %w", err)
	}
	return pdf, nil
}

func (r *Renderer) document(ctx context.Context, result *Result, title, css string) (string, error) {
	if result == nil {
		return "", ErrNilResult
	}
	doc := pipeline.WrapDocument(title, result.HTML.String())
	doc = r.cssInjector.InjectCSS(ctx, doc, css)
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return doc, nil
}

// Close releases resources (headless Chrome browser).
func (r *Renderer) Close() error {
	r.pdfMu.Lock()
	defer r.pdfMu.Unlock()

	if r.pdfConverter != nil {
		return r.pdfConverter.Close()
	}
	return nil
}

// resolveStyle loads a style by asset name or, for inputs that look like a
// path, from a CSS file. An empty input means no stylesheet.
func (r *Renderer) resolveStyle(input string) (string, error) {
	if input == "" {
		return "", nil
	}

	if fileutil.IsFilePath(input) {
		content, err := os.ReadFile(input) // #nosec G304 -- user-provided path
		if err != nil {
			return "", fmt.Errorf("loading style file %q: %w", input, err)
		}
		return string(content), nil
	}

	css, err := r.assetLoader.LoadStyle(input)
	if err != nil {
		if errors.Is(err, assets.ErrStyleNotFound) {
			return "", fmt.Errorf("%w: %q", ErrStyleNotFound, input)
		}
		return "", fmt.Errorf("loading style %q: %w", input, err)
	}
	return css, nil
}
