// Package pipeline implements the Markdown-to-HTML stages of a review render.
//
// The stages run in this order:
//   - Markdown preprocessing (line endings, ==highlight==, missing-information
//     phrase emphasis)
//   - Markdown to HTML fragment conversion via Goldmark, with GFM, footnotes,
//     syntax highlighting and <discrepancy> annotations
//   - Placeholder conversion into <mark> and diff spans
//   - Allow-list sanitization
//
// Diff regions and highlights travel through Goldmark as Unicode Private Use
// Area placeholders, so raw HTML never has to be enabled. Document wrapping
// and CSS injection are used when a standalone file is exported.
package pipeline
