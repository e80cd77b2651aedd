// Package assets provides the stylesheets applied to exported review
// documents. Styles can be loaded from embedded files or a custom directory.
package assets

// DefaultStyleName is the name of the built-in screen style.
const DefaultStyleName = "default"

// PrintStyleName is the name of the built-in style for PDF export.
const PrintStyleName = "print"
