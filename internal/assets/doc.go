// Package assets provides the stylesheets applied to exported review documents.
//
// # Loader Architecture
//
//	AssetLoader (interface)
//	    │
//	    ├── EmbeddedLoader    - loads from go:embed filesystem (default, print)
//	    ├── FilesystemLoader  - loads from custom directory on disk
//	    └── AssetResolver     - combines both with custom-first fallback
//
// AssetResolver is the loader used by the renderer. It tries the custom
// FilesystemLoader first and falls back to EmbeddedLoader when the style is
// not found, so a custom directory can override a single style.
//
// # Directory Structure
//
//	{basePath}/
//	└── styles/
//	    └── {name}.css
//
// Every built-in style defines the diff-add, diff-del and
// discrepancy-highlight classes produced by the render pipeline.
//
// # Security
//
// Style names are validated to prevent path traversal.
// FilesystemLoader resolves symlinks and verifies paths stay within basePath.
package assets
