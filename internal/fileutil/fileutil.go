// Package fileutil provides file and path helpers shared by the renderer and
// the CLI.
package fileutil

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Sentinel errors for file utility operations.
var (
	ErrExtensionEmpty         = errors.New("extension cannot be empty")
	ErrExtensionPathTraversal = errors.New("extension contains path separator or null byte")
)

// Permissions for files and directories written on behalf of the user.
const (
	DirPermissions  = 0o750
	FilePermissions = 0o644
)

// WriteTempFile creates a temporary file holding content, named with the
// given extension. The returned cleanup removes the file.
func WriteTempFile(content, extension string) (path string, cleanup func(), err error) {
	if err := ValidateExtension(extension); err != nil {
		return "", nil, err
	}

	tmpFile, err := os.CreateTemp("", "mdreview-*."+extension)
	if err != nil {
		return "", nil, fmt.Errorf("creating temp file: %w", err)
	}

	path = tmpFile.Name()
	cleanup = func() { _ = os.Remove(path) }

	if _, writeErr := tmpFile.WriteString(content); writeErr != nil {
		_ = tmpFile.Close()
		cleanup()
		return "", nil, fmt.Errorf("writing temp file: %w", writeErr)
	}

	if closeErr := tmpFile.Close(); closeErr != nil {
		cleanup()
		return "", nil, fmt.Errorf("closing temp file: %w", closeErr)
	}

	return path, cleanup, nil
}

// WriteOutput writes data to path, creating missing parent directories.
func WriteOutput(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, DirPermissions); err != nil {
			return fmt.Errorf("creating output directory: %w", err)
		}
	}
	if err := os.WriteFile(path, data, FilePermissions); err != nil { // #nosec G306 -- output is meant to be readable
		return fmt.Errorf("writing output: %w", err)
	}
	return nil
}

// ValidateExtension checks that the extension is safe for use in temp file names.
func ValidateExtension(extension string) error {
	if extension == "" {
		return ErrExtensionEmpty
	}
	if strings.ContainsAny(extension, "/\\\x00") {
		return ErrExtensionPathTraversal
	}
	return nil
}

// ReplaceExt returns path with its extension replaced by ext (without dot).
// When dir is non-empty the result is placed in dir.
//
//	ReplaceExt("notes/report.md", "", "html")  -> "notes/report.html"
//	ReplaceExt("notes/report.md", "out", "pdf") -> "out/report.pdf"
func ReplaceExt(path, dir, ext string) string {
	base := strings.TrimSuffix(path, filepath.Ext(path)) + "." + ext
	if dir == "" {
		return base
	}
	return filepath.Join(dir, filepath.Base(base))
}

// FileExists returns true if the path exists and is a regular file.
func FileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}

// IsFilePath returns true if the string looks like a file path rather than
// a style name: "default" is a name, "./team.css" and "C:\styles\a.css"
// are paths.
func IsFilePath(s string) bool {
	return strings.ContainsAny(s, "/\\")
}
