package fileutil_test

// Notes:
// - The WriteString and Close error branches of WriteTempFile are not
//   covered: forcing disk write failures is platform-specific.

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alnah/go-mdreview/internal/fileutil"
)

func TestValidateExtension(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		extension string
		wantErr   error
	}{
		{"valid extension html", "html", nil},
		{"empty extension", "", fileutil.ErrExtensionEmpty},
		{"forward slash path traversal", "../etc/passwd", fileutil.ErrExtensionPathTraversal},
		{"backslash path traversal", "..\\windows", fileutil.ErrExtensionPathTraversal},
		{"null byte injection", "html\x00exe", fileutil.ErrExtensionPathTraversal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := fileutil.ValidateExtension(tt.extension)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateExtension(%q) = %v, want %v", tt.extension, err, tt.wantErr)
			}
		})
	}
}

func TestWriteTempFile(t *testing.T) {
	t.Parallel()

	path, cleanup, err := fileutil.WriteTempFile("<p>hi</p>", "html")
	if err != nil {
		t.Fatalf("WriteTempFile() error = %v", err)
	}

	if !strings.HasPrefix(filepath.Base(path), "mdreview-") || !strings.HasSuffix(path, ".html") {
		t.Errorf("path = %q, want mdreview-*.html", path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading temp file: %v", err)
	}
	if string(data) != "<p>hi</p>" {
		t.Errorf("content = %q", data)
	}

	cleanup()
	if fileutil.FileExists(path) {
		t.Error("cleanup did not remove the temp file")
	}
}

func TestWriteTempFile_InvalidExtension(t *testing.T) {
	t.Parallel()

	_, cleanup, err := fileutil.WriteTempFile("x", "../x")
	if !errors.Is(err, fileutil.ErrExtensionPathTraversal) {
		t.Errorf("error = %v, want ErrExtensionPathTraversal", err)
	}
	if cleanup != nil {
		t.Error("cleanup should be nil on error")
	}
}

func TestWriteOutput(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "nested", "dir", "report.html")
	if err := fileutil.WriteOutput(path, []byte("ok")); err != nil {
		t.Fatalf("WriteOutput() error = %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading output: %v", err)
	}
	if string(data) != "ok" {
		t.Errorf("content = %q, want %q", data, "ok")
	}
}

func TestReplaceExt(t *testing.T) {
	t.Parallel()

	tests := []struct {
		path, dir, ext string
		want           string
	}{
		{"report.md", "", "html", "report.html"},
		{"notes/report.md", "", "pdf", filepath.Join("notes", "report.pdf")},
		{"notes/report.md", "out", "pdf", filepath.Join("out", "report.pdf")},
		{"README", "", "html", "README.html"},
	}

	for _, tt := range tests {
		if got := fileutil.ReplaceExt(tt.path, tt.dir, tt.ext); got != tt.want {
			t.Errorf("ReplaceExt(%q, %q, %q) = %q, want %q", tt.path, tt.dir, tt.ext, got, tt.want)
		}
	}
}

func TestFileExists(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	file := filepath.Join(dir, "a.md")
	if err := os.WriteFile(file, []byte("x"), 0600); err != nil {
		t.Fatalf("setup: %v", err)
	}

	if !fileutil.FileExists(file) {
		t.Error("FileExists(file) = false, want true")
	}
	if fileutil.FileExists(dir) {
		t.Error("FileExists(dir) = true, want false")
	}
	if fileutil.FileExists(filepath.Join(dir, "missing")) {
		t.Error("FileExists(missing) = true, want false")
	}
}

func TestIsFilePath(t *testing.T) {
	t.Parallel()

	for s, want := range map[string]bool{
		"default":           false,
		"my-style":          false,
		"./custom.css":      true,
		"/abs/path.css":     true,
		"C:\\styles\\a.css": true,
	} {
		if got := fileutil.IsFilePath(s); got != want {
			t.Errorf("IsFilePath(%q) = %v, want %v", s, got, want)
		}
	}
}
