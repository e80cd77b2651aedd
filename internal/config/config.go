package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alnah/go-mdreview/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
	ErrInvalidValue    = errors.New("invalid config value")
)

// NotFoundError reports a config name that matched no file.
// It unwraps to ErrConfigNotFound.
type NotFoundError struct {
	Tried []string // Searched paths, in order
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%v: tried %s", ErrConfigNotFound, strings.Join(e.Tried, ", "))
}

func (e *NotFoundError) Unwrap() error {
	return ErrConfigNotFound
}

// appDir is the directory name searched under the user config directory.
const appDir = "go-mdreview"

// Field length limits.
const (
	MaxPathLength        = 4096
	MaxStyleNameLength   = 100
	MaxStatusLength      = 50  // "DRAFT", "FINAL", "v1.2.3"
	MaxDateLength        = 30  // "2025-12-31" or "December 31, 2025"
	MaxTextLength        = 500 // Footer/free-form text
	MaxPageSizeLength    = 10  // "letter", "a4", "legal"
	MaxOrientationLength = 10  // "portrait", "landscape"
	MaxPlaceholderLength = 200
	MaxTitleLength       = 200
	MaxThemeLength       = 50
)

// Margin bounds in inches.
const (
	MinMargin = 0.25
	MaxMargin = 3.0
)

// Config holds all configuration for report rendering.
type Config struct {
	Input  InputConfig  `yaml:"input"`
	Output OutputConfig `yaml:"output"`
	Style  StyleConfig  `yaml:"style"`
	Assets AssetsConfig `yaml:"assets"`
	Page   PageConfig   `yaml:"page"`
	Footer FooterConfig `yaml:"footer"`
	Report ReportConfig `yaml:"report"`
	Render RenderConfig `yaml:"render"`
}

// InputConfig defines input source options.
type InputConfig struct {
	Previous string `yaml:"previous"` // Previous report version for diff (empty = must specify)
}

// OutputConfig defines output destination options.
type OutputConfig struct {
	DefaultDir string `yaml:"defaultDir"` // Default output directory (empty = same as source)
}

// StyleConfig selects stylesheets.
type StyleConfig struct {
	Name  string `yaml:"name"`  // Screen style name or CSS path (default: "default")
	Print string `yaml:"print"` // Style used for PDF export (default: "print")
}

// AssetsConfig defines asset loading options.
type AssetsConfig struct {
	BasePath string `yaml:"basePath"` // Empty = use embedded assets
}

// PageConfig defines PDF page settings.
type PageConfig struct {
	Size        string  `yaml:"size"`        // "letter", "a4", "legal" (default: "letter")
	Orientation string  `yaml:"orientation"` // "portrait", "landscape" (default: "portrait")
	Margin      float64 `yaml:"margin"`      // inches (default: 0.5)
}

// FooterConfig defines PDF page footer options.
type FooterConfig struct {
	Enabled        bool   `yaml:"enabled"`
	Position       string `yaml:"position"` // "left", "center", "right" (default: "right")
	ShowPageNumber bool   `yaml:"showPageNumber"`
	Date           string `yaml:"date"`
	Status         string `yaml:"status"`
	Text           string `yaml:"text"`
}

// ReportConfig defines report post-processing options.
type ReportConfig struct {
	Placeholder     string `yaml:"placeholder"`     // Missing-information phrase rendered in italics
	ExtractKeywords bool   `yaml:"extractKeywords"` // Strip the trailing keywords comment
	Title           string `yaml:"title"`           // Document title (default: "Document")
}

// RenderConfig defines markdown rendering options.
type RenderConfig struct {
	Highlighting   bool   `yaml:"highlighting"`   // Syntax highlighting of fenced code
	HighlightStyle string `yaml:"highlightStyle"` // Chroma style name
}

// Validate checks field lengths and enumerated values.
// Called automatically by LoadConfig, but available for consumers
// who construct Config manually.
func (c *Config) Validate() error {
	lengths := []struct {
		field string
		value string
		max   int
	}{
		{"input.previous", c.Input.Previous, MaxPathLength},
		{"output.defaultDir", c.Output.DefaultDir, MaxPathLength},
		{"style.name", c.Style.Name, MaxPathLength},
		{"style.print", c.Style.Print, MaxPathLength},
		{"assets.basePath", c.Assets.BasePath, MaxPathLength},
		{"page.size", c.Page.Size, MaxPageSizeLength},
		{"page.orientation", c.Page.Orientation, MaxOrientationLength},
		{"footer.date", c.Footer.Date, MaxDateLength},
		{"footer.status", c.Footer.Status, MaxStatusLength},
		{"footer.text", c.Footer.Text, MaxTextLength},
		{"report.placeholder", c.Report.Placeholder, MaxPlaceholderLength},
		{"report.title", c.Report.Title, MaxTitleLength},
		{"render.highlightStyle", c.Render.HighlightStyle, MaxThemeLength},
	}
	for _, l := range lengths {
		if err := validateFieldLength(l.field, l.value, l.max); err != nil {
			return err
		}
	}

	if c.Footer.Position != "" {
		switch strings.ToLower(c.Footer.Position) {
		case "left", "center", "right":
		default:
			return fmt.Errorf("%w: footer.position %q (must be left, center, or right)", ErrInvalidValue, c.Footer.Position)
		}
	}

	if c.Page.Orientation != "" {
		switch strings.ToLower(c.Page.Orientation) {
		case "portrait", "landscape":
		default:
			return fmt.Errorf("%w: page.orientation %q (must be portrait or landscape)", ErrInvalidValue, c.Page.Orientation)
		}
	}

	if c.Page.Margin != 0 && (c.Page.Margin < MinMargin || c.Page.Margin > MaxMargin) {
		return fmt.Errorf("%w: page.margin %.2f (must be between %.2f and %.1f)", ErrInvalidValue, c.Page.Margin, MinMargin, MaxMargin)
	}

	return nil
}

// validateFieldLength checks if a field exceeds its maximum allowed length.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

// DefaultConfig returns the configuration used when no file is given.
// Highlighting is on; every other optional feature is off.
func DefaultConfig() *Config {
	return &Config{
		Style:  StyleConfig{Name: "default", Print: "print"},
		Footer: FooterConfig{Enabled: false},
		Report: ReportConfig{ExtractKeywords: false},
		Render: RenderConfig{Highlighting: true, HighlightStyle: "github"},
	}
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's treated as a config name and searched in standard locations.
// Fields absent from the file keep their DefaultConfig values.
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	var configPath string
	var err error

	if isFilePath(nameOrPath) {
		configPath = nameOrPath
	} else {
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yamlutil.UnmarshalStrict(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// isFilePath returns true if the string looks like a file path.
func isFilePath(s string) bool {
	return strings.ContainsAny(s, "/\\")
}

// resolveConfigPath searches for a config file by name in standard locations.
// Tries extensions in order: .yaml, .yml
// Tries locations in order: current directory, <user config dir>/go-mdreview/
func resolveConfigPath(name string) (string, error) {
	extensions := []string{".yaml", ".yml"}
	triedPaths := make([]string, 0, len(extensions)*2)

	for _, ext := range extensions {
		localPath := name + ext
		if fileExists(localPath) {
			return localPath, nil
		}
		triedPaths = append(triedPaths, localPath)
	}

	userConfigDir, err := os.UserConfigDir()
	if err == nil {
		for _, ext := range extensions {
			userPath := filepath.Join(userConfigDir, appDir, name+ext)
			if fileExists(userPath) {
				return userPath, nil
			}
			triedPaths = append(triedPaths, userPath)
		}
	}

	return "", &NotFoundError{Tried: triedPaths}
}

// fileExists returns true if the path exists and is a regular file.
func fileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}
