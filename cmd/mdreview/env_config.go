package main

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/alnah/go-mdreview/internal/config"
)

// envConfig holds configuration from environment variables.
// Provides CI/CD-friendly overrides without requiring YAML files.
type envConfig struct {
	ConfigPath  string        // MDREVIEW_CONFIG: config file name or path
	Style       string        // MDREVIEW_STYLE: CSS style name or path
	Timeout     time.Duration // MDREVIEW_TIMEOUT: PDF export timeout
	OutputDir   string        // MDREVIEW_OUTPUT_DIR: default output directory
	PageSize    string        // MDREVIEW_PAGE_SIZE: letter, a4, legal
	Placeholder string        // MDREVIEW_PLACEHOLDER: missing-information phrase
}

// knownEnvVars lists valid MDREVIEW_* environment variables.
// Used to detect typos and warn users about unknown variables.
var knownEnvVars = map[string]bool{
	"MDREVIEW_CONFIG":      true,
	"MDREVIEW_STYLE":       true,
	"MDREVIEW_TIMEOUT":     true,
	"MDREVIEW_OUTPUT_DIR":  true,
	"MDREVIEW_PAGE_SIZE":   true,
	"MDREVIEW_PLACEHOLDER": true,
}

// loadEnvConfig reads configuration from environment variables.
// An unparsable or non-positive MDREVIEW_TIMEOUT is ignored.
func loadEnvConfig() *envConfig {
	cfg := &envConfig{
		ConfigPath:  os.Getenv("MDREVIEW_CONFIG"),
		Style:       os.Getenv("MDREVIEW_STYLE"),
		OutputDir:   os.Getenv("MDREVIEW_OUTPUT_DIR"),
		PageSize:    os.Getenv("MDREVIEW_PAGE_SIZE"),
		Placeholder: os.Getenv("MDREVIEW_PLACEHOLDER"),
	}

	if timeout := os.Getenv("MDREVIEW_TIMEOUT"); timeout != "" {
		if d, err := time.ParseDuration(timeout); err == nil && d > 0 {
			cfg.Timeout = d
		}
	}

	return cfg
}

// warnUnknownEnvVars writes a warning for each unrecognized MDREVIEW_* variable.
// Helps catch typos like MDREVIEW_STYEL.
func warnUnknownEnvVars(w io.Writer) {
	for _, env := range os.Environ() {
		if strings.HasPrefix(env, "MDREVIEW_") {
			name, _, _ := strings.Cut(env, "=")
			if !knownEnvVars[name] {
				fmt.Fprintf(w, "warning: unknown environment variable %s (typo?)\n", name)
			}
		}
	}
}

// applyEnvConfig applies environment variable values to config.
// A value is used only when the config field is still empty or at its default,
// which gives: CLI flags > env vars > config file > defaults
// (CLI flags are applied later via mergeFlags).
func applyEnvConfig(env *envConfig, cfg *config.Config) {
	defaults := config.DefaultConfig()

	if env.Style != "" && (cfg.Style.Name == "" || cfg.Style.Name == defaults.Style.Name) {
		cfg.Style.Name = env.Style
	}
	if env.OutputDir != "" && cfg.Output.DefaultDir == "" {
		cfg.Output.DefaultDir = env.OutputDir
	}
	if env.PageSize != "" && cfg.Page.Size == "" {
		cfg.Page.Size = env.PageSize
	}
	if env.Placeholder != "" && cfg.Report.Placeholder == "" {
		cfg.Report.Placeholder = env.Placeholder
	}
}
