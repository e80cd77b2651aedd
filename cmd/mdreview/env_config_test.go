package main

// Notes:
// - Tests use t.Setenv(), which prevents t.Parallel().
// - applyEnvConfig: env values fill fields the config file left empty and
//   never override explicit file values.

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/alnah/go-mdreview/internal/config"
)

func TestLoadEnvConfig(t *testing.T) {
	t.Run("all variables", func(t *testing.T) {
		t.Setenv("MDREVIEW_CONFIG", "/path/to/config.yaml")
		t.Setenv("MDREVIEW_STYLE", "print")
		t.Setenv("MDREVIEW_TIMEOUT", "2m")
		t.Setenv("MDREVIEW_OUTPUT_DIR", "/out")
		t.Setenv("MDREVIEW_PAGE_SIZE", "a4")
		t.Setenv("MDREVIEW_PLACEHOLDER", "[unknown]")

		got := loadEnvConfig()
		want := &envConfig{
			ConfigPath:  "/path/to/config.yaml",
			Style:       "print",
			Timeout:     2 * time.Minute,
			OutputDir:   "/out",
			PageSize:    "a4",
			Placeholder: "[unknown]",
		}
		if *got != *want {
			t.Errorf("loadEnvConfig() = %+v, want %+v", got, want)
		}
	})

	for _, value := range []string{"soon", "-5s", "0s"} {
		t.Run("invalid timeout "+value+" is ignored", func(t *testing.T) {
			t.Setenv("MDREVIEW_TIMEOUT", value)

			if got := loadEnvConfig().Timeout; got != 0 {
				t.Errorf("Timeout = %v, want 0", got)
			}
		})
	}
}

func TestWarnUnknownEnvVars(t *testing.T) {
	t.Setenv("MDREVIEW_STYEL", "print")
	t.Setenv("MDREVIEW_STYLE", "print")

	var buf bytes.Buffer
	warnUnknownEnvVars(&buf)

	out := buf.String()
	if !strings.Contains(out, "unknown environment variable MDREVIEW_STYEL") {
		t.Errorf("expected warning for MDREVIEW_STYEL, got %q", out)
	}
	if strings.Contains(out, "MDREVIEW_STYLE ") {
		t.Errorf("known variable should not warn, got %q", out)
	}
}

func TestApplyEnvConfig(t *testing.T) {
	t.Parallel()

	env := &envConfig{Style: "print", OutputDir: "/env-out", PageSize: "a4", Placeholder: "[env]"}

	t.Run("fills defaults", func(t *testing.T) {
		t.Parallel()

		cfg := config.DefaultConfig()
		applyEnvConfig(env, cfg)

		if cfg.Style.Name != "print" {
			t.Errorf("Style.Name = %q, want print", cfg.Style.Name)
		}
		if cfg.Output.DefaultDir != "/env-out" {
			t.Errorf("Output.DefaultDir = %q", cfg.Output.DefaultDir)
		}
		if cfg.Page.Size != "a4" {
			t.Errorf("Page.Size = %q", cfg.Page.Size)
		}
		if cfg.Report.Placeholder != "[env]" {
			t.Errorf("Report.Placeholder = %q", cfg.Report.Placeholder)
		}
	})

	t.Run("keeps file values", func(t *testing.T) {
		t.Parallel()

		cfg := config.DefaultConfig()
		cfg.Style.Name = "./team.css"
		cfg.Output.DefaultDir = "/file-out"
		cfg.Page.Size = "legal"
		cfg.Report.Placeholder = "[file]"
		applyEnvConfig(env, cfg)

		if cfg.Style.Name != "./team.css" || cfg.Output.DefaultDir != "/file-out" ||
			cfg.Page.Size != "legal" || cfg.Report.Placeholder != "[file]" {
			t.Errorf("env overrode file values: %+v", cfg)
		}
	})
}
