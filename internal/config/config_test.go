package config

// Notes:
// - LoadConfig subtests that resolve config names change the working
//   directory or the environment, so TestLoadConfig does not run in parallel.

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()

	if cfg.Style.Name != "default" {
		t.Errorf("Style.Name = %q, want %q", cfg.Style.Name, "default")
	}
	if cfg.Style.Print != "print" {
		t.Errorf("Style.Print = %q, want %q", cfg.Style.Print, "print")
	}
	if !cfg.Render.Highlighting {
		t.Error("Render.Highlighting = false, want true")
	}
	if cfg.Footer.Enabled {
		t.Error("Footer.Enabled = true, want false")
	}
	if cfg.Report.ExtractKeywords {
		t.Error("Report.ExtractKeywords = true, want false")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("DefaultConfig().Validate() = %v, want nil", err)
	}
}

func TestValidateFieldLength(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		value     string
		maxLength int
		wantErr   bool
	}{
		{"empty value is valid", "", 10, false},
		{"value at limit is valid", "1234567890", 10, false},
		{"value over limit returns error", "12345678901", 10, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := validateFieldLength("test.field", tt.value, tt.maxLength)
			if tt.wantErr {
				if !errors.Is(err, ErrFieldTooLong) {
					t.Fatalf("error = %v, want ErrFieldTooLong", err)
				}
				if !strings.Contains(err.Error(), "test.field") {
					t.Errorf("error %q should name the field", err)
				}
				return
			}
			if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestConfig_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr error
	}{
		{
			name:   "defaults are valid",
			mutate: func(*Config) {},
		},
		{
			name:    "footer text too long",
			mutate:  func(c *Config) { c.Footer.Text = strings.Repeat("x", MaxTextLength+1) },
			wantErr: ErrFieldTooLong,
		},
		{
			name:    "placeholder too long",
			mutate:  func(c *Config) { c.Report.Placeholder = strings.Repeat("x", MaxPlaceholderLength+1) },
			wantErr: ErrFieldTooLong,
		},
		{
			name:   "footer position is case insensitive",
			mutate: func(c *Config) { c.Footer.Position = "Center" },
		},
		{
			name:    "invalid footer position",
			mutate:  func(c *Config) { c.Footer.Position = "top" },
			wantErr: ErrInvalidValue,
		},
		{
			name:    "invalid orientation",
			mutate:  func(c *Config) { c.Page.Orientation = "diagonal" },
			wantErr: ErrInvalidValue,
		},
		{
			name:    "margin below minimum",
			mutate:  func(c *Config) { c.Page.Margin = 0.1 },
			wantErr: ErrInvalidValue,
		},
		{
			name:   "margin at maximum",
			mutate: func(c *Config) { c.Page.Margin = MaxMargin },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("Validate() unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func writeConfig(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("setup: %v", err)
	}
	return path
}

func TestLoadConfig(t *testing.T) {
	t.Run("empty name returns ErrEmptyConfigName", func(t *testing.T) {
		_, err := LoadConfig("")
		if !errors.Is(err, ErrEmptyConfigName) {
			t.Errorf("error = %v, want ErrEmptyConfigName", err)
		}
	})

	t.Run("file path loads config and keeps defaults", func(t *testing.T) {
		path := writeConfig(t, t.TempDir(), "test.yaml", `footer:
  enabled: true
  position: "center"
report:
  extractKeywords: true
  placeholder: "[Not documented]"
`)

		cfg, err := LoadConfig(path)
		if err != nil {
			t.Fatalf("LoadConfig() error = %v", err)
		}
		if !cfg.Footer.Enabled || cfg.Footer.Position != "center" {
			t.Errorf("Footer = %+v, want enabled center", cfg.Footer)
		}
		if !cfg.Report.ExtractKeywords {
			t.Error("Report.ExtractKeywords = false, want true")
		}
		if cfg.Report.Placeholder != "[Not documented]" {
			t.Errorf("Report.Placeholder = %q", cfg.Report.Placeholder)
		}
		if cfg.Style.Name != "default" {
			t.Errorf("Style.Name = %q, want default kept", cfg.Style.Name)
		}
		if !cfg.Render.Highlighting {
			t.Error("Render.Highlighting = false, want default kept")
		}
	})

	t.Run("explicit false overrides default", func(t *testing.T) {
		path := writeConfig(t, t.TempDir(), "test.yaml", "render:\n  highlighting: false\n")

		cfg, err := LoadConfig(path)
		if err != nil {
			t.Fatalf("LoadConfig() error = %v", err)
		}
		if cfg.Render.Highlighting {
			t.Error("Render.Highlighting = true, want false")
		}
	})

	t.Run("nonexistent file path returns ErrConfigNotFound", func(t *testing.T) {
		_, err := LoadConfig("/nonexistent/path/config.yaml")
		if !errors.Is(err, ErrConfigNotFound) {
			t.Errorf("error = %v, want ErrConfigNotFound", err)
		}
	})

	t.Run("invalid YAML returns ErrConfigParse", func(t *testing.T) {
		path := writeConfig(t, t.TempDir(), "invalid.yaml", "style: [unclosed")
		_, err := LoadConfig(path)
		if !errors.Is(err, ErrConfigParse) {
			t.Errorf("error = %v, want ErrConfigParse", err)
		}
	})

	t.Run("unknown field returns ErrConfigParse in strict mode", func(t *testing.T) {
		path := writeConfig(t, t.TempDir(), "unknown.yaml", "style:\n  name: default\nunknownField: x\n")
		_, err := LoadConfig(path)
		if !errors.Is(err, ErrConfigParse) {
			t.Errorf("error = %v, want ErrConfigParse", err)
		}
	})

	t.Run("field too long returns ErrFieldTooLong", func(t *testing.T) {
		content := "report:\n  title: \"" + strings.Repeat("t", MaxTitleLength+1) + "\"\n"
		path := writeConfig(t, t.TempDir(), "toolong.yaml", content)
		_, err := LoadConfig(path)
		if !errors.Is(err, ErrFieldTooLong) {
			t.Errorf("error = %v, want ErrFieldTooLong", err)
		}
	})

	t.Run("config name resolves yaml in current directory", func(t *testing.T) {
		dir := t.TempDir()
		writeConfig(t, dir, "myconfig.yaml", "style:\n  name: fromname\n")
		t.Chdir(dir)

		cfg, err := LoadConfig("myconfig")
		if err != nil {
			t.Fatalf("LoadConfig() error = %v", err)
		}
		if cfg.Style.Name != "fromname" {
			t.Errorf("Style.Name = %q, want %q", cfg.Style.Name, "fromname")
		}
	})

	t.Run("config name prefers yaml over yml", func(t *testing.T) {
		dir := t.TempDir()
		writeConfig(t, dir, "myconfig.yaml", "style:\n  name: yaml\n")
		writeConfig(t, dir, "myconfig.yml", "style:\n  name: yml\n")
		t.Chdir(dir)

		cfg, err := LoadConfig("myconfig")
		if err != nil {
			t.Fatalf("LoadConfig() error = %v", err)
		}
		if cfg.Style.Name != "yaml" {
			t.Errorf("Style.Name = %q, want %q", cfg.Style.Name, "yaml")
		}
	})

	t.Run("config name resolves from user config directory", func(t *testing.T) {
		home := t.TempDir()
		t.Setenv("HOME", home)
		t.Setenv("XDG_CONFIG_HOME", filepath.Join(home, ".config"))
		t.Chdir(t.TempDir())

		userConfigDir, err := os.UserConfigDir()
		if err != nil {
			t.Skip("cannot get user config dir")
		}
		appConfigDir := filepath.Join(userConfigDir, appDir)
		if err := os.MkdirAll(appConfigDir, 0750); err != nil {
			t.Fatalf("setup mkdir: %v", err)
		}
		writeConfig(t, appConfigDir, "team.yaml", "style:\n  name: userdir\n")

		cfg, err := LoadConfig("team")
		if err != nil {
			t.Fatalf("LoadConfig() error = %v", err)
		}
		if cfg.Style.Name != "userdir" {
			t.Errorf("Style.Name = %q, want %q", cfg.Style.Name, "userdir")
		}
	})

	t.Run("unknown name lists searched paths", func(t *testing.T) {
		t.Chdir(t.TempDir())

		_, err := LoadConfig("missing")
		if !errors.Is(err, ErrConfigNotFound) {
			t.Fatalf("error = %v, want ErrConfigNotFound", err)
		}
		if !strings.Contains(err.Error(), "missing.yaml") {
			t.Errorf("error %q should list tried paths", err)
		}
		var notFound *NotFoundError
		if !errors.As(err, &notFound) {
			t.Fatalf("error %T should be a *NotFoundError", err)
		}
		if len(notFound.Tried) < 2 || notFound.Tried[0] != "missing.yaml" || notFound.Tried[1] != "missing.yml" {
			t.Errorf("Tried = %v, want local paths first", notFound.Tried)
		}
	})
}
