package hints

// Notes:
// - ForBrowserConnect tests use t.Setenv and swap IsInContainer, so they do
//   not run in parallel.

import (
	"strings"
	"testing"
)

func clearCI(t *testing.T) {
	t.Helper()
	for _, name := range ciVars {
		t.Setenv(name, "")
	}
}

func stubContainer(t *testing.T, in bool) {
	t.Helper()
	orig := IsInContainer
	t.Cleanup(func() { IsInContainer = orig })
	IsInContainer = func() bool { return in }
}

func TestForBrowserConnect(t *testing.T) {
	tests := []struct {
		name        string
		ci          string
		container   bool
		noSandbox   string
		browserBin  string
		wantContain []string
		wantNot     []string
		wantEmpty   bool
	}{
		{
			name:        "in CI",
			ci:          "true",
			wantContain: []string{"hint:", "ROD_NO_SANDBOX", "ROD_BROWSER_BIN"},
		},
		{
			name:        "in docker",
			container:   true,
			wantContain: []string{"ROD_NO_SANDBOX"},
		},
		{
			name:        "sandbox already disabled",
			ci:          "true",
			noSandbox:   "1",
			wantContain: []string{"ROD_BROWSER_BIN"},
			wantNot:     []string{"ROD_NO_SANDBOX"},
		},
		{
			name:       "everything configured",
			ci:         "true",
			noSandbox:  "1",
			browserBin: "/usr/bin/chromium",
			wantEmpty:  true,
		},
		{
			name:       "local with custom browser",
			browserBin: "/usr/bin/chromium",
			wantEmpty:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearCI(t)
			stubContainer(t, tt.container)
			t.Setenv("CI", tt.ci)
			t.Setenv("ROD_NO_SANDBOX", tt.noSandbox)
			t.Setenv("ROD_BROWSER_BIN", tt.browserBin)

			got := ForBrowserConnect()
			if tt.wantEmpty {
				if got != "" {
					t.Errorf("ForBrowserConnect() = %q, want empty", got)
				}
				return
			}
			for _, want := range tt.wantContain {
				if !strings.Contains(got, want) {
					t.Errorf("ForBrowserConnect() = %q, missing %q", got, want)
				}
			}
			for _, notWant := range tt.wantNot {
				if strings.Contains(got, notWant) {
					t.Errorf("ForBrowserConnect() = %q, should not contain %q", got, notWant)
				}
			}
		})
	}
}

func TestForConfigNotFound(t *testing.T) {
	t.Parallel()

	got := ForConfigNotFound([]string{"team.yaml", "/home/u/.config/go-mdreview/team.yaml"})
	if !strings.Contains(got, "--config") {
		t.Errorf("missing --config suggestion: %q", got)
	}
	if !strings.Contains(got, "create /home/u/.config/go-mdreview/team.yaml") {
		t.Errorf("missing user config suggestion: %q", got)
	}

	if got := ForConfigNotFound(nil); strings.Contains(got, "create") {
		t.Errorf("no path to suggest, got %q", got)
	}
}

func TestForStyleNotFound(t *testing.T) {
	t.Parallel()

	if got := ForStyleNotFound(nil); got != "" {
		t.Errorf("ForStyleNotFound(nil) = %q, want empty", got)
	}
	got := ForStyleNotFound([]string{"default", "print"})
	if got != "\n  hint: available: default, print" {
		t.Errorf("ForStyleNotFound() = %q", got)
	}
}

func TestFormat_Consistency(t *testing.T) {
	t.Parallel()

	for name, hint := range map[string]string{
		"timeout":    ForTimeout(),
		"output":     ForOutputDirectory(),
		"emptyInput": ForEmptyInput(),
	} {
		if !strings.HasPrefix(hint, "\n  hint: ") {
			t.Errorf("%s hint %q lacks the standard prefix", name, hint)
		}
	}
}
