package main

import (
	"fmt"
	"strings"
	"time"

	mdreview "github.com/alnah/go-mdreview"
	"github.com/alnah/go-mdreview/internal/config"
)

// defaultTimeout is the PDF export timeout when neither --timeout nor
// MDREVIEW_TIMEOUT is set.
const defaultTimeout = 30 * time.Second

// dateAuto in footer.date is replaced with the current date.
const dateAuto = "auto"

// loadConfig resolves the effective configuration:
// CLI flags > env vars > config file > defaults.
func loadConfig(flags *reviewFlags, envCfg *envConfig) (*config.Config, error) {
	cfg := config.DefaultConfig()

	path := flags.common.config
	if path == "" {
		path = envCfg.ConfigPath
	}
	if path != "" {
		loaded, err := config.LoadConfig(path)
		if err != nil {
			return nil, fmt.Errorf("loading config: %w", err)
		}
		cfg = loaded
	}

	applyEnvConfig(envCfg, cfg)
	mergeFlags(flags, cfg)
	return cfg, nil
}

// mergeFlags applies CLI flags to cfg. Flags only override when set.
func mergeFlags(flags *reviewFlags, cfg *config.Config) {
	if flags.previous != "" {
		cfg.Input.Previous = flags.previous
	}
	if flags.output.title != "" {
		cfg.Report.Title = flags.output.title
	}

	// Assets
	if flags.assets.style != "" {
		cfg.Style.Name = flags.assets.style
	}
	if flags.assets.printStyle != "" {
		cfg.Style.Print = flags.assets.printStyle
	}
	if flags.assets.assetPath != "" {
		cfg.Assets.BasePath = flags.assets.assetPath
	}
	if flags.assets.highlightStyle != "" {
		cfg.Render.HighlightStyle = flags.assets.highlightStyle
	}
	if flags.assets.noHighlight {
		cfg.Render.Highlighting = false
	}

	// Page
	if flags.page.size != "" {
		cfg.Page.Size = flags.page.size
	}
	if flags.page.orientation != "" {
		cfg.Page.Orientation = flags.page.orientation
	}
	if flags.page.margin != 0 {
		cfg.Page.Margin = flags.page.margin
	}

	// Footer
	if flags.footer.enabled {
		cfg.Footer.Enabled = true
	}
	if flags.footer.position != "" {
		cfg.Footer.Position = flags.footer.position
	}
	if flags.footer.text != "" {
		cfg.Footer.Text = flags.footer.text
	}
	if flags.footer.status != "" {
		cfg.Footer.Status = flags.footer.status
	}
	if flags.footer.date != "" {
		cfg.Footer.Date = flags.footer.date
	}
	if flags.footer.pageNumber {
		cfg.Footer.ShowPageNumber = true
	}
	if flags.footer.disabled {
		cfg.Footer.Enabled = false
	}

	// Report
	if flags.report.placeholder != "" {
		cfg.Report.Placeholder = flags.report.placeholder
	}
	if flags.report.keywords {
		cfg.Report.ExtractKeywords = true
	}
}

// resolveTimeout returns the PDF export timeout: flag, then env, then default.
func resolveTimeout(flagValue string, envCfg *envConfig) (time.Duration, error) {
	if flagValue != "" {
		d, err := time.ParseDuration(flagValue)
		if err != nil {
			return 0, fmt.Errorf("%w: %q (use a duration like 30s or 2m)", ErrInvalidTimeout, flagValue)
		}
		if d <= 0 {
			return 0, fmt.Errorf("%w: %q must be positive", ErrInvalidTimeout, flagValue)
		}
		return d, nil
	}
	if envCfg.Timeout > 0 {
		return envCfg.Timeout, nil
	}
	return defaultTimeout, nil
}

// buildPageSettings fills unset page fields with defaults.
func buildPageSettings(cfg *config.Config) *mdreview.PageSettings {
	page := mdreview.DefaultPageSettings()
	if cfg.Page.Size != "" {
		page.Size = cfg.Page.Size
	}
	if cfg.Page.Orientation != "" {
		page.Orientation = cfg.Page.Orientation
	}
	if cfg.Page.Margin != 0 {
		page.Margin = cfg.Page.Margin
	}
	return page
}

// buildFooter returns nil when the footer is disabled.
// A footer date of "auto" becomes today's date.
func buildFooter(cfg *config.Config, now func() time.Time) *mdreview.Footer {
	if !cfg.Footer.Enabled {
		return nil
	}
	date := cfg.Footer.Date
	if strings.EqualFold(date, dateAuto) {
		date = now().Format(time.DateOnly)
	}
	return &mdreview.Footer{
		Position:       cfg.Footer.Position,
		ShowPageNumber: cfg.Footer.ShowPageNumber,
		Date:           date,
		Status:         cfg.Footer.Status,
		Text:           cfg.Footer.Text,
	}
}

// rendererOptions translates the effective configuration into Renderer options.
func rendererOptions(cfg *config.Config, timeout time.Duration, now func() time.Time) []mdreview.Option {
	return []mdreview.Option{
		mdreview.WithTimeout(timeout),
		mdreview.WithStyle(cfg.Style.Name),
		mdreview.WithPrintStyle(cfg.Style.Print),
		mdreview.WithAssetPath(cfg.Assets.BasePath),
		mdreview.WithPlaceholder(cfg.Report.Placeholder),
		mdreview.WithHighlighting(cfg.Render.Highlighting),
		mdreview.WithHighlightStyle(cfg.Render.HighlightStyle),
		mdreview.WithPage(buildPageSettings(cfg)),
		mdreview.WithFooter(buildFooter(cfg, now)),
	}
}
