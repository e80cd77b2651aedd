package pipeline

import (
	"context"
	"strings"
	"testing"
)

func TestSanitizeCSS(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "empty string", input: "", expected: ""},
		{name: "no escape needed", input: ".diff-add { color: green; }", expected: ".diff-add { color: green; }"},
		{name: "escapes style close", input: "</style>", expected: `<\/style>`},
		{name: "escapes every occurrence", input: "</a></STYLE>", expected: `<\/a><\/STYLE>`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := sanitizeCSS(tt.input)
			if got != tt.expected {
				t.Errorf("sanitizeCSS(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestInjectCSS(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		html     string
		css      string
		expected string
	}{
		{
			name:     "empty CSS returns HTML unchanged",
			html:     "<html><head></head><body>Report</body></html>",
			css:      "",
			expected: "<html><head></head><body>Report</body></html>",
		},
		{
			name:     "injects before </head>",
			html:     "<html><head></head><body>Report</body></html>",
			css:      "mark { color: red; }",
			expected: "<html><head><style>mark { color: red; }</style></head><body>Report</body></html>",
		},
		{
			name:     "injects after <body> with attributes",
			html:     `<html><body class="main">Report</body></html>`,
			css:      "mark { color: red; }",
			expected: `<html><body class="main"><style>mark { color: red; }</style>Report</body></html>`,
		},
		{
			name:     "prepends to bare fragment",
			html:     "<p>Report</p>",
			css:      "p { color: blue; }",
			expected: "<style>p { color: blue; }</style><p>Report</p>",
		},
		{
			name:     "sanitizes CSS with closing tags",
			html:     "<html><head></head><body>Report</body></html>",
			css:      "</style><script>alert(1)</script>",
			expected: `<html><head><style><\/style><script>alert(1)<\/script></style></head><body>Report</body></html>`,
		},
	}

	injector := &CSSInjection{}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := injector.InjectCSS(context.Background(), tt.html, tt.css)
			if got != tt.expected {
				t.Errorf("InjectCSS() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestInjectCSS_ContextCancellation(t *testing.T) {
	t.Parallel()

	injector := &CSSInjection{}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	html := "<html><head></head><body>Report</body></html>"
	if got := injector.InjectCSS(ctx, html, "p {}"); got != html {
		t.Errorf("InjectCSS() with cancelled context should return HTML unchanged, got %q", got)
	}
}

func TestWrapDocument(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		title        string
		body         string
		wantContains []string
		wantNot      []string
	}{
		{
			name:  "title and body",
			title: "Radiology report",
			body:  "<p>Findings</p>",
			wantContains: []string{
				"<!DOCTYPE html>",
				`<meta charset="utf-8">`,
				"<title>Radiology report</title>",
				"<p>Findings</p>",
			},
		},
		{
			name:         "empty title falls back",
			title:        "   ",
			body:         "<p>x</p>",
			wantContains: []string{"<title>" + DefaultDocumentTitle + "</title>"},
		},
		{
			name:         "title is escaped",
			title:        "</title><script>alert(1)</script>",
			body:         "",
			wantContains: []string{"&lt;/title&gt;&lt;script&gt;"},
			wantNot:      []string{"<script>"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := WrapDocument(tt.title, tt.body)
			for _, want := range tt.wantContains {
				if !strings.Contains(got, want) {
					t.Errorf("WrapDocument() missing %q in:\n%s", want, got)
				}
			}
			for _, notWant := range tt.wantNot {
				if strings.Contains(got, notWant) {
					t.Errorf("WrapDocument() should not contain %q in:\n%s", notWant, got)
				}
			}
		})
	}
}
