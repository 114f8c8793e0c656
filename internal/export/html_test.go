package export

import (
	"strings"
	"testing"
)

func TestBuildHTML(t *testing.T) {
	html := buildHTML("Cover Letter", "Dear Hiring Manager,\n\nI am writing to apply.")

	if !strings.Contains(html, "<title>Cover Letter</title>") {
		t.Error("Title should be embedded in the page")
	}
	if !strings.Contains(html, "Dear Hiring Manager,") {
		t.Error("Document text should be embedded in the body")
	}
	if !strings.Contains(html, "white-space: pre-wrap") {
		t.Error("Body must preserve the text's own line breaks")
	}
}

func TestBuildHTMLEscapesMarkup(t *testing.T) {
	html := buildHTML("<script>", "Skills: C++ & Go <html>")

	if strings.Contains(html, "<script>") {
		t.Errorf("Title markup must be escaped: %q", html)
	}
	if strings.Contains(html, "Go <html>") {
		t.Errorf("Body markup must be escaped: %q", html)
	}
	if !strings.Contains(html, "C++ &amp; Go") {
		t.Errorf("Expected escaped ampersand: %q", html)
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		input       string
		expected    Format
		expectError bool
	}{
		{"pdf", FormatPDF, false},
		{"PDF", FormatPDF, false},
		{"png", FormatPNG, false},
		{"docx", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			format, err := ParseFormat(tt.input)
			if tt.expectError {
				if err == nil {
					t.Error("Expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if format != tt.expected {
				t.Errorf("ParseFormat(%q) = %q, want %q", tt.input, format, tt.expected)
			}
		})
	}
}
