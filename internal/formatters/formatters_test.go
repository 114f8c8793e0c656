package formatters

import (
	"encoding/json"
	"slices"
	"strings"
	"testing"

	"careerforge/internal/types"
)

func sampleAnalysis() types.ResumeAnalysis {
	return types.ResumeAnalysis{
		Score:           72,
		KeywordMatch:    64,
		MissingKeywords: []string{"Kubernetes", "Terraform"},
		Strengths:       []string{"Strong Go background"},
		Suggestions:     []string{"Add cloud infrastructure keywords"},
	}
}

func TestFormatAnalysis(t *testing.T) {
	registry := NewFormatterRegistry()

	tests := []struct {
		name     string
		format   string
		contains []string
	}{
		{
			name:   "text",
			format: "text",
			contains: []string{
				"ATS Score: 72/100",
				"Keyword Match: 64%",
				"Missing Keywords:",
				"- Kubernetes",
				"1. Add cloud infrastructure keywords",
			},
		},
		{
			name:   "markdown",
			format: "markdown",
			contains: []string{
				"# Resume Analysis",
				"**ATS Score:** 72/100",
				"## Missing Keywords",
				"- Terraform",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			output, err := registry.Format(sampleAnalysis(), tt.format)
			if err != nil {
				t.Fatalf("Format failed: %v", err)
			}
			for _, want := range tt.contains {
				if !strings.Contains(output, want) {
					t.Errorf("output missing %q:\n%s", want, output)
				}
			}
		})
	}
}

func TestFormatAnalysisJSON(t *testing.T) {
	registry := NewFormatterRegistry()

	output, err := registry.Format(sampleAnalysis(), "json")
	if err != nil {
		t.Fatalf("Format failed: %v", err)
	}

	var decoded types.ResumeAnalysis
	if err := json.Unmarshal([]byte(output), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if decoded.Score != 72 || decoded.KeywordMatch != 64 {
		t.Errorf("unexpected decoded values: %+v", decoded)
	}
}

func TestFormatOptimizedResume(t *testing.T) {
	registry := NewFormatterRegistry()

	optimized := types.OptimizedResume{Text: "JANE DOE\nSenior Engineer"}
	output, err := registry.Format(optimized, "text")
	if err != nil {
		t.Fatalf("Format failed: %v", err)
	}
	if !strings.Contains(output, "JANE DOE") {
		t.Errorf("output missing resume text:\n%s", output)
	}
	if strings.Contains(output, "NOTE:") {
		t.Errorf("unexpected degraded note in output:\n%s", output)
	}

	optimized.Degraded = true
	output, err = registry.Format(optimized, "text")
	if err != nil {
		t.Fatalf("Format failed: %v", err)
	}
	if !strings.Contains(output, "Optimization was unavailable") {
		t.Errorf("expected degraded note in output:\n%s", output)
	}
}

func TestFormatResumeData(t *testing.T) {
	registry := NewFormatterRegistry()

	data := types.ResumeData{
		PersonalDetails: types.PersonalDetails{
			Name:  "Jane Doe",
			Email: "jane@example.com",
		},
		Experience: []types.Experience{
			{
				Company:     "Acme",
				Position:    "Engineer",
				Duration:    "2020-2024",
				Description: []string{"Built billing pipeline"},
			},
		},
		Education: []types.Education{
			{Institution: "State University", Degree: "BSc Computer Science", Duration: "2016-2020"},
		},
		Skills: []string{"Go", "SQL"},
	}

	output, err := registry.Format(data, "text")
	if err != nil {
		t.Fatalf("Format failed: %v", err)
	}
	for _, want := range []string{
		"Name: Jane Doe",
		"Email: jane@example.com",
		"- Engineer at Acme (2020-2024)",
		"Built billing pipeline",
		"Skills: Go, SQL",
	} {
		if !strings.Contains(output, want) {
			t.Errorf("output missing %q:\n%s", want, output)
		}
	}

	output, err = registry.Format(data, "markdown")
	if err != nil {
		t.Fatalf("Format failed: %v", err)
	}
	if !strings.Contains(output, "# Jane Doe") || !strings.Contains(output, "### Engineer, Acme") {
		t.Errorf("unexpected markdown output:\n%s", output)
	}
}

func TestFormatPlainText(t *testing.T) {
	registry := NewFormatterRegistry()

	output, err := registry.Format("Dear Hiring Manager,", "text")
	if err != nil {
		t.Fatalf("Format failed: %v", err)
	}
	if output != "Dear Hiring Manager,\n" {
		t.Errorf("expected passthrough with trailing newline, got %q", output)
	}
}

func TestFormatUnknownFormat(t *testing.T) {
	registry := NewFormatterRegistry()

	if _, err := registry.Format(sampleAnalysis(), "xml"); err == nil {
		t.Error("expected error for unknown format")
	}
}

func TestGetSupportedFormats(t *testing.T) {
	formats := NewFormatterRegistry().GetSupportedFormats()

	for _, want := range []string{"json", "text", "markdown"} {
		if !slices.Contains(formats, want) {
			t.Errorf("expected %q in supported formats, got %v", want, formats)
		}
	}
}
