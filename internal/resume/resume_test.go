package resume

import (
	"strings"
	"testing"

	"careerforge/internal/types"
)

const sampleText = `
Jane Smith
jane.smith@example.com | 555-123-4567
San Francisco, CA

EXPERIENCE
Senior Engineer at Acme
`

func TestExtractName(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"first non-blank line", sampleText, "Jane Smith"},
		{"leading whitespace trimmed", "   Bob Jones\nEngineer", "Bob Jones"},
		{"empty input", "", ""},
		{"only blank lines", "\n\n  \n", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExtractName(tt.input); got != tt.expected {
				t.Errorf("ExtractName() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestExtractEmail(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"embedded email", sampleText, "jane.smith@example.com"},
		{"no email", "no contact info here", ""},
		{"plus addressing", "reach me at dev+jobs@example.io thanks", "dev+jobs@example.io"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExtractEmail(tt.input); got != tt.expected {
				t.Errorf("ExtractEmail() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestExtractPhone(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"dashed", "call 555-123-4567", "555-123-4567"},
		{"dotted", "call 555.123.4567", "555.123.4567"},
		{"spaced", "call 555 123 4567", "555 123 4567"},
		{"bare digits", "call 5551234567", "5551234567"},
		{"no phone", "email only", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExtractPhone(tt.input); got != tt.expected {
				t.Errorf("ExtractPhone() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestFallbackData(t *testing.T) {
	data := FallbackData(sampleText)

	if data.PersonalDetails.Name != "Jane Smith" {
		t.Errorf("expected name %q, got %q", "Jane Smith", data.PersonalDetails.Name)
	}
	if data.PersonalDetails.Email != "jane.smith@example.com" {
		t.Errorf("expected email, got %q", data.PersonalDetails.Email)
	}
	if data.PersonalDetails.Phone != "555-123-4567" {
		t.Errorf("expected phone, got %q", data.PersonalDetails.Phone)
	}
	if data.RawText != sampleText {
		t.Error("expected raw text to be preserved")
	}

	// Lists must be empty but never nil
	if data.Experience == nil || len(data.Experience) != 0 {
		t.Error("expected empty non-nil experience")
	}
	if data.Education == nil || len(data.Education) != 0 {
		t.Error("expected empty non-nil education")
	}
	if data.Skills == nil || len(data.Skills) != 0 {
		t.Error("expected empty non-nil skills")
	}
	if data.Certifications == nil || len(data.Certifications) != 0 {
		t.Error("expected empty non-nil certifications")
	}
}

func TestDocument(t *testing.T) {
	data := types.ResumeData{
		PersonalDetails: types.PersonalDetails{
			Name:     "Jane Smith",
			Email:    "jane@example.com",
			Phone:    "555-123-4567",
			Location: "San Francisco, CA",
			LinkedIn: "linkedin.com/in/janesmith",
		},
		Experience: []types.Experience{
			{
				Company:     "Acme",
				Position:    "Senior Engineer",
				Duration:    "2020-2024",
				Description: []string{"Led platform team", "Cut infra costs 30%"},
			},
		},
		Skills: []string{"Go", "Kubernetes"},
	}

	doc := Document(data)
	lines := strings.Split(doc, "\n")

	if lines[0] != "Jane Smith" {
		t.Errorf("expected name on first line, got %q", lines[0])
	}
	if !strings.Contains(doc, "jane@example.com | 555-123-4567 | San Francisco, CA") {
		t.Error("expected combined contact line")
	}
	if !strings.Contains(doc, "linkedin.com/in/janesmith") {
		t.Error("expected linkedin line")
	}
	if !strings.Contains(doc, "EXPERIENCE") {
		t.Error("expected EXPERIENCE header")
	}
	if !strings.Contains(doc, "Senior Engineer | Acme | 2020-2024") {
		t.Error("expected experience entry line")
	}
	if !strings.Contains(doc, "- Led platform team") {
		t.Error("expected description bullet")
	}
	if !strings.Contains(doc, "SKILLS") {
		t.Error("expected SKILLS header")
	}
	if !strings.Contains(doc, "Go, Kubernetes") {
		t.Error("expected skills list")
	}

	// Empty sections must not produce headers
	if strings.Contains(doc, "EDUCATION") {
		t.Error("empty education section should not emit a header")
	}
	if strings.Contains(doc, "CERTIFICATIONS") {
		t.Error("empty certifications section should not emit a header")
	}
}

func TestDocumentMinimal(t *testing.T) {
	data := types.ResumeData{
		PersonalDetails: types.PersonalDetails{Name: "Bob Jones"},
	}

	doc := Document(data)
	if doc != "Bob Jones\n" {
		t.Errorf("expected just the name line, got %q", doc)
	}
}

func TestPromptBlocks(t *testing.T) {
	data := types.ResumeData{
		PersonalDetails: types.PersonalDetails{Name: "Jane Smith", Email: "jane@example.com"},
		Experience: []types.Experience{
			{Company: "Acme", Position: "Engineer", Duration: "2020-2024", Description: []string{"Built things"}},
		},
		Skills: []string{"Go"},
	}

	blocks := PromptBlocks(data)
	if !strings.Contains(blocks, "Candidate: Jane Smith") {
		t.Error("expected candidate line")
	}
	if !strings.Contains(blocks, "Engineer at Acme (2020-2024)") {
		t.Error("expected work history entry")
	}
	if !strings.Contains(blocks, "Skills: Go") {
		t.Error("expected skills line")
	}
	if strings.Contains(blocks, "Education:") {
		t.Error("empty education should not appear")
	}
}
