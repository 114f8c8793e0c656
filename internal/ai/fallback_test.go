package ai

import (
	"strings"
	"testing"

	"careerforge/internal/types"
)

func TestFallbackAnalysisShape(t *testing.T) {
	analysis := FallbackAnalysis()

	if analysis.Score != 65 {
		t.Errorf("Expected score 65, got %d", analysis.Score)
	}
	if analysis.KeywordMatch != 60 {
		t.Errorf("Expected keyword match 60, got %d", analysis.KeywordMatch)
	}
	if analysis.Score < 0 || analysis.Score > 100 || analysis.KeywordMatch < 0 || analysis.KeywordMatch > 100 {
		t.Error("Fallback scores must stay within [0,100]")
	}
	if len(analysis.MissingKeywords) != 1 || analysis.MissingKeywords[0] != "Error analyzing keywords" {
		t.Errorf("Unexpected missing keywords: %v", analysis.MissingKeywords)
	}
	if len(analysis.Suggestions) != 1 || !strings.Contains(analysis.Suggestions[0], "try again") {
		t.Errorf("Expected a retry suggestion, got %v", analysis.Suggestions)
	}
	if len(analysis.Strengths) != 1 {
		t.Errorf("Expected one generic strength, got %v", analysis.Strengths)
	}
}

func TestHasPlaceholders(t *testing.T) {
	tests := []struct {
		name     string
		letter   string
		expected bool
	}{
		{"clean letter", "Dear Hiring Manager,\n\nI am excited to apply.", false},
		{"your name token", "Sincerely,\n[Your Name]", true},
		{"company token", "I want to join [Company Name].", true},
		{"case insensitive", "sincerely,\n[your name]", true},
		{"unrelated brackets", "See [section 3] for details.", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := HasPlaceholders(tt.letter); got != tt.expected {
				t.Errorf("HasPlaceholders(%q) = %v, want %v", tt.letter, got, tt.expected)
			}
		})
	}
}

func TestReplacePlaceholders(t *testing.T) {
	resumeData := &types.ResumeData{
		PersonalDetails: types.PersonalDetails{Name: "Jane Smith"},
	}

	letter := "[Your Date]\n\n[Hiring Manager]\n[Company Name]\n[Address]\n\nDear [Hiring Manager],\n\nI am applying for [Position] at [Company Name].\n\nSincerely,\n[Your Name]"
	result := ReplacePlaceholders(letter, resumeData, "Initech", "March 3, 2025")

	if HasPlaceholders(result) {
		t.Fatalf("Placeholders remain: %q", result)
	}
	for _, want := range []string{"Jane Smith", "Initech", "March 3, 2025", "the position", "Hiring Manager"} {
		if !strings.Contains(result, want) {
			t.Errorf("Expected %q in result: %q", want, result)
		}
	}
	if strings.Contains(result, "\n\n\n") {
		t.Errorf("Blank runs not collapsed: %q", result)
	}
}

func TestReplacePlaceholdersUnlistedTokens(t *testing.T) {
	resumeData := &types.ResumeData{
		PersonalDetails: types.PersonalDetails{
			Name:  "Jane Smith",
			Email: "jane.smith@example.com",
			Phone: "555-123-4567",
		},
	}

	letter := "Contact me at [Your Email] or [Your Phone Number]. Profile: [Your LinkedIn Profile]."
	result := ReplacePlaceholders(letter, resumeData, "Initech", "March 3, 2025")

	if HasPlaceholders(result) {
		t.Fatalf("Placeholders remain: %q", result)
	}
	if !strings.Contains(result, "jane.smith@example.com") {
		t.Errorf("Expected email substitution: %q", result)
	}
	if !strings.Contains(result, "555-123-4567") {
		t.Errorf("Expected phone substitution: %q", result)
	}
	if strings.Contains(result, "LinkedIn") {
		t.Errorf("Expected unknown token to be stripped: %q", result)
	}

	// Without resume data the unknown tokens are stripped rather than
	// substituted, and the gaps are collapsed.
	result = ReplacePlaceholders(letter, nil, "Initech", "March 3, 2025")
	if HasPlaceholders(result) {
		t.Fatalf("Placeholders remain without resume data: %q", result)
	}
	if strings.Contains(result, "  ") {
		t.Errorf("Expected collapsed spacing: %q", result)
	}
}

func TestReplacePlaceholdersDefaults(t *testing.T) {
	letter := "Sincerely,\n[Your Name] applying to [Company Name]"
	result := ReplacePlaceholders(letter, nil, "", "")

	if !strings.Contains(result, "Applicant") {
		t.Errorf("Expected generic applicant default: %q", result)
	}
	if !strings.Contains(result, "the company") {
		t.Errorf("Expected generic company default: %q", result)
	}
}

func TestFallbackLetter(t *testing.T) {
	letter := FallbackLetter(types.CoverLetterInput{
		CompanyName: "Initech",
		Date:        "March 3, 2025",
		ResumeData: &types.ResumeData{
			PersonalDetails: types.PersonalDetails{
				Name:  "Jane Smith",
				Email: "jane.smith@example.com",
				Phone: "555-123-4567",
			},
		},
	})

	for _, want := range []string{
		"March 3, 2025",
		"Dear Hiring Manager,",
		"Initech",
		"Jane Smith",
		"jane.smith@example.com",
		"555-123-4567",
		"Sincerely,",
	} {
		if !strings.Contains(letter, want) {
			t.Errorf("Expected %q in fallback letter:\n%s", want, letter)
		}
	}
	if HasPlaceholders(letter) {
		t.Errorf("Fallback letter must not contain placeholders: %q", letter)
	}
}

func TestFallbackLetterWithoutResumeData(t *testing.T) {
	letter := FallbackLetter(types.CoverLetterInput{CompanyName: "Initech"})

	if !strings.Contains(letter, "Applicant") {
		t.Errorf("Expected generic applicant name: %q", letter)
	}
	if !strings.Contains(letter, "Initech") {
		t.Errorf("Expected company name: %q", letter)
	}
}
