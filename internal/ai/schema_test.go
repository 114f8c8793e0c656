package ai

import "testing"

func TestValidateParseSchema(t *testing.T) {
	tests := []struct {
		name        string
		document    string
		expectError bool
	}{
		{
			name: "complete document",
			document: `{
				"personalDetails": {"name": "Jane Smith", "email": "jane@example.com"},
				"experience": [{"company": "Initech", "position": "Engineer", "duration": "2019", "description": ["Built things"]}],
				"education": [{"institution": "State University", "degree": "BSc", "duration": "2015"}],
				"skills": ["Go"],
				"certifications": []
			}`,
		},
		{
			name:     "minimal document",
			document: `{"personalDetails": {"name": "Jane Smith"}}`,
		},
		{
			name:        "missing personal details",
			document:    `{"experience": [], "skills": []}`,
			expectError: true,
		},
		{
			name:        "missing name",
			document:    `{"personalDetails": {"email": "jane@example.com"}}`,
			expectError: true,
		},
		{
			name:        "experience entry missing company",
			document:    `{"personalDetails": {"name": "Jane"}, "experience": [{"position": "Engineer"}]}`,
			expectError: true,
		},
		{
			name:        "skills wrong type",
			document:    `{"personalDetails": {"name": "Jane"}, "skills": "Go, Kubernetes"}`,
			expectError: true,
		},
		{
			name:        "not json",
			document:    `plain text response`,
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateAgainstSchema(parseResumeSchema, tt.document)
			if tt.expectError && err == nil {
				t.Error("Expected validation error, got nil")
			}
			if !tt.expectError && err != nil {
				t.Errorf("Unexpected validation error: %v", err)
			}
		})
	}
}

func TestValidateAnalyzeSchema(t *testing.T) {
	tests := []struct {
		name        string
		document    string
		expectError bool
	}{
		{
			name:     "complete document",
			document: `{"score": 78, "keywordMatch": 72, "missingKeywords": ["Terraform"], "suggestions": ["Add IaC"], "strengths": ["Kubernetes"]}`,
		},
		{
			name:     "empty lists allowed",
			document: `{"score": 100, "keywordMatch": 100, "missingKeywords": [], "suggestions": [], "strengths": []}`,
		},
		{
			name:        "missing strengths",
			document:    `{"score": 78, "keywordMatch": 72, "missingKeywords": [], "suggestions": []}`,
			expectError: true,
		},
		{
			name:        "score above bounds",
			document:    `{"score": 120, "keywordMatch": 72, "missingKeywords": [], "suggestions": [], "strengths": []}`,
			expectError: true,
		},
		{
			name:        "negative keyword match",
			document:    `{"score": 50, "keywordMatch": -1, "missingKeywords": [], "suggestions": [], "strengths": []}`,
			expectError: true,
		},
		{
			name:        "score wrong type",
			document:    `{"score": "high", "keywordMatch": 72, "missingKeywords": [], "suggestions": [], "strengths": []}`,
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateAgainstSchema(analyzeResumeSchema, tt.document)
			if tt.expectError && err == nil {
				t.Error("Expected validation error, got nil")
			}
			if !tt.expectError && err != nil {
				t.Errorf("Unexpected validation error: %v", err)
			}
		})
	}
}

func TestStripCodeFences(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"no fences", `{"a": 1}`, `{"a": 1}`},
		{"json fence", "```json\n{\"a\": 1}\n```", `{"a": 1}`},
		{"bare fence", "```\n{\"a\": 1}\n```", `{"a": 1}`},
		{"surrounding whitespace", "  ```json\n{\"a\": 1}\n```  ", `{"a": 1}`},
		{"empty string", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := stripCodeFences(tt.input); got != tt.expected {
				t.Errorf("stripCodeFences(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}
