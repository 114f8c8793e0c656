package sanitize

import "testing"

func TestClean(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "plain text unchanged",
			input:    "John Doe\nSoftware Engineer",
			expected: "John Doe\nSoftware Engineer",
		},
		{
			name:     "bold span collapsed",
			input:    "**Senior Engineer** at Acme",
			expected: "Senior Engineer at Acme",
		},
		{
			name:     "bullet asterisks stripped per line",
			input:    "* Led migration\n* Cut costs",
			expected: "Led migration\nCut costs",
		},
		{
			name:     "indented bullets stripped",
			input:    "  * nested item\n\t* tabbed item",
			expected: "nested item\ntabbed item",
		},
		{
			name:     "stray asterisks removed",
			input:    "Go*, Python* and SQL",
			expected: "Go, Python and SQL",
		},
		{
			name:     "mixed markdown",
			input:    "**EXPERIENCE**\n* **Acme Corp** - Engineer\n* Shipped *things*",
			expected: "EXPERIENCE\nAcme Corp - Engineer\nShipped things",
		},
		{
			name:     "empty string",
			input:    "",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Clean(tt.input)
			if got != tt.expected {
				t.Errorf("Clean(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestCleanIdempotent(t *testing.T) {
	inputs := []string{
		"**bold** and * bullet\n* another **one**",
		"plain text",
		"***triple***",
		"* * *",
		"a ** b ** c * d",
	}

	for _, input := range inputs {
		once := Clean(input)
		twice := Clean(once)
		if once != twice {
			t.Errorf("Clean not idempotent for %q: first=%q second=%q", input, once, twice)
		}
	}
}

func TestCleanLeavesNoAsterisks(t *testing.T) {
	inputs := []string{
		"**a**",
		"* item",
		"mid*word",
		"****",
	}

	for _, input := range inputs {
		got := Clean(input)
		for _, r := range got {
			if r == '*' {
				t.Errorf("Clean(%q) = %q still contains an asterisk", input, got)
			}
		}
	}
}

func BenchmarkClean(b *testing.B) {
	input := "**EXPERIENCE**\n* **Acme Corp** - Senior Engineer\n* Led a team of 5\n* Shipped *many* features\n"
	for b.Loop() {
		Clean(input)
	}
}
