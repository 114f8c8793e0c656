package common

import (
	"testing"
)

func TestValidateOutputFormat(t *testing.T) {
	configured := []string{"json", "text", "markdown"}

	tests := []struct {
		name             string
		format           string
		supportedFormats []string
		expectError      bool
		expectedError    string
	}{
		{
			name:             "configured format",
			format:           "json",
			supportedFormats: configured,
		},
		{
			name:             "unknown format",
			format:           "xml",
			supportedFormats: configured,
			expectError:      true,
			expectedError:    `unsupported output format "xml" (supported: json, text, markdown)`,
		},
		{
			name:             "case sensitive",
			format:           "JSON",
			supportedFormats: configured,
			expectError:      true,
			expectedError:    `unsupported output format "JSON" (supported: json, text, markdown)`,
		},
		{
			name:             "empty format string",
			format:           "",
			supportedFormats: configured,
			expectError:      true,
			expectedError:    `unsupported output format "" (supported: json, text, markdown)`,
		},
		{
			name:             "no restriction configured",
			format:           "xml",
			supportedFormats: []string{},
		},
		{
			name:             "single configured format rejects others",
			format:           "text",
			supportedFormats: []string{"json"},
			expectError:      true,
			expectedError:    `unsupported output format "text" (supported: json)`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateOutputFormat(tt.format, tt.supportedFormats)

			if tt.expectError {
				if err == nil {
					t.Fatal("expected error but got none")
				}
				if tt.expectedError != "" && err.Error() != tt.expectedError {
					t.Errorf("expected error %q, got %q", tt.expectedError, err.Error())
				}
				return
			}
			if err != nil {
				t.Errorf("expected no error but got: %v", err)
			}
		})
	}
}

func TestGetSupportedFormats(t *testing.T) {
	configured := []string{"json", "text", "markdown"}

	result := GetSupportedFormats(configured)
	if len(result) != len(configured) {
		t.Fatalf("expected %d formats, got %d", len(configured), len(result))
	}
	for i, want := range configured {
		if result[i] != want {
			t.Errorf("expected format[%d] = %q, got %q", i, want, result[i])
		}
	}

	if got := GetSupportedFormats(nil); len(got) != 0 {
		t.Errorf("expected empty result for nil input, got %v", got)
	}
}
