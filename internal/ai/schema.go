package ai

import (
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// parseResumeSchema validates the JSON the model returns for parse requests.
// The Gemini response schema constrains generation, but validation here
// guards the gateway boundary against any provider.
const parseResumeSchema = `{
	"type": "object",
	"required": ["personalDetails"],
	"properties": {
		"personalDetails": {
			"type": "object",
			"required": ["name"],
			"properties": {
				"name": {"type": "string"},
				"email": {"type": "string"},
				"phone": {"type": "string"},
				"location": {"type": "string"},
				"linkedin": {"type": "string"},
				"portfolio": {"type": "string"},
				"github": {"type": "string"}
			}
		},
		"experience": {
			"type": "array",
			"items": {
				"type": "object",
				"required": ["company", "position"],
				"properties": {
					"company": {"type": "string"},
					"position": {"type": "string"},
					"duration": {"type": "string"},
					"description": {"type": "array", "items": {"type": "string"}}
				}
			}
		},
		"education": {
			"type": "array",
			"items": {
				"type": "object",
				"required": ["institution"],
				"properties": {
					"institution": {"type": "string"},
					"degree": {"type": "string"},
					"duration": {"type": "string"}
				}
			}
		},
		"skills": {"type": "array", "items": {"type": "string"}},
		"certifications": {"type": "array", "items": {"type": "string"}}
	}
}`

// analyzeResumeSchema validates the JSON the model returns for analyze requests
const analyzeResumeSchema = `{
	"type": "object",
	"required": ["score", "keywordMatch", "missingKeywords", "suggestions", "strengths"],
	"properties": {
		"score": {"type": "integer", "minimum": 0, "maximum": 100},
		"keywordMatch": {"type": "integer", "minimum": 0, "maximum": 100},
		"missingKeywords": {"type": "array", "items": {"type": "string"}},
		"suggestions": {"type": "array", "items": {"type": "string"}},
		"strengths": {"type": "array", "items": {"type": "string"}}
	}
}`

// validateAgainstSchema checks a raw JSON document against a JSON Schema and
// returns a descriptive error listing every violation.
func validateAgainstSchema(schema, document string) error {
	result, err := gojsonschema.Validate(
		gojsonschema.NewStringLoader(schema),
		gojsonschema.NewStringLoader(document),
	)
	if err != nil {
		return fmt.Errorf("schema validation failed: %w", err)
	}

	if !result.Valid() {
		var violations []string
		for _, desc := range result.Errors() {
			violations = append(violations, desc.String())
		}
		return fmt.Errorf("response does not match expected schema: %s", strings.Join(violations, "; "))
	}

	return nil
}

// stripCodeFences removes markdown code fences that models sometimes wrap
// around JSON responses despite instructions not to.
func stripCodeFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}

	s = strings.TrimPrefix(s, "```")
	// Drop an optional language tag on the opening fence line
	if idx := strings.IndexByte(s, '\n'); idx >= 0 {
		firstLine := strings.TrimSpace(s[:idx])
		if firstLine == "json" || firstLine == "" {
			s = s[idx+1:]
		}
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
