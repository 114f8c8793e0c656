package formatters

import (
	"encoding/json"
	"fmt"
	"strings"

	"careerforge/internal/types"
)

// Formatter interface for different output formats
type Formatter interface {
	Format(data any) (string, error)
	SupportedType() string
}

// FormatterRegistry manages all available formatters
type FormatterRegistry struct {
	formatters map[string]map[string]Formatter // format -> type -> formatter
}

// NewFormatterRegistry creates a new formatter registry with default formatters
func NewFormatterRegistry() *FormatterRegistry {
	registry := &FormatterRegistry{
		formatters: make(map[string]map[string]Formatter),
	}

	// Register default formatters
	registry.RegisterFormatter("json", "any", &JSONFormatter{})
	registry.RegisterFormatter("text", "ResumeAnalysis", &AnalysisTextFormatter{})
	registry.RegisterFormatter("markdown", "ResumeAnalysis", &AnalysisMarkdownFormatter{})
	registry.RegisterFormatter("text", "OptimizedResume", &OptimizedTextFormatter{})
	registry.RegisterFormatter("markdown", "OptimizedResume", &OptimizedMarkdownFormatter{})
	registry.RegisterFormatter("text", "ResumeData", &ResumeDataTextFormatter{})
	registry.RegisterFormatter("markdown", "ResumeData", &ResumeDataMarkdownFormatter{})
	registry.RegisterFormatter("text", "Text", &PlainTextFormatter{})
	registry.RegisterFormatter("markdown", "Text", &PlainTextFormatter{})

	return registry
}

// RegisterFormatter registers a new formatter for a specific format and data type
func (fr *FormatterRegistry) RegisterFormatter(format, dataType string, formatter Formatter) {
	if fr.formatters[format] == nil {
		fr.formatters[format] = make(map[string]Formatter)
	}
	fr.formatters[format][dataType] = formatter
}

// Format formats data using the appropriate formatter
func (fr *FormatterRegistry) Format(data any, format string) (string, error) {
	dataType := getDataType(data)

	// Try specific formatter first
	if formatters, exists := fr.formatters[format]; exists {
		if formatter, exists := formatters[dataType]; exists {
			return formatter.Format(data)
		}
		// Fall back to generic formatter
		if formatter, exists := formatters["any"]; exists {
			return formatter.Format(data)
		}
	}

	return "", fmt.Errorf("no formatter found for format '%s' and type '%s'", format, dataType)
}

// GetSupportedFormats returns all supported formats
func (fr *FormatterRegistry) GetSupportedFormats() []string {
	formats := make([]string, 0, len(fr.formatters))
	for format := range fr.formatters {
		formats = append(formats, format)
	}
	return formats
}

func getDataType(data any) string {
	switch data.(type) {
	case types.ResumeAnalysis:
		return "ResumeAnalysis"
	case types.OptimizedResume:
		return "OptimizedResume"
	case types.ResumeData:
		return "ResumeData"
	case string:
		return "Text"
	default:
		return "any"
	}
}

// JSONFormatter handles JSON formatting for any data type
type JSONFormatter struct{}

func (jf *JSONFormatter) Format(data any) (string, error) {
	jsonData, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return "", err
	}
	return string(jsonData), nil
}

func (jf *JSONFormatter) SupportedType() string {
	return "any"
}

// PlainTextFormatter passes string results through unchanged. Used for
// optimized resume text and cover letters when no structure is needed.
type PlainTextFormatter struct{}

func (ptf *PlainTextFormatter) Format(data any) (string, error) {
	text, ok := data.(string)
	if !ok {
		return "", fmt.Errorf("expected string, got %T", data)
	}
	if !strings.HasSuffix(text, "\n") {
		text += "\n"
	}
	return text, nil
}

func (ptf *PlainTextFormatter) SupportedType() string {
	return "Text"
}

// AnalysisTextFormatter handles text formatting for analysis results
type AnalysisTextFormatter struct{}

func (atf *AnalysisTextFormatter) Format(data any) (string, error) {
	result, ok := data.(types.ResumeAnalysis)
	if !ok {
		return "", fmt.Errorf("expected ResumeAnalysis, got %T", data)
	}

	var output strings.Builder

	output.WriteString("=== RESUME ANALYSIS ===\n\n")
	output.WriteString(fmt.Sprintf("ATS Score: %d/100\n", result.Score))
	output.WriteString(fmt.Sprintf("Keyword Match: %d%%\n\n", result.KeywordMatch))

	if len(result.MissingKeywords) > 0 {
		output.WriteString("Missing Keywords:\n")
		for _, keyword := range result.MissingKeywords {
			output.WriteString(fmt.Sprintf("- %s\n", keyword))
		}
		output.WriteString("\n")
	}

	if len(result.Strengths) > 0 {
		output.WriteString("Strengths:\n")
		for _, strength := range result.Strengths {
			output.WriteString(fmt.Sprintf("- %s\n", strength))
		}
		output.WriteString("\n")
	}

	if len(result.Suggestions) > 0 {
		output.WriteString("Suggestions:\n")
		for i, suggestion := range result.Suggestions {
			output.WriteString(fmt.Sprintf("%d. %s\n", i+1, suggestion))
		}
	}

	return output.String(), nil
}

func (atf *AnalysisTextFormatter) SupportedType() string {
	return "ResumeAnalysis"
}

// AnalysisMarkdownFormatter handles markdown formatting for analysis results
type AnalysisMarkdownFormatter struct{}

func (amf *AnalysisMarkdownFormatter) Format(data any) (string, error) {
	result, ok := data.(types.ResumeAnalysis)
	if !ok {
		return "", fmt.Errorf("expected ResumeAnalysis, got %T", data)
	}

	var output strings.Builder

	output.WriteString("# Resume Analysis\n\n")
	output.WriteString(fmt.Sprintf("**ATS Score:** %d/100\n\n", result.Score))
	output.WriteString(fmt.Sprintf("**Keyword Match:** %d%%\n\n", result.KeywordMatch))

	if len(result.MissingKeywords) > 0 {
		output.WriteString("## Missing Keywords\n\n")
		for _, keyword := range result.MissingKeywords {
			output.WriteString(fmt.Sprintf("- %s\n", keyword))
		}
		output.WriteString("\n")
	}

	if len(result.Strengths) > 0 {
		output.WriteString("## Strengths\n\n")
		for _, strength := range result.Strengths {
			output.WriteString(fmt.Sprintf("- %s\n", strength))
		}
		output.WriteString("\n")
	}

	if len(result.Suggestions) > 0 {
		output.WriteString("## Suggestions\n\n")
		for i, suggestion := range result.Suggestions {
			output.WriteString(fmt.Sprintf("%d. %s\n", i+1, suggestion))
		}
	}

	return output.String(), nil
}

func (amf *AnalysisMarkdownFormatter) SupportedType() string {
	return "ResumeAnalysis"
}

// OptimizedTextFormatter handles text formatting for optimization results
type OptimizedTextFormatter struct{}

func (otf *OptimizedTextFormatter) Format(data any) (string, error) {
	result, ok := data.(types.OptimizedResume)
	if !ok {
		return "", fmt.Errorf("expected OptimizedResume, got %T", data)
	}

	var output strings.Builder

	output.WriteString("=== OPTIMIZED RESUME ===\n\n")
	output.WriteString(result.Text)
	output.WriteString("\n")

	if result.Degraded {
		output.WriteString("\nNOTE: Optimization was unavailable; the original resume is shown.\n")
	}

	return output.String(), nil
}

func (otf *OptimizedTextFormatter) SupportedType() string {
	return "OptimizedResume"
}

// OptimizedMarkdownFormatter handles markdown formatting for optimization results
type OptimizedMarkdownFormatter struct{}

func (omf *OptimizedMarkdownFormatter) Format(data any) (string, error) {
	result, ok := data.(types.OptimizedResume)
	if !ok {
		return "", fmt.Errorf("expected OptimizedResume, got %T", data)
	}

	var output strings.Builder

	output.WriteString("# Optimized Resume\n\n")
	output.WriteString(result.Text)
	output.WriteString("\n")

	if result.Degraded {
		output.WriteString("\n> NOTE: Optimization was unavailable; the original resume is shown.\n")
	}

	return output.String(), nil
}

func (omf *OptimizedMarkdownFormatter) SupportedType() string {
	return "OptimizedResume"
}

// ResumeDataTextFormatter handles text formatting for parsed resume data
type ResumeDataTextFormatter struct{}

func (rtf *ResumeDataTextFormatter) Format(data any) (string, error) {
	result, ok := data.(types.ResumeData)
	if !ok {
		return "", fmt.Errorf("expected ResumeData, got %T", data)
	}

	var output strings.Builder

	output.WriteString("=== PARSED RESUME ===\n\n")
	writeContactText(&output, result.PersonalDetails)

	if len(result.Experience) > 0 {
		output.WriteString("Experience:\n")
		for _, exp := range result.Experience {
			output.WriteString(fmt.Sprintf("- %s at %s (%s)\n", exp.Position, exp.Company, exp.Duration))
			for _, line := range exp.Description {
				output.WriteString(fmt.Sprintf("    * %s\n", line))
			}
		}
		output.WriteString("\n")
	}

	if len(result.Education) > 0 {
		output.WriteString("Education:\n")
		for _, edu := range result.Education {
			output.WriteString(fmt.Sprintf("- %s, %s (%s)\n", edu.Degree, edu.Institution, edu.Duration))
		}
		output.WriteString("\n")
	}

	if len(result.Skills) > 0 {
		output.WriteString("Skills: ")
		output.WriteString(strings.Join(result.Skills, ", "))
		output.WriteString("\n")
	}

	if len(result.Certifications) > 0 {
		output.WriteString("Certifications: ")
		output.WriteString(strings.Join(result.Certifications, ", "))
		output.WriteString("\n")
	}

	return output.String(), nil
}

func writeContactText(output *strings.Builder, details types.PersonalDetails) {
	output.WriteString(fmt.Sprintf("Name: %s\n", details.Name))
	if details.Email != "" {
		output.WriteString(fmt.Sprintf("Email: %s\n", details.Email))
	}
	if details.Phone != "" {
		output.WriteString(fmt.Sprintf("Phone: %s\n", details.Phone))
	}
	if details.Location != "" {
		output.WriteString(fmt.Sprintf("Location: %s\n", details.Location))
	}
	if details.LinkedIn != "" {
		output.WriteString(fmt.Sprintf("LinkedIn: %s\n", details.LinkedIn))
	}
	if details.GitHub != "" {
		output.WriteString(fmt.Sprintf("GitHub: %s\n", details.GitHub))
	}
	if details.Portfolio != "" {
		output.WriteString(fmt.Sprintf("Portfolio: %s\n", details.Portfolio))
	}
	output.WriteString("\n")
}

func (rtf *ResumeDataTextFormatter) SupportedType() string {
	return "ResumeData"
}

// ResumeDataMarkdownFormatter handles markdown formatting for parsed resume data
type ResumeDataMarkdownFormatter struct{}

func (rmf *ResumeDataMarkdownFormatter) Format(data any) (string, error) {
	result, ok := data.(types.ResumeData)
	if !ok {
		return "", fmt.Errorf("expected ResumeData, got %T", data)
	}

	var output strings.Builder

	output.WriteString(fmt.Sprintf("# %s\n\n", result.PersonalDetails.Name))

	contact := make([]string, 0, 4)
	if result.PersonalDetails.Email != "" {
		contact = append(contact, result.PersonalDetails.Email)
	}
	if result.PersonalDetails.Phone != "" {
		contact = append(contact, result.PersonalDetails.Phone)
	}
	if result.PersonalDetails.Location != "" {
		contact = append(contact, result.PersonalDetails.Location)
	}
	if result.PersonalDetails.LinkedIn != "" {
		contact = append(contact, result.PersonalDetails.LinkedIn)
	}
	if len(contact) > 0 {
		output.WriteString(strings.Join(contact, " | "))
		output.WriteString("\n\n")
	}

	if len(result.Experience) > 0 {
		output.WriteString("## Experience\n\n")
		for _, exp := range result.Experience {
			output.WriteString(fmt.Sprintf("### %s, %s\n\n", exp.Position, exp.Company))
			output.WriteString(fmt.Sprintf("*%s*\n\n", exp.Duration))
			for _, line := range exp.Description {
				output.WriteString(fmt.Sprintf("- %s\n", line))
			}
			output.WriteString("\n")
		}
	}

	if len(result.Education) > 0 {
		output.WriteString("## Education\n\n")
		for _, edu := range result.Education {
			output.WriteString(fmt.Sprintf("- **%s**, %s (%s)\n", edu.Degree, edu.Institution, edu.Duration))
		}
		output.WriteString("\n")
	}

	if len(result.Skills) > 0 {
		output.WriteString("## Skills\n\n")
		output.WriteString(strings.Join(result.Skills, ", "))
		output.WriteString("\n")
	}

	if len(result.Certifications) > 0 {
		output.WriteString("\n## Certifications\n\n")
		for _, cert := range result.Certifications {
			output.WriteString(fmt.Sprintf("- %s\n", cert))
		}
	}

	return output.String(), nil
}

func (rmf *ResumeDataMarkdownFormatter) SupportedType() string {
	return "ResumeData"
}

// Global formatter registry
var GlobalRegistry = NewFormatterRegistry()
