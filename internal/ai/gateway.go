package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"careerforge/internal/config"
	"careerforge/internal/errors"
	"careerforge/internal/resume"
	"careerforge/internal/sanitize"
	"careerforge/internal/types"
)

// Service handles a single AI operation with its own provider, timeout,
// retry, and circuit breaker configuration
type Service struct {
	Provider Provider // Exported for access from server package
	config   *config.OperationAIConfig
	logger   *errors.Logger
}

// NewService creates a new AI service instance with configuration for a specific operation
func NewService(cfg *config.OperationAIConfig, operationType string, logger *errors.Logger) (*Service, error) {
	var provider Provider
	var err error

	// Debug logging for service initialization
	logger.Debug("Initializing AI service",
		"provider", cfg.Provider,
		"operation_type", operationType,
		"model", cfg.Model,
		"temperature", *cfg.Temperature,
		"timeout", *cfg.Timeout,
		"max_retries", *cfg.MaxRetries,
		"use_system_prompts", *cfg.UseSystemPrompts)

	switch cfg.Provider {
	case "gemini":
		provider, err = NewGeminiProvider(cfg, operationType, logger)
	default:
		return nil, errors.NewConfigError(errors.ErrCodeInvalidConfig,
			fmt.Sprintf("Unsupported AI provider: %s", cfg.Provider), nil)
	}

	if err != nil {
		return nil, errors.NewAIError(errors.ErrCodeAIServiceFailed,
			"Failed to create AI provider", err)
	}

	return &Service{
		Provider: provider,
		config:   cfg,
		logger:   logger,
	}, nil
}

// GetModelInfo returns information about the AI model for health checks
func (s *Service) GetModelInfo(ctx context.Context) *ModelInfo {
	return s.Provider.GetModelInfo(ctx)
}

// operationContext applies the operation's configured timeout
func (s *Service) operationContext(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, *s.config.Timeout)
}

// Gateway exposes the five resume operations with per-operation providers,
// schema validation at the boundary, and same-shape fallbacks.
type Gateway struct {
	extract     *Service
	parse       *Service
	analyze     *Service
	optimize    *Service
	coverLetter *Service
	logger      *errors.Logger

	// fallbackHook, when set, is invoked with the operation name every time
	// a fallback value is served instead of a model result
	fallbackHook func(operation string)
}

// NewGateway creates services for every operation from the loaded configuration
func NewGateway(cfg *config.Config, logger *errors.Logger) (*Gateway, error) {
	gw := &Gateway{logger: logger}

	for _, op := range []struct {
		name   string
		opCfg  config.OperationAIConfig
		target **Service
	}{
		{"extract", cfg.GetExtractConfig(), &gw.extract},
		{"parse", cfg.GetParseConfig(), &gw.parse},
		{"analyze", cfg.GetAnalyzeConfig(), &gw.analyze},
		{"optimize", cfg.GetOptimizeConfig(), &gw.optimize},
		{"coverLetter", cfg.GetCoverLetterConfig(), &gw.coverLetter},
	} {
		opCfg := op.opCfg
		svc, err := NewService(&opCfg, op.name, logger)
		if err != nil {
			return nil, fmt.Errorf("failed to create %s service: %w", op.name, err)
		}
		*op.target = svc
	}

	return gw, nil
}

// SetFallbackHook registers a callback invoked whenever a fallback is served
func (g *Gateway) SetFallbackHook(hook func(operation string)) {
	g.fallbackHook = hook
}

func (g *Gateway) recordFallback(operation string) {
	if g.fallbackHook != nil {
		g.fallbackHook(operation)
	}
}

// ExtractText pulls plain text out of an uploaded resume document. PDFs with
// a text layer never hit the model; everything else goes to Gemini as an
// inline blob. There is no fallback: without text, no later stage can run.
func (g *Gateway) ExtractText(ctx context.Context, input types.ExtractTextInput) (string, *TokenUsage, error) {
	if len(input.Content) == 0 {
		return "", nil, errors.NewValidationError(errors.ErrCodeInvalidRequest,
			"File content is required for text extraction", nil)
	}
	if input.MimeType == "" {
		return "", nil, errors.NewValidationError(errors.ErrCodeInvalidRequest,
			"File type is required for text extraction", nil)
	}

	ctx, cancel := g.extract.operationContext(ctx)
	defer cancel()

	if input.MimeType == "application/pdf" {
		if text, err := pdfPlainText(input.Content); err == nil && text != "" {
			g.logger.Debug("Extracted text from PDF layer",
				"file_name", input.FileName,
				"text_length", len(text))
			return sanitize.Clean(text), nil, nil
		} else if err != nil {
			g.logger.Warn("PDF text layer extraction failed, falling back to AI extraction",
				"file_name", input.FileName,
				"error", err.Error())
		}
	}

	raw, usage, err := g.extract.Provider.ExtractText(ctx, input)
	if err != nil {
		return "", usage, errors.NewAIError(errors.ErrCodeAIServiceFailed,
			"Failed to extract text from document", err)
	}

	text := sanitize.Clean(raw)
	if strings.TrimSpace(text) == "" {
		return "", usage, errors.NewAIError(errors.ErrCodeEmptyExtraction,
			"No text could be extracted from the document", nil)
	}

	return text, usage, nil
}

// ParseResume converts raw resume text into structured data. Any model or
// schema failure degrades to a heuristic fallback built from the text itself.
func (g *Gateway) ParseResume(ctx context.Context, resumeText string) (types.ResumeData, *TokenUsage, error) {
	if strings.TrimSpace(resumeText) == "" {
		return types.ResumeData{}, nil, errors.NewValidationError(errors.ErrCodeInvalidRequest,
			"Resume text is required for parsing", nil)
	}

	ctx, cancel := g.parse.operationContext(ctx)
	defer cancel()

	raw, usage, err := g.parse.Provider.ParseResume(ctx, resumeText)
	if err != nil {
		g.logger.LogError(err, "Resume parsing failed, serving fallback data")
		g.recordFallback("parse")
		return resume.FallbackData(resumeText), usage, nil
	}

	doc := stripCodeFences(raw)
	if err := validateAgainstSchema(parseResumeSchema, doc); err != nil {
		g.logger.LogError(err, "Parse response failed schema validation, serving fallback data")
		g.recordFallback("parse")
		return resume.FallbackData(resumeText), usage, nil
	}

	var data types.ResumeData
	if err := json.Unmarshal([]byte(doc), &data); err != nil {
		g.logger.LogError(err, "Failed to decode parse response, serving fallback data")
		g.recordFallback("parse")
		return resume.FallbackData(resumeText), usage, nil
	}

	// Field-level fallbacks: the model sometimes misses contact details the
	// regex heuristics can still find
	if data.PersonalDetails.Name == "" {
		data.PersonalDetails.Name = resume.ExtractName(resumeText)
	}
	if data.PersonalDetails.Email == "" {
		data.PersonalDetails.Email = resume.ExtractEmail(resumeText)
	}
	if data.PersonalDetails.Phone == "" {
		data.PersonalDetails.Phone = resume.ExtractPhone(resumeText)
	}
	data.RawText = resumeText
	data.EnsureLists()

	return data, usage, nil
}

// AnalyzeResume scores a resume against a job description. Failures degrade
// to a fixed analysis that tells the user to retry.
func (g *Gateway) AnalyzeResume(ctx context.Context, resumeText, jobDescription string) (types.ResumeAnalysis, *TokenUsage, error) {
	if strings.TrimSpace(resumeText) == "" {
		return types.ResumeAnalysis{}, nil, errors.NewValidationError(errors.ErrCodeInvalidRequest,
			"Resume text is required for analysis", nil)
	}
	if strings.TrimSpace(jobDescription) == "" {
		return types.ResumeAnalysis{}, nil, errors.NewValidationError(errors.ErrCodeInvalidRequest,
			"Job description is required for analysis", nil)
	}

	ctx, cancel := g.analyze.operationContext(ctx)
	defer cancel()

	raw, usage, err := g.analyze.Provider.AnalyzeResume(ctx, sanitize.Clean(resumeText), jobDescription)
	if err != nil {
		g.logger.LogError(err, "Resume analysis failed, serving fallback analysis")
		g.recordFallback("analyze")
		return FallbackAnalysis(), usage, nil
	}

	doc := stripCodeFences(raw)
	if err := validateAgainstSchema(analyzeResumeSchema, doc); err != nil {
		g.logger.LogError(err, "Analysis response failed schema validation, serving fallback analysis")
		g.recordFallback("analyze")
		return FallbackAnalysis(), usage, nil
	}

	var analysis types.ResumeAnalysis
	if err := json.Unmarshal([]byte(doc), &analysis); err != nil {
		g.logger.LogError(err, "Failed to decode analysis response, serving fallback analysis")
		g.recordFallback("analyze")
		return FallbackAnalysis(), usage, nil
	}

	return analysis, usage, nil
}

// OptimizeResume rewrites a resume against a job description. Failures
// degrade to the sanitized original text, marked so callers can tell a
// skipped optimization from a rewrite.
func (g *Gateway) OptimizeResume(ctx context.Context, input types.OptimizeResumeInput) (types.OptimizedResume, *TokenUsage, error) {
	if strings.TrimSpace(input.ResumeText) == "" {
		return types.OptimizedResume{}, nil, errors.NewValidationError(errors.ErrCodeInvalidRequest,
			"Resume text is required for optimization", nil)
	}
	if strings.TrimSpace(input.JobDescription) == "" {
		return types.OptimizedResume{}, nil, errors.NewValidationError(errors.ErrCodeInvalidRequest,
			"Job description is required for optimization", nil)
	}

	ctx, cancel := g.optimize.operationContext(ctx)
	defer cancel()

	resumeText := sanitize.Clean(input.ResumeText)
	if input.ResumeData != nil {
		// The structured data renders a cleaner document than raw extracted text
		resumeText = resume.Document(*input.ResumeData)
	}

	raw, usage, err := g.optimize.Provider.OptimizeResume(ctx, resumeText, input.JobDescription, analysisSummary(input.Analysis))
	if err != nil {
		g.logger.LogError(err, "Resume optimization failed, serving original text")
		g.recordFallback("optimize")
		return types.OptimizedResume{Text: sanitize.Clean(input.ResumeText), Degraded: true}, usage, nil
	}

	text := sanitize.Clean(raw)
	if strings.TrimSpace(text) == "" {
		g.logger.Warn("Optimization returned empty text, serving original text")
		g.recordFallback("optimize")
		return types.OptimizedResume{Text: sanitize.Clean(input.ResumeText), Degraded: true}, usage, nil
	}

	return types.OptimizedResume{Text: text}, usage, nil
}

// GenerateCoverLetter writes a cover letter for the optimized resume.
// Leftover bracketed placeholders are substituted deterministically; outright
// failure degrades to a minimal templated letter.
func (g *Gateway) GenerateCoverLetter(ctx context.Context, input types.CoverLetterInput) (string, *TokenUsage, error) {
	if strings.TrimSpace(input.OptimizedResume) == "" {
		return "", nil, errors.NewValidationError(errors.ErrCodeInvalidRequest,
			"Optimized resume is required for cover letter generation", nil)
	}
	if strings.TrimSpace(input.JobDescription) == "" {
		return "", nil, errors.NewValidationError(errors.ErrCodeInvalidRequest,
			"Job description is required for cover letter generation", nil)
	}
	if strings.TrimSpace(input.CompanyName) == "" {
		return "", nil, errors.NewValidationError(errors.ErrCodeInvalidRequest,
			"Company name is required for cover letter generation", nil)
	}

	ctx, cancel := g.coverLetter.operationContext(ctx)
	defer cancel()

	candidateBlock := ""
	if input.ResumeData != nil {
		candidateBlock = resume.PromptBlocks(*input.ResumeData)
	}

	raw, usage, err := g.coverLetter.Provider.GenerateCoverLetter(ctx,
		candidateBlock, sanitize.Clean(input.OptimizedResume),
		input.JobDescription, input.CompanyName, input.Date)
	if err != nil {
		g.logger.LogError(err, "Cover letter generation failed, serving templated letter")
		g.recordFallback("coverLetter")
		return FallbackLetter(input), usage, nil
	}

	letter := sanitize.Clean(raw)
	if strings.TrimSpace(letter) == "" {
		g.logger.Warn("Cover letter generation returned empty text, serving templated letter")
		g.recordFallback("coverLetter")
		return FallbackLetter(input), usage, nil
	}

	if HasPlaceholders(letter) {
		g.logger.Debug("Cover letter contained placeholders, substituting")
		letter = ReplacePlaceholders(letter, input.ResumeData, input.CompanyName, input.Date)
	}

	return letter, usage, nil
}

// analysisSummary renders a ResumeAnalysis as a prompt block
func analysisSummary(a types.ResumeAnalysis) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Match score: %d/100\n", a.Score)
	fmt.Fprintf(&b, "Keyword match: %d/100\n", a.KeywordMatch)
	if len(a.MissingKeywords) > 0 {
		fmt.Fprintf(&b, "Missing keywords: %s\n", strings.Join(a.MissingKeywords, ", "))
	}
	for _, s := range a.Suggestions {
		fmt.Fprintf(&b, "Suggestion: %s\n", s)
	}
	for _, s := range a.Strengths {
		fmt.Fprintf(&b, "Strength: %s\n", s)
	}
	return strings.TrimRight(b.String(), "\n")
}

// GetModelInfo reports model availability per operation for health checks
func (g *Gateway) GetModelInfo(ctx context.Context) map[string]*ModelInfo {
	return map[string]*ModelInfo{
		"extract":     g.extract.GetModelInfo(ctx),
		"parse":       g.parse.GetModelInfo(ctx),
		"analyze":     g.analyze.GetModelInfo(ctx),
		"optimize":    g.optimize.GetModelInfo(ctx),
		"coverLetter": g.coverLetter.GetModelInfo(ctx),
	}
}

type circuitBreakerStatsProvider interface {
	GetCircuitBreakerStats() map[string]any
}

// GetCircuitBreakerStats aggregates circuit breaker statistics per operation
func (g *Gateway) GetCircuitBreakerStats() map[string]any {
	stats := make(map[string]any)
	for name, svc := range g.services() {
		if sp, ok := svc.Provider.(circuitBreakerStatsProvider); ok {
			stats[name] = sp.GetCircuitBreakerStats()
		}
	}
	return stats
}

// Close releases all provider resources
func (g *Gateway) Close() error {
	var firstErr error
	for name, svc := range g.services() {
		if err := svc.Provider.Close(); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("failed to close %s provider: %w", name, err)
		}
	}
	return firstErr
}

func (g *Gateway) services() map[string]*Service {
	return map[string]*Service{
		"extract":     g.extract,
		"parse":       g.parse,
		"analyze":     g.analyze,
		"optimize":    g.optimize,
		"coverLetter": g.coverLetter,
	}
}
