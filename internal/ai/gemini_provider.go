package ai

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math"
	"math/big"
	"net"
	"net/http"
	"time"

	"careerforge/internal/config"
	cfErrors "careerforge/internal/errors"
	"careerforge/internal/types"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"google.golang.org/api/googleapi"
	"google.golang.org/genai"
)

// GeminiProvider implements Provider for Google Gemini
type GeminiProvider struct {
	client         *genai.Client
	httpClient     *http.Client
	config         *config.OperationAIConfig
	operationType  string
	circuitBreaker *AICircuitBreaker
	modelBreaker   *ModelCircuitBreaker
	logger         *cfErrors.Logger
}

// Ensure GeminiProvider implements Provider
var _ Provider = (*GeminiProvider)(nil)

// NewGeminiProvider creates a new Gemini provider instance for a specific operation
func NewGeminiProvider(cfg *config.OperationAIConfig, operationType string, logger *cfErrors.Logger) (*GeminiProvider, error) {
	ctx := context.Background()
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: cfg.APIKey,
	})
	if err != nil {
		return nil, cfErrors.NewAIError(cfErrors.ErrCodeAIServiceFailed,
			"Failed to create Gemini client", err)
	}

	// Initialize circuit breaker with operation-specific configuration
	circuitBreaker := NewAICircuitBreaker(operationType, cfg, logger)
	modelBreaker := NewModelCircuitBreaker(operationType, cfg, logger)

	return &GeminiProvider{
		client: client,
		httpClient: &http.Client{
			Timeout: *cfg.Timeout,
		},
		config:         cfg,
		operationType:  operationType,
		circuitBreaker: circuitBreaker,
		modelBreaker:   modelBreaker,
		logger:         logger,
	}, nil
}

// ModelInfo represents information about the AI model
type ModelInfo struct {
	Name        string `json:"name"`
	DisplayName string `json:"displayName,omitempty"`
	Version     string `json:"version,omitempty"`
	Available   bool   `json:"available"`
	Error       string `json:"error,omitempty"`
}

// GetModelInfo checks the readiness and availability of the configured model
func (g *GeminiProvider) GetModelInfo(ctx context.Context) *ModelInfo {
	modelInfo := &ModelInfo{
		Name:      g.config.Model,
		Available: false,
	}

	checkCtx, cancel := context.WithTimeout(ctx, modelCheckTimeout)
	defer cancel()

	// Get model information from Gemini API with circuit breaker
	model, err := g.modelBreaker.ExecuteModel(func() (*genai.Model, error) {
		return g.client.Models.Get(checkCtx, g.config.Model, &genai.GetModelConfig{})
	})
	if err != nil {
		modelInfo.Error = fmt.Sprintf("Failed to get model info: %v", err)

		g.logger.Warn("Model availability check failed",
			"model", g.config.Model,
			"provider", g.config.Provider,
			"error", err.Error())
		return modelInfo
	}

	modelInfo.Available = true
	if model.DisplayName != "" {
		modelInfo.DisplayName = model.DisplayName
	}
	if model.Version != "" {
		modelInfo.Version = model.Version
	}

	g.logger.Debug("Model availability check successful",
		"model", g.config.Model,
		"provider", g.config.Provider,
		"display_name", modelInfo.DisplayName,
		"version", modelInfo.Version)

	return modelInfo
}

const modelCheckTimeout = 10 * time.Second

// executeWithRetry executes an AI operation with retry logic and exponential backoff
func (g *GeminiProvider) executeWithRetry(ctx context.Context, operation string, fn func() (*genai.GenerateContentResponse, error)) (*genai.GenerateContentResponse, error) {
	var lastErr error

	for attempt := 0; attempt <= *g.config.MaxRetries; attempt++ {
		if attempt > 0 {
			g.logger.Warn("Retrying AI operation",
				"operation", operation,
				"attempt", attempt,
				"max_retries", *g.config.MaxRetries,
				"error", lastErr.Error())

			// Exponential backoff with jitter to prevent thundering herd
			baseDelay := time.Duration(math.Pow(2, float64(attempt-1))) * time.Second
			// Use crypto/rand for secure random jitter
			jitterMax := big.NewInt(int64(float64(baseDelay) * 0.1))
			jitterBig, _ := rand.Int(rand.Reader, jitterMax)
			jitter := time.Duration(jitterBig.Int64())
			// Cap maximum backoff at 30 seconds
			backoff := min(baseDelay+jitter, 30*time.Second)

			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}

		result, err := fn()
		if err == nil {
			if attempt > 0 {
				g.logger.Info("AI operation succeeded after retry",
					"operation", operation,
					"successful_attempt", attempt+1,
					"total_attempts", attempt+1)
			}
			return result, nil
		}

		lastErr = err

		// Don't retry on certain errors (auth, invalid input, etc.)
		if !g.isRetryableError(err) {
			g.logger.Debug("Error is not retryable, stopping retry attempts",
				"operation", operation,
				"error", err.Error())
			break
		}
	}

	g.logger.LogError(lastErr, "AI operation failed after all retry attempts",
		"operation", operation,
		"total_attempts", *g.config.MaxRetries+1)

	return nil, fmt.Errorf("operation '%s' failed after %d retries: %w", operation, *g.config.MaxRetries, lastErr)
}

// isRetryableError determines if an error should trigger a retry
func (g *GeminiProvider) isRetryableError(err error) bool {
	if err == nil {
		return false
	}

	// Check for network errors (timeouts, connection issues)
	var netErr net.Error
	if errors.As(err, &netErr) {
		if netErr.Timeout() {
			return true // Retry on timeouts
		}
		// Consider other network errors retryable (e.g., connection refused)
		return true
	}

	// Check for Google API errors (HTTP status codes)
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		switch apiErr.Code {
		case http.StatusTooManyRequests,
			http.StatusInternalServerError,
			http.StatusBadGateway,
			http.StatusServiceUnavailable,
			http.StatusGatewayTimeout:
			return true
		}
	}

	return false
}

// generate runs a content generation request with common tracing, circuit
// breaker, and retry logic, returning the raw response text.
func (g *GeminiProvider) generate(
	ctx context.Context,
	operationName string,
	contents []*genai.Content,
	systemPrompt string,
	genaiConfig *genai.GenerateContentConfig,
	spanAttributes ...attribute.KeyValue,
) (string, *TokenUsage, error) {
	tracer := otel.Tracer("careerforge.ai.gemini")
	ctx, span := tracer.Start(ctx, "gemini."+operationName)
	defer span.End()

	span.SetAttributes(
		attribute.String("ai.provider", "gemini"),
		attribute.String("ai.model", g.config.Model),
		attribute.Float64("ai.temperature", float64(*g.config.Temperature)),
	)
	span.SetAttributes(spanAttributes...)

	if *g.config.UseSystemPrompts && systemPrompt != "" {
		genaiConfig.SystemInstruction = genai.NewContentFromText(systemPrompt, genai.RoleUser)
	}

	result, err := g.circuitBreaker.Execute(func() (*genai.GenerateContentResponse, error) {
		return g.executeWithRetry(ctx, operationName, func() (*genai.GenerateContentResponse, error) {
			return g.client.Models.GenerateContent(ctx, g.config.Model, contents, genaiConfig)
		})
	})

	if err != nil {
		span.RecordError(err)
		span.SetAttributes(attribute.Bool("success", false))
		return "", nil, cfErrors.NewAIError(cfErrors.ErrCodeAIServiceFailed, "Failed to generate content for "+operationName, err)
	}

	text := result.Text()
	tokenUsage := extractTokenUsage(result)
	if tokenUsage != nil {
		span.SetAttributes(
			attribute.Int64("ai.tokens.input", tokenUsage.InputTokens),
			attribute.Int64("ai.tokens.output", tokenUsage.OutputTokens),
			attribute.Int64("ai.tokens.total", tokenUsage.TotalTokens),
		)
	}

	span.SetAttributes(
		attribute.Bool("success", true),
		attribute.Int("output.length", len(text)),
	)
	return text, tokenUsage, nil
}

// ExtractText sends the document bytes to Gemini as an inline blob and
// returns the transcribed plain text.
func (g *GeminiProvider) ExtractText(ctx context.Context, input types.ExtractTextInput) (string, *TokenUsage, error) {
	systemPrompt := g.getSystemPrompt("extract")
	userPrompt := g.getUserPrompt("extract")

	contents := []*genai.Content{
		genai.NewContentFromParts([]*genai.Part{
			genai.NewPartFromBytes(input.Content, input.MimeType),
			genai.NewPartFromText(userPrompt),
		}, genai.RoleUser),
	}

	return g.generate(ctx, "extract_text", contents, systemPrompt, g.textConfig(),
		attribute.String("input.file_name", input.FileName),
		attribute.String("input.mime_type", input.MimeType),
		attribute.Int("input.size_bytes", len(input.Content)),
	)
}

// ParseResume asks Gemini for structured resume data and returns the raw
// JSON response.
func (g *GeminiProvider) ParseResume(ctx context.Context, resumeText string) (string, *TokenUsage, error) {
	systemPrompt := g.getSystemPrompt("parse")
	userPrompt := fmt.Sprintf(g.getUserPrompt("parse"), resumeText)

	return g.generate(ctx, "parse_resume", genai.Text(userPrompt), systemPrompt, g.buildParseSchema(),
		attribute.Int("input.resume_length", len(resumeText)),
	)
}

// AnalyzeResume asks Gemini for an ATS analysis and returns the raw JSON
// response.
func (g *GeminiProvider) AnalyzeResume(ctx context.Context, resumeText, jobDescription string) (string, *TokenUsage, error) {
	systemPrompt := g.getSystemPrompt("analyze")
	userPrompt := fmt.Sprintf(g.getUserPrompt("analyze"), resumeText, jobDescription)

	return g.generate(ctx, "analyze_resume", genai.Text(userPrompt), systemPrompt, g.buildAnalyzeSchema(),
		attribute.Int("input.resume_length", len(resumeText)),
		attribute.Int("input.job_length", len(jobDescription)),
	)
}

// OptimizeResume asks Gemini for a rewritten resume as plain text.
func (g *GeminiProvider) OptimizeResume(ctx context.Context, resumeText, jobDescription, analysisSummary string) (string, *TokenUsage, error) {
	systemPrompt := g.getSystemPrompt("optimize")
	userPrompt := fmt.Sprintf(g.getUserPrompt("optimize"), resumeText, jobDescription, analysisSummary)

	return g.generate(ctx, "optimize_resume", genai.Text(userPrompt), systemPrompt, g.textConfig(),
		attribute.Int("input.resume_length", len(resumeText)),
		attribute.Int("input.job_length", len(jobDescription)),
	)
}

// GenerateCoverLetter asks Gemini for a complete cover letter as plain text.
func (g *GeminiProvider) GenerateCoverLetter(ctx context.Context, candidateBlock, optimizedResume, jobDescription, companyName, date string) (string, *TokenUsage, error) {
	systemPrompt := g.getSystemPrompt("coverletter")
	userPrompt := fmt.Sprintf(g.getUserPrompt("coverletter"), candidateBlock, optimizedResume, jobDescription, companyName, date)

	return g.generate(ctx, "generate_cover_letter", genai.Text(userPrompt), systemPrompt, g.textConfig(),
		attribute.Int("input.resume_length", len(optimizedResume)),
		attribute.Int("input.job_length", len(jobDescription)),
		attribute.String("input.company", companyName),
	)
}

// GetCircuitBreakerStats returns circuit breaker statistics
func (g *GeminiProvider) GetCircuitBreakerStats() map[string]any {
	stats := map[string]any{
		"ai_operations":    g.circuitBreaker.GetStats(),
		"model_operations": g.modelBreaker.GetModelStats(),
	}

	// Overall health - both breakers must be healthy
	aiHealthy := g.circuitBreaker.IsHealthy()
	modelHealthy := g.modelBreaker.IsModelHealthy()
	stats["overall_healthy"] = aiHealthy && modelHealthy

	return stats
}

// Close implements Provider interface
func (g *GeminiProvider) Close() error {
	// Gemini client doesn't have a Close method in current single-shot usage
	// Probably needed in streaming mode
	return nil
}

// textConfig creates the configuration for plain-text responses
func (g *GeminiProvider) textConfig() *genai.GenerateContentConfig {
	config := &genai.GenerateContentConfig{}
	if *g.config.Temperature > 0 {
		config.Temperature = g.config.Temperature
	}
	return config
}

// buildParseSchema creates the structured-output schema for parse requests
func (g *GeminiProvider) buildParseSchema() *genai.GenerateContentConfig {
	config := &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema: &genai.Schema{
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"personalDetails": {
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"name":      {Type: genai.TypeString},
						"email":     {Type: genai.TypeString},
						"phone":     {Type: genai.TypeString},
						"location":  {Type: genai.TypeString},
						"linkedin":  {Type: genai.TypeString},
						"portfolio": {Type: genai.TypeString},
						"github":    {Type: genai.TypeString},
					},
					Required: []string{"name"},
				},
				"experience": {
					Type: genai.TypeArray,
					Items: &genai.Schema{
						Type: genai.TypeObject,
						Properties: map[string]*genai.Schema{
							"company":  {Type: genai.TypeString},
							"position": {Type: genai.TypeString},
							"duration": {Type: genai.TypeString},
							"description": {
								Type:  genai.TypeArray,
								Items: &genai.Schema{Type: genai.TypeString},
							},
						},
						Required: []string{"company", "position"},
					},
				},
				"education": {
					Type: genai.TypeArray,
					Items: &genai.Schema{
						Type: genai.TypeObject,
						Properties: map[string]*genai.Schema{
							"institution": {Type: genai.TypeString},
							"degree":      {Type: genai.TypeString},
							"duration":    {Type: genai.TypeString},
						},
						Required: []string{"institution"},
					},
				},
				"skills": {
					Type:  genai.TypeArray,
					Items: &genai.Schema{Type: genai.TypeString},
				},
				"certifications": {
					Type:  genai.TypeArray,
					Items: &genai.Schema{Type: genai.TypeString},
				},
			},
			Required: []string{"personalDetails", "experience", "education", "skills"},
		},
	}

	// Apply temperature configuration if set
	if *g.config.Temperature > 0 {
		config.Temperature = g.config.Temperature
	}

	return config
}

// buildAnalyzeSchema creates the structured-output schema for analyze requests
func (g *GeminiProvider) buildAnalyzeSchema() *genai.GenerateContentConfig {
	config := &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema: &genai.Schema{
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"score":        {Type: genai.TypeInteger},
				"keywordMatch": {Type: genai.TypeInteger},
				"missingKeywords": {
					Type:  genai.TypeArray,
					Items: &genai.Schema{Type: genai.TypeString},
				},
				"suggestions": {
					Type:  genai.TypeArray,
					Items: &genai.Schema{Type: genai.TypeString},
				},
				"strengths": {
					Type:  genai.TypeArray,
					Items: &genai.Schema{Type: genai.TypeString},
				},
			},
			Required: []string{"score", "keywordMatch", "missingKeywords", "suggestions", "strengths"},
		},
	}

	// Apply temperature configuration if set
	if *g.config.Temperature > 0 {
		config.Temperature = g.config.Temperature
	}

	return config
}

// TokenUsage represents token usage information from AI responses
type TokenUsage struct {
	InputTokens  int64
	OutputTokens int64
	TotalTokens  int64
}

// extractTokenUsage extracts token usage information from Gemini API response
func extractTokenUsage(result *genai.GenerateContentResponse) *TokenUsage {
	if result == nil || result.UsageMetadata == nil {
		return nil
	}

	usage := result.UsageMetadata
	return &TokenUsage{
		InputTokens:  int64(usage.PromptTokenCount),
		OutputTokens: int64(usage.CandidatesTokenCount),
		TotalTokens:  int64(usage.TotalTokenCount),
	}
}

// getSystemPrompt returns the appropriate system prompt
func (g *GeminiProvider) getSystemPrompt(promptType string) string {
	loadedPrompts := config.GetPromptsForOperation(promptType)
	configSystemPrompts := &g.config.CustomPrompts.SystemPrompts

	switch promptType {
	case "extract":
		return resolvePrompt(
			loadedPrompts.SystemPrompts.ExtractText,
			configSystemPrompts.ExtractText,
			DefaultSystemPrompts.ExtractText,
		)
	case "parse":
		return resolvePrompt(
			loadedPrompts.SystemPrompts.ParseResume,
			configSystemPrompts.ParseResume,
			DefaultSystemPrompts.ParseResume,
		)
	case "analyze":
		return resolvePrompt(
			loadedPrompts.SystemPrompts.AnalyzeResume,
			configSystemPrompts.AnalyzeResume,
			DefaultSystemPrompts.AnalyzeResume,
		)
	case "optimize":
		return resolvePrompt(
			loadedPrompts.SystemPrompts.OptimizeResume,
			configSystemPrompts.OptimizeResume,
			DefaultSystemPrompts.OptimizeResume,
		)
	case "coverletter":
		return resolvePrompt(
			loadedPrompts.SystemPrompts.CoverLetter,
			configSystemPrompts.CoverLetter,
			DefaultSystemPrompts.CoverLetter,
		)
	default:
		return ""
	}
}

// getUserPrompt returns the appropriate user prompt template
func (g *GeminiProvider) getUserPrompt(promptType string) string {
	loadedPrompts := config.GetPromptsForOperation(promptType)
	configUserPrompts := &g.config.CustomPrompts.UserPrompts

	switch promptType {
	case "extract":
		return resolvePrompt(
			loadedPrompts.UserPrompts.ExtractText,
			configUserPrompts.ExtractText,
			DefaultUserPrompts.ExtractText,
		)
	case "parse":
		return resolvePrompt(
			loadedPrompts.UserPrompts.ParseResume,
			configUserPrompts.ParseResume,
			DefaultUserPrompts.ParseResume,
		)
	case "analyze":
		return resolvePrompt(
			loadedPrompts.UserPrompts.AnalyzeResume,
			configUserPrompts.AnalyzeResume,
			DefaultUserPrompts.AnalyzeResume,
		)
	case "optimize":
		return resolvePrompt(
			loadedPrompts.UserPrompts.OptimizeResume,
			configUserPrompts.OptimizeResume,
			DefaultUserPrompts.OptimizeResume,
		)
	case "coverletter":
		return resolvePrompt(
			loadedPrompts.UserPrompts.CoverLetter,
			configUserPrompts.CoverLetter,
			DefaultUserPrompts.CoverLetter,
		)
	default:
		return ""
	}
}

// resolvePrompt selects the correct prompt string based on a clear priority order:
// 1. A prompt loaded from a file.
// 2. A prompt defined directly in the configuration.
// 3. A hardcoded default prompt.
func resolvePrompt(loadedFromFile, fromConfig, fromDefault string) string {
	if loadedFromFile != "" {
		return loadedFromFile
	}
	if fromConfig != "" {
		return fromConfig
	}
	return fromDefault
}
