package ai

import (
	"context"

	"careerforge/internal/types"
)

// Provider is the interface for AI model backends.
// Structured operations (parse, analyze) return the raw JSON text from the
// model; the gateway owns schema validation and decoding so every provider
// response passes through the same checks. All methods return token usage
// information - callers can ignore it if not needed.
type Provider interface {
	ExtractText(ctx context.Context, input types.ExtractTextInput) (string, *TokenUsage, error)
	ParseResume(ctx context.Context, resumeText string) (string, *TokenUsage, error)
	AnalyzeResume(ctx context.Context, resumeText, jobDescription string) (string, *TokenUsage, error)
	OptimizeResume(ctx context.Context, resumeText, jobDescription, analysisSummary string) (string, *TokenUsage, error)
	GenerateCoverLetter(ctx context.Context, candidateBlock, optimizedResume, jobDescription, companyName, date string) (string, *TokenUsage, error)
	GetModelInfo(ctx context.Context) *ModelInfo
	Close() error
}
