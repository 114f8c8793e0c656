package server

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	cfErrors "careerforge/internal/errors"
	"careerforge/internal/observability"
	"careerforge/internal/types"

	"go.opentelemetry.io/otel/attribute"
)

// errorStatus maps gateway errors to HTTP status codes. Validation failures
// are the caller's fault; everything else that still surfaces as an error is
// a server-side failure.
func errorStatus(err error) int {
	if appErr, ok := err.(*cfErrors.AppError); ok && appErr.Type == cfErrors.ErrorTypeValidation {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

// createExtractTextHandler wraps the extract-text handler with observability
func (s *Server) createExtractTextHandler(om *observability.ObservabilityManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		tracer := om.Tracer("careerforge.api")
		ctx, span := tracer.Start(ctx, "api.extract_text")
		defer span.End()

		var req ExtractTextRequest
		if err := parseJSONRequest(r, &req); err != nil {
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "validation"))
			writeErrorResponse(w, "Invalid request body", err.Error(), http.StatusBadRequest)
			return
		}

		if len(req.FileContent) == 0 {
			err := fmt.Errorf("missing file content")
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "validation"))
			writeErrorResponse(w, "Missing file content", "fileContent field is required", http.StatusBadRequest)
			return
		}
		if strings.TrimSpace(req.FileType) == "" {
			err := fmt.Errorf("missing file type")
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "validation"))
			writeErrorResponse(w, "Missing file type", "fileType field is required", http.StatusBadRequest)
			return
		}

		span.SetAttributes(
			attribute.String("request.file_name", req.FileName),
			attribute.String("request.file_type", req.FileType),
			attribute.Int("request.size_bytes", len(req.FileContent)),
			attribute.String("operation", "extract"),
		)

		input := types.ExtractTextInput{
			FileName: req.FileName,
			MimeType: req.FileType,
			Content:  req.FileContent,
		}

		metrics := om.GetMetrics()
		var text string
		err := metrics.TrackAIOperationWithTokens(ctx, "extract", func(ctx context.Context) *observability.AIOperationResult {
			output, tokenUsage, aiErr := s.Gateway.ExtractText(ctx, input)
			text = output
			return &observability.AIOperationResult{
				Error:      aiErr,
				TokenUsage: (*observability.TokenUsage)(tokenUsage),
			}
		}, om)

		if err != nil {
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "ai_processing"))
			metrics.RecordBusinessMetric(ctx, "text_extracted", false, om,
				attribute.String("error", err.Error()))
			writeErrorResponse(w, "Failed to extract text", err.Error(), errorStatus(err))
			return
		}

		metrics.RecordBusinessMetric(ctx, "text_extracted", true, om,
			attribute.Int("output.text_length", len(text)))

		span.SetAttributes(
			attribute.Bool("success", true),
			attribute.Int("response.text_length", len(text)),
		)

		writeJSONResponse(w, span, ExtractTextResponse{Text: text})
	}
}

// createParseResumeHandler wraps the parse-resume handler with observability
func (s *Server) createParseResumeHandler(om *observability.ObservabilityManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		tracer := om.Tracer("careerforge.api")
		ctx, span := tracer.Start(ctx, "api.parse_resume")
		defer span.End()

		var req ParseResumeRequest
		if err := parseJSONRequest(r, &req); err != nil {
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "validation"))
			writeErrorResponse(w, "Invalid request body", err.Error(), http.StatusBadRequest)
			return
		}

		if strings.TrimSpace(req.ResumeText) == "" {
			err := fmt.Errorf("missing resume text")
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "validation"))
			writeErrorResponse(w, "Missing resume text", "resumeText field is required", http.StatusBadRequest)
			return
		}

		span.SetAttributes(
			attribute.Int("request.resume_length", len(req.ResumeText)),
			attribute.String("operation", "parse"),
		)

		metrics := om.GetMetrics()
		var result types.ResumeData
		err := metrics.TrackAIOperationWithTokens(ctx, "parse", func(ctx context.Context) *observability.AIOperationResult {
			output, tokenUsage, aiErr := s.Gateway.ParseResume(ctx, req.ResumeText)
			result = output
			return &observability.AIOperationResult{
				Error:      aiErr,
				TokenUsage: (*observability.TokenUsage)(tokenUsage),
			}
		}, om)

		if err != nil {
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "ai_processing"))
			metrics.RecordBusinessMetric(ctx, "resume_parsed", false, om)
			writeErrorResponse(w, "Failed to parse resume", err.Error(), errorStatus(err))
			return
		}

		metrics.RecordBusinessMetric(ctx, "resume_parsed", true, om,
			attribute.Int("experience_count", len(result.Experience)),
			attribute.Int("skills_count", len(result.Skills)))

		span.SetAttributes(
			attribute.Bool("success", true),
			attribute.Int("experience_count", len(result.Experience)),
		)

		writeJSONResponse(w, span, result)
	}
}

// createAnalyzeHandler wraps the analyze handler with observability
func (s *Server) createAnalyzeHandler(om *observability.ObservabilityManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		tracer := om.Tracer("careerforge.api")
		ctx, span := tracer.Start(ctx, "api.analyze")
		defer span.End()

		var req AnalyzeRequest
		if err := parseJSONRequest(r, &req); err != nil {
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "validation"))
			writeErrorResponse(w, "Invalid request body", err.Error(), http.StatusBadRequest)
			return
		}

		if strings.TrimSpace(req.ResumeText) == "" {
			err := fmt.Errorf("missing resume text")
			span.RecordError(err)
			writeErrorResponse(w, "Missing resume text", "resumeText field is required", http.StatusBadRequest)
			return
		}
		if strings.TrimSpace(req.JobDescription) == "" {
			err := fmt.Errorf("missing job description")
			span.RecordError(err)
			writeErrorResponse(w, "Missing job description", "jobDescription field is required", http.StatusBadRequest)
			return
		}

		// Size validation
		if len(req.ResumeText) > int(s.MaxRequestSize/2) {
			err := fmt.Errorf("resume too large: %d chars", len(req.ResumeText))
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "validation"))
			writeErrorResponse(w, "Resume too large", fmt.Sprintf("resumeText exceeds recommended size limit of %d characters", s.MaxRequestSize/2), http.StatusBadRequest)
			return
		}
		if len(req.JobDescription) > int(s.MaxRequestSize/2) {
			err := fmt.Errorf("job description too large: %d chars", len(req.JobDescription))
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "validation"))
			writeErrorResponse(w, "Job description too large", fmt.Sprintf("jobDescription exceeds recommended size limit of %d characters", s.MaxRequestSize/2), http.StatusBadRequest)
			return
		}

		span.SetAttributes(
			attribute.Int("request.resume_length", len(req.ResumeText)),
			attribute.Int("request.job_length", len(req.JobDescription)),
			attribute.String("operation", "analyze"),
		)

		metrics := om.GetMetrics()
		var result types.ResumeAnalysis
		err := metrics.TrackAIOperationWithTokens(ctx, "analyze", func(ctx context.Context) *observability.AIOperationResult {
			output, tokenUsage, aiErr := s.Gateway.AnalyzeResume(ctx, req.ResumeText, req.JobDescription)
			result = output
			return &observability.AIOperationResult{
				Error:      aiErr,
				TokenUsage: (*observability.TokenUsage)(tokenUsage),
			}
		}, om)

		if err != nil {
			span.RecordError(err)
			metrics.RecordBusinessMetric(ctx, "resume_analyzed", false, om)
			writeErrorResponse(w, "Failed to analyze resume", err.Error(), errorStatus(err))
			return
		}

		metrics.RecordBusinessMetric(ctx, "resume_analyzed", true, om,
			attribute.Int("ats.score", result.Score),
			attribute.Int("ats.keyword_match", result.KeywordMatch))

		span.SetAttributes(
			attribute.Bool("success", true),
			attribute.Int("ats.score", result.Score),
			attribute.Int("ats.keyword_match", result.KeywordMatch),
		)

		writeJSONResponse(w, span, result)
	}
}

// createOptimizeHandler wraps the optimize handler with observability
func (s *Server) createOptimizeHandler(om *observability.ObservabilityManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		tracer := om.Tracer("careerforge.api")
		ctx, span := tracer.Start(ctx, "api.optimize")
		defer span.End()

		var req OptimizeRequest
		if err := parseJSONRequest(r, &req); err != nil {
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "validation"))
			writeErrorResponse(w, "Invalid request body", err.Error(), http.StatusBadRequest)
			return
		}

		if strings.TrimSpace(req.ResumeText) == "" {
			err := fmt.Errorf("missing resume text")
			span.RecordError(err)
			writeErrorResponse(w, "Missing resume text", "resumeText field is required", http.StatusBadRequest)
			return
		}
		if strings.TrimSpace(req.JobDescription) == "" {
			err := fmt.Errorf("missing job description")
			span.RecordError(err)
			writeErrorResponse(w, "Missing job description", "jobDescription field is required", http.StatusBadRequest)
			return
		}

		span.SetAttributes(
			attribute.Int("request.resume_length", len(req.ResumeText)),
			attribute.Int("request.job_length", len(req.JobDescription)),
			attribute.String("operation", "optimize"),
		)

		input := types.OptimizeResumeInput{
			ResumeText:     req.ResumeText,
			JobDescription: req.JobDescription,
			ResumeData:     req.ResumeData,
		}
		if req.Analysis != nil {
			input.Analysis = *req.Analysis
		}

		metrics := om.GetMetrics()
		var result types.OptimizedResume
		err := metrics.TrackAIOperationWithTokens(ctx, "optimize", func(ctx context.Context) *observability.AIOperationResult {
			output, tokenUsage, aiErr := s.Gateway.OptimizeResume(ctx, input)
			result = output
			return &observability.AIOperationResult{
				Error:      aiErr,
				TokenUsage: (*observability.TokenUsage)(tokenUsage),
			}
		}, om)

		if err != nil {
			span.RecordError(err)
			metrics.RecordBusinessMetric(ctx, "resume_optimized", false, om)
			writeErrorResponse(w, "Failed to optimize resume", err.Error(), errorStatus(err))
			return
		}

		metrics.RecordBusinessMetric(ctx, "resume_optimized", true, om,
			attribute.Int("output.optimized_length", len(result.Text)),
			attribute.Bool("degraded", result.Degraded))

		span.SetAttributes(
			attribute.Bool("success", true),
			attribute.Int("response.optimized_length", len(result.Text)),
			attribute.Bool("response.degraded", result.Degraded),
		)

		writeJSONResponse(w, span, result)
	}
}

// createCoverLetterHandler wraps the cover-letter handler with observability
func (s *Server) createCoverLetterHandler(om *observability.ObservabilityManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		tracer := om.Tracer("careerforge.api")
		ctx, span := tracer.Start(ctx, "api.cover_letter")
		defer span.End()

		var req CoverLetterRequest
		if err := parseJSONRequest(r, &req); err != nil {
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "validation"))
			writeErrorResponse(w, "Invalid request body", err.Error(), http.StatusBadRequest)
			return
		}

		if strings.TrimSpace(req.OptimizedResume) == "" {
			err := fmt.Errorf("missing optimized resume")
			span.RecordError(err)
			writeErrorResponse(w, "Missing optimized resume", "optimizedResume field is required", http.StatusBadRequest)
			return
		}
		if strings.TrimSpace(req.JobDescription) == "" {
			err := fmt.Errorf("missing job description")
			span.RecordError(err)
			writeErrorResponse(w, "Missing job description", "jobDescription field is required", http.StatusBadRequest)
			return
		}
		if strings.TrimSpace(req.CompanyName) == "" {
			err := fmt.Errorf("missing company name")
			span.RecordError(err)
			writeErrorResponse(w, "Missing company name", "companyName field is required", http.StatusBadRequest)
			return
		}

		span.SetAttributes(
			attribute.Int("request.resume_length", len(req.OptimizedResume)),
			attribute.Int("request.job_length", len(req.JobDescription)),
			attribute.String("request.company", req.CompanyName),
			attribute.String("operation", "coverLetter"),
		)

		input := types.CoverLetterInput{
			OptimizedResume: req.OptimizedResume,
			JobDescription:  req.JobDescription,
			CompanyName:     req.CompanyName,
			Date:            req.Date,
			ResumeData:      req.ResumeData,
		}

		metrics := om.GetMetrics()
		var letter string
		err := metrics.TrackAIOperationWithTokens(ctx, "coverLetter", func(ctx context.Context) *observability.AIOperationResult {
			output, tokenUsage, aiErr := s.Gateway.GenerateCoverLetter(ctx, input)
			letter = output
			return &observability.AIOperationResult{
				Error:      aiErr,
				TokenUsage: (*observability.TokenUsage)(tokenUsage),
			}
		}, om)

		if err != nil {
			span.RecordError(err)
			metrics.RecordBusinessMetric(ctx, "cover_letter_generated", false, om)
			writeErrorResponse(w, "Failed to generate cover letter", err.Error(), errorStatus(err))
			return
		}

		metrics.RecordBusinessMetric(ctx, "cover_letter_generated", true, om,
			attribute.Int("output.letter_length", len(letter)))

		span.SetAttributes(
			attribute.Bool("success", true),
			attribute.Int("response.letter_length", len(letter)),
		)

		writeJSONResponse(w, span, CoverLetterResponse{Text: letter})
	}
}

// createRateLimitMiddleware adds observability to rate limiting
func (s *Server) createRateLimitMiddleware(om *observability.ObservabilityManager) func(http.HandlerFunc) http.HandlerFunc {
	originalMiddleware := s.rateLimitMiddleware()

	return func(next http.HandlerFunc) http.HandlerFunc {
		return originalMiddleware(func(w http.ResponseWriter, r *http.Request) {
			// Wrap the ResponseWriter to detect rate limit responses
			wrapper := &responseWrapper{ResponseWriter: w, statusCode: 200}

			next(wrapper, r)

			// If rate limited, record metric
			if wrapper.statusCode == http.StatusTooManyRequests {
				metrics := om.GetMetrics()
				metrics.RecordBusinessMetric(r.Context(), "rate_limit_hit", true, om,
					attribute.String("endpoint", r.URL.Path),
					attribute.String("method", r.Method))
			}
		})
	}
}

// responseWrapper wraps http.ResponseWriter to capture status code
type responseWrapper struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWrapper) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}
