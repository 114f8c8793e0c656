package server

import (
	"time"

	"careerforge/internal/ai"
	"careerforge/internal/config"
	cfErrors "careerforge/internal/errors"
	"careerforge/internal/types"
	"careerforge/internal/wizard"
)

// ExtractTextRequest represents the request body for the extract-text endpoint
type ExtractTextRequest struct {
	FileName    string `json:"fileName"`
	FileType    string `json:"fileType"`
	FileContent []byte `json:"fileContent"` // base64-encoded by JSON
}

// ExtractTextResponse carries the extracted plain text
type ExtractTextResponse struct {
	Text string `json:"text"`
}

// ParseResumeRequest represents the request body for the parse-resume endpoint
type ParseResumeRequest struct {
	ResumeText string `json:"resumeText"`
}

// AnalyzeRequest represents the request body for the analyze endpoint
type AnalyzeRequest struct {
	ResumeText     string `json:"resumeText"`
	JobDescription string `json:"jobDescription"`
}

// OptimizeRequest represents the request body for the optimize endpoint
type OptimizeRequest struct {
	ResumeText     string                `json:"resumeText"`
	JobDescription string                `json:"jobDescription"`
	Analysis       *types.ResumeAnalysis `json:"analysis,omitempty"`
	ResumeData     *types.ResumeData     `json:"resumeData,omitempty"`
}

// CoverLetterRequest represents the request body for the cover-letter endpoint
type CoverLetterRequest struct {
	OptimizedResume string            `json:"optimizedResume"`
	JobDescription  string            `json:"jobDescription"`
	CompanyName     string            `json:"companyName"`
	Date            string            `json:"date,omitempty"`
	ResumeData      *types.ResumeData `json:"resumeData,omitempty"`
}

// CoverLetterResponse carries the generated letter
type CoverLetterResponse struct {
	Text string `json:"text"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// Server holds configuration for the HTTP server
type Server struct {
	Host    string
	Port    string
	Version string

	// Full application configuration
	AppConfig *config.Config

	// AI gateway shared across handlers
	Gateway *ai.Gateway

	// Hosted wizard sessions
	Sessions *wizard.Store
	Wizard   *wizard.Controller

	// Prompt hot reload
	PromptWatcher *config.PromptWatcher

	// API Authentication
	APIKeys map[string]bool

	// Timeout configurations
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration

	// Request size limit
	MaxRequestSize int64

	// Rate limiting
	RateLimit   *config.RateLimitConfig
	RateLimiter *RateLimiter

	// Logger
	Logger *cfErrors.Logger
}

// ServerConfig holds configuration for creating a Server instance
type ServerConfig struct {
	Host           string
	Port           string
	Version        string
	APIKeys        []string
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	IdleTimeout    time.Duration
	MaxRequestSize int64
	RateLimit      *config.RateLimitConfig
}

// NewServer creates a new Server instance from a ServerConfig struct
func NewServer(appCfg *config.Config, cfg ServerConfig, logger *cfErrors.Logger) *Server {
	// Convert API keys slice to map for O(1) lookup
	apiKeyMap := make(map[string]bool)
	for _, key := range cfg.APIKeys {
		if key != "" {
			apiKeyMap[key] = true
		}
	}

	var rateLimiter *RateLimiter
	if cfg.RateLimit != nil && cfg.RateLimit.Enabled {
		rateLimiter = NewRateLimiter(
			cfg.RateLimit.RequestsPerMin,
			cfg.RateLimit.Window,
			cfg.RateLimit.BurstCapacity,
			logger,
		)
	}

	return &Server{
		Host:           cfg.Host,
		Port:           cfg.Port,
		Version:        cfg.Version,
		AppConfig:      appCfg,
		Sessions:       wizard.NewStore(),
		APIKeys:        apiKeyMap,
		ReadTimeout:    cfg.ReadTimeout,
		WriteTimeout:   cfg.WriteTimeout,
		IdleTimeout:    cfg.IdleTimeout,
		MaxRequestSize: cfg.MaxRequestSize,
		RateLimit:      cfg.RateLimit,
		RateLimiter:    rateLimiter,
		Logger:         logger,
	}
}
