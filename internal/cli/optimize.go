package cli

import (
	"context"
	"fmt"

	"careerforge/internal/ai"
	"careerforge/internal/common"
	"careerforge/internal/types"

	"github.com/spf13/cobra"
)

var optimizeCmd = &cobra.Command{
	Use:   "optimize [resume-file] [job-description-file]",
	Short: "Optimize a resume for a specific job description",
	Long: `Optimize a resume for a specific job description. The resume is first
analyzed against the job description and the analysis results steer the
rewrite. When optimization is unavailable the sanitized original resume is
returned and marked as degraded.`,
	Args: cobra.ExactArgs(2),
	PreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := getConfigFromContext(cmd.Context())
		if err != nil {
			return err
		}
		// Apply default format if not specified
		if optimizeConfig.OutputFormat == "" {
			optimizeConfig.OutputFormat = cfg.App.DefaultFormat
		}
		// Validate format against supported formats
		return common.ValidateOutputFormat(optimizeConfig.OutputFormat, cfg.App.SupportedFormats)
	},
	RunE: runOptimize,
}

var optimizeConfig common.CommandConfig

func init() {
	optimizeCmd.Flags().StringVarP(&optimizeConfig.OutputFile, "output", "o", "", "Output file path (default: stdout)")
	optimizeCmd.Flags().StringVar(&optimizeConfig.OutputFormat, "format", "", "Output format: json, text, or markdown")

	// Add completion for format flag
	_ = optimizeCmd.RegisterFlagCompletionFunc("format", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		cfg, err := getConfigFromContext(cmd.Context())
		if err != nil {
			return []string{}, cobra.ShellCompDirectiveError
		}
		return common.GetSupportedFormats(cfg.App.SupportedFormats), cobra.ShellCompDirectiveNoFileComp
	})
}

func runOptimize(cmd *cobra.Command, args []string) error {
	cfg, err := getConfigFromContext(cmd.Context())
	if err != nil {
		return err
	}
	logger, err := getLoggerFromContext(cmd.Context())
	if err != nil {
		return err
	}

	gateway, err := ai.NewGateway(cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to create AI gateway: %w", err)
	}
	defer func() {
		if err := gateway.Close(); err != nil {
			logger.Warn("Failed to close AI gateway", "error", err)
		}
	}()

	createInput := func(contents []string) (types.AnalyzeResumeInput, error) {
		if len(contents) != 2 {
			return types.AnalyzeResumeInput{}, fmt.Errorf("expected 2 file paths, got %d", len(contents))
		}
		return types.AnalyzeResumeInput{
			ResumeText:     contents[0],
			JobDescription: contents[1],
		}, nil
	}

	logDetails := func(input types.AnalyzeResumeInput, cfg common.CommandConfig) {
		logger.Info("Starting resume optimization",
			"resume_chars", len(input.ResumeText),
			"job_chars", len(input.JobDescription),
			"output_format", cfg.OutputFormat)
	}

	// Analysis runs first so its findings can steer the rewrite
	optimizeOperation := func(ctx context.Context, input types.AnalyzeResumeInput) (types.OptimizedResume, *ai.TokenUsage, error) {
		analysis, analyzeTokens, err := gateway.AnalyzeResume(ctx, input.ResumeText, input.JobDescription)
		if err != nil {
			return types.OptimizedResume{}, analyzeTokens, err
		}

		result, optimizeTokens, err := gateway.OptimizeResume(ctx, types.OptimizeResumeInput{
			ResumeText:     input.ResumeText,
			JobDescription: input.JobDescription,
			Analysis:       analysis,
		})
		return result, sumTokenUsage(analyzeTokens, optimizeTokens), err
	}

	err = common.RunAICommand(
		cmd.Context(),
		logger,
		optimizeConfig,
		args,
		createInput,
		optimizeOperation,
		logDetails,
	)

	if err != nil {
		return fmt.Errorf("failed to optimize resume: %w", err)
	}
	logger.Info("Resume optimization completed successfully")
	return nil
}

// sumTokenUsage combines usage from chained operations, tolerating nils
func sumTokenUsage(usages ...*ai.TokenUsage) *ai.TokenUsage {
	var total *ai.TokenUsage
	for _, usage := range usages {
		if usage == nil {
			continue
		}
		if total == nil {
			total = &ai.TokenUsage{}
		}
		total.InputTokens += usage.InputTokens
		total.OutputTokens += usage.OutputTokens
		total.TotalTokens += usage.TotalTokens
	}
	return total
}
