package cli

import (
	"context"
	"fmt"
	"time"

	"careerforge/internal/ai"
	"careerforge/internal/common"
	"careerforge/internal/types"

	"github.com/spf13/cobra"
)

var coverLetterCmd = &cobra.Command{
	Use:   "cover-letter [optimized-resume-file] [job-description-file]",
	Short: "Generate a cover letter from an optimized resume",
	Long: `Generate a professional cover letter from an optimized resume and a
job description. Placeholder markers the model leaves behind, such as
[Your Name] or [Company Name], are replaced with real values before the
letter is returned.`,
	Args: cobra.ExactArgs(2),
	PreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := getConfigFromContext(cmd.Context())
		if err != nil {
			return err
		}
		if coverLetterConfig.OutputFormat == "" {
			coverLetterConfig.OutputFormat = "text"
		}
		return common.ValidateOutputFormat(coverLetterConfig.OutputFormat, cfg.App.SupportedFormats)
	},
	RunE: runCoverLetter,
}

var (
	coverLetterConfig  common.CommandConfig
	coverLetterCompany string
)

func init() {
	coverLetterCmd.Flags().StringVarP(&coverLetterConfig.OutputFile, "output", "o", "", "Output file path (default: stdout)")
	coverLetterCmd.Flags().StringVar(&coverLetterConfig.OutputFormat, "format", "", "Output format: json or text")
	coverLetterCmd.Flags().StringVar(&coverLetterCompany, "company", "", "Company name used in the letter")
}

func runCoverLetter(cmd *cobra.Command, args []string) error {
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

	createInput := func(contents []string) (types.CoverLetterInput, error) {
		if len(contents) != 2 {
			return types.CoverLetterInput{}, fmt.Errorf("expected 2 file paths, got %d", len(contents))
		}
		return types.CoverLetterInput{
			OptimizedResume: contents[0],
			JobDescription:  contents[1],
			CompanyName:     coverLetterCompany,
			Date:            time.Now().Format("January 2, 2006"),
		}, nil
	}

	logDetails := func(input types.CoverLetterInput, cfg common.CommandConfig) {
		logger.Info("Starting cover letter generation",
			"resume_chars", len(input.OptimizedResume),
			"job_chars", len(input.JobDescription),
			"company", input.CompanyName,
			"output_format", cfg.OutputFormat)
	}

	coverLetterOperation := func(ctx context.Context, input types.CoverLetterInput) (string, *ai.TokenUsage, error) {
		return gateway.GenerateCoverLetter(ctx, input)
	}

	err = common.RunAICommand(
		cmd.Context(),
		logger,
		coverLetterConfig,
		args,
		createInput,
		coverLetterOperation,
		logDetails,
	)

	if err != nil {
		return fmt.Errorf("failed to generate cover letter: %w", err)
	}
	logger.Info("Cover letter generation completed successfully")
	return nil
}
