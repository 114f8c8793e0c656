package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"careerforge/internal/ai"
	"careerforge/internal/common"
	"careerforge/internal/config"
	"careerforge/internal/errors"
	"careerforge/internal/export"
	"careerforge/internal/types"
	"careerforge/internal/utils"
	"careerforge/internal/wizard"

	"github.com/spf13/cobra"
)

var runCmd = &cobra.Command{
	Use:   "run [resume-document] [job-description-file]",
	Short: "Run the full application flow for one job",
	Long: `Walk the whole application flow for a single job: extract text from the
resume document, parse it into structured data, analyze it against the job
description, produce an optimized resume and generate a cover letter. The
optimized resume and cover letter are written to the output directory as
text files and, when an export format is given, rendered to PDF or PNG.`,
	Args: cobra.ExactArgs(2),
	RunE: runRun,
}

var (
	runCompany      string
	runOutputDir    string
	runExportFormat string
)

func init() {
	runCmd.Flags().StringVar(&runCompany, "company", "", "Company name used in the cover letter")
	runCmd.Flags().StringVarP(&runOutputDir, "out-dir", "d", ".", "Directory for generated files")
	runCmd.Flags().StringVar(&runExportFormat, "export", "", "Also render documents: pdf or png (requires Chrome)")
}

// gatewayGenerator adapts the AI gateway to the wizard's generator interface,
// dropping token usage which the wizard does not track.
type gatewayGenerator struct {
	gateway *ai.Gateway
}

func (g gatewayGenerator) AnalyzeResume(ctx context.Context, resumeText, jobDescription string) (types.ResumeAnalysis, error) {
	analysis, _, err := g.gateway.AnalyzeResume(ctx, resumeText, jobDescription)
	return analysis, err
}

func (g gatewayGenerator) OptimizeResume(ctx context.Context, input types.OptimizeResumeInput) (types.OptimizedResume, error) {
	result, _, err := g.gateway.OptimizeResume(ctx, input)
	return result, err
}

func (g gatewayGenerator) GenerateCoverLetter(ctx context.Context, input types.CoverLetterInput) (string, error) {
	letter, _, err := g.gateway.GenerateCoverLetter(ctx, input)
	return letter, err
}

func runRun(cmd *cobra.Command, args []string) error {
	cfg, err := getConfigFromContext(cmd.Context())
	if err != nil {
		return err
	}
	logger, err := getLoggerFromContext(cmd.Context())
	if err != nil {
		return err
	}

	var exportFmt export.Format
	if runExportFormat != "" {
		exportFmt, err = export.ParseFormat(runExportFormat)
		if err != nil {
			return err
		}
	}

	resumeFile, jobFile := args[0], args[1]
	if err := utils.ValidateInputFile(resumeFile); err != nil {
		return fmt.Errorf("invalid resume file: %w", err)
	}

	fileProcessor := common.NewFileProcessor(logger)
	jobContents, err := fileProcessor.ValidateAndReadFiles(jobFile)
	if err != nil {
		return err
	}
	jobDescription := jobContents[0]

	gateway, err := ai.NewGateway(cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to create AI gateway: %w", err)
	}
	defer func() {
		if err := gateway.Close(); err != nil {
			logger.Warn("Failed to close AI gateway", "error", err)
		}
	}()

	ctx := cmd.Context()

	// Stage 1: job details and resume text
	resumeText, err := extractResumeText(ctx, gateway, resumeFile, logger)
	if err != nil {
		return err
	}

	session := wizard.NewSession()
	fileName := filepath.Base(resumeFile)
	session.Merge(wizard.Update{
		JobDescription: &jobDescription,
		CompanyName:    &runCompany,
		ResumeFileName: &fileName,
		ResumeText:     &resumeText,
	})

	// Structured data improves optimization and cover letter quality but is
	// not required for either
	resumeData, _, err := gateway.ParseResume(ctx, resumeText)
	if err == nil {
		session.Merge(wizard.Update{ResumeData: &resumeData})
	}

	controller := wizard.NewController(gatewayGenerator{gateway: gateway}, logger)

	stages := []wizard.Stage{
		wizard.StageAnalysis,
		wizard.StageOptimization,
		wizard.StageCoverLetter,
		wizard.StageDownload,
	}
	for _, stage := range stages {
		logger.Info("Entering wizard stage", "stage", stage.String())
		if err := controller.Enter(ctx, session, stage); err != nil {
			return fmt.Errorf("stage %s failed: %w", stage, err)
		}
	}

	return writeRunResults(ctx, cfg, logger, session.Application(), exportFmt)
}

// extractResumeText pulls plain text from the resume document, going through
// the extraction operation for PDFs
func extractResumeText(ctx context.Context, gateway *ai.Gateway, resumeFile string, logger *errors.Logger) (string, error) {
	content, err := os.ReadFile(resumeFile)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", resumeFile, err)
	}

	input := types.ExtractTextInput{
		FileName: filepath.Base(resumeFile),
		MimeType: documentMimeType(resumeFile),
		Content:  content,
	}
	logger.Info("Extracting resume text",
		"file", input.FileName,
		"mime_type", input.MimeType)

	text, _, err := gateway.ExtractText(ctx, input)
	if err != nil {
		return "", fmt.Errorf("failed to extract resume text: %w", err)
	}
	return text, nil
}

// writeRunResults writes the generated documents into the output directory
func writeRunResults(ctx context.Context, cfg *config.Config, logger *errors.Logger, app types.JobApplication, exportFmt export.Format) error {
	if err := os.MkdirAll(runOutputDir, 0750); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	outputs := []struct {
		name  string
		title string
		text  string
	}{
		{"optimized-resume", "Optimized Resume", app.OptimizedResume},
		{"cover-letter", "Cover Letter", app.CoverLetter},
	}

	fileProcessor := common.NewFileProcessor(logger)
	exporter := export.NewExporter(&cfg.Export, logger)
	for _, out := range outputs {
		textPath := filepath.Join(runOutputDir, out.name+".txt")
		if err := fileProcessor.WriteFile(textPath, out.text); err != nil {
			return err
		}
		logger.Info("Wrote output file", "path", textPath)

		if exportFmt == "" {
			continue
		}
		exportPath := filepath.Join(runOutputDir, out.name+"."+string(exportFmt))
		if err := exporter.Export(ctx, out.title, out.text, exportPath, exportFmt); err != nil {
			return fmt.Errorf("failed to export %s: %w", out.name, err)
		}
		logger.Info("Exported document", "path", exportPath, "format", string(exportFmt))
	}

	if app.Analysis != nil {
		logger.Info("Application flow completed",
			"ats_score", app.Analysis.Score,
			"keyword_match", app.Analysis.KeywordMatch)
	}
	return nil
}
