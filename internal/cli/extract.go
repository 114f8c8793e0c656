package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"careerforge/internal/ai"
	"careerforge/internal/common"
	"careerforge/internal/types"
	"careerforge/internal/utils"

	"github.com/spf13/cobra"
)

var extractCmd = &cobra.Command{
	Use:   "extract [resume-document]",
	Short: "Extract plain text from a resume document",
	Long: `Extract plain text from a resume document. PDF files are read directly
where possible and fall back to AI extraction; other files are treated as
plain text documents.`,
	Args: cobra.ExactArgs(1),
	PreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := getConfigFromContext(cmd.Context())
		if err != nil {
			return err
		}
		if extractConfig.OutputFormat == "" {
			extractConfig.OutputFormat = "text"
		}
		return common.ValidateOutputFormat(extractConfig.OutputFormat, cfg.App.SupportedFormats)
	},
	RunE: runExtract,
}

var extractConfig common.CommandConfig

func init() {
	extractCmd.Flags().StringVarP(&extractConfig.OutputFile, "output", "o", "", "Output file path (default: stdout)")
	extractCmd.Flags().StringVar(&extractConfig.OutputFormat, "format", "", "Output format: json or text")
}

// documentMimeType maps a file extension to the mime type sent to the gateway
func documentMimeType(filename string) string {
	switch utils.GetFileExtension(filename) {
	case ".pdf":
		return "application/pdf"
	case ".md", ".markdown":
		return "text/markdown"
	default:
		return "text/plain"
	}
}

func runExtract(cmd *cobra.Command, args []string) error {
	cfg, err := getConfigFromContext(cmd.Context())
	if err != nil {
		return err
	}
	logger, err := getLoggerFromContext(cmd.Context())
	if err != nil {
		return err
	}

	filename := args[0]
	if err := utils.ValidateInputFile(filename); err != nil {
		return fmt.Errorf("invalid input file: %w", err)
	}

	// Documents are read as raw bytes because PDFs are binary
	content, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", filename, err)
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

	input := types.ExtractTextInput{
		FileName: filepath.Base(filename),
		MimeType: documentMimeType(filename),
		Content:  content,
	}

	logger.Info("Starting text extraction",
		"file", input.FileName,
		"mime_type", input.MimeType,
		"size", utils.FormatFileSize(int64(len(content))))

	text, tokenUsage, err := gateway.ExtractText(cmd.Context(), input)
	if err != nil {
		return fmt.Errorf("failed to extract text: %w", err)
	}
	if tokenUsage != nil {
		logger.Info("AI token usage",
			"input_tokens", tokenUsage.InputTokens,
			"output_tokens", tokenUsage.OutputTokens,
			"total_tokens", tokenUsage.TotalTokens)
	}

	outputHandler := common.NewOutputHandler(logger)
	if err := outputHandler.HandleOutput(text, extractConfig); err != nil {
		return err
	}
	logger.Info("Text extraction completed successfully")
	return nil
}
