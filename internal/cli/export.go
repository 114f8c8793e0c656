package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	"careerforge/internal/common"
	"careerforge/internal/export"

	"github.com/spf13/cobra"
)

var exportCmd = &cobra.Command{
	Use:   "export [text-file]",
	Short: "Export a resume or cover letter to PDF or PNG",
	Long: `Render a plain text resume or cover letter into a downloadable
document. PDF output uses US letter pages; PNG output captures the rendered
document as an image. Rendering requires a Chrome or Chromium binary,
configurable via export.chromePath or the CHROME_PATH environment variable.`,
	Args: cobra.ExactArgs(1),
	RunE: runExport,
}

var (
	exportOutput string
	exportFormat string
	exportTitle  string
)

func init() {
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "Output file path (default: input name with format extension)")
	exportCmd.Flags().StringVar(&exportFormat, "format", "pdf", "Export format: pdf or png")
	exportCmd.Flags().StringVar(&exportTitle, "title", "", "Document title (default: input file name)")
}

func runExport(cmd *cobra.Command, args []string) error {
	cfg, err := getConfigFromContext(cmd.Context())
	if err != nil {
		return err
	}
	logger, err := getLoggerFromContext(cmd.Context())
	if err != nil {
		return err
	}

	format, err := export.ParseFormat(exportFormat)
	if err != nil {
		return err
	}

	fileProcessor := common.NewFileProcessor(logger)
	contents, err := fileProcessor.ValidateAndReadFiles(args[0])
	if err != nil {
		return err
	}

	title := exportTitle
	if title == "" {
		base := filepath.Base(args[0])
		title = strings.TrimSuffix(base, filepath.Ext(base))
	}

	outputPath := exportOutput
	if outputPath == "" {
		base := strings.TrimSuffix(args[0], filepath.Ext(args[0]))
		outputPath = base + "." + string(format)
	}

	exporter := export.NewExporter(&cfg.Export, logger)
	if err := exporter.Export(cmd.Context(), title, contents[0], outputPath, format); err != nil {
		return fmt.Errorf("failed to export document: %w", err)
	}

	logger.Info("Document exported successfully",
		"output", outputPath,
		"format", string(format))
	return nil
}
