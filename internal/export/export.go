package export

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"careerforge/internal/config"
	"careerforge/internal/errors"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
)

// Format is a supported export format
type Format string

const (
	FormatPDF Format = "pdf"
	FormatPNG Format = "png"
)

// ParseFormat validates a format string
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "pdf":
		return FormatPDF, nil
	case "png":
		return FormatPNG, nil
	default:
		return "", errors.NewValidationError(errors.ErrCodeInvalidFormat,
			fmt.Sprintf("Unsupported export format: %s", s), nil)
	}
}

// Exporter renders text documents to PDF or PNG through headless Chrome
type Exporter struct {
	config *config.ExportConfig
	logger *errors.Logger
}

// NewExporter creates an exporter from the export configuration
func NewExporter(cfg *config.ExportConfig, logger *errors.Logger) *Exporter {
	return &Exporter{
		config: cfg,
		logger: logger,
	}
}

// Export renders a text document and writes it to outputPath. The format is
// derived from the path extension when not given explicitly.
func (e *Exporter) Export(ctx context.Context, title, text, outputPath string, format Format) error {
	if strings.TrimSpace(text) == "" {
		return errors.NewValidationError(errors.ErrCodeInvalidRequest,
			"Document text is required for export", nil)
	}

	if format == "" {
		parsed, err := ParseFormat(strings.TrimPrefix(filepath.Ext(outputPath), "."))
		if err != nil {
			return err
		}
		format = parsed
	}

	var (
		data []byte
		err  error
	)
	switch format {
	case FormatPDF:
		data, err = e.renderPDF(ctx, title, text)
	case FormatPNG:
		data, err = e.renderPNG(ctx, title, text)
	default:
		return errors.NewValidationError(errors.ErrCodeInvalidFormat,
			fmt.Sprintf("Unsupported export format: %s", format), nil)
	}
	if err != nil {
		e.logger.LogError(err, "Document rendering failed",
			"format", string(format),
			"output_path", outputPath)
		return errors.NewIOError(errors.ErrCodeExportFailed,
			fmt.Sprintf("Failed to render %s document", format), err)
	}

	if err := os.WriteFile(outputPath, data, 0o644); err != nil {
		e.logger.LogError(err, "Failed to write exported document",
			"output_path", outputPath)
		return errors.NewIOError(errors.ErrCodeExportFailed,
			"Failed to write exported document", err)
	}

	e.logger.Info("Document exported",
		"format", string(format),
		"output_path", outputPath,
		"size_bytes", len(data))
	return nil
}

// renderPDF prints the document to a US letter sized PDF
func (e *Exporter) renderPDF(ctx context.Context, title, text string) ([]byte, error) {
	var pdfBuf []byte
	err := e.withPage(ctx, title, text, chromedp.ActionFunc(func(ctx context.Context) error {
		var err error
		// US letter: 8.5in x 11in
		pdfBuf, _, err = page.PrintToPDF().
			WithPrintBackground(true).
			WithPaperWidth(8.5).
			WithPaperHeight(11).
			WithPreferCSSPageSize(true).
			Do(ctx)
		return err
	}))
	return pdfBuf, err
}

// renderPNG captures the document as a full-page screenshot
func (e *Exporter) renderPNG(ctx context.Context, title, text string) ([]byte, error) {
	var pngBuf []byte
	err := e.withPage(ctx, title, text, chromedp.FullScreenshot(&pngBuf, 100))
	return pngBuf, err
}

// withPage serves the document through a temp file and runs the capture
// action against it in a fresh headless browser context
func (e *Exporter) withPage(ctx context.Context, title, text string, capture chromedp.Action) error {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("disable-dev-shm-usage", true),
	)
	if e.config.ChromePath != "" {
		opts = append(opts, chromedp.ExecPath(e.config.ChromePath))
	}

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, opts...)
	defer cancelAlloc()

	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)
	defer cancelBrowser()

	runCtx, cancelRun := context.WithTimeout(browserCtx, e.config.Timeout)
	defer cancelRun()

	tmpDir, err := os.MkdirTemp("", "careerforge-export-")
	if err != nil {
		return fmt.Errorf("failed to create temp dir: %w", err)
	}
	defer os.RemoveAll(tmpDir)

	htmlPath := filepath.Join(tmpDir, "document.html")
	if err := os.WriteFile(htmlPath, []byte(buildHTML(title, text)), 0o644); err != nil {
		return fmt.Errorf("failed to write document: %w", err)
	}

	return chromedp.Run(runCtx,
		chromedp.Navigate("file://"+htmlPath),
		chromedp.WaitReady("body", chromedp.ByQuery),
		capture,
	)
}
