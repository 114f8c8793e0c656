package ai

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
)

// pdfPlainText extracts the embedded text layer of a PDF without calling the
// AI model. Scanned PDFs with no text layer come back empty; the caller
// falls through to model-based extraction in that case.
func pdfPlainText(data []byte) (text string, err error) {
	// The pdf package panics on some malformed documents
	defer func() {
		if r := recover(); r != nil {
			text = ""
			err = fmt.Errorf("pdf text extraction panicked: %v", r)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to open pdf: %w", err)
	}

	rc, err := reader.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("failed to read pdf text: %w", err)
	}

	var buf bytes.Buffer
	if _, err := buf.ReadFrom(rc); err != nil {
		return "", fmt.Errorf("failed to read pdf text stream: %w", err)
	}

	return strings.TrimSpace(buf.String()), nil
}
