package service

import (
	"fmt"
	"os"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/rs/zerolog/log"
)

// ExtractPDFText extracts plain text from PDF bytes. Pages that fail to
// decode are logged and skipped; a document with no extractable text
// (e.g. scanned images) yields an empty string, not an error.
func ExtractPDFText(data []byte) (string, error) {
	// Write to temp file — ledongthuc/pdf requires a file reader
	tmpFile, err := os.CreateTemp("", "cv-*.pdf")
	if err != nil {
		return "", fmt.Errorf("creating temp file: %w", err)
	}
	defer os.Remove(tmpFile.Name())
	defer tmpFile.Close()

	if _, err := tmpFile.Write(data); err != nil {
		return "", fmt.Errorf("writing temp file: %w", err)
	}

	f, reader, err := pdf.Open(tmpFile.Name())
	if err != nil {
		return "", fmt.Errorf("opening PDF: %w", err)
	}
	defer f.Close()

	var sb strings.Builder
	numPages := reader.NumPage()

	for i := 1; i <= numPages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}

		text, err := page.GetPlainText(nil)
		if err != nil {
			log.Warn().Int("page", i).Err(err).Msg("Failed to extract text from PDF page")
			continue
		}

		if sb.Len() > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(text)
	}

	return sb.String(), nil
}
