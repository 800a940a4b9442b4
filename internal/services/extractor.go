package services

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/ledongthuc/pdf"
)

// Extractor turns an uploaded file or fetched blob into raw text. No partial
// text is ever returned on failure.
type Extractor interface {
	Extract(filename string, data []byte) (string, error)
}

type extractor struct{}

func NewExtractor() Extractor {
	return &extractor{}
}

// Extract implements Extractor.
func (e *extractor) Extract(filename string, data []byte) (string, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".pdf":
		text, err := extractPDF(data)
		if err != nil {
			return "", fmt.Errorf("failed to extract text from %s: %w", filename, err)
		}
		return text, nil
	case ".txt", ".md":
		if !utf8.Valid(data) {
			return "", fmt.Errorf("failed to extract text from %s: file is not valid UTF-8 text", filename)
		}
		return string(data), nil
	default:
		return "", fmt.Errorf("unsupported file type for %s: expected .pdf, .txt or .md", filename)
	}
}

// extractPDF walks every page in order, joining each page's text items with
// single spaces and separating pages with a newline.
func extractPDF(data []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to open PDF: %w", err)
	}

	var pages []string
	totalPage := reader.NumPage()

	for pageIndex := 1; pageIndex <= totalPage; pageIndex++ {
		page := reader.Page(pageIndex)
		if page.V.IsNull() {
			continue
		}

		content := page.Content()
		items := make([]string, 0, len(content.Text))
		for _, item := range content.Text {
			items = append(items, item.S)
		}
		pages = append(pages, strings.Join(items, " "))
	}

	text := strings.Join(pages, "\n")
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("no text content found in PDF")
	}

	return text, nil
}
