package extract

import (
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
)

// Extractor turns an uploaded file into raw text for chunking.
type Extractor interface {
	Extract(filePath string) (string, error)
}

// PDFExtractor extracts plain text from a PDF, one call per upload.
type PDFExtractor struct{}

func NewPDFExtractor() *PDFExtractor {
	return &PDFExtractor{}
}

func (PDFExtractor) Extract(filePath string) (string, error) {
	f, rdr, err := pdf.Open(filePath)
	if err != nil {
		return "", fmt.Errorf("open pdf: %w", err)
	}
	defer f.Close()

	var pages []string
	n := rdr.NumPage()
	for i := 1; i <= n; i++ {
		pg := rdr.Page(i)
		if pg.V.IsNull() {
			continue
		}

		txt, err := pg.GetPlainText(nil)
		if err != nil {
			// Image-only or problematic page, skip it.
			continue
		}
		s := strings.TrimSpace(txt)
		if s == "" {
			continue
		}
		pages = append(pages, s)
	}

	if len(pages) == 0 {
		return "", fmt.Errorf("no extractable text in %s", filePath)
	}

	return strings.Join(pages, "\n"), nil
}
