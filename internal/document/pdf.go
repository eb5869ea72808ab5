package document

import (
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
)

// PDFSource extracts plain text from PDF files
type PDFSource struct{}

// NewPDFSource creates a new PDF source
func NewPDFSource() *PDFSource {
	return &PDFSource{}
}

// Name returns the source name
func (s *PDFSource) Name() string {
	return "pdf"
}

// CanHandle checks if this source can handle the given file
func (s *PDFSource) CanHandle(path string) bool {
	return hasExt(path, ".pdf")
}

// ExtractText extracts text page by page. Pages that cannot be read are
// skipped, so a document with only unreadable pages yields empty text.
func (s *PDFSource) ExtractText(path string) (string, int, error) {
	f, reader, err := pdf.Open(path)
	if err != nil {
		return "", 0, fmt.Errorf("open pdf: %w", err)
	}
	defer func() { _ = f.Close() }()

	numPages := reader.NumPage()

	var buf strings.Builder
	for i := 1; i <= numPages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		if strings.TrimSpace(text) != "" {
			buf.WriteString(text)
			buf.WriteString("\n")
		}
	}

	return buf.String(), numPages, nil
}
