package source

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/ledongthuc/pdf"
)

// PDFExtractor extracts text from PDF invoices row by row, so billing table
// rows come out as single lines the cost patterns can anchor on.
type PDFExtractor struct{}

// Format returns the extractor name.
func (e *PDFExtractor) Format() string { return "pdf" }

// Extract reads a whole PDF and returns its text, one table row or text row
// per line, pages in order. Pages that fail to decode are skipped; only a
// document with no readable pages at all is an error.
func (e *PDFExtractor) Extract(r io.Reader) (string, error) {
	// The PDF reader needs random access and the total size.
	buf := new(bytes.Buffer)
	size, err := buf.ReadFrom(r)
	if err != nil {
		return "", fmt.Errorf("buffering PDF: %w", err)
	}

	reader, err := pdf.NewReader(bytes.NewReader(buf.Bytes()), size)
	if err != nil {
		return "", fmt.Errorf("opening PDF: %w", err)
	}

	var text strings.Builder
	pagesRead := 0
	for pageNum := 1; pageNum <= reader.NumPage(); pageNum++ {
		page := reader.Page(pageNum)
		if page.V.IsNull() {
			continue
		}
		rows, err := page.GetTextByRow()
		if err != nil {
			continue
		}
		pagesRead++
		for _, row := range rows {
			var line strings.Builder
			for _, word := range row.Content {
				if line.Len() > 0 {
					line.WriteString(" ")
				}
				line.WriteString(word.S)
			}
			text.WriteString(strings.TrimRight(line.String(), " "))
			text.WriteString("\n")
		}
	}

	if pagesRead == 0 {
		return "", fmt.Errorf("no readable pages in PDF")
	}
	return text.String(), nil
}
