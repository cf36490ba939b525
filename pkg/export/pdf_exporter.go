package export

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"
)

const unicodeFont = "planner"

// PDFExporter renders datasets into a landscape table.
type PDFExporter struct {
	fontPath string
}

// NewPDFExporter constructs a PDF exporter. fontPath points at a TTF font with
// Cyrillic glyphs; without it the core Arial font is used and non-Latin text is lost.
func NewPDFExporter(fontPath string) *PDFExporter {
	return &PDFExporter{fontPath: fontPath}
}

// Render creates a PDF document with an optional title and table body.
func (e *PDFExporter) Render(data Dataset, title string) ([]byte, error) {
	if len(data.Headers) == 0 {
		return nil, fmt.Errorf("pdf requires at least one header")
	}
	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.SetMargins(10, 12, 10)

	family := "Arial"
	translate := pdf.UnicodeTranslatorFromDescriptor("")
	if e.fontPath != "" {
		pdf.AddUTF8Font(unicodeFont, "", e.fontPath)
		if err := pdf.Error(); err != nil {
			return nil, fmt.Errorf("load pdf font %s: %w", e.fontPath, err)
		}
		family = unicodeFont
		translate = func(s string) string { return s }
	}

	pdf.AddPage()
	if title != "" {
		pdf.SetFont(family, "", 14)
		pdf.CellFormat(0, 10, translate(title), "", 1, "C", false, 0, "")
		pdf.Ln(3)
	}

	pageWidth, _ := pdf.GetPageSize()
	left, _, right, _ := pdf.GetMargins()
	colWidth := (pageWidth - left - right) / float64(len(data.Headers))

	pdf.SetFont(family, "", 10)
	pdf.SetFillColor(230, 230, 230)
	for _, header := range data.Headers {
		pdf.CellFormat(colWidth, 8, translate(header), "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont(family, "", 9)
	for _, row := range data.Rows {
		for _, header := range data.Headers {
			pdf.CellFormat(colWidth, 7, translate(row[header]), "1", 0, "", false, 0, "")
		}
		pdf.Ln(-1)
	}

	buf := &bytes.Buffer{}
	if err := pdf.Output(buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}
