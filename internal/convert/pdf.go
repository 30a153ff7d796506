package convert

import (
	"strings"

	"github.com/go-pdf/fpdf"
)

// toPDF renders content as a simple A4 document: title header followed
// by body paragraphs split on blank lines. Non-Latin-1 runes are
// replaced by the core-font translator rather than failing the export.
func (c *Converter) toPDF(content, title string) (string, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(20, 20, 20)
	pdf.AddPage()

	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetFont("Arial", "B", 16)
	pdf.MultiCell(0, 8, tr(title), "", "L", false)
	pdf.Ln(4)

	pdf.SetFont("Arial", "", 11)
	for _, para := range strings.Split(content, "\n\n") {
		para = strings.TrimSpace(para)
		if para == "" {
			continue
		}
		pdf.MultiCell(0, 6, tr(para), "", "L", false)
		pdf.Ln(3)
	}

	path, err := c.artifactPath(title, "pdf")
	if err != nil {
		return "", err
	}
	return path, pdf.OutputFileAndClose(path)
}
