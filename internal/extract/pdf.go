package extract

import (
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// extractPDF reads the document once for text, metadata and image
// references, then runs a second table-geometry pass over the page
// text. The table pass is best effort: if it errors the tables list
// stays empty and the extraction still succeeds.
func (e *Extractor) extractPDF(path string) Result {
	f, err := os.Open(path)
	if err != nil {
		return failure(fmt.Sprintf("open pdf: %v", err))
	}
	defer f.Close()

	conf := model.NewDefaultConfiguration()
	ctx, err := api.ReadValidateAndOptimize(f, conf)
	if err != nil {
		return failure(fmt.Sprintf("read pdf: %v", err))
	}

	metadata := map[string]any{
		"page_count":        ctx.PageCount,
		"title":             ctx.Title,
		"author":            ctx.Author,
		"subject":           ctx.Subject,
		"creator":           ctx.Creator,
		"creation_date":     ctx.XRefTable.CreationDate,
		"modification_date": ctx.ModDate,
	}

	var text strings.Builder
	pages := make([]map[string]any, 0, ctx.PageCount)
	images := make([]map[string]any, 0)
	pageTexts := make([]string, 0, ctx.PageCount)

	for pageNr := 1; pageNr <= ctx.PageCount; pageNr++ {
		pageText := pdfPageText(ctx, pageNr)
		pageTexts = append(pageTexts, pageText)
		fmt.Fprintf(&text, "\n--- Page %d ---\n%s", pageNr, pageText)

		imgNrs := pdfcpu.ImageObjNrs(ctx, pageNr)
		pages = append(pages, map[string]any{
			"page_number": pageNr,
			"text_length": len(pageText),
			"has_images":  len(imgNrs) > 0,
			"image_count": len(imgNrs),
		})
		for i, objNr := range imgNrs {
			images = append(images, map[string]any{
				"page":  pageNr,
				"index": i,
				"xref":  objNr,
			})
		}
	}

	structure := map[string]any{
		"pages":  pages,
		"images": images,
		"tables": []map[string]any{},
	}

	if tables, err := detectTables(pageTexts); err != nil {
		e.logger.Warn("extract.pdf.table_pass_failed", "path", path, "error", err)
	} else {
		structure["tables"] = tables
	}

	return Result{
		Text:      text.String(),
		Metadata:  metadata,
		Structure: structure,
		Success:   true,
	}
}

// pdfPageText extracts text from a single page via the pdfcpu content stream.
func pdfPageText(ctx *model.Context, pageNr int) string {
	r, err := pdfcpu.ExtractPageContent(ctx, pageNr)
	if err != nil {
		return ""
	}
	data, err := io.ReadAll(r)
	if err != nil || len(data) == 0 {
		return ""
	}
	return textFromContentStream(data)
}

var pdfStringRe = regexp.MustCompile(`\(((?:\\.|[^)\\])*)\)`)

// textFromContentStream parses PDF content stream text operators
// (Tj, TJ, ', T*). Positioning operators become line breaks so the
// downstream section analyzer sees one line per text row.
func textFromContentStream(data []byte) string {
	var sb strings.Builder
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		switch {
		case strings.HasSuffix(line, "Tj"), strings.HasSuffix(line, "TJ"):
			for _, m := range pdfStringRe.FindAllStringSubmatch(line, -1) {
				sb.WriteString(decodePDFString(m[1]))
			}
		case strings.HasSuffix(line, "'") && strings.Contains(line, "("):
			for _, m := range pdfStringRe.FindAllStringSubmatch(line, -1) {
				sb.WriteByte('\n')
				sb.WriteString(decodePDFString(m[1]))
			}
		case strings.HasSuffix(line, "Td"), strings.HasSuffix(line, "TD"), line == "T*":
			if sb.Len() > 0 {
				sb.WriteByte('\n')
			}
		}
	}
	return strings.TrimSpace(sb.String())
}

// decodePDFString handles basic PDF escape sequences.
func decodePDFString(raw string) string {
	var sb strings.Builder
	for i := 0; i < len(raw); i++ {
		if raw[i] != '\\' || i+1 >= len(raw) {
			sb.WriteByte(raw[i])
			continue
		}
		i++
		switch raw[i] {
		case 'n':
			sb.WriteByte('\n')
		case 'r':
			sb.WriteByte('\r')
		case 't':
			sb.WriteByte('\t')
		case '\\', '(', ')':
			sb.WriteByte(raw[i])
		default:
			if raw[i] >= '0' && raw[i] <= '7' {
				val := int(raw[i] - '0')
				for n := 0; n < 2 && i+1 < len(raw) && raw[i+1] >= '0' && raw[i+1] <= '7'; n++ {
					i++
					val = val*8 + int(raw[i]-'0')
				}
				sb.WriteByte(byte(val))
			} else {
				sb.WriteByte(raw[i])
			}
		}
	}
	return sb.String()
}

var cellSplitRe = regexp.MustCompile(`\s{2,}|\t|\s\|\s`)

// detectTables scans page text for runs of lines that split into the
// same number of columns. Geometry only; cell content is not kept.
func detectTables(pageTexts []string) ([]map[string]any, error) {
	tables := make([]map[string]any, 0)
	for pageIdx, pageText := range pageTexts {
		tableIdx := 0
		rows, cols := 0, 0
		flush := func() {
			if rows >= 2 && cols >= 2 {
				tables = append(tables, map[string]any{
					"page":        pageIdx + 1,
					"table_index": tableIdx,
					"rows":        rows,
					"columns":     cols,
				})
				tableIdx++
			}
			rows, cols = 0, 0
		}
		for _, line := range strings.Split(pageText, "\n") {
			cells := cellSplitRe.Split(strings.TrimSpace(line), -1)
			if len(cells) < 2 {
				flush()
				continue
			}
			if cols != 0 && len(cells) != cols {
				flush()
			}
			cols = len(cells)
			rows++
		}
		flush()
	}
	return tables, nil
}
