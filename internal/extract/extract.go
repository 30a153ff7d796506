// Package extract turns uploaded files into text plus metadata and
// structure. One extractor per format family:
//
//   - .pdf          — pdfcpu page-text extraction with a table pass
//   - .docx / .doc  — word/document.xml paragraph and table walk
//   - raster images — tesseract OCR with script detection
//
// Extractors never propagate errors to callers: every failure is
// converted into a Result with Success=false at this boundary.
package extract

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/docuforge/docuforge/internal/common"
)

// imageExts are the raster formats handed to OCR.
var imageExts = map[string]struct{}{
	"png": {}, "jpg": {}, "jpeg": {}, "gif": {}, "bmp": {}, "tiff": {},
}

// Extractor dispatches files to per-format extraction by declared type tag.
type Extractor struct {
	cfg    common.OCRConfig
	runner Runner
	logger *slog.Logger
}

func NewExtractor(cfg common.OCRConfig, logger *slog.Logger) *Extractor {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.Tesseract == "" {
		cfg.Tesseract = "tesseract"
	}
	if cfg.DefaultLang == "" {
		cfg.DefaultLang = "eng"
	}
	return &Extractor{cfg: cfg, runner: execRunner{}, logger: logger}
}

// SupportedTypes returns the accepted file-type tags.
func SupportedTypes() []string {
	return []string{"pdf", "docx", "doc", "png", "jpg", "jpeg", "gif", "bmp", "tiff"}
}

// Extract runs the extractor matching the declared type tag. The tag
// comes from the upload's extension, not from sniffing the content.
func (e *Extractor) Extract(ctx context.Context, path, fileType string) (res Result) {
	// PDF parsing of hostile input can panic deep inside the reader;
	// the extractor boundary turns that into a failed Result too.
	defer func() {
		if r := recover(); r != nil {
			e.logger.Error("extract.panic", "path", path, "type", fileType, "panic", r)
			res = failure(fmt.Sprintf("extraction failed: %v", r))
		}
	}()

	tag := strings.ToLower(strings.TrimPrefix(fileType, "."))
	e.logger.Debug("extract.start", "path", path, "type", tag)

	switch {
	case tag == "pdf":
		res = e.extractPDF(path)
	case tag == "docx" || tag == "doc":
		res = e.extractDocx(path)
	default:
		if _, ok := imageExts[tag]; ok {
			res = e.extractImage(ctx, path)
		} else {
			e.logger.Error("extract.unsupported", "type", tag)
			return failure(fmt.Sprintf("unsupported file type: %s", fileType))
		}
	}

	if res.Success {
		e.logger.Info("extract.ok", "path", path, "type", tag, "chars", len(res.Text))
	} else {
		e.logger.Error("extract.failed", "path", path, "type", tag, "error", res.Err)
	}
	return res
}
