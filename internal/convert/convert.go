// Package convert renders extracted document text into downloadable
// artifacts. Conversions are local: no network, no remote service. Each
// call produces one file under the artifact directory and reports the
// outcome as a typed result rather than an error.
package convert

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/docuforge/docuforge/internal/common"
)

// ConversionResult is the outcome of one conversion request.
type ConversionResult struct {
	FilePath string `json:"file_path,omitempty"`
	Format   string `json:"format"`
	Success  bool   `json:"success"`
	Err      string `json:"error,omitempty"`
}

type Converter struct {
	cfg    common.ConvertConfig
	logger *slog.Logger
}

func NewConverter(cfg common.ConvertConfig, logger *slog.Logger) *Converter {
	if logger == nil {
		logger = slog.Default()
	}
	return &Converter{cfg: cfg, logger: logger}
}

// SupportedFormats lists the conversion targets in dispatch order.
func (c *Converter) SupportedFormats() []string {
	return []string{"json", "pdf", "docx", "markdown", "html", "txt", "xlsx", "csv"}
}

// Convert renders content into the target format and writes the
// artifact to disk. An unrecognized target fails locally without
// touching the filesystem.
func (c *Converter) Convert(content, title, target string) ConversionResult {
	target = strings.ToLower(strings.TrimSpace(target))
	fail := func(msg string) ConversionResult {
		return ConversionResult{Format: target, Success: false, Err: msg}
	}

	// json wraps whatever it is given, an empty document included; every
	// other target needs something to render
	if target != "json" && strings.TrimSpace(content) == "" {
		return fail("content is empty")
	}

	var (
		path string
		err  error
	)
	switch target {
	case "json":
		path, err = c.toJSON(content, title)
	case "pdf":
		path, err = c.toPDF(content, title)
	case "docx":
		path, err = c.toDocx(content, title)
	case "markdown", "md":
		path, err = c.toMarkdown(content, title)
	case "html":
		path, err = c.toHTML(content, title)
	case "txt":
		path, err = c.toText(content)
	case "xlsx":
		path, err = c.toXLSX(content, title)
	case "csv":
		path, err = c.toCSV(content, title)
	default:
		c.logger.Warn("convert.unsupported", "target", target)
		return fail(fmt.Sprintf("unsupported conversion format: %s", target))
	}
	if err != nil {
		c.logger.Error("convert.failed", "target", target, "error", err)
		return fail(common.NewAppError(common.CodeConversionFailure, "conversion failed", err).Error())
	}

	c.logger.Info("convert.ok", "target", target, "path", path)
	return ConversionResult{FilePath: path, Format: target, Success: true}
}

// artifactPath builds the destination path for one artifact, creating
// the artifact directory on first use. An unset directory falls back to
// a per-process temp dir so conversions still work without config.
func (c *Converter) artifactPath(title, ext string) (string, error) {
	dir := c.cfg.ArtifactDir
	if dir == "" {
		tmp, err := os.MkdirTemp("", "docuforge-artifacts-")
		if err != nil {
			return "", fmt.Errorf("create artifact dir: %w", err)
		}
		c.cfg.ArtifactDir = tmp
		dir = tmp
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create artifact dir: %w", err)
	}
	name := fmt.Sprintf("%s_%s.%s", slugify(title), time.Now().UTC().Format("20060102T150405"), ext)
	return filepath.Join(dir, name), nil
}

// slugify reduces a title to a safe filename stem.
func slugify(title string) string {
	title = strings.TrimSpace(strings.ToLower(title))
	if title == "" {
		return "document"
	}
	var b strings.Builder
	for _, r := range title {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == ' ', r == '-', r == '_', r == '.':
			b.WriteByte('_')
		}
	}
	s := strings.Trim(b.String(), "_")
	if s == "" {
		return "document"
	}
	if len(s) > 48 {
		s = s[:48]
	}
	return s
}
