package extract

import (
	"context"
	"fmt"
	"image"
	"os"
	"strconv"
	"strings"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
)

// scriptLangs maps tesseract OSD script names to recognition language
// codes. Unknown scripts fall through to the configured default.
var scriptLangs = map[string]string{
	"Latin":      "eng",
	"Cyrillic":   "rus",
	"Greek":      "ell",
	"Arabic":     "ara",
	"Hebrew":     "heb",
	"Devanagari": "hin",
	"Bengali":    "ben",
	"Gurmukhi":   "pan",
	"Gujarati":   "guj",
	"Oriya":      "ori",
	"Tamil":      "tam",
	"Telugu":     "tel",
	"Kannada":    "kan",
	"Malayalam":  "mal",
	"Sinhala":    "sin",
	"Thai":       "tha",
	"Lao":        "lao",
	"Tibetan":    "bod",
	"Myanmar":    "mya",
	"Khmer":      "khm",
	"Han":        "chi_sim",
	"Japanese":   "jpn",
	"Hangul":     "kor",
	"Ethiopic":   "amh",
	"Armenian":   "hye",
	"Georgian":   "kat",
	"Fraktur":    "deu",
	"Vietnamese": "vie",
}

// extractImage runs OCR with a two-tier language policy:
//
//	attempt 1: detect the writing system, recognize in the mapped language
//	attempt 2: ignore detection, force the default language
//
// Only when both attempts fail does the extraction fail, carrying both
// error messages.
func (e *Extractor) extractImage(ctx context.Context, path string) Result {
	metadata := map[string]any{"fallback_used": false}
	if format, w, h, err := imageDimensions(path); err == nil {
		metadata["format"] = format
		metadata["width"] = w
		metadata["height"] = h
	} else {
		e.logger.Warn("extract.image.dimensions_failed", "path", path, "error", err)
	}

	var firstErr error
	script, err := e.detectScript(ctx, path)
	if err == nil {
		lang := e.cfg.DefaultLang
		if mapped, ok := scriptLangs[script]; ok {
			lang = mapped
		}
		metadata["detected_script"] = script
		text, conf, words, ocrErr := e.recognize(ctx, path, lang)
		if ocrErr == nil {
			metadata["ocr_language"] = lang
			return Result{
				Text:     text,
				Metadata: metadata,
				Structure: map[string]any{
					"ocr_confidence": conf,
					"word_count":     words,
				},
				Success: true,
			}
		}
		firstErr = ocrErr
	} else {
		firstErr = err
	}

	e.logger.Warn("extract.image.fallback", "path", path, "error", firstErr)

	text, conf, words, err := e.recognize(ctx, path, e.cfg.DefaultLang)
	if err != nil {
		return failure(fmt.Sprintf("ocr failed: %v; fallback failed: %v", firstErr, err))
	}
	metadata["ocr_language"] = e.cfg.DefaultLang
	metadata["fallback_used"] = true
	return Result{
		Text:     text,
		Metadata: metadata,
		Structure: map[string]any{
			"ocr_confidence": conf,
			"word_count":     words,
		},
		Success: true,
	}
}

// detectScript runs tesseract OSD (psm 0) and parses the Script line.
func (e *Extractor) detectScript(ctx context.Context, path string) (string, error) {
	args := []string{path, "stdout", "--psm", "0"}
	if e.cfg.TessdataDir != "" {
		args = append(args, "--tessdata-dir", e.cfg.TessdataDir)
	}
	out, errb, err := e.runner.Run(ctx, e.cfg.Tesseract, args...)
	if err != nil {
		return "", fmt.Errorf("script detection: %v: %s", err, truncate(string(errb), 512))
	}
	for _, line := range strings.Split(string(out), "\n") {
		line = strings.TrimSpace(line)
		if after, ok := strings.CutPrefix(line, "Script:"); ok {
			script := strings.TrimSpace(after)
			if script != "" {
				return script, nil
			}
		}
	}
	return "", fmt.Errorf("script detection: no script in OSD output")
}

// recognize runs the text pass and then a TSV pass for per-word
// confidence. A failed TSV pass degrades to zero confidence rather
// than failing the recognition.
func (e *Extractor) recognize(ctx context.Context, path, lang string) (string, float64, int, error) {
	args := []string{path, "stdout", "-l", lang}
	if e.cfg.TessdataDir != "" {
		args = append(args, "--tessdata-dir", e.cfg.TessdataDir)
	}
	out, errb, err := e.runner.Run(ctx, e.cfg.Tesseract, args...)
	if err != nil {
		return "", 0, 0, fmt.Errorf("tesseract -l %s: %v: %s", lang, err, truncate(string(errb), 512))
	}
	text := strings.TrimSpace(string(out))

	conf, words, tsvErr := e.tsvConfidence(ctx, path, lang)
	if tsvErr != nil {
		e.logger.Warn("extract.image.tsv_failed", "path", path, "error", tsvErr)
		conf, words = 0, len(strings.Fields(text))
	}
	return text, conf, words, nil
}

// tsvConfidence reruns tesseract in TSV mode and averages word
// confidences, ignoring non-positive scores.
func (e *Extractor) tsvConfidence(ctx context.Context, path, lang string) (float64, int, error) {
	args := []string{path, "stdout", "-l", lang}
	if e.cfg.PSM > 0 {
		args = append(args, "--psm", strconv.Itoa(e.cfg.PSM))
	}
	if e.cfg.OEM > 0 {
		args = append(args, "--oem", strconv.Itoa(e.cfg.OEM))
	}
	if e.cfg.TessdataDir != "" {
		args = append(args, "--tessdata-dir", e.cfg.TessdataDir)
	}
	args = append(args, "tsv")

	out, _, err := e.runner.Run(ctx, e.cfg.Tesseract, args...)
	if err != nil {
		return 0, 0, fmt.Errorf("tesseract tsv: %w", err)
	}

	var sum float64
	var n, words int
	for i, ln := range strings.Split(string(out), "\n") {
		if i == 0 || ln == "" {
			continue
		}
		cols := strings.Split(ln, "\t")
		if len(cols) < 12 {
			continue
		}
		if strings.TrimSpace(cols[len(cols)-1]) != "" {
			words++
		}
		conf, err := strconv.ParseFloat(cols[10], 64)
		if err != nil || conf <= 0 {
			continue
		}
		sum += conf
		n++
	}
	if n == 0 {
		return 0, words, nil
	}
	return sum / float64(n), words, nil
}

// imageDimensions decodes only the image header.
func imageDimensions(path string) (string, int, int, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", 0, 0, err
	}
	defer f.Close()
	cfg, format, err := image.DecodeConfig(f)
	if err != nil {
		return "", 0, 0, err
	}
	return format, cfg.Width, cfg.Height, nil
}
