package convert

import (
	"encoding/json"
	"os"
	"strings"
	"time"

	"github.com/docuforge/docuforge/internal/analyze"
)

// toJSON writes a structured export: document info, the full text,
// section breakdown, and the key-information scan. The full text always
// rides along because section splitting drops any preamble before the
// first header. When the analysis yields nothing (no headers, nothing
// extracted, even an empty document) the export still succeeds with a
// minimal shape, so JSON is the one target that cannot fail.
func (c *Converter) toJSON(content, title string) (string, error) {
	sections := analyze.SplitSections(content)
	info := analyze.ExtractKeyInfo(content)

	sectionDocs := make([]map[string]any, 0, len(sections))
	for _, s := range sections {
		sectionDocs = append(sectionDocs, map[string]any{
			"title":   s.Title,
			"content": s.Content,
		})
	}

	paragraphs := 0
	for _, line := range strings.Split(content, "\n") {
		if strings.TrimSpace(line) != "" {
			paragraphs++
		}
	}

	doc := map[string]any{
		"document_info": map[string]any{
			"title":           title,
			"converted_at":    time.Now().UTC().Format(time.RFC3339),
			"section_count":   len(sections),
			"paragraph_count": paragraphs,
			"word_count":      len(strings.Fields(content)),
			"character_count": len(content),
		},
		"content":         content,
		"sections":        sectionDocs,
		"key_information": info,
	}

	bs, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		// structure is marshal-safe; keep the export alive regardless
		bs, _ = json.Marshal(map[string]any{"title": title, "content": content})
	}

	path, err := c.artifactPath(title, "json")
	if err != nil {
		return "", err
	}
	return path, os.WriteFile(path, bs, 0o644)
}
