// Package analyze provides pure text analysis: heuristic section
// segmentation and regex-based key-fact extraction. No I/O, never
// fails; empty input yields empty output.
package analyze

import (
	"regexp"
	"strings"
)

// Section is a titled span of document text identified by a
// heading-like line. Content keeps its original line breaks.
type Section struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// Header-like lines. A line matching any of these starts a new section.
var headerPatterns = []*regexp.Regexp{
	regexp.MustCompile(`^#{1,6}\s+.+`),            // markdown headers
	regexp.MustCompile(`^[A-Z][A-Z0-9\s]*:$`),     // ALL-CAPS label
	regexp.MustCompile(`^[A-Z][A-Za-z0-9\s]*:$`),  // Title-Case label
	regexp.MustCompile(`^\d+\.\s+.+`),             // numbered heading
	regexp.MustCompile(`^[IVXLCDM]+\.\s+.+`),      // roman-numeral heading
}

func isHeaderLine(line string) bool {
	for _, p := range headerPatterns {
		if p.MatchString(line) {
			return true
		}
	}
	return false
}

// SplitSections scans lines top to bottom; each header line starts a
// new section titled with the header line itself, and all following
// lines until the next header become its content. Text before the
// first header is dropped.
func SplitSections(text string) []Section {
	var sections []Section
	var title string
	var content []string
	open := false

	flush := func() {
		if open {
			sections = append(sections, Section{
				Title:   title,
				Content: strings.TrimSpace(strings.Join(content, "\n")),
			})
		}
	}

	for _, line := range strings.Split(text, "\n") {
		if isHeaderLine(strings.TrimRight(line, "\r")) {
			flush()
			title = strings.TrimRight(line, "\r")
			content = content[:0]
			open = true
			continue
		}
		if open {
			content = append(content, line)
		}
	}
	flush()
	return sections
}
