package convert

import (
	"fmt"
	"os"
	"strings"

	"github.com/docuforge/docuforge/internal/analyze"
)

// toText writes the content bytes exactly as extracted. No reflow, no
// normalization.
func (c *Converter) toText(content string) (string, error) {
	path, err := c.artifactPath("document", "txt")
	if err != nil {
		return "", err
	}
	return path, os.WriteFile(path, []byte(content), 0o644)
}

// toMarkdown writes the title as a top-level heading with each detected
// section demoted under it. Content without sections passes through
// unchanged below the title.
func (c *Converter) toMarkdown(content, title string) (string, error) {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", title)

	sections := analyze.SplitSections(content)
	if len(sections) > 0 {
		for _, s := range sections {
			fmt.Fprintf(&b, "## %s\n\n%s\n\n", strings.TrimSpace(s.Title), s.Content)
		}
	} else {
		b.WriteString(content)
		b.WriteString("\n")
	}

	path, err := c.artifactPath(title, "md")
	if err != nil {
		return "", err
	}
	return path, os.WriteFile(path, []byte(b.String()), 0o644)
}
