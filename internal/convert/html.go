package convert

import (
	"fmt"
	"html"
	"os"
	"strings"

	"github.com/docuforge/docuforge/internal/analyze"
)

const htmlStyle = `body { font-family: Georgia, serif; max-width: 800px; margin: 2em auto; line-height: 1.6; color: #222; }
h1 { border-bottom: 2px solid #444; padding-bottom: 0.3em; }
h2 { color: #444; margin-top: 1.5em; }
.section { margin-bottom: 1.5em; }
p { margin: 0.8em 0; }`

// toHTML renders a standalone styled page. Documents with more than one
// detected section get per-section blocks; otherwise the content is
// emitted as plain paragraphs.
func (c *Converter) toHTML(content, title string) (string, error) {
	var b strings.Builder
	b.WriteString("<!DOCTYPE html>\n<html>\n<head>\n")
	fmt.Fprintf(&b, "<meta charset=\"utf-8\">\n<title>%s</title>\n", html.EscapeString(title))
	fmt.Fprintf(&b, "<style>\n%s\n</style>\n", htmlStyle)
	b.WriteString("</head>\n<body>\n")
	fmt.Fprintf(&b, "<h1>%s</h1>\n", html.EscapeString(title))

	sections := analyze.SplitSections(content)
	if len(sections) > 1 {
		for _, s := range sections {
			b.WriteString("<div class=\"section\">\n")
			fmt.Fprintf(&b, "<h2>%s</h2>\n", html.EscapeString(s.Title))
			writeHTMLParagraphs(&b, s.Content)
			b.WriteString("</div>\n")
		}
	} else {
		writeHTMLParagraphs(&b, content)
	}
	b.WriteString("</body>\n</html>\n")

	path, err := c.artifactPath(title, "html")
	if err != nil {
		return "", err
	}
	return path, os.WriteFile(path, []byte(b.String()), 0o644)
}

func writeHTMLParagraphs(b *strings.Builder, text string) {
	for _, para := range strings.Split(text, "\n\n") {
		para = strings.TrimSpace(para)
		if para == "" {
			continue
		}
		fmt.Fprintf(b, "<p>%s</p>\n", html.EscapeString(para))
	}
}
