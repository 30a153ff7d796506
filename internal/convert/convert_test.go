package convert

import (
	"archive/zip"
	"encoding/json"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/docuforge/docuforge/internal/common"
)

func newTestConverter(t *testing.T) *Converter {
	t.Helper()
	return NewConverter(common.ConvertConfig{ArtifactDir: t.TempDir()}, nil)
}

const sampleContent = "# Overview\nThe project shipped on 2024-03-01.\n\n# Budget\nTotal spend was 4,500.50 dollars."

func TestConvertUnsupportedFormat(t *testing.T) {
	c := newTestConverter(t)
	res := c.Convert(sampleContent, "report", "wav")

	assert.False(t, res.Success)
	assert.Contains(t, res.Err, "unsupported conversion format: wav")
	assert.Empty(t, res.FilePath)
}

func TestConvertEmptyContent(t *testing.T) {
	c := newTestConverter(t)
	res := c.Convert("   ", "report", "txt")

	assert.False(t, res.Success)
	assert.Equal(t, "content is empty", res.Err)
}

func TestConvertTxtIsByteExact(t *testing.T) {
	c := newTestConverter(t)
	res := c.Convert(sampleContent, "report", "txt")
	require.True(t, res.Success, res.Err)

	data, err := os.ReadFile(res.FilePath)
	require.NoError(t, err)
	assert.Equal(t, sampleContent, string(data))
}

func TestConvertJSONStructure(t *testing.T) {
	c := newTestConverter(t)
	res := c.Convert(sampleContent, "report", "json")
	require.True(t, res.Success, res.Err)

	data, err := os.ReadFile(res.FilePath)
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal(data, &doc))

	info, ok := doc["document_info"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "report", info["title"])
	assert.Equal(t, float64(2), info["section_count"])
	assert.Equal(t, float64(4), info["paragraph_count"])
	assert.Equal(t, sampleContent, doc["content"])

	sections, ok := doc["sections"].([]any)
	require.True(t, ok)
	require.Len(t, sections, 2)
	first := sections[0].(map[string]any)
	assert.Equal(t, "# Overview", first["title"])

	keyInfo, ok := doc["key_information"].(map[string]any)
	require.True(t, ok)
	dates := keyInfo["dates"].([]any)
	assert.Contains(t, dates, "2024-03-01")
}

func TestConvertJSONWithoutSections(t *testing.T) {
	c := newTestConverter(t)
	res := c.Convert("plain prose, no headings at all", "notes", "json")
	require.True(t, res.Success, res.Err)

	data, err := os.ReadFile(res.FilePath)
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal(data, &doc))
	assert.Equal(t, "plain prose, no headings at all", doc["content"])
}

func TestConvertJSONEmptyContent(t *testing.T) {
	c := newTestConverter(t)
	res := c.Convert("", "empty", "json")
	require.True(t, res.Success, res.Err)

	data, err := os.ReadFile(res.FilePath)
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal(data, &doc))
	assert.Equal(t, "", doc["content"])

	info := doc["document_info"].(map[string]any)
	assert.Equal(t, float64(0), info["section_count"])
	assert.Equal(t, float64(0), info["paragraph_count"])
	assert.Equal(t, float64(0), info["character_count"])
}

func TestConvertJSONKeepsPreamble(t *testing.T) {
	c := newTestConverter(t)
	content := "intro text before any heading\n# Head\nbody"
	res := c.Convert(content, "notes", "json")
	require.True(t, res.Success, res.Err)

	data, err := os.ReadFile(res.FilePath)
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal(data, &doc))

	// the section breakdown drops the preamble, the full text keeps it
	assert.Equal(t, content, doc["content"])
	sections := doc["sections"].([]any)
	require.Len(t, sections, 1)
	assert.Equal(t, "# Head", sections[0].(map[string]any)["title"])
}

func TestConvertHTMLSections(t *testing.T) {
	c := newTestConverter(t)
	res := c.Convert(sampleContent, "report & summary", "html")
	require.True(t, res.Success, res.Err)

	data, err := os.ReadFile(res.FilePath)
	require.NoError(t, err)
	page := string(data)

	assert.Contains(t, page, "<h1>report &amp; summary</h1>")
	assert.Contains(t, page, "<h2># Overview</h2>")
	assert.Contains(t, page, "<h2># Budget</h2>")
	assert.Contains(t, page, "<style>")
}

func TestConvertHTMLSingleBlock(t *testing.T) {
	c := newTestConverter(t)
	res := c.Convert("no headings here\n\nsecond paragraph", "notes", "html")
	require.True(t, res.Success, res.Err)

	data, err := os.ReadFile(res.FilePath)
	require.NoError(t, err)
	page := string(data)

	assert.NotContains(t, page, "<h2>")
	assert.Contains(t, page, "<p>no headings here</p>")
	assert.Contains(t, page, "<p>second paragraph</p>")
}

func TestConvertMarkdown(t *testing.T) {
	c := newTestConverter(t)
	res := c.Convert(sampleContent, "report", "markdown")
	require.True(t, res.Success, res.Err)

	data, err := os.ReadFile(res.FilePath)
	require.NoError(t, err)
	md := string(data)

	assert.True(t, strings.HasPrefix(md, "# report\n"))
	assert.Contains(t, md, "## # Overview")
	assert.Contains(t, md, "The project shipped")
}

func TestConvertPDFProducesFile(t *testing.T) {
	c := newTestConverter(t)
	res := c.Convert(sampleContent, "report", "pdf")
	require.True(t, res.Success, res.Err)

	data, err := os.ReadFile(res.FilePath)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "%PDF-"))
}

func TestConvertDocxPackage(t *testing.T) {
	c := newTestConverter(t)
	res := c.Convert("one line\nanother line", "report", "docx")
	require.True(t, res.Success, res.Err)

	zr, err := zip.OpenReader(res.FilePath)
	require.NoError(t, err)
	defer zr.Close()

	names := map[string]bool{}
	for _, f := range zr.File {
		names[f.Name] = true
	}
	assert.True(t, names["[Content_Types].xml"])
	assert.True(t, names["_rels/.rels"])
	assert.True(t, names["word/document.xml"])
}

func TestConvertCSVRows(t *testing.T) {
	c := newTestConverter(t)
	res := c.Convert(sampleContent, "report", "csv")
	require.True(t, res.Success, res.Err)

	data, err := os.ReadFile(res.FilePath)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")

	assert.Equal(t, "Section,Content,Word Count", lines[0])
	assert.Contains(t, string(data), "# Overview")
}

func TestConvertXLSXProducesFile(t *testing.T) {
	c := newTestConverter(t)
	res := c.Convert(sampleContent, "report", "xlsx")
	require.True(t, res.Success, res.Err)

	fi, err := os.Stat(res.FilePath)
	require.NoError(t, err)
	assert.Greater(t, fi.Size(), int64(0))
}

func TestSlugify(t *testing.T) {
	assert.Equal(t, "quarterly_report_q3", slugify("Quarterly Report Q3"))
	assert.Equal(t, "document", slugify(""))
	assert.Equal(t, "document", slugify("!!!"))
}
