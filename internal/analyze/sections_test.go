package analyze

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitSectionsMarkdownAndNumbered(t *testing.T) {
	text := "# Intro\nWelcome to the document.\n\n1. First Point\ndetails here\n\nII. Background\nolder details"

	sections := SplitSections(text)
	assert.Len(t, sections, 3)

	assert.Equal(t, "# Intro", sections[0].Title)
	assert.Equal(t, "Welcome to the document.", sections[0].Content)

	assert.Equal(t, "1. First Point", sections[1].Title)
	assert.Equal(t, "details here", sections[1].Content)

	assert.Equal(t, "II. Background", sections[2].Title)
	assert.Equal(t, "older details", sections[2].Content)
}

func TestSplitSectionsReconstructsContent(t *testing.T) {
	sections := SplitSections("# Intro\nHello world\n\n## Details\nMore text")

	require.Len(t, sections, 2)
	assert.Equal(t, Section{Title: "# Intro", Content: "Hello world"}, sections[0])
	assert.Equal(t, Section{Title: "## Details", Content: "More text"}, sections[1])
}

func TestSplitSectionsLabelHeaders(t *testing.T) {
	text := "SUMMARY:\nall caps label\nBackground Notes:\ntitle case label"

	sections := SplitSections(text)
	assert.Len(t, sections, 2)
	assert.Equal(t, "SUMMARY:", sections[0].Title)
	assert.Equal(t, "all caps label", sections[0].Content)
	assert.Equal(t, "Background Notes:", sections[1].Title)
	assert.Equal(t, "title case label", sections[1].Content)
}

func TestSplitSectionsDropsPreamble(t *testing.T) {
	text := "this line precedes any header\nso does this one\n# Real Section\nbody"

	sections := SplitSections(text)
	assert.Len(t, sections, 1)
	assert.Equal(t, "# Real Section", sections[0].Title)
	assert.Equal(t, "body", sections[0].Content)
}

func TestSplitSectionsNoHeaders(t *testing.T) {
	assert.Empty(t, SplitSections("plain prose with no headings\nsecond line"))
	assert.Empty(t, SplitSections(""))
}

func TestSplitSectionsHeaderAtEnd(t *testing.T) {
	sections := SplitSections("# Trailing")
	assert.Len(t, sections, 1)
	assert.Equal(t, "# Trailing", sections[0].Title)
	assert.Equal(t, "", sections[0].Content)
}

func TestSplitSectionsCarriageReturns(t *testing.T) {
	sections := SplitSections("# Title\r\ncontent line\r\n")
	assert.Len(t, sections, 1)
	assert.Equal(t, "# Title", sections[0].Title)
}
