package extract

import (
	"archive/zip"
	"encoding/xml"
	"fmt"
	"io"
	"strings"
)

// extractDocx parses word/document.xml from the ZIP archive: body
// paragraphs in order with their style names, then tables flattened
// into the text stream one row per line. Document metadata comes from
// docProps/core.xml.
func (e *Extractor) extractDocx(path string) Result {
	r, err := zip.OpenReader(path)
	if err != nil {
		return failure(fmt.Sprintf("open docx: %v", err))
	}
	defer r.Close()

	var docFile, propsFile *zip.File
	for _, f := range r.File {
		switch f.Name {
		case "word/document.xml":
			docFile = f
		case "docProps/core.xml":
			propsFile = f
		}
	}
	if docFile == nil {
		return failure("word/document.xml not found in archive")
	}

	rc, err := docFile.Open()
	if err != nil {
		return failure(fmt.Sprintf("open document.xml: %v", err))
	}
	defer rc.Close()

	paragraphs, tables, err := walkDocxBody(rc)
	if err != nil {
		return failure(fmt.Sprintf("parse document.xml: %v", err))
	}

	var text strings.Builder
	paraInfos := make([]map[string]any, 0, len(paragraphs))
	for i, p := range paragraphs {
		text.WriteString(p.text)
		text.WriteByte('\n')
		paraInfos = append(paraInfos, map[string]any{
			"index":       i,
			"text_length": len(p.text),
			"style":       p.style,
		})
	}

	tableInfos := make([]map[string]any, 0, len(tables))
	for i, t := range tables {
		cols := 0
		if len(t.rows) > 0 {
			cols = len(t.rows[0])
		}
		tableInfos = append(tableInfos, map[string]any{
			"index":   i,
			"rows":    len(t.rows),
			"columns": cols,
		})
		fmt.Fprintf(&text, "\n--- Table %d ---\n", i+1)
		for _, row := range t.rows {
			text.WriteString(strings.Join(row, " | "))
			text.WriteByte('\n')
		}
	}

	metadata := map[string]any{
		"paragraph_count": len(paragraphs),
		"table_count":     len(tables),
		"title":           "",
		"author":          "",
		"subject":         "",
		"created":         "",
		"modified":        "",
	}
	if propsFile != nil {
		if pc, err := propsFile.Open(); err == nil {
			if props, err := parseCoreProps(pc); err == nil {
				metadata["title"] = props.Title
				metadata["author"] = props.Creator
				metadata["subject"] = props.Subject
				metadata["created"] = props.Created
				metadata["modified"] = props.Modified
			}
			pc.Close()
		}
	}

	return Result{
		Text:     text.String(),
		Metadata: metadata,
		Structure: map[string]any{
			"paragraphs": paraInfos,
			"tables":     tableInfos,
			"images":     []map[string]any{},
		},
		Success: true,
	}
}

type docxParagraph struct {
	text  string
	style string
}

type docxTable struct {
	rows [][]string
}

// walkDocxBody streams the body XML. Paragraphs inside tables belong
// to their cell, not to the top-level paragraph list, matching how
// word processors present the document.
func walkDocxBody(r io.Reader) ([]docxParagraph, []docxTable, error) {
	dec := xml.NewDecoder(r)

	var paragraphs []docxParagraph
	var tables []docxTable

	var tblDepth int
	var inParagraph bool
	var paraText strings.Builder
	var paraStyle string

	var curTable *docxTable
	var curRow []string
	var cellText *strings.Builder

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, nil, err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "tbl":
				tblDepth++
				if tblDepth == 1 {
					tables = append(tables, docxTable{})
					curTable = &tables[len(tables)-1]
				}
			case "tr":
				if tblDepth == 1 {
					curRow = nil
				}
			case "tc":
				if tblDepth == 1 {
					cellText = &strings.Builder{}
				}
			case "p":
				if tblDepth == 0 {
					inParagraph = true
					paraText.Reset()
					paraStyle = "Normal"
				}
			case "pStyle":
				if inParagraph {
					for _, attr := range t.Attr {
						if attr.Name.Local == "val" {
							paraStyle = attr.Value
						}
					}
				}
			}

		case xml.CharData:
			if tblDepth > 0 && cellText != nil {
				cellText.Write(t)
			} else if inParagraph {
				paraText.Write(t)
			}

		case xml.EndElement:
			switch t.Name.Local {
			case "tbl":
				tblDepth--
				if tblDepth == 0 {
					curTable = nil
				}
			case "tr":
				if tblDepth == 1 && curTable != nil {
					curTable.rows = append(curTable.rows, curRow)
					curRow = nil
				}
			case "tc":
				if tblDepth == 1 && cellText != nil {
					curRow = append(curRow, strings.TrimSpace(cellText.String()))
					cellText = nil
				}
			case "p":
				if tblDepth == 0 && inParagraph {
					inParagraph = false
					paragraphs = append(paragraphs, docxParagraph{
						text:  strings.TrimSpace(paraText.String()),
						style: paraStyle,
					})
				}
			}
		}
	}

	return paragraphs, tables, nil
}

type coreProps struct {
	Title    string `xml:"title"`
	Creator  string `xml:"creator"`
	Subject  string `xml:"subject"`
	Created  string `xml:"created"`
	Modified string `xml:"modified"`
}

func parseCoreProps(r io.Reader) (coreProps, error) {
	var props coreProps
	err := xml.NewDecoder(r).Decode(&props)
	return props, err
}
