package extract

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"errors"
	"io"
	"log"
	"strings"

	"github.com/olekukonko/tablewriter"
)

// Minimal OOXML shapes: enough of word/document.xml to pull paragraph runs
// and table cells. Namespace-agnostic, the decoder matches on local names.
type docxDocument struct {
	Body docxBody `xml:"body"`
}

type docxBody struct {
	Paragraphs []docxParagraph `xml:"p"`
	Tables     []docxTable     `xml:"tbl"`
}

type docxParagraph struct {
	Runs []string `xml:"r>t"`
}

type docxTable struct {
	Rows []docxRow `xml:"tr"`
}

type docxRow struct {
	Cells []docxCell `xml:"tc"`
}

type docxCell struct {
	Runs []string `xml:"p>r>t"`
}

// docxText joins paragraph texts with newlines. When the document carries
// tables they are appended after a [TABLES] marker, each rendered as an
// aligned text grid with the first row as header.
func (e *Extractor) docxText(data []byte) string {
	doc, err := parseDocx(data)
	if err != nil {
		log.Printf("extract: docx parse failed: %v", err)
		return ""
	}

	var sb strings.Builder
	for _, p := range doc.Body.Paragraphs {
		sb.WriteString(strings.Join(p.Runs, ""))
		sb.WriteString("\n")
	}

	if len(doc.Body.Tables) > 0 {
		sb.WriteString("\n[TABLES]\n")
		for _, tbl := range doc.Body.Tables {
			renderTable(&sb, tbl)
		}
	}

	return sb.String()
}

func parseDocx(data []byte) (*docxDocument, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, err
	}

	for _, f := range zr.File {
		if f.Name != "word/document.xml" {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil, err
		}
		defer rc.Close()

		raw, err := io.ReadAll(rc)
		if err != nil {
			return nil, err
		}

		var doc docxDocument
		if err := xml.Unmarshal(raw, &doc); err != nil {
			return nil, err
		}
		return &doc, nil
	}

	return nil, errors.New("word/document.xml not found")
}

func renderTable(sb *strings.Builder, tbl docxTable) {
	if len(tbl.Rows) == 0 {
		return
	}

	grid := make([][]string, 0, len(tbl.Rows))
	for _, row := range tbl.Rows {
		cells := make([]string, 0, len(row.Cells))
		for _, cell := range row.Cells {
			cells = append(cells, strings.TrimSpace(strings.Join(cell.Runs, " ")))
		}
		grid = append(grid, cells)
	}

	w := tablewriter.NewWriter(sb)
	w.SetAutoFormatHeaders(false)
	w.SetAutoWrapText(false)
	w.SetHeader(grid[0])
	for _, row := range grid[1:] {
		w.Append(row)
	}
	w.Render()
	sb.WriteString("\n")
}
