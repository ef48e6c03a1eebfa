package shoppinglist

import (
	"bytes"
	"time"

	"github.com/go-pdf/fpdf"
)

const (
	documentFontSize   = 12
	documentLineHeight = 18
	documentMargin     = 72
)

// documentTimestamp 固定文档时间戳，相同输入不因导出时间产生差异
var documentTimestamp = time.Date(2000, time.January, 1, 0, 0, 0, 0, time.UTC)

// renderDocument Letter 纸张，标题与每个食材各占一段
func renderDocument(list List, header string) ([]byte, error) {
	font, err := documentFont()
	if err != nil {
		return nil, err
	}

	pdf := fpdf.New("P", "pt", "Letter", "")
	pdf.SetMargins(documentMargin, documentMargin, documentMargin)
	pdf.SetAutoPageBreak(true, documentMargin)
	pdf.SetCreationDate(documentTimestamp)
	pdf.SetModificationDate(documentTimestamp)
	pdf.SetCatalogSort(true)
	pdf.AddUTF8FontFromBytes(documentFontFamily, "", font)
	pdf.SetFont(documentFontFamily, "", documentFontSize)
	pdf.AddPage()

	paragraphs := make([]string, 0, len(list.Lines)+1)
	paragraphs = append(paragraphs, header)
	for _, line := range list.Lines {
		paragraphs = append(paragraphs, formatLine(line))
	}
	for _, text := range paragraphs {
		pdf.MultiCell(0, documentLineHeight, text, "", "L", false)
	}

	if err := pdf.Error(); err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
