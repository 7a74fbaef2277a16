package pdftext

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
)

// Extractor decodes PDF price lists into plain text, one line per visual
// row, pages in order.
type Extractor struct{}

func New() *Extractor {
	return &Extractor{}
}

func (e *Extractor) ContentTypes() []string {
	return []string{"application/pdf"}
}

func (e *Extractor) Extract(_ context.Context, data []byte) (text string, err error) {
	// The pdf package panics on some malformed documents; a corrupt
	// upload must surface as an error, not take down the request.
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("decode pdf: %v", r)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("open pdf: %w", err)
	}

	var b strings.Builder
	for pageNum := 1; pageNum <= reader.NumPage(); pageNum++ {
		page := reader.Page(pageNum)
		if page.V.IsNull() {
			continue
		}
		for _, row := range groupIntoRows(page.Content().Text) {
			b.WriteString(strings.Join(row.cells, " "))
			b.WriteByte('\n')
		}
	}
	return b.String(), nil
}

type textRow struct {
	y     float64
	cells []string
}

// groupIntoRows reassembles the PDF text fragments into visual rows: the
// extractor emits word- or character-level fragments, and fragments whose
// Y coordinates are within tolerance belong to the same printed line.
func groupIntoRows(fragments []pdf.Text) []textRow {
	const tolerance = 2.0

	var rows []textRow
	for _, fragment := range fragments {
		cell := strings.TrimSpace(fragment.S)
		if cell == "" {
			continue
		}

		placed := false
		for i := range rows {
			if diff := rows[i].y - fragment.Y; diff < tolerance && diff > -tolerance {
				rows[i].cells = append(rows[i].cells, cell)
				placed = true
				break
			}
		}
		if !placed {
			rows = append(rows, textRow{y: fragment.Y, cells: []string{cell}})
		}
	}
	return rows
}
