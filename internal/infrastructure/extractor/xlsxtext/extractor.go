package xlsxtext

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Extractor decodes XLSX price lists. Cells in a row are joined with a
// pipe so multi-column sheets parse the same way as pipe-delimited text.
type Extractor struct{}

func New() *Extractor {
	return &Extractor{}
}

func (e *Extractor) ContentTypes() []string {
	return []string{
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		"application/vnd.ms-excel",
	}
}

func (e *Extractor) Extract(_ context.Context, data []byte) (string, error) {
	file, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("open xlsx: %w", err)
	}
	defer file.Close()

	var b strings.Builder
	for _, sheet := range file.GetSheetList() {
		rows, err := file.GetRows(sheet)
		if err != nil {
			return "", fmt.Errorf("read sheet %q: %w", sheet, err)
		}
		for _, cells := range rows {
			trimmed := make([]string, 0, len(cells))
			for _, cell := range cells {
				if c := strings.TrimSpace(cell); c != "" {
					trimmed = append(trimmed, c)
				}
			}
			if len(trimmed) == 0 {
				continue
			}
			b.WriteString(strings.Join(trimmed, " | "))
			b.WriteByte('\n')
		}
	}
	return b.String(), nil
}
