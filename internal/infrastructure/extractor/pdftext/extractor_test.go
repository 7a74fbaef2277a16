package pdftext

import (
	"context"
	"reflect"
	"testing"

	"github.com/ledongthuc/pdf"
)

func TestExtractRejectsNonPDF(t *testing.T) {
	if _, err := New().Extract(context.Background(), []byte("plain text payload")); err == nil {
		t.Fatalf("expected error for non-pdf payload")
	}
}

func TestExtractRejectsTruncatedPDF(t *testing.T) {
	if _, err := New().Extract(context.Background(), []byte("%PDF-1.4\ngarbage")); err == nil {
		t.Fatalf("expected error for truncated pdf")
	}
}

func TestGroupIntoRowsByYCoordinate(t *testing.T) {
	fragments := []pdf.Text{
		{S: "1", Y: 700.0},
		{S: "Dalfi", Y: 700.8},
		{S: "Dark Chocolate", Y: 699.4},
		{S: "2", Y: 680.0},
		{S: "Davidoff Coffee", Y: 680.5},
	}

	rows := groupIntoRows(fragments)
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d: %+v", len(rows), rows)
	}
	if !reflect.DeepEqual(rows[0].cells, []string{"1", "Dalfi", "Dark Chocolate"}) {
		t.Fatalf("row 0 = %v", rows[0].cells)
	}
	if !reflect.DeepEqual(rows[1].cells, []string{"2", "Davidoff Coffee"}) {
		t.Fatalf("row 1 = %v", rows[1].cells)
	}
}

func TestGroupIntoRowsSkipsWhitespaceFragments(t *testing.T) {
	fragments := []pdf.Text{
		{S: "  ", Y: 700.0},
		{S: "Dalfi", Y: 700.0},
	}

	rows := groupIntoRows(fragments)
	if len(rows) != 1 || len(rows[0].cells) != 1 {
		t.Fatalf("unexpected rows: %+v", rows)
	}
}
