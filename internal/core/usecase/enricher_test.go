package usecase

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"
	"unicode/utf8"
)

func TestEnrichDefaultsOnUnparseableResponse(t *testing.T) {
	completer := &fakeCompleter{response: "I'd rather not answer in JSON."}
	enricher := NewProductEnricher(completer, discardLogger())

	draft := enricher.Enrich(context.Background(), "Dalfi Dark Chocolate", "Chocolates")

	if !strings.HasSuffix(draft.Description, "High quality product.") {
		t.Fatalf("unexpected description: %q", draft.Description)
	}
	if draft.Price != defaultPrice || draft.Weight != defaultWeight || draft.Stock != defaultStock {
		t.Fatalf("unexpected defaults: %+v", draft)
	}
	if len(draft.Ingredients) != 0 || draft.Ingredients == nil {
		t.Fatalf("expected empty non-nil ingredients, got %v", draft.Ingredients)
	}
	if draft.Category != "Chocolates" || !draft.IsActive {
		t.Fatalf("unexpected draft: %+v", draft)
	}
}

func TestEnrichDefaultsOnCallError(t *testing.T) {
	completer := &fakeCompleter{err: errors.New("dial tcp: timeout")}
	enricher := NewProductEnricher(completer, discardLogger())

	draft := enricher.Enrich(context.Background(), "Lotus Spread", "Chocolate Spreads")
	if draft.Price != defaultPrice {
		t.Fatalf("expected default price, got %v", draft.Price)
	}
}

func TestEnrichAppliesValidFieldsOnly(t *testing.T) {
	completer := &fakeCompleter{response: `{
		"description": "Creamy hazelnut spread",
		"price": -4,
		"weight": "",
		"ingredients": ["hazelnuts", "sugar", 7],
		"stock": 25
	}`}
	enricher := NewProductEnricher(completer, discardLogger())

	draft := enricher.Enrich(context.Background(), "Lotus Spread", "Chocolate Spreads")

	if draft.Description != "Creamy hazelnut spread" {
		t.Fatalf("unexpected description: %q", draft.Description)
	}
	if draft.Price != defaultPrice {
		t.Fatalf("negative price must keep default, got %v", draft.Price)
	}
	if draft.Weight != defaultWeight {
		t.Fatalf("empty weight must keep default, got %q", draft.Weight)
	}
	if !reflect.DeepEqual(draft.Ingredients, []string{"hazelnuts", "sugar"}) {
		t.Fatalf("unexpected ingredients: %v", draft.Ingredients)
	}
	if draft.Stock != 25 {
		t.Fatalf("unexpected stock: %d", draft.Stock)
	}
}

func TestEnrichTruncatesLongDescription(t *testing.T) {
	long := strings.Repeat("x", 600)
	completer := &fakeCompleter{response: `{"description": "` + long + `"}`}
	enricher := NewProductEnricher(completer, discardLogger())

	draft := enricher.Enrich(context.Background(), "Lotus Spread", "Chocolate Spreads")
	if got := utf8.RuneCountInString(draft.Description); got != maxDescriptionLen {
		t.Fatalf("expected %d chars, got %d", maxDescriptionLen, got)
	}
}

func TestEnrichTruncationKeepsMultibyteRuneIntact(t *testing.T) {
	// A multibyte rune straddling the character limit must survive whole,
	// never as a dangling lead byte.
	long := strings.Repeat("x", 499) + "é" + strings.Repeat("y", 50)
	completer := &fakeCompleter{response: `{"description": "` + long + `"}`}
	enricher := NewProductEnricher(completer, discardLogger())

	draft := enricher.Enrich(context.Background(), "Lotus Spread", "Chocolate Spreads")
	if !utf8.ValidString(draft.Description) {
		t.Fatalf("description is not valid utf-8: %q", draft.Description)
	}
	if got := utf8.RuneCountInString(draft.Description); got != maxDescriptionLen {
		t.Fatalf("expected %d chars, got %d", maxDescriptionLen, got)
	}
	if !strings.HasSuffix(draft.Description, "é") {
		t.Fatalf("boundary rune lost, description ends %q", draft.Description[len(draft.Description)-4:])
	}
}

func TestEnrichNilCompleterUsesDefaults(t *testing.T) {
	enricher := NewProductEnricher(nil, discardLogger())

	draft := enricher.Enrich(context.Background(), "Dalfi Dark Chocolate", "Chocolates")
	if draft.Description != "Dalfi Dark Chocolate - High quality product." {
		t.Fatalf("unexpected description: %q", draft.Description)
	}
}
