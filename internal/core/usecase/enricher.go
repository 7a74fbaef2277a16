package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"unicode/utf8"

	"github.com/gourmetline/catalog-ingest/internal/core/domain"
	"github.com/gourmetline/catalog-ingest/internal/core/ports"
)

const (
	maxDescriptionLen = 500

	defaultPrice  = 9.99
	defaultWeight = "100g"
	defaultStock  = 100
)

const enricherSystemPrompt = `You are a product catalog assistant for a food importer.
You write commercial metadata for a single product.
Respond with one JSON object and nothing else.`

// ProductEnricher derives commercial fields for one product name. Every
// field is defaulted independently, so enrichment never blocks creation:
// an unreachable or incoherent model yields the fully-defaulted draft.
type ProductEnricher struct {
	completer ports.TextCompleter
	logger    *slog.Logger
}

func NewProductEnricher(completer ports.TextCompleter, logger *slog.Logger) *ProductEnricher {
	return &ProductEnricher{completer: completer, logger: logger}
}

func (e *ProductEnricher) Enrich(ctx context.Context, name, category string) domain.ProductDraft {
	draft := defaultDraft(name, category)

	if e.completer == nil {
		return draft
	}

	response, err := e.completer.Complete(ctx, enricherSystemPrompt, buildEnricherPrompt(name, category))
	if err != nil {
		e.logger.Warn("ai enrichment call failed, using defaults", "product", name, "error", err)
		return draft
	}

	fields, ok := recoverJSONObject(response)
	if !ok {
		e.logger.Warn("ai enrichment response unparseable, using defaults", "product", name)
		return draft
	}

	applyEnrichedFields(&draft, fields)
	return draft
}

func defaultDraft(name, category string) domain.ProductDraft {
	return domain.ProductDraft{
		Name:        name,
		Description: fmt.Sprintf("%s - High quality product.", name),
		Price:       defaultPrice,
		Category:    category,
		Weight:      defaultWeight,
		Ingredients: []string{},
		Stock:       defaultStock,
		IsActive:    true,
	}
}

func buildEnricherPrompt(name, category string) string {
	return fmt.Sprintf(`Write catalog metadata for the product %q in category %q.
Return one JSON object with exactly these keys:
{"description": string, "price": number, "weight": string, "ingredients": [string], "stock": number}`,
		name, category)
}

// applyEnrichedFields overrides defaults field by field; a missing or
// invalid field keeps its default.
func applyEnrichedFields(draft *domain.ProductDraft, fields map[string]any) {
	if desc, ok := fields["description"].(string); ok && desc != "" {
		draft.Description = truncate(desc, maxDescriptionLen)
	}
	if price, ok := toFloat(fields["price"]); ok && price >= 0 {
		draft.Price = price
	}
	if weight, ok := fields["weight"].(string); ok && weight != "" {
		draft.Weight = weight
	}
	if raw, ok := fields["ingredients"].([]any); ok {
		ingredients := make([]string, 0, len(raw))
		for _, entry := range raw {
			if s, ok := entry.(string); ok && s != "" {
				ingredients = append(ingredients, s)
			}
		}
		draft.Ingredients = ingredients
	}
	if stock, ok := toFloat(fields["stock"]); ok && stock >= 0 {
		draft.Stock = int(stock)
	}
}

func toFloat(value any) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case int:
		return float64(v), true
	default:
		return 0, false
	}
}

// truncate cuts s to at most limit characters. The cut always lands on a
// rune boundary so a multibyte description can never become invalid
// UTF-8 and fail the database insert.
func truncate(s string, limit int) string {
	if utf8.RuneCountInString(s) <= limit {
		return s
	}
	runes := 0
	for i := range s {
		if runes == limit {
			return s[:i]
		}
		runes++
	}
	return s
}
