package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/panjf2000/ants/v2"

	"github.com/gourmetline/catalog-ingest/internal/core/domain"
	"github.com/gourmetline/catalog-ingest/internal/core/ports"
)

const statusNoProducts = "no products found"

// IngestPriceListUseCase runs the full document-to-catalog pipeline in two
// modes. Preview stops after classification; Commit persists categories
// and products and assembles the run report.
type IngestPriceListUseCase struct {
	extractors map[string]ports.DocumentExtractor
	classifier *CategoryClassifier
	enricher   *ProductEnricher
	store      ports.CatalogStore
	logger     *slog.Logger
	workers    int
}

func NewIngestPriceListUseCase(
	extractors []ports.DocumentExtractor,
	classifier *CategoryClassifier,
	enricher *ProductEnricher,
	store ports.CatalogStore,
	logger *slog.Logger,
	enrichWorkers int,
) *IngestPriceListUseCase {
	byType := make(map[string]ports.DocumentExtractor)
	for _, extractor := range extractors {
		for _, contentType := range extractor.ContentTypes() {
			byType[contentType] = extractor
		}
	}
	if enrichWorkers < 1 {
		enrichWorkers = 1
	}
	return &IngestPriceListUseCase{
		extractors: byType,
		classifier: classifier,
		enricher:   enricher,
		store:      store,
		logger:     logger,
		workers:    enrichWorkers,
	}
}

func (uc *IngestPriceListUseCase) Preview(ctx context.Context, doc domain.RawDocument) (domain.PreviewResult, error) {
	candidates, err := uc.extractCandidates(ctx, doc)
	if err != nil {
		return domain.PreviewResult{}, err
	}

	if len(candidates) == 0 {
		return domain.PreviewResult{
			Categories: []domain.CategorySuggestion{},
			Products:   []string{},
			Status:     statusNoProducts,
		}, nil
	}

	names, usedAI := uc.classifier.Classify(ctx, candidates)
	suggestions := suggestionsFor(names)
	uc.markExistingCategories(ctx, suggestions)

	return domain.PreviewResult{
		Categories:   suggestions,
		Products:     candidates,
		ProductCount: len(candidates),
		UsedAI:       usedAI,
	}, nil
}

// markExistingCategories flags suggestions already present in the catalog
// so a preview distinguishes new categories from known ones. A failed
// lookup leaves the flag unset; preview stays read-only best effort.
func (uc *IngestPriceListUseCase) markExistingCategories(ctx context.Context, suggestions []domain.CategorySuggestion) {
	for i := range suggestions {
		exists, err := uc.store.CategoryExists(ctx, suggestions[i].Name)
		if err != nil {
			uc.logger.Warn("category lookup failed", "category", suggestions[i].Name, "error", err)
			continue
		}
		suggestions[i].AlreadyExists = exists
	}
}

func (uc *IngestPriceListUseCase) Commit(ctx context.Context, doc domain.RawDocument) (domain.CatalogReport, error) {
	start := time.Now()

	candidates, err := uc.extractCandidates(ctx, doc)
	if err != nil {
		return domain.CatalogReport{}, err
	}

	report := emptyReport()
	if len(candidates) == 0 {
		report.Status = statusNoProducts
		return report, nil
	}

	names, usedAI := uc.classifier.Classify(ctx, candidates)
	report.UsedAI = usedAI

	suggestions := suggestionsFor(names)
	uc.createCategories(ctx, suggestions, &report)

	// Categories are fully persisted before any product work starts.
	uc.createProducts(ctx, candidates, names, &report)

	uc.logger.Info("price list committed",
		"candidates", len(candidates),
		"categories_created", report.CategoriesCreated,
		"products_created", report.ProductsCreated,
		"products_skipped", report.ProductsSkipped,
		"products_failed", report.ProductsFailed,
		"used_ai", report.UsedAI,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return report, nil
}

func (uc *IngestPriceListUseCase) extractCandidates(ctx context.Context, doc domain.RawDocument) ([]string, error) {
	if len(doc.Data) == 0 {
		return nil, domain.WrapError(domain.ErrInvalidInput, "extract document", errors.New("empty document body"))
	}

	contentType := normalizeContentType(doc.ContentType)
	extractor, ok := uc.extractors[contentType]
	if !ok {
		return nil, domain.WrapError(domain.ErrInvalidInput, "extract document",
			fmt.Errorf("unsupported content type %q", doc.ContentType))
	}

	text, err := extractor.Extract(ctx, doc.Data)
	if err != nil {
		return nil, domain.WrapError(domain.ErrExtraction, "extract document", err)
	}

	return DedupeNames(ParseLineItems(text)), nil
}

func (uc *IngestPriceListUseCase) createCategories(ctx context.Context, suggestions []domain.CategorySuggestion, report *domain.CatalogReport) {
	for _, suggestion := range suggestions {
		category := &domain.Category{
			ID:          uuid.NewString(),
			Name:        suggestion.Name,
			Icon:        suggestion.Icon,
			Description: suggestion.Description,
			IsActive:    suggestion.IsActive,
			CreatedAt:   time.Now().UTC(),
		}

		outcome, err := uc.store.CreateCategoryIfAbsent(ctx, category)
		if err != nil {
			uc.logger.Warn("category creation failed", "category", suggestion.Name, "error", err)
			continue
		}
		if outcome == domain.OutcomeCreated {
			report.CategoriesCreated++
		}
		report.Categories = append(report.Categories, domain.CategorySummary{
			Name: suggestion.Name,
			Icon: suggestion.Icon,
		})
	}
}

type productResult struct {
	outcome domain.CreateOutcome
	summary domain.ProductSummary
	err     error
}

// createProducts enriches and persists each candidate on a bounded worker
// pool. One item's failure never cancels siblings, and results are
// collected per index so the report order matches candidate order.
func (uc *IngestPriceListUseCase) createProducts(ctx context.Context, candidates, categories []string, report *domain.CatalogReport) {
	results := make([]productResult, len(candidates))

	pool, err := ants.NewPool(uc.workers)
	if err != nil {
		// Pool construction only fails on invalid size; fall back to
		// sequential processing.
		for i, name := range candidates {
			results[i] = uc.processProduct(ctx, name, categories)
		}
	} else {
		defer pool.Release()
		var wg sync.WaitGroup
		for i, name := range candidates {
			i, name := i, name
			wg.Add(1)
			task := func() {
				defer wg.Done()
				results[i] = uc.processProduct(ctx, name, categories)
			}
			if err := pool.Submit(task); err != nil {
				wg.Done()
				results[i] = productResult{outcome: domain.OutcomeFailed, summary: domain.ProductSummary{Name: name}, err: err}
			}
		}
		wg.Wait()
	}

	for i, result := range results {
		switch result.outcome {
		case domain.OutcomeCreated:
			report.ProductsCreated++
			report.Products = append(report.Products, result.summary)
		case domain.OutcomeSkipped:
			report.ProductsSkipped++
			report.Skipped = append(report.Skipped, domain.SkippedItem{
				Name:   candidates[i],
				Reason: "already exists",
			})
		default:
			report.ProductsFailed++
			report.Failed = append(report.Failed, domain.FailedItem{
				Name:  candidates[i],
				Error: result.err.Error(),
			})
		}
	}
}

func (uc *IngestPriceListUseCase) processProduct(ctx context.Context, name string, categories []string) productResult {
	category := MatchCategory(name, categories)
	draft := uc.enricher.Enrich(ctx, name, category)

	product := &domain.Product{
		ID:          uuid.NewString(),
		Name:        draft.Name,
		Description: draft.Description,
		Price:       draft.Price,
		Category:    draft.Category,
		Weight:      draft.Weight,
		Ingredients: draft.Ingredients,
		Stock:       draft.Stock,
		IsActive:    draft.IsActive,
		CreatedAt:   time.Now().UTC(),
	}

	outcome, err := uc.store.CreateProductIfAbsent(ctx, product)
	if err != nil {
		uc.logger.Warn("product creation failed", "product", name, "error", err)
		return productResult{outcome: domain.OutcomeFailed, err: err}
	}
	return productResult{
		outcome: outcome,
		summary: domain.ProductSummary{
			ID:       product.ID,
			Name:     product.Name,
			Category: product.Category,
			Price:    product.Price,
		},
	}
}

func normalizeContentType(contentType string) string {
	if i := strings.Index(contentType, ";"); i >= 0 {
		contentType = contentType[:i]
	}
	return strings.ToLower(strings.TrimSpace(contentType))
}

func suggestionsFor(names []string) []domain.CategorySuggestion {
	suggestions := make([]domain.CategorySuggestion, 0, len(names))
	for _, name := range names {
		suggestions = append(suggestions, domain.CategorySuggestion{
			Name:        name,
			Icon:        IconForCategory(name),
			Description: "Created from price list import",
			IsActive:    true,
		})
	}
	return suggestions
}

func emptyReport() domain.CatalogReport {
	return domain.CatalogReport{
		Categories: []domain.CategorySummary{},
		Products:   []domain.ProductSummary{},
		Skipped:    []domain.SkippedItem{},
		Failed:     []domain.FailedItem{},
	}
}
