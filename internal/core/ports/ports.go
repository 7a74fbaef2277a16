package ports

import (
	"context"

	"github.com/gourmetline/catalog-ingest/internal/core/domain"
)

// PriceListIngestor is the inbound port for the two ingestion modes.
type PriceListIngestor interface {
	Preview(ctx context.Context, doc domain.RawDocument) (domain.PreviewResult, error)
	Commit(ctx context.Context, doc domain.RawDocument) (domain.CatalogReport, error)
}

// CatalogStore persists categories and products. Creates are atomic
// create-if-absent operations keyed on the exact entity name, so two
// concurrent commits over the same document converge to one creation
// and one skip.
type CatalogStore interface {
	CreateCategoryIfAbsent(ctx context.Context, category *domain.Category) (domain.CreateOutcome, error)
	CreateProductIfAbsent(ctx context.Context, product *domain.Product) (domain.CreateOutcome, error)
	CategoryExists(ctx context.Context, name string) (bool, error)
	CountCategories(ctx context.Context) (int64, error)
	CountProducts(ctx context.Context) (int64, error)
}

// TextCompleter is a best-effort text-generation collaborator. A nil
// completer means the AI capability is disabled and callers must use
// their deterministic fallback directly.
type TextCompleter interface {
	Complete(ctx context.Context, system, user string) (string, error)
}

// DocumentExtractor decodes one declared content type into plain text,
// reading order preserved.
type DocumentExtractor interface {
	Extract(ctx context.Context, data []byte) (string, error)
	ContentTypes() []string
}
