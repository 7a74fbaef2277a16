package bootstrap

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/gourmetline/catalog-ingest/internal/config"
	"github.com/gourmetline/catalog-ingest/internal/core/ports"
	"github.com/gourmetline/catalog-ingest/internal/core/usecase"
	"github.com/gourmetline/catalog-ingest/internal/infrastructure/extractor/pdftext"
	"github.com/gourmetline/catalog-ingest/internal/infrastructure/extractor/plaintext"
	"github.com/gourmetline/catalog-ingest/internal/infrastructure/extractor/xlsxtext"
	"github.com/gourmetline/catalog-ingest/internal/infrastructure/llm/openaichat"
	"github.com/gourmetline/catalog-ingest/internal/infrastructure/repository/postgres"
	"github.com/gourmetline/catalog-ingest/internal/infrastructure/resilience"
	"github.com/gourmetline/catalog-ingest/internal/observability/metrics"
)

type App struct {
	Config  config.Config
	Store   ports.CatalogStore
	Ingest  ports.PriceListIngestor
	Metrics *metrics.Metrics

	closeFn func()
}

func New(ctx context.Context, cfg config.Config, logger *slog.Logger) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	db, err := postgres.OpenDB(cfg.PostgresDSN)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	repo := postgres.NewCatalogRepository(db)
	if err := repo.EnsureSchema(ctx); err != nil {
		return nil, fmt.Errorf("ensure schema: %w", err)
	}

	// A disabled AI capability wires a nil completer: classifier and
	// enricher then use their deterministic fallbacks directly.
	var completer ports.TextCompleter
	if cfg.AIEnabled {
		executor := resilience.NewExecutor(resilience.DefaultConfig())
		completer = openaichat.New(
			cfg.AIBaseURL,
			cfg.AIAPIKey,
			cfg.AIModel,
			time.Duration(cfg.AITimeoutSeconds)*time.Second,
			executor,
		)
	}

	classifier := usecase.NewCategoryClassifier(completer, logger)
	enricher := usecase.NewProductEnricher(completer, logger)

	extractors := []ports.DocumentExtractor{
		pdftext.New(),
		xlsxtext.New(),
		plaintext.New(),
	}

	ingest := usecase.NewIngestPriceListUseCase(
		extractors,
		classifier,
		enricher,
		repo,
		logger,
		cfg.IngestEnrichWorkers,
	)

	return &App{
		Config:  cfg,
		Store:   repo,
		Ingest:  ingest,
		Metrics: metrics.New("catalog-ingest"),

		closeFn: func() {
			_ = db.Close()
		},
	}, nil
}

func (a *App) Close() {
	if a.closeFn != nil {
		a.closeFn()
	}
}
