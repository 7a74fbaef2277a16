package metrics

import (
	"time"

	"github.com/gourmetline/catalog-ingest/internal/core/domain"
)

func (m *Metrics) RecordRun(service, mode string, duration time.Duration, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}
	m.ingestRunsTotal.WithLabelValues(service, mode, status).Inc()
	m.ingestRunDuration.WithLabelValues(service, mode).Observe(duration.Seconds())
}

func (m *Metrics) RecordCommitReport(service string, report domain.CatalogReport) {
	m.ingestProductsTotal.WithLabelValues(service, "created").Add(float64(report.ProductsCreated))
	m.ingestProductsTotal.WithLabelValues(service, "skipped").Add(float64(report.ProductsSkipped))
	m.ingestProductsTotal.WithLabelValues(service, "failed").Add(float64(report.ProductsFailed))
	m.categoriesCreated.Add(float64(report.CategoriesCreated))

	if !report.UsedAI && len(report.Categories) > 0 {
		m.aiDegradationsTotal.WithLabelValues(service, "commit").Inc()
	}
}

func (m *Metrics) RecordPreviewResult(service string, result domain.PreviewResult) {
	if !result.UsedAI && result.ProductCount > 0 {
		m.aiDegradationsTotal.WithLabelValues(service, "preview").Inc()
	}
}
