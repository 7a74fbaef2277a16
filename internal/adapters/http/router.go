package httpadapter

import (
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/gourmetline/catalog-ingest/internal/config"
	"github.com/gourmetline/catalog-ingest/internal/core/domain"
	"github.com/gourmetline/catalog-ingest/internal/core/ports"
	"github.com/gourmetline/catalog-ingest/internal/observability/metrics"
)

const serviceName = "catalog-ingest"

type Router struct {
	ingestor ports.PriceListIngestor
	store    ports.CatalogStore
	metrics  *metrics.Metrics
	cfg      config.Config
}

func NewRouter(ingestor ports.PriceListIngestor, store ports.CatalogStore, m *metrics.Metrics, cfg config.Config) *Router {
	return &Router{
		ingestor: ingestor,
		store:    store,
		metrics:  m,
		cfg:      cfg,
	}
}

func (rt *Router) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", rt.healthz)
	mux.HandleFunc("/v1/pricelists/preview", rt.previewPriceList)
	mux.HandleFunc("/v1/pricelists/commit", rt.commitPriceList)
	mux.HandleFunc("/v1/catalog/stats", rt.catalogStats)
	if rt.metrics != nil {
		mux.Handle("/metrics", rt.metrics.Handler())
	}

	var handler http.Handler = mux
	handler = rateLimitMiddleware(handler, rt.cfg.APIRateLimitRPS, rt.cfg.APIRateLimitBurst)
	handler = backpressureMiddleware(handler, rt.cfg.APIMaxInFlight, 100*time.Millisecond)
	if rt.metrics != nil {
		handler = rt.metrics.Middleware(serviceName, handler)
	}
	handler = accessLogMiddleware(handler)
	handler = requestIDMiddleware(handler)
	return handler
}

func (rt *Router) healthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (rt *Router) previewPriceList(w http.ResponseWriter, r *http.Request) {
	doc, ok := rt.readUpload(w, r)
	if !ok {
		return
	}

	start := time.Now()
	result, err := rt.ingestor.Preview(r.Context(), doc)
	if rt.metrics != nil {
		rt.metrics.RecordRun(serviceName, "preview", time.Since(start), err)
	}
	if err != nil {
		writeError(w, err)
		return
	}
	if rt.metrics != nil {
		rt.metrics.RecordPreviewResult(serviceName, result)
	}
	writeJSON(w, http.StatusOK, result)
}

func (rt *Router) commitPriceList(w http.ResponseWriter, r *http.Request) {
	doc, ok := rt.readUpload(w, r)
	if !ok {
		return
	}

	start := time.Now()
	report, err := rt.ingestor.Commit(r.Context(), doc)
	if rt.metrics != nil {
		rt.metrics.RecordRun(serviceName, "commit", time.Since(start), err)
	}
	if err != nil {
		writeError(w, err)
		return
	}
	if rt.metrics != nil {
		rt.metrics.RecordCommitReport(serviceName, report)
	}
	writeJSON(w, http.StatusOK, report)
}

func (rt *Router) catalogStats(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}

	categories, err := rt.store.CountCategories(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	products, err := rt.store.CountProducts(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int64{
		"categories": categories,
		"products":   products,
	})
}

func (rt *Router) readUpload(w http.ResponseWriter, r *http.Request) (domain.RawDocument, bool) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return domain.RawDocument{}, false
	}

	maxBytes := rt.cfg.MaxUploadBytes
	if maxBytes <= 0 {
		maxBytes = 10 << 20
	}
	r.Body = http.MaxBytesReader(w, r.Body, maxBytes)

	file, header, err := r.FormFile("file")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "multipart field 'file' is required"})
		return domain.RawDocument{}, false
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "failed to read uploaded file"})
		return domain.RawDocument{}, false
	}

	return domain.RawDocument{
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Data:        data,
	}, true
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, err error) {
	writeJSON(w, mapErrorToHTTPStatus(err), map[string]string{"error": err.Error()})
}
