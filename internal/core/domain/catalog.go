package domain

import "time"

// RawDocument is the uploaded price list as received from the caller.
// It lives only for the duration of one ingestion run.
type RawDocument struct {
	Filename    string
	ContentType string
	Data        []byte
}

type Category struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Icon        string    `json:"icon"`
	Description string    `json:"description"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
}

type Product struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Price       float64   `json:"price"`
	Category    string    `json:"category"`
	Weight      string    `json:"weight"`
	Ingredients []string  `json:"ingredients"`
	Stock       int       `json:"stock"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
}

// CategorySuggestion is a classified category before persistence.
// AlreadyExists is set on previews so callers can tell which suggestions
// a commit would actually create.
type CategorySuggestion struct {
	Name          string `json:"name"`
	Icon          string `json:"icon"`
	Description   string `json:"description"`
	IsActive      bool   `json:"is_active"`
	AlreadyExists bool   `json:"already_exists"`
}

// ProductDraft holds the enriched commercial fields for one candidate name.
// Enrichment always yields a complete draft; missing AI fields are defaulted.
type ProductDraft struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Price       float64  `json:"price"`
	Category    string   `json:"category"`
	Weight      string   `json:"weight"`
	Ingredients []string `json:"ingredients"`
	Stock       int      `json:"stock"`
	IsActive    bool     `json:"is_active"`
}

// CreateOutcome is the tri-state result of an idempotent create.
type CreateOutcome int

const (
	OutcomeCreated CreateOutcome = iota
	OutcomeSkipped
	OutcomeFailed
)

func (o CreateOutcome) String() string {
	switch o {
	case OutcomeCreated:
		return "created"
	case OutcomeSkipped:
		return "skipped"
	case OutcomeFailed:
		return "failed"
	default:
		return "unknown"
	}
}

type PreviewResult struct {
	Categories   []CategorySuggestion `json:"categories"`
	Products     []string             `json:"products"`
	ProductCount int                  `json:"product_count"`
	UsedAI       bool                 `json:"used_ai"`
	Status       string               `json:"status,omitempty"`
}

type CategorySummary struct {
	Name string `json:"name"`
	Icon string `json:"icon"`
}

type ProductSummary struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Category string  `json:"category"`
	Price    float64 `json:"price"`
}

type SkippedItem struct {
	Name   string `json:"name"`
	Reason string `json:"reason"`
}

type FailedItem struct {
	Name  string `json:"name"`
	Error string `json:"error"`
}

// CatalogReport summarizes one commit run. It is returned to the caller
// and never persisted.
type CatalogReport struct {
	CategoriesCreated int               `json:"categories_created"`
	Categories        []CategorySummary `json:"categories"`
	ProductsCreated   int               `json:"products_created"`
	ProductsSkipped   int               `json:"products_skipped"`
	ProductsFailed    int               `json:"products_failed"`
	Products          []ProductSummary  `json:"products"`
	Skipped           []SkippedItem     `json:"skipped"`
	Failed            []FailedItem      `json:"failed"`
	UsedAI            bool              `json:"used_ai"`
	Status            string            `json:"status,omitempty"`
}
