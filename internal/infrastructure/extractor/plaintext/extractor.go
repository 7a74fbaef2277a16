package plaintext

import (
	"context"
	"fmt"
	"unicode/utf8"
)

// Extractor passes through UTF-8 text uploads unchanged.
type Extractor struct{}

func New() *Extractor {
	return &Extractor{}
}

func (e *Extractor) ContentTypes() []string {
	return []string{"text/plain", "text/csv"}
}

func (e *Extractor) Extract(_ context.Context, data []byte) (string, error) {
	if !utf8.Valid(data) {
		return "", fmt.Errorf("document is not valid utf-8 text")
	}
	return string(data), nil
}
