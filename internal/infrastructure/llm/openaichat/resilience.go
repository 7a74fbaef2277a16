package openaichat

import (
	"context"
	"errors"
	"net"
	"net/http"

	"github.com/gourmetline/catalog-ingest/internal/infrastructure/resilience"
)

// classifyCompletionError decides which failures count against the
// circuit breaker. Caller cancellations and plain 4xx responses do not;
// transport errors and server-side 5xx do.
func classifyCompletionError(err error) resilience.ErrorClassification {
	if err == nil {
		return resilience.ErrorClassification{}
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return resilience.ErrorClassification{RecordFailure: false}
	}

	var statusErr *HTTPStatusError
	if errors.As(err, &statusErr) {
		return resilience.ErrorClassification{
			RecordFailure: isServerSideStatus(statusErr.StatusCode),
		}
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return resilience.ErrorClassification{RecordFailure: true}
	}

	return resilience.ErrorClassification{RecordFailure: true}
}

func isServerSideStatus(statusCode int) bool {
	switch statusCode {
	case http.StatusRequestTimeout, http.StatusTooManyRequests:
		return true
	default:
		return statusCode >= http.StatusInternalServerError
	}
}
