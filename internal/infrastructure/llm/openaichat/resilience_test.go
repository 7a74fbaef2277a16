package openaichat

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestClassifyCompletionError(t *testing.T) {
	cases := []struct {
		name          string
		err           error
		recordFailure bool
	}{
		{"canceled", context.Canceled, false},
		{"deadline", fmt.Errorf("llm complete request: %w", context.DeadlineExceeded), false},
		{"bad request", &HTTPStatusError{StatusCode: http.StatusBadRequest}, false},
		{"unauthorized", &HTTPStatusError{StatusCode: http.StatusUnauthorized}, false},
		{"timeout status", &HTTPStatusError{StatusCode: http.StatusRequestTimeout}, true},
		{"rate limited", &HTTPStatusError{StatusCode: http.StatusTooManyRequests}, true},
		{"server error", &HTTPStatusError{StatusCode: http.StatusBadGateway}, true},
		{"transport", errors.New("connection refused"), true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			class := classifyCompletionError(tc.err)
			if class.RecordFailure != tc.recordFailure {
				t.Fatalf("RecordFailure = %v, want %v", class.RecordFailure, tc.recordFailure)
			}
		})
	}
}
