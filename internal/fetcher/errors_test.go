package fetcher

import (
	"context"
	"errors"
	"fmt"
	"testing"
)

func TestValidationError(t *testing.T) {
	err := NewValidationError("item key")

	if got, want := err.Error(), `the "item key" parameter is invalid or missing`; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}

	wrapped := fmt.Errorf("building request: %w", err)
	if !IsValidation(wrapped) {
		t.Error("IsValidation(wrapped) = false, want true")
	}
	if IsValidation(NewNetworkError(errors.New("boom"))) {
		t.Error("IsValidation(network error) = true, want false")
	}
}

func TestClassifyHTTPError(t *testing.T) {
	tests := []struct {
		status    int
		wantType  ErrorType
		retryable bool
	}{
		{429, ErrorTypeRateLimit, true},
		{500, ErrorTypeServer, true},
		{503, ErrorTypeServer, true},
		{400, ErrorTypeClient, false},
		{403, ErrorTypeClient, false},
		{401, ErrorTypeClient, false},
		{302, ErrorTypeUnknown, false},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("status_%d", tt.status), func(t *testing.T) {
			err := ClassifyHTTPError(tt.status)
			if err.Type != tt.wantType {
				t.Errorf("Type = %q, want %q", err.Type, tt.wantType)
			}
			if err.Retryable != tt.retryable {
				t.Errorf("Retryable = %v, want %v", err.Retryable, tt.retryable)
			}
			if err.StatusCode != tt.status {
				t.Errorf("StatusCode = %d, want %d", err.StatusCode, tt.status)
			}
		})
	}
}

func TestClassifyRequestError(t *testing.T) {
	if got := classifyRequestError(fmt.Errorf("get: %w", context.DeadlineExceeded)); got.Type != ErrorTypeTimeout {
		t.Errorf("deadline exceeded classified as %q, want %q", got.Type, ErrorTypeTimeout)
	}

	cause := errors.New("connection refused")
	got := classifyRequestError(cause)
	if got.Type != ErrorTypeNetwork {
		t.Errorf("Type = %q, want %q", got.Type, ErrorTypeNetwork)
	}
	if !errors.Is(got, cause) {
		t.Error("network error does not unwrap to its cause")
	}

	if got := classifyRequestError(context.Canceled); got.Type != ErrorTypeCanceled || got.Retryable {
		t.Errorf("canceled classified as %q (retryable %v)", got.Type, got.Retryable)
	}

	existing := NewServerError(502)
	if classifyRequestError(existing) != existing {
		t.Error("classifyRequestError re-wrapped an existing TransportError")
	}
}

func TestTransportError_Error(t *testing.T) {
	if got, want := NewServerError(500).Error(), "server error (status 500): market unavailable"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
	if got, want := NewNetworkError(errors.New("dial tcp")).Error(), "network error: market unreachable: dial tcp"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestClassifyHTTPError_SessionRejected(t *testing.T) {
	if got := ClassifyHTTPError(403).Message; got != "session rejected" {
		t.Errorf("403 Message = %q, want %q", got, "session rejected")
	}
	if got := ClassifyHTTPError(404).Message; got != "request rejected" {
		t.Errorf("404 Message = %q, want %q", got, "request rejected")
	}
}
