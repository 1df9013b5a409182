package fetcher

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"strings"
	"time"

	"resty.dev/v3"

	"marketfetcher/internal/ratelimit"
)

const (
	// DefaultBaseURL is the Steam Community host serving the market endpoints
	DefaultBaseURL = "https://steamcommunity.com"

	defaultTimeout = 30 * time.Second
)

// NewHTTPClient creates a resty client for the market host. Retries stay disabled:
// a failed request is terminal for the call that issued it
func NewHTTPClient(baseURL string, timeout time.Duration) *resty.Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	return resty.New().
		SetBaseURL(baseURL).
		SetHeader("Accept", "application/json").
		SetTimeout(timeout).
		SetRetryCount(0)
}

// RestyTransport implements Transport on top of a resty client
type RestyTransport struct {
	client  *resty.Client
	limiter *ratelimit.Limiter
	logger  *slog.Logger
}

// TransportOption configures a RestyTransport
type TransportOption func(*RestyTransport)

// WithLimiter makes every request wait on the limiter bucket of its group
func WithLimiter(l *ratelimit.Limiter) TransportOption {
	return func(t *RestyTransport) {
		t.limiter = l
	}
}

// WithTransportLogger sets the logger
func WithTransportLogger(l *slog.Logger) TransportOption {
	return func(t *RestyTransport) {
		t.logger = l
	}
}

// NewRestyTransport creates a transport for baseURL
func NewRestyTransport(baseURL string, timeout time.Duration, opts ...TransportOption) *RestyTransport {
	t := &RestyTransport{
		client: NewHTTPClient(baseURL, timeout),
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Close releases the underlying client
func (t *RestyTransport) Close() error {
	return t.client.Close()
}

// Get implements Transport
func (t *RestyTransport) Get(ctx context.Context, req *Request, out any) error {
	if t.limiter != nil {
		if err := t.limiter.Wait(ctx, req.Group); err != nil {
			return classifyRequestError(err)
		}
	}

	r := t.client.R().SetContext(ctx)
	for k, v := range req.Header {
		r.SetHeader(k, v)
	}
	if out != nil {
		r.SetResult(out)
	}

	start := time.Now()
	resp, err := r.Get(req.URL())
	if err != nil {
		t.logger.Debug("market request failed",
			"operation", req.Operation,
			"url", req.URL(),
			"error", err.Error())
		if out != nil && isBodyError(resp, err) {
			return NewDecodeError(err)
		}
		return classifyRequestError(err)
	}

	t.logger.Debug("market request completed",
		"operation", req.Operation,
		"url", req.URL(),
		"status_code", resp.StatusCode(),
		"duration", time.Since(start))

	if !resp.IsSuccess() {
		return ClassifyHTTPError(resp.StatusCode())
	}

	// Steam answers some failures with a 200 HTML page; resty leaves out untouched then
	if ct := resp.Header().Get("Content-Type"); out != nil && !isJSONContentType(ct) {
		return NewDecodeError(fmt.Errorf("unexpected content type %q", ct))
	}

	return nil
}

// isBodyError reports whether err came from reading or unmarshalling a successful
// response rather than from the exchange itself
func isBodyError(resp *resty.Response, err error) bool {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return false
	}
	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &syntaxErr) || errors.As(err, &typeErr) || errors.Is(err, io.ErrUnexpectedEOF) {
		return true
	}
	return resp != nil && resp.StatusCode() > 0 && resp.IsSuccess()
}

func isJSONContentType(ct string) bool {
	media, _, err := mime.ParseMediaType(ct)
	if err != nil {
		return false
	}
	return (strings.HasPrefix(media, "application/") || strings.HasPrefix(media, "text/")) &&
		strings.Contains(media, "json")
}
