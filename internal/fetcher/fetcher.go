package fetcher

import (
	"context"
	"net/url"
	"strings"

	"marketfetcher/internal/ratelimit"
)

// Transport is the HTTP capability the market client is built on. Get performs a GET for
// req and decodes the response body into out. Non-2xx responses and network failures are
// returned as *TransportError. Implementations must not retry
type Transport interface {
	Get(ctx context.Context, req *Request, out any) error
}

// Param is a single query parameter
type Param struct {
	Key   string
	Value string
}

// Query is an ordered list of query parameters. Order is preserved when encoding so
// request URLs are deterministic
type Query []Param

// Add appends a parameter
func (q *Query) Add(key, value string) {
	*q = append(*q, Param{Key: key, Value: value})
}

// Get returns the first value for key, or "" if absent
func (q Query) Get(key string) string {
	for _, p := range q {
		if p.Key == key {
			return p.Value
		}
	}
	return ""
}

// Encode percent-encodes every key and value in declaration order
func (q Query) Encode() string {
	var b strings.Builder
	for i, p := range q {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(escape(p.Key))
		b.WriteByte('=')
		b.WriteString(escape(p.Value))
	}
	return b.String()
}

// escape is url.QueryEscape with spaces written as %20
func escape(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}

// Request describes one GET against the market. It is built fresh for every call
type Request struct {
	// Operation names the endpoint method for logs and metrics
	Operation string

	// Group selects the rate limit bucket
	Group ratelimit.Group

	// Path is already escaped and begins with '/'
	Path string

	Query Query

	// Header carries extra request headers. Credentials live here, never in Query
	Header map[string]string

	RequiresAuth bool
}

// URL returns the escaped path and query relative to the transport's base URL
func (r *Request) URL() string {
	if len(r.Query) == 0 {
		return r.Path
	}
	return r.Path + "?" + r.Query.Encode()
}
