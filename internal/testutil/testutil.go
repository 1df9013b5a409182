package testutil

import (
	"context"
	"encoding/json"
	"sync"

	"marketfetcher/internal/fetcher"
)

// StubTransport is a fetcher.Transport that records every request and answers from Handler
type StubTransport struct {
	mu       sync.Mutex
	requests []*fetcher.Request

	// Handler returns the JSON body for a request, or an error to fail it
	Handler func(req *fetcher.Request) (string, error)
}

// NewStubTransport creates a stub answering with handler
func NewStubTransport(handler func(req *fetcher.Request) (string, error)) *StubTransport {
	return &StubTransport{Handler: handler}
}

// StaticTransport answers every request with body
func StaticTransport(body string) *StubTransport {
	return NewStubTransport(func(*fetcher.Request) (string, error) {
		return body, nil
	})
}

// FailingTransport fails every request with err
func FailingTransport(err error) *StubTransport {
	return NewStubTransport(func(*fetcher.Request) (string, error) {
		return "", err
	})
}

// Get implements fetcher.Transport
func (s *StubTransport) Get(ctx context.Context, req *fetcher.Request, out any) error {
	s.mu.Lock()
	s.requests = append(s.requests, req)
	s.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return fetcher.NewTimeoutError(err)
	}

	body := "{}"
	if s.Handler != nil {
		var err error
		body, err = s.Handler(req)
		if err != nil {
			return err
		}
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal([]byte(body), out); err != nil {
		return fetcher.NewDecodeError(err)
	}
	return nil
}

// Calls returns how many requests were made
func (s *StubTransport) Calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.requests)
}

// Requests returns a copy of the recorded requests in arrival order
func (s *StubTransport) Requests() []*fetcher.Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*fetcher.Request, len(s.requests))
	copy(out, s.requests)
	return out
}

// StubCDN is an image CDN backed by a map
type StubCDN struct {
	ReadyFlag bool
	URLs      map[string]string

	mu      sync.Mutex
	lookups int
}

// Ready implements image.CDN
func (s *StubCDN) Ready() bool {
	return s.ReadyFlag
}

// ItemURL implements image.CDN
func (s *StubCDN) ItemURL(name string) (string, bool) {
	s.mu.Lock()
	s.lookups++
	s.mu.Unlock()
	u, ok := s.URLs[name]
	return u, ok
}

// Lookups returns how many times ItemURL was called
func (s *StubCDN) Lookups() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lookups
}
