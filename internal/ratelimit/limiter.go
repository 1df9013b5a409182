package ratelimit

import (
	"context"
	"sync"

	"golang.org/x/time/rate"
)

// Group represents a class of market endpoints that share a request budget
type Group string

const (
	// GroupMarket covers the anonymous market endpoints
	GroupMarket Group = "market"
	// GroupAccount covers endpoints that require a session cookie
	GroupAccount Group = "account"
)

const (
	// DefaultMarketRate is roughly 20 requests per minute, the pace Steam tolerates
	// for anonymous market queries before answering 429
	DefaultMarketRate = 1.0 / 3.0
	// DefaultAccountRate is slower; account endpoints are throttled per session
	DefaultAccountRate = 1.0 / 5.0
)

// Limiter manages rate limits for the endpoint groups
type Limiter struct {
	limiters map[Group]*rate.Limiter
	mu       sync.RWMutex
}

// New creates a limiter allowing perSecond requests for every group.
// A non-positive rate disables limiting
func New(perSecond float64) *Limiter {
	l := &Limiter{limiters: make(map[Group]*rate.Limiter)}
	l.Set(GroupMarket, perSecond)
	l.Set(GroupAccount, perSecond)
	return l
}

// NewDefault creates a limiter with the default per-group rates
func NewDefault() *Limiter {
	l := &Limiter{limiters: make(map[Group]*rate.Limiter)}
	l.Set(GroupMarket, DefaultMarketRate)
	l.Set(GroupAccount, DefaultAccountRate)
	return l
}

// Set replaces the limit for one group
func (l *Limiter) Set(group Group, perSecond float64) {
	limit := rate.Inf
	if perSecond > 0 {
		limit = rate.Limit(perSecond)
	}

	l.mu.Lock()
	l.limiters[group] = rate.NewLimiter(limit, 1)
	l.mu.Unlock()
}

// Wait blocks until the rate limiter permits an event for the given group
// It returns an error if the context is canceled before the event can proceed
func (l *Limiter) Wait(ctx context.Context, group Group) error {
	l.mu.RLock()
	limiter, exists := l.limiters[group]
	l.mu.RUnlock()

	if !exists {
		return nil
	}

	return limiter.Wait(ctx)
}

// Allow reports whether an event for the given group may happen now
func (l *Limiter) Allow(group Group) bool {
	l.mu.RLock()
	limiter, exists := l.limiters[group]
	l.mu.RUnlock()

	if !exists {
		return true
	}

	return limiter.Allow()
}
