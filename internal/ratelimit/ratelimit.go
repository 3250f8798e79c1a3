package ratelimit

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// Limiter defines the interface for rate limiting
type Limiter interface {
	Allow(key string) bool
}

// InMemoryLimiter is an implementation of Limiter stored in memory,
// keyed per client (viewer id or remote address).
type InMemoryLimiter struct {
	clients map[string]*rate.Limiter
	mu      sync.Mutex
	r       rate.Limit // Rate of adding tokens (e.g., 1 token every 5 seconds)
	b       int        // Bucket size (e.g., can perform 3 requests in a row)
}

// NewInMemoryLimiter creates a new rate limiter
// Example: NewInMemoryLimiter(1, 5*time.Second, 3) -> allows 1 request every 5 seconds, burst of 3 requests
func NewInMemoryLimiter(requests int, per time.Duration, burst int) Limiter {
	return &InMemoryLimiter{
		clients: make(map[string]*rate.Limiter),
		r:       rate.Every(per / time.Duration(requests)),
		b:       burst,
	}
}

// Allow checks if a client is allowed to perform a request
func (l *InMemoryLimiter) Allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	limiter, exists := l.clients[key]
	if !exists {
		limiter = rate.NewLimiter(l.r, l.b)
		l.clients[key] = limiter
	}

	return limiter.Allow()
}
