package rest

import (
	"sync"

	"golang.org/x/time/rate"
)

// tableLimiters keeps one action rate limiter per table code.
type tableLimiters struct {
	mu       sync.Mutex
	limit    rate.Limit
	burst    int
	limiters map[string]*rate.Limiter
}

func newTableLimiters(limit rate.Limit, burst int) *tableLimiters {
	return &tableLimiters{
		limit:    limit,
		burst:    burst,
		limiters: make(map[string]*rate.Limiter),
	}
}

func (l *tableLimiters) allow(code string) bool {
	l.mu.Lock()
	limiter, ok := l.limiters[code]
	if !ok {
		limiter = rate.NewLimiter(l.limit, l.burst)
		l.limiters[code] = limiter
	}
	l.mu.Unlock()
	return limiter.Allow()
}
