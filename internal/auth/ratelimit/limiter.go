package ratelimit

import (
	"net"
	"net/http"
	"strings"
	"sync"
	"time"
)

type entry struct {
	mu         sync.Mutex
	timestamps []time.Time
}

// Limiter allows at most limit requests per sliding window per client IP.
// It protects the login endpoint from credential stuffing.
type Limiter struct {
	mu      sync.RWMutex
	clients map[string]*entry
	limit   int
	window  time.Duration
	stopCh  chan struct{}
}

// New creates a limiter and starts a background cleanup of idle clients.
func New(limit int, window time.Duration) *Limiter {
	l := &Limiter{
		clients: make(map[string]*entry),
		limit:   limit,
		window:  window,
		stopCh:  make(chan struct{}),
	}

	go func() {
		ticker := time.NewTicker(5 * time.Minute)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				l.cleanup()
			case <-l.stopCh:
				return
			}
		}
	}()

	return l
}

func (l *Limiter) Stop() {
	close(l.stopCh)
}

// Allow records an attempt for key and reports whether it is within the limit.
func (l *Limiter) Allow(key string) bool {
	l.mu.RLock()
	e, exists := l.clients[key]
	l.mu.RUnlock()

	if !exists {
		l.mu.Lock()
		e, exists = l.clients[key]
		if !exists {
			e = &entry{}
			l.clients[key] = e
		}
		l.mu.Unlock()
	}

	now := time.Now()
	cutoff := now.Add(-l.window)

	e.mu.Lock()
	defer e.mu.Unlock()

	valid := e.timestamps[:0]
	for _, ts := range e.timestamps {
		if ts.After(cutoff) {
			valid = append(valid, ts)
		}
	}
	e.timestamps = valid

	if len(e.timestamps) >= l.limit {
		return false
	}

	e.timestamps = append(e.timestamps, now)

	return true
}

func (l *Limiter) cleanup() {
	cutoff := time.Now().Add(-l.window)

	l.mu.Lock()
	defer l.mu.Unlock()

	for key, e := range l.clients {
		e.mu.Lock()
		hasRecent := false
		for _, ts := range e.timestamps {
			if ts.After(cutoff) {
				hasRecent = true
				break
			}
		}
		e.mu.Unlock()

		if !hasRecent {
			delete(l.clients, key)
		}
	}
}

// Middleware rate-limits by client IP and answers 429 when over the limit.
func (l *Limiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !l.Allow(clientIP(r)) {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func clientIP(r *http.Request) string {
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		if i := strings.IndexByte(forwarded, ','); i >= 0 {
			return strings.TrimSpace(forwarded[:i])
		}

		return strings.TrimSpace(forwarded)
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}

	return host
}
