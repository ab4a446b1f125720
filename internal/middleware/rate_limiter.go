package middleware

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"unboxx/internal/apierror"

	"github.com/gin-gonic/gin"
)

// windowCounter counts hits per key in fixed windows.
type windowCounter struct {
	limit  int
	window time.Duration
	now    func() time.Time

	mu      sync.Mutex
	entries map[string]*windowEntry
	sweptAt time.Time
}

type windowEntry struct {
	count     int
	windowEnd time.Time
}

func newWindowCounter(limit int, window time.Duration) *windowCounter {
	return &windowCounter{limit: limit, window: window, now: time.Now, entries: make(map[string]*windowEntry)}
}

// hit records one request for key and reports whether it is allowed, along
// with the end of the current window.
func (w *windowCounter) hit(key string) (bool, time.Time) {
	w.mu.Lock()
	defer w.mu.Unlock()

	now := w.now()
	if now.Sub(w.sweptAt) > 5*w.window {
		for k, e := range w.entries {
			if now.After(e.windowEnd) {
				delete(w.entries, k)
			}
		}
		w.sweptAt = now
	}

	e, ok := w.entries[key]
	if !ok || now.After(e.windowEnd) {
		e = &windowEntry{windowEnd: now.Add(w.window)}
		w.entries[key] = e
	}
	e.count++
	return e.count <= w.limit, e.windowEnd
}

func (w *windowCounter) handler(msg string) gin.HandlerFunc {
	return func(c *gin.Context) {
		ok, end := w.hit(c.ClientIP())
		if !ok {
			secs := int(time.Until(end).Seconds()) + 1
			c.Header("Retry-After", strconv.Itoa(secs))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, apierror.New(msg))
			return
		}
		c.Next()
	}
}

// RateLimiter limits each client IP to limit requests per window.
func RateLimiter(limit int, window time.Duration) gin.HandlerFunc {
	return newWindowCounter(limit, window).handler("Too many requests. Try again shortly.")
}

// LoginRateLimiter limits login attempts to 20 per minute per IP.
func LoginRateLimiter() gin.HandlerFunc {
	return newWindowCounter(20, time.Minute).handler("Too many login attempts. Try again in a minute.")
}
