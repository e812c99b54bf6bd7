package memory

import (
	"context"
	"sync"
	"time"
)

// Limiter ventana fija por clave, equivalente al contador INCR+EXPIRE de Redis.
type Limiter struct {
	mu      sync.Mutex
	limit   int
	window  time.Duration
	now     func() time.Time
	entries map[string]*window
}

type window struct {
	count   int
	expires time.Time
}

// NewLimiter permite limit intentos por clave dentro de cada ventana.
func NewLimiter(limit int, win time.Duration) *Limiter {
	return &Limiter{limit: limit, window: win, now: time.Now, entries: map[string]*window{}}
}

// Allow cuenta un intento y dice si sigue dentro del límite.
func (l *Limiter) Allow(_ context.Context, key string) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	now := l.now()
	w, ok := l.entries[key]
	if !ok || !now.Before(w.expires) {
		w = &window{expires: now.Add(l.window)}
		l.entries[key] = w
		l.sweep(now)
	}
	w.count++
	return w.count <= l.limit, nil
}

func (l *Limiter) sweep(now time.Time) {
	for k, w := range l.entries {
		if !now.Before(w.expires) {
			delete(l.entries, k)
		}
	}
}
