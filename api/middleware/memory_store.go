package middleware

import (
	"context"
	"sync"
	"time"
)

const memorySweepEvery = 1024

type memoryWindow struct {
	count   int64
	expires time.Time
}

// MemoryRateStore is a process-local fixed-window counter. It backs the rate
// limiter when Redis is not configured, so counts are per instance.
type MemoryRateStore struct {
	mu      sync.Mutex
	windows map[string]memoryWindow
	calls   int
	now     func() time.Time
}

func NewMemoryRateStore() *MemoryRateStore {
	return &MemoryRateStore{windows: map[string]memoryWindow{}, now: time.Now}
}

// IncrWithTTL bumps the counter for key. The window starts with the first hit
// and is not extended by later ones.
func (s *MemoryRateStore) IncrWithTTL(_ context.Context, key string, ttl time.Duration) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	s.calls++
	if s.calls%memorySweepEvery == 0 {
		s.sweep(now)
	}

	w, ok := s.windows[key]
	if !ok || !now.Before(w.expires) {
		w = memoryWindow{expires: now.Add(ttl)}
	}
	w.count++
	s.windows[key] = w
	return w.count, nil
}

func (s *MemoryRateStore) sweep(now time.Time) {
	for key, w := range s.windows {
		if !now.Before(w.expires) {
			delete(s.windows, key)
		}
	}
}
