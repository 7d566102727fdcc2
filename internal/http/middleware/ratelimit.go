package middleware

import (
	"sync"
	"time"
)

// in-memory fixed-window counter, used when Redis is not configured so
// the limits still hold on a single host
type window struct {
	start time.Time
	count int
}

var (
	memMu      sync.Mutex
	memWindows = make(map[string]*window)
)

func memIncr(key string, dur time.Duration) int {
	memMu.Lock()
	defer memMu.Unlock()

	w, ok := memWindows[key]
	now := time.Now()
	if !ok || now.Sub(w.start) > dur {
		memWindows[key] = &window{start: now, count: 1}
		return 1
	}
	w.count++
	return w.count
}
