package retry

import (
	"sync"
	"time"
)

// DefaultFailureWindow is the span counted by a FailureCounter created with a zero window.
const DefaultFailureWindow = 60 * time.Minute

// FailureCounter counts failures inside a rolling time window.
type FailureCounter struct {
	mu       sync.Mutex
	window   time.Duration
	failures []time.Time
	nowFn    func() time.Time
}

// NewFailureCounter creates a counter over the given window.
func NewFailureCounter(window time.Duration) *FailureCounter {
	if window <= 0 {
		window = DefaultFailureWindow
	}

	return &FailureCounter{
		window: window,
		nowFn:  time.Now,
	}
}

// Add records one failure now.
func (c *FailureCounter) Add() {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.nowFn()
	c.prune(now)
	c.failures = append(c.failures, now)
}

// Num returns the number of failures recorded within the window.
func (c *FailureCounter) Num() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.prune(c.nowFn())
	return len(c.failures)
}

// prune drops failures that left the window. Failures are appended in time order.
func (c *FailureCounter) prune(now time.Time) {
	cutoff := now.Add(-c.window)

	i := 0
	for i < len(c.failures) && !c.failures[i].After(cutoff) {
		i++
	}
	if i > 0 {
		c.failures = append(c.failures[:0], c.failures[i:]...)
	}
}
