package core

// ingest_limiter.go bounds how many files are read and parsed at once.
//
// Each ingest holds a whole file in memory, so parallel ingests are capped with a
// semaphore. When every slot is taken a caller waits up to maxWait, then gets
// ErrTooManyIngests. WaitForDrain lets shutdown wait for in-flight ingests.

import (
	"context"
	"errors"
	"sync/atomic"
	"time"
)

// ErrTooManyIngests is returned when no ingest slot frees up within the wait time.
var ErrTooManyIngests = errors.New("too many concurrent ingests, please try again later")

// DefaultMaxConcurrentIngests is used when the configured limit is not positive.
const DefaultMaxConcurrentIngests = 5

// DefaultMaxWaitTime is used when the configured wait is not positive.
const DefaultMaxWaitTime = 30 * time.Second

// IngestLimiter is a counting semaphore for ingest operations.
type IngestLimiter struct {
	slots   chan struct{}
	maxWait time.Duration
	active  atomic.Int64
}

// NewIngestLimiter allows at most maxConcurrent ingests; waiters give up after maxWait.
func NewIngestLimiter(maxConcurrent int, maxWait time.Duration) *IngestLimiter {
	if maxConcurrent <= 0 {
		maxConcurrent = DefaultMaxConcurrentIngests
	}
	if maxWait <= 0 {
		maxWait = DefaultMaxWaitTime
	}

	return &IngestLimiter{
		slots:   make(chan struct{}, maxConcurrent),
		maxWait: maxWait,
	}
}

// Acquire takes a slot, waiting up to maxWait.
// The caller must Release the slot when done.
func (l *IngestLimiter) Acquire(ctx context.Context) error {
	timer := time.NewTimer(l.maxWait)
	defer timer.Stop()

	select {
	case l.slots <- struct{}{}:
		l.active.Add(1)
		return nil
	case <-timer.C:
		return ErrTooManyIngests
	case <-ctx.Done():
		return ctx.Err()
	}
}

// TryAcquire takes a slot only if one is free right now.
func (l *IngestLimiter) TryAcquire() bool {
	select {
	case l.slots <- struct{}{}:
		l.active.Add(1)
		return true
	default:
		return false
	}
}

// Release returns a slot taken by Acquire or TryAcquire.
func (l *IngestLimiter) Release() {
	l.active.Add(-1)
	<-l.slots
}

// ActiveCount returns the number of ingests holding a slot.
func (l *IngestLimiter) ActiveCount() int {
	return int(l.active.Load())
}

// MaxConcurrent returns the slot count.
func (l *IngestLimiter) MaxConcurrent() int {
	return cap(l.slots)
}

// Available returns the number of free slots.
func (l *IngestLimiter) Available() int {
	return cap(l.slots) - len(l.slots)
}

// WaitForDrain blocks until no ingest holds a slot or ctx is done.
func (l *IngestLimiter) WaitForDrain(ctx context.Context) error {
	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()

	for {
		if l.ActiveCount() == 0 {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

// IngestLimiterStatus is a point-in-time view of the limiter.
type IngestLimiterStatus struct {
	Active        int `json:"active"`
	Available     int `json:"available"`
	MaxConcurrent int `json:"max_concurrent"`
}

// Status returns the current limiter state for monitoring.
func (l *IngestLimiter) Status() IngestLimiterStatus {
	return IngestLimiterStatus{
		Active:        l.ActiveCount(),
		Available:     l.Available(),
		MaxConcurrent: l.MaxConcurrent(),
	}
}
