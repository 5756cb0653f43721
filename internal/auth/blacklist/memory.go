// Package blacklist provides the shared set of revoked access tokens. It is
// consulted before trusting a token's signature on any authenticated request:
// a signed token stays cryptographically valid until its expiry claim lapses,
// so this set is what makes revocation observable before that point.
package blacklist

import (
	"context"
	"sync"
	"time"
)

const cleanupInterval = time.Hour

// Memory is an in-process blacklist backed by a TTL map. Entries expire on
// the access token's own lifetime, so pruning them never loses correctness.
type Memory struct {
	mu      sync.RWMutex
	entries map[string]time.Time // token -> expiresAt

	stopCleanup chan struct{}
}

// NewMemory creates an in-memory blacklist and starts a background goroutine
// that periodically drops expired entries.
func NewMemory() *Memory {
	b := &Memory{
		entries:     make(map[string]time.Time),
		stopCleanup: make(chan struct{}),
	}

	go b.cleanupLoop(cleanupInterval)

	return b
}

func (b *Memory) Add(_ context.Context, accessToken string, ttl time.Duration) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.entries[accessToken] = time.Now().Add(ttl)

	return nil
}

func (b *Memory) Contains(_ context.Context, accessToken string) (bool, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	expiresAt, exists := b.entries[accessToken]
	if !exists {
		return false, nil
	}

	// An entry past its TTL is as good as gone even before cleanup runs.
	if time.Now().After(expiresAt) {
		return false, nil
	}

	return true, nil
}

// Close stops the background cleanup goroutine.
func (b *Memory) Close() error {
	close(b.stopCleanup)
	return nil
}

func (b *Memory) cleanupLoop(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			b.cleanup()
		case <-b.stopCleanup:
			return
		}
	}
}

func (b *Memory) cleanup() {
	b.mu.Lock()
	defer b.mu.Unlock()

	now := time.Now()
	for token, expiresAt := range b.entries {
		if now.After(expiresAt) {
			delete(b.entries, token)
		}
	}
}
