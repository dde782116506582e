package oauth

import (
	"sync"
	"time"

	"bizlink/pkg/logging"
)

// verifierTTL is how long an unconsumed PKCE verifier stays valid. An
// abandoned authorization attempt must not leave a forgeable state around
// indefinitely, nor leak memory.
const verifierTTL = 10 * time.Minute

type verifierKey struct {
	Service string
	State   string
}

type verifierEntry struct {
	verifier  string
	createdAt time.Time
}

// VerifierCache provides thread-safe, consume-once storage for PKCE code
// verifiers during the in-flight authorization round trip. It is shared by
// all in-flight authorization attempts across all services.
type VerifierCache struct {
	mu      sync.Mutex
	entries map[verifierKey]*verifierEntry

	ttl         time.Duration
	stopCleanup chan struct{}
	stopOnce    sync.Once
}

// NewVerifierCache creates a verifier cache with the default TTL and starts
// a background goroutine sweeping expired entries.
func NewVerifierCache() *VerifierCache {
	c := &VerifierCache{
		entries:     make(map[verifierKey]*verifierEntry),
		ttl:         verifierTTL,
		stopCleanup: make(chan struct{}),
	}

	go c.cleanupLoop()

	return c
}

// Put stores a verifier for (service, state), overwriting any existing entry
// for the same key.
func (c *VerifierCache) Put(service, state, verifier string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[verifierKey{Service: service, State: state}] = &verifierEntry{
		verifier:  verifier,
		createdAt: time.Now(),
	}
}

// TakeAndRemove atomically retrieves and deletes the verifier for
// (service, state). It returns a StateMismatchError if no entry exists —
// covering CSRF forgery, replay of an already-consumed state, and entries
// that expired before the callback arrived.
func (c *VerifierCache) TakeAndRemove(service, state string) (string, error) {
	key := verifierKey{Service: service, State: state}

	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[key]
	if !ok {
		return "", &StateMismatchError{Service: service}
	}

	delete(c.entries, key)

	if time.Since(entry.createdAt) > c.ttl {
		logging.Warn("OAuth", "Verifier expired for service=%s age=%v", service, time.Since(entry.createdAt))
		return "", &StateMismatchError{Service: service}
	}

	return entry.verifier, nil
}

// Len returns the number of pending entries.
func (c *VerifierCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Stop stops the background cleanup goroutine.
func (c *VerifierCache) Stop() {
	c.stopOnce.Do(func() {
		close(c.stopCleanup)
	})
}

// cleanupLoop periodically removes expired entries.
func (c *VerifierCache) cleanupLoop() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			c.cleanup()
		case <-c.stopCleanup:
			return
		}
	}
}

// cleanup removes all expired entries.
func (c *VerifierCache) cleanup() {
	c.mu.Lock()
	defer c.mu.Unlock()

	count := 0
	for key, entry := range c.entries {
		if time.Since(entry.createdAt) > c.ttl {
			delete(c.entries, key)
			count++
		}
	}

	if count > 0 {
		logging.Debug("OAuth", "Cleaned up %d expired verifiers", count)
	}
}
