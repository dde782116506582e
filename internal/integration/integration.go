// Package integration defines the contract between OAuth-managed credentials
// and the per-service API clients that consume them. An integration declares
// whether it requires user authorization by implementing Authenticatable;
// callers check the interface, never the concrete type.
package integration

import (
	"context"
	"fmt"
	"sync"

	"bizlink/internal/oauth"
)

// Authenticatable is implemented by integrations that require a user-granted
// OAuth token before their API can be called. Integrations that use static
// credentials (API keys) simply don't implement it.
type Authenticatable interface {
	// ServiceName returns the name the integration's tokens and config are
	// registered under.
	ServiceName() string

	// IsAuthenticated reports whether the integration currently holds a
	// valid token.
	IsAuthenticated(ctx context.Context) bool
}

// TokenSource yields a valid token for a service, or nil when the service is
// unauthenticated. *oauth.Manager satisfies it.
type TokenSource interface {
	GetValidToken(ctx context.Context, service string) *oauth.Token
}

// NotAuthenticatedError is returned by integration clients when a request
// cannot be sent because no valid token is available. The user has to run
// the authorization flow for the service.
type NotAuthenticatedError struct {
	Service string
}

func (e *NotAuthenticatedError) Error() string {
	return fmt.Sprintf("service %q is not authenticated", e.Service)
}

// Registry tracks the configured integrations by name.
type Registry struct {
	mu           sync.RWMutex
	integrations map[string]any
}

// NewRegistry creates an empty integration registry.
func NewRegistry() *Registry {
	return &Registry{
		integrations: make(map[string]any),
	}
}

// Register stores an integration under a name, replacing any previous one.
func (r *Registry) Register(name string, integration any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.integrations[name] = integration
}

// Get returns the integration registered under name, or nil.
func (r *Registry) Get(name string) any {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.integrations[name]
}

// Names returns the registered integration names in no particular order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.integrations))
	for name := range r.integrations {
		names = append(names, name)
	}
	return names
}

// AuthStatus reports the authentication state of every registered
// integration that requires authorization. Integrations that don't implement
// Authenticatable are omitted; they have no authentication state to report.
func (r *Registry) AuthStatus(ctx context.Context) map[string]bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	status := make(map[string]bool)
	for name, integration := range r.integrations {
		if authable, ok := integration.(Authenticatable); ok {
			status[name] = authable.IsAuthenticated(ctx)
		}
	}
	return status
}
