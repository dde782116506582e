package oauth

import (
	"sync"

	"bizlink/pkg/logging"
)

// ServiceConfigRegistry provides thread-safe storage for per-service OAuth
// configurations. Registration happens once per service at startup;
// re-registering a name silently replaces the previous config.
type ServiceConfigRegistry struct {
	mu      sync.RWMutex
	configs map[string]ServiceConfig
}

// NewServiceConfigRegistry creates an empty registry.
func NewServiceConfigRegistry() *ServiceConfigRegistry {
	return &ServiceConfigRegistry{
		configs: make(map[string]ServiceConfig),
	}
}

// Register stores or overwrites the config for a service.
func (r *ServiceConfigRegistry) Register(serviceName string, config ServiceConfig) {
	r.mu.Lock()
	defer r.mu.Unlock()

	config.ServiceName = serviceName
	r.configs[serviceName] = config

	logging.Debug("OAuth", "Registered config for service=%s client_id=%s", serviceName, config.ClientID)
}

// Get returns the config for a service, or a ConfigurationError if the
// service was never registered.
func (r *ServiceConfigRegistry) Get(serviceName string) (ServiceConfig, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	config, ok := r.configs[serviceName]
	if !ok {
		return ServiceConfig{}, &ConfigurationError{Service: serviceName}
	}
	return config, nil
}

// Names returns the registered service names in no particular order.
func (r *ServiceConfigRegistry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.configs))
	for name := range r.configs {
		names = append(names, name)
	}
	return names
}
