package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"bizlink/internal/oauth"
	"bizlink/pkg/logging"
)

// servicesFile is the YAML document schema for declarative service configs.
type servicesFile struct {
	Services []oauth.ServiceConfig `yaml:"services"`
}

// LoadServicesFile registers every service declared in a YAML file. Unlike
// the best-effort environment scan, an unreadable or invalid file is an
// error: a file the user pointed at explicitly must not be half-applied.
// Entries may omit redirect_uri to get the derived per-service default.
func LoadServicesFile(registry *oauth.ServiceConfigRegistry, cfg Config, path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading services file: %w", err)
	}

	var file servicesFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parsing services file %s: %w", path, err)
	}

	for _, service := range file.Services {
		if err := validateServiceEntry(service); err != nil {
			return nil, err
		}
	}

	var registered []string
	for _, service := range file.Services {
		if service.RedirectURI == "" {
			service.RedirectURI = cfg.ServiceRedirectURI(service.ServiceName)
		}
		registry.Register(service.ServiceName, service)
		registered = append(registered, service.ServiceName)
		logging.Info("Config", "Registered service=%s from %s", service.ServiceName, path)
	}

	return registered, nil
}

func validateServiceEntry(service oauth.ServiceConfig) error {
	switch {
	case service.ServiceName == "":
		return fmt.Errorf("services file entry: missing name")
	case service.ClientID == "":
		return errIncompleteService(service.ServiceName, "client_id")
	case service.ClientSecret == "":
		return errIncompleteService(service.ServiceName, "client_secret")
	case service.AuthorizationURL == "":
		return errIncompleteService(service.ServiceName, "authorization_url")
	case service.TokenURL == "":
		return errIncompleteService(service.ServiceName, "token_url")
	}
	return nil
}
