package cmd

import (
	"fmt"

	"bizlink/internal/config"
	"bizlink/internal/oauth"
)

// setupManager builds the OAuth manager from the environment and the
// optional services file. Every command that talks to the token machinery
// goes through here so they all see the same configuration.
func setupManager() (*oauth.Manager, config.Config, error) {
	cfg := config.Load()

	registry := oauth.NewServiceConfigRegistry()
	registered := config.RegisterServices(registry, cfg)

	if servicesFile != "" {
		fromFile, err := config.LoadServicesFile(registry, cfg, servicesFile)
		if err != nil {
			return nil, cfg, err
		}
		registered = append(registered, fromFile...)
	}

	if len(registered) == 0 {
		return nil, cfg, fmt.Errorf("no services configured; set <SERVICE>_CLIENT_ID/<SERVICE>_CLIENT_SECRET or pass --services-file")
	}

	manager := oauth.NewManager(registry, oauth.NewTokenStore(cfg.TokenStorePath), oauth.ManagerOptions{
		HTTPTimeout: cfg.HTTPTimeout,
	})
	return manager, cfg, nil
}
