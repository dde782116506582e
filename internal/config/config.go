package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"bizlink/internal/oauth"
	"bizlink/pkg/logging"
)

// DefaultRedirectURI is used when BIZLINK_REDIRECT_URI is not set. The
// service name is appended as the final path element per service.
const DefaultRedirectURI = "http://localhost:8080/oauth/callback"

// Config holds the application-level settings.
type Config struct {
	// RedirectURI is the base redirect URI registered with the providers,
	// without the trailing service name element.
	RedirectURI string

	// TokenStorePath is the path of the persisted token file.
	TokenStorePath string

	// HTTPTimeout bounds token endpoint calls.
	HTTPTimeout time.Duration

	// LogLevel is the minimum level emitted by the logging package.
	LogLevel logging.LogLevel
}

// Load reads application settings from the environment, falling back to
// defaults. Invalid values degrade to the default with a warning rather
// than failing startup.
func Load() Config {
	cfg := Config{
		RedirectURI:    envOrDefault("BIZLINK_REDIRECT_URI", DefaultRedirectURI),
		TokenStorePath: envOrDefault("BIZLINK_TOKEN_STORE", oauth.DefaultTokenStorePath),
		HTTPTimeout:    30 * time.Second,
		LogLevel:       logging.LevelInfo,
	}

	if raw := os.Getenv("BIZLINK_HTTP_TIMEOUT"); raw != "" {
		timeout, err := time.ParseDuration(raw)
		if err != nil || timeout <= 0 {
			logging.Warn("Config", "Invalid BIZLINK_HTTP_TIMEOUT %q, using %v", raw, cfg.HTTPTimeout)
		} else {
			cfg.HTTPTimeout = timeout
		}
	}

	if raw := os.Getenv("BIZLINK_LOG_LEVEL"); raw != "" {
		level, err := logging.ParseLevel(raw)
		if err != nil {
			logging.Warn("Config", "Invalid BIZLINK_LOG_LEVEL %q, using info", raw)
		} else {
			cfg.LogLevel = level
		}
	}

	cfg.RedirectURI = strings.TrimRight(cfg.RedirectURI, "/")
	return cfg
}

// ServiceRedirectURI derives the per-service redirect URI from the base one.
func (c Config) ServiceRedirectURI(service string) string {
	return c.RedirectURI + "/" + service
}

// RegisterServices builds OAuth configs from per-service environment
// variables and registers every completely configured service. It returns
// the names of the services registered.
func RegisterServices(registry *oauth.ServiceConfigRegistry, cfg Config) []string {
	var registered []string

	register := func(name string, config oauth.ServiceConfig) {
		registry.Register(name, config)
		registered = append(registered, name)
		logging.Info("Config", "Registered service=%s from environment", name)
	}

	if id, secret, ok := credentials("SALESFORCE"); ok {
		sandbox := strings.EqualFold(os.Getenv("SALESFORCE_SANDBOX"), "true")
		register("salesforce", oauth.SalesforceConfig(id, secret, cfg.ServiceRedirectURI("salesforce"), sandbox))
	}

	if id, secret, ok := credentials("SHOPIFY"); ok {
		shopDomain := os.Getenv("SHOPIFY_SHOP_DOMAIN")
		if shopDomain == "" {
			logging.Warn("Config", "Skipping shopify: SHOPIFY_SHOP_DOMAIN is not set")
		} else {
			register("shopify", oauth.ShopifyConfig(id, secret, cfg.ServiceRedirectURI("shopify"), shopDomain))
		}
	}

	if id, secret, ok := credentials("HUBSPOT"); ok {
		register("hubspot", oauth.HubSpotConfig(id, secret, cfg.ServiceRedirectURI("hubspot")))
	}

	if id, secret, ok := credentials("SLACK"); ok {
		register("slack", oauth.SlackConfig(id, secret, cfg.ServiceRedirectURI("slack")))
	}

	if id, secret, ok := credentials("CALENDLY"); ok {
		register("calendly", oauth.CalendlyConfig(id, secret, cfg.ServiceRedirectURI("calendly")))
	}

	if id, secret, ok := credentials("ZENDESK"); ok {
		subdomain := os.Getenv("ZENDESK_SUBDOMAIN")
		if subdomain == "" {
			logging.Warn("Config", "Skipping zendesk: ZENDESK_SUBDOMAIN is not set")
		} else {
			register("zendesk", oauth.ZendeskConfig(id, secret, cfg.ServiceRedirectURI("zendesk"), subdomain))
		}
	}

	return registered
}

// credentials reads <PREFIX>_CLIENT_ID and <PREFIX>_CLIENT_SECRET. A service
// with only one of the pair set is treated as misconfigured and skipped.
func credentials(prefix string) (id, secret string, ok bool) {
	id = os.Getenv(prefix + "_CLIENT_ID")
	secret = os.Getenv(prefix + "_CLIENT_SECRET")

	switch {
	case id != "" && secret != "":
		return id, secret, true
	case id != "" || secret != "":
		logging.Warn("Config", "Skipping %s: only one of client ID and secret is set", strings.ToLower(prefix))
		return "", "", false
	default:
		return "", "", false
	}
}

func envOrDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

// errIncompleteService reports which required field a services-file entry is
// missing.
func errIncompleteService(name, field string) error {
	return fmt.Errorf("service %q: missing %s", name, field)
}
