package oauth

import "fmt"

// Per-service config constructors. Each returns a ServiceConfig with the
// provider's fixed authorization and token endpoints and default scopes
// filled in; the caller supplies the app credentials and the redirect URI
// registered with the provider.

// SalesforceConfig builds the config for a Salesforce connected app. With
// sandbox set, endpoints point at test.salesforce.com instead of
// login.salesforce.com.
func SalesforceConfig(clientID, clientSecret, redirectURI string, sandbox bool) ServiceConfig {
	host := "login.salesforce.com"
	if sandbox {
		host = "test.salesforce.com"
	}
	return ServiceConfig{
		ServiceName:      "salesforce",
		ClientID:         clientID,
		ClientSecret:     clientSecret,
		AuthorizationURL: fmt.Sprintf("https://%s/services/oauth2/authorize", host),
		TokenURL:         fmt.Sprintf("https://%s/services/oauth2/token", host),
		RedirectURI:      redirectURI,
		Scope:            "api refresh_token offline_access",
	}
}

// ShopifyConfig builds the config for a Shopify app. Endpoints are per-shop;
// shopDomain is the myshopify.com domain of the store being connected, e.g.
// "example.myshopify.com".
func ShopifyConfig(clientID, clientSecret, redirectURI, shopDomain string) ServiceConfig {
	return ServiceConfig{
		ServiceName:      "shopify",
		ClientID:         clientID,
		ClientSecret:     clientSecret,
		AuthorizationURL: fmt.Sprintf("https://%s/admin/oauth/authorize", shopDomain),
		TokenURL:         fmt.Sprintf("https://%s/admin/oauth/access_token", shopDomain),
		RedirectURI:      redirectURI,
		Scope:            "read_orders,write_orders,read_products,write_products,read_customers,write_customers",
	}
}

// HubSpotConfig builds the config for a HubSpot app. HubSpot serves the
// authorization page and the token endpoint from different hosts.
func HubSpotConfig(clientID, clientSecret, redirectURI string) ServiceConfig {
	return ServiceConfig{
		ServiceName:      "hubspot",
		ClientID:         clientID,
		ClientSecret:     clientSecret,
		AuthorizationURL: "https://app.hubspot.com/oauth/authorize",
		TokenURL:         "https://api.hubapi.com/oauth/v1/token",
		RedirectURI:      redirectURI,
		Scope:            "contacts,crm.objects.contacts.read,crm.objects.contacts.write",
	}
}

// SlackConfig builds the config for a Slack app using the v2 OAuth flow.
func SlackConfig(clientID, clientSecret, redirectURI string) ServiceConfig {
	return ServiceConfig{
		ServiceName:      "slack",
		ClientID:         clientID,
		ClientSecret:     clientSecret,
		AuthorizationURL: "https://slack.com/oauth/v2/authorize",
		TokenURL:         "https://slack.com/api/oauth.v2.access",
		RedirectURI:      redirectURI,
		Scope:            "chat:write,channels:read,files:write",
	}
}

// CalendlyConfig builds the config for a Calendly app.
func CalendlyConfig(clientID, clientSecret, redirectURI string) ServiceConfig {
	return ServiceConfig{
		ServiceName:      "calendly",
		ClientID:         clientID,
		ClientSecret:     clientSecret,
		AuthorizationURL: "https://auth.calendly.com/oauth/authorize",
		TokenURL:         "https://auth.calendly.com/oauth/token",
		RedirectURI:      redirectURI,
		Scope:            "default",
	}
}

// ZendeskConfig builds the config for a Zendesk app. Endpoints are
// per-account; subdomain is the account's Zendesk subdomain, e.g. "acme"
// for acme.zendesk.com.
func ZendeskConfig(clientID, clientSecret, redirectURI, subdomain string) ServiceConfig {
	return ServiceConfig{
		ServiceName:      "zendesk",
		ClientID:         clientID,
		ClientSecret:     clientSecret,
		AuthorizationURL: fmt.Sprintf("https://%s.zendesk.com/oauth/authorizations/new", subdomain),
		TokenURL:         fmt.Sprintf("https://%s.zendesk.com/oauth/tokens", subdomain),
		RedirectURI:      redirectURI,
		Scope:            "read write",
	}
}
