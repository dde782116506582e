package oauth

import "testing"

func TestSalesforceConfig(t *testing.T) {
	config := SalesforceConfig("id", "secret", "http://localhost/cb", false)

	if config.AuthorizationURL != "https://login.salesforce.com/services/oauth2/authorize" {
		t.Errorf("AuthorizationURL = %s", config.AuthorizationURL)
	}
	if config.TokenURL != "https://login.salesforce.com/services/oauth2/token" {
		t.Errorf("TokenURL = %s", config.TokenURL)
	}
	if config.Scope != "api refresh_token offline_access" {
		t.Errorf("Scope = %q", config.Scope)
	}
}

func TestSalesforceConfigSandbox(t *testing.T) {
	config := SalesforceConfig("id", "secret", "http://localhost/cb", true)

	if config.AuthorizationURL != "https://test.salesforce.com/services/oauth2/authorize" {
		t.Errorf("AuthorizationURL = %s, want sandbox host", config.AuthorizationURL)
	}
	if config.TokenURL != "https://test.salesforce.com/services/oauth2/token" {
		t.Errorf("TokenURL = %s, want sandbox host", config.TokenURL)
	}
}

func TestShopifyConfig(t *testing.T) {
	config := ShopifyConfig("id", "secret", "http://localhost/cb", "example.myshopify.com")

	if config.AuthorizationURL != "https://example.myshopify.com/admin/oauth/authorize" {
		t.Errorf("AuthorizationURL = %s", config.AuthorizationURL)
	}
	if config.TokenURL != "https://example.myshopify.com/admin/oauth/access_token" {
		t.Errorf("TokenURL = %s", config.TokenURL)
	}
	if config.Scope != "read_orders,write_orders,read_products,write_products,read_customers,write_customers" {
		t.Errorf("Scope = %q", config.Scope)
	}
}

func TestHubSpotConfig(t *testing.T) {
	config := HubSpotConfig("id", "secret", "http://localhost/cb")

	if config.AuthorizationURL != "https://app.hubspot.com/oauth/authorize" {
		t.Errorf("AuthorizationURL = %s", config.AuthorizationURL)
	}
	if config.TokenURL != "https://api.hubapi.com/oauth/v1/token" {
		t.Errorf("TokenURL = %s", config.TokenURL)
	}
	if config.Scope != "contacts,crm.objects.contacts.read,crm.objects.contacts.write" {
		t.Errorf("Scope = %q", config.Scope)
	}
}

func TestSlackConfig(t *testing.T) {
	config := SlackConfig("id", "secret", "http://localhost/cb")

	if config.AuthorizationURL != "https://slack.com/oauth/v2/authorize" {
		t.Errorf("AuthorizationURL = %s", config.AuthorizationURL)
	}
	if config.TokenURL != "https://slack.com/api/oauth.v2.access" {
		t.Errorf("TokenURL = %s", config.TokenURL)
	}
	if config.Scope != "chat:write,channels:read,files:write" {
		t.Errorf("Scope = %q", config.Scope)
	}
}

func TestCalendlyConfig(t *testing.T) {
	config := CalendlyConfig("id", "secret", "http://localhost/cb")

	if config.AuthorizationURL != "https://auth.calendly.com/oauth/authorize" {
		t.Errorf("AuthorizationURL = %s", config.AuthorizationURL)
	}
	if config.TokenURL != "https://auth.calendly.com/oauth/token" {
		t.Errorf("TokenURL = %s", config.TokenURL)
	}
	if config.Scope != "default" {
		t.Errorf("Scope = %q", config.Scope)
	}
}

func TestZendeskConfig(t *testing.T) {
	config := ZendeskConfig("id", "secret", "http://localhost/cb", "acme")

	if config.AuthorizationURL != "https://acme.zendesk.com/oauth/authorizations/new" {
		t.Errorf("AuthorizationURL = %s", config.AuthorizationURL)
	}
	if config.TokenURL != "https://acme.zendesk.com/oauth/tokens" {
		t.Errorf("TokenURL = %s", config.TokenURL)
	}
	if config.Scope != "read write" {
		t.Errorf("Scope = %q", config.Scope)
	}
}

func TestConfigsCarryCredentials(t *testing.T) {
	configs := []ServiceConfig{
		SalesforceConfig("id", "secret", "http://localhost/cb", false),
		ShopifyConfig("id", "secret", "http://localhost/cb", "x.myshopify.com"),
		HubSpotConfig("id", "secret", "http://localhost/cb"),
		SlackConfig("id", "secret", "http://localhost/cb"),
		CalendlyConfig("id", "secret", "http://localhost/cb"),
		ZendeskConfig("id", "secret", "http://localhost/cb", "acme"),
	}

	for _, config := range configs {
		if config.ClientID != "id" || config.ClientSecret != "secret" {
			t.Errorf("%s: credentials not carried through", config.ServiceName)
		}
		if config.RedirectURI != "http://localhost/cb" {
			t.Errorf("%s: RedirectURI = %q", config.ServiceName, config.RedirectURI)
		}
		if config.ServiceName == "" {
			t.Error("constructor left ServiceName empty")
		}
	}
}
