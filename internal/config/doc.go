// Package config loads the application configuration from the environment
// and optional YAML files, and registers service OAuth configs built from it.
//
// # Environment Variables
//
// Application settings:
//
//	BIZLINK_REDIRECT_URI   Base redirect URI; the service name is appended as
//	                       the final path element (default:
//	                       http://localhost:8080/oauth/callback)
//	BIZLINK_TOKEN_STORE    Path of the persisted token file (default:
//	                       .oauth_tokens.json)
//	BIZLINK_HTTP_TIMEOUT   Timeout for token endpoint calls, as a Go
//	                       duration (default: 30s)
//	BIZLINK_LOG_LEVEL      debug, info, warn or error (default: info)
//
// Per-service credentials. A service is registered only when both its client
// ID and client secret are set; partially configured services are skipped
// with a warning:
//
//	SALESFORCE_CLIENT_ID / SALESFORCE_CLIENT_SECRET
//	SALESFORCE_SANDBOX        "true" targets test.salesforce.com
//	SHOPIFY_CLIENT_ID / SHOPIFY_CLIENT_SECRET
//	SHOPIFY_SHOP_DOMAIN       required alongside the Shopify credentials
//	HUBSPOT_CLIENT_ID / HUBSPOT_CLIENT_SECRET
//	SLACK_CLIENT_ID / SLACK_CLIENT_SECRET
//	CALENDLY_CLIENT_ID / CALENDLY_CLIENT_SECRET
//	ZENDESK_CLIENT_ID / ZENDESK_CLIENT_SECRET
//	ZENDESK_SUBDOMAIN         required alongside the Zendesk credentials
//
// Variables can also be provided through a .env file in the working
// directory; main loads it with godotenv before config runs.
//
// # Services File
//
// Additional or non-standard services can be declared in a YAML file and
// loaded with LoadServicesFile:
//
//	services:
//	  - name: "internal-crm"
//	    client_id: "..."
//	    client_secret: "..."
//	    authorization_url: "https://crm.example.com/oauth/authorize"
//	    token_url: "https://crm.example.com/oauth/token"
//	    scope: "read"
package config
