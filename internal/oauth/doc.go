// Package oauth implements the client side of the OAuth 2.0 authorization
// code flow with PKCE for the business integrations bizlink connects to.
//
// A single application instance authenticates against multiple independent
// authorization servers (Salesforce, Shopify, HubSpot, Slack, Calendly,
// Zendesk, or anything registered at runtime), one token per service.
//
// # Flow
//
//  1. A caller asks the Manager for an authorization URL for a service
//  2. The resource owner is redirected to the authorization server
//  3. The authorization server redirects back with code and state
//  4. The callback is validated and handed to Manager.ExchangeCodeForToken
//  5. The resulting token is stored and persisted
//  6. Integration clients call Manager.GetValidToken before every outbound
//     request; expired tokens are refreshed transparently
//
// # Components
//
//   - ServiceConfigRegistry: immutable per-service endpoint/credential config
//   - VerifierCache: consume-once PKCE code verifiers keyed by (service, state)
//   - TokenStore: per-service tokens with best-effort JSON file persistence
//   - Manager: orchestrates URL generation, code exchange, refresh, revocation
//   - CallbackHandler: validates redirect callbacks before they reach the Manager
//
// # Security
//
// State parameters and PKCE verifiers carry 256 bits of entropy. Each state
// is consumable exactly once; a replayed or forged state fails the exchange.
// Unconsumed verifiers expire after ten minutes so abandoned authorization
// attempts cannot accumulate. Token values are never logged.
//
// Tokens are persisted to a single JSON file (0600) so authentication
// survives process restarts. Persistence is best-effort: a failed write is
// logged and counted but never fails the operation that triggered it, and an
// unreadable file at startup means an empty token set, not a startup error.
package oauth
