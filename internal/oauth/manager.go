package oauth

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/sync/singleflight"

	"bizlink/pkg/logging"
)

// defaultHTTPTimeout bounds every call to an authorization server's token
// endpoint so no operation in this package blocks indefinitely.
const defaultHTTPTimeout = 30 * time.Second

// Manager orchestrates the OAuth authorization-code-with-PKCE flow for all
// configured services: it builds authorization URLs, exchanges codes for
// tokens, refreshes expired tokens on demand, answers authentication-status
// queries, and revokes tokens.
//
// All state lives in the registry, token store and verifier cache the
// Manager owns or is handed at construction; there is no ambient module
// state. Safe for concurrent use.
type Manager struct {
	registry  *ServiceConfigRegistry
	tokens    *TokenStore
	verifiers *VerifierCache

	httpClient *http.Client

	// refreshGroup collapses concurrent refresh attempts for the same
	// service into one in-flight request. Authorization servers commonly
	// invalidate a refresh token after first use, so a duplicate refresh
	// race would lock the service out.
	refreshGroup singleflight.Group
}

// ManagerOptions configures optional Manager behavior.
type ManagerOptions struct {
	// HTTPTimeout bounds token endpoint calls. Defaults to 30 seconds.
	HTTPTimeout time.Duration

	// HTTPClient overrides the HTTP client used for token endpoint calls.
	// When set, HTTPTimeout is ignored.
	HTTPClient *http.Client
}

// NewManager creates a Manager over the given registry and token store and
// loads any persisted tokens. Call Stop when done to release the verifier
// cache's background sweeper.
func NewManager(registry *ServiceConfigRegistry, tokens *TokenStore, opts ManagerOptions) *Manager {
	httpClient := opts.HTTPClient
	if httpClient == nil {
		timeout := opts.HTTPTimeout
		if timeout <= 0 {
			timeout = defaultHTTPTimeout
		}
		httpClient = &http.Client{Timeout: timeout}
	}

	tokens.Load()

	return &Manager{
		registry:   registry,
		tokens:     tokens,
		verifiers:  NewVerifierCache(),
		httpClient: httpClient,
	}
}

// Registry returns the service config registry the Manager reads from.
func (m *Manager) Registry() *ServiceConfigRegistry {
	return m.registry
}

// TokenStore returns the token store the Manager owns.
func (m *Manager) TokenStore() *TokenStore {
	return m.tokens
}

// GenerateAuthorizationURL builds the authorization URL for a service.
// When state is empty a cryptographically random one is generated. The PKCE
// code verifier is cached under (service, state) for the later exchange.
// Returns the fully encoded URL and the state.
func (m *Manager) GenerateAuthorizationURL(service, state string) (string, string, error) {
	config, err := m.registry.Get(service)
	if err != nil {
		return "", "", err
	}

	if state == "" {
		state, err = generateState()
		if err != nil {
			return "", "", err
		}
	}

	verifier, challenge, err := generatePKCE()
	if err != nil {
		return "", "", err
	}

	authURL, err := url.Parse(config.AuthorizationURL)
	if err != nil {
		return "", "", &ConfigurationError{Service: service}
	}

	query := authURL.Query()
	query.Set("response_type", "code")
	query.Set("client_id", config.ClientID)
	query.Set("redirect_uri", config.RedirectURI)
	query.Set("scope", config.Scope)
	query.Set("state", state)
	query.Set("code_challenge", challenge)
	query.Set("code_challenge_method", "S256")
	authURL.RawQuery = query.Encode()

	m.verifiers.Put(service, state, verifier)

	logging.Debug("OAuth", "Generated authorization URL for service=%s state=%s",
		service, logging.TruncateSecret(state))

	return authURL.String(), state, nil
}

// ExchangeCodeForToken exchanges an authorization code for a token. The
// verifier for (service, state) is consumed exactly once; a second exchange
// attempt with the same state fails with a StateMismatchError. On success
// the token is stored and persisted.
func (m *Manager) ExchangeCodeForToken(ctx context.Context, service, code, state string) (*Token, error) {
	config, err := m.registry.Get(service)
	if err != nil {
		return nil, err
	}

	verifier, err := m.verifiers.TakeAndRemove(service, state)
	if err != nil {
		logging.Warn("OAuth", "Code exchange rejected for service=%s: state mismatch", service)
		return nil, err
	}

	data := url.Values{}
	data.Set("grant_type", "authorization_code")
	data.Set("client_id", config.ClientID)
	data.Set("client_secret", config.ClientSecret)
	data.Set("code", code)
	data.Set("redirect_uri", config.RedirectURI)
	data.Set("code_verifier", verifier)

	tr, status, err := m.postTokenRequest(ctx, config.TokenURL, data)
	if err != nil {
		logging.Error("OAuth", err, "Code exchange request failed for service=%s", service)
		return nil, &TokenExchangeError{Service: service, Err: err}
	}
	if status != 0 {
		logging.Warn("OAuth", "Code exchange rejected for service=%s: status=%d", service, status)
		return nil, &TokenExchangeError{Service: service, StatusCode: status}
	}
	if tr.AccessToken == "" {
		return nil, &TokenExchangeError{Service: service, Detail: "response missing access_token"}
	}

	token := tokenFromResponse(tr)
	m.tokens.Save(service, token)

	logging.Info("OAuth", "Obtained token for service=%s (expires_in=%d)", service, tr.ExpiresIn)
	return token, nil
}

// RefreshToken refreshes the service's token using its refresh token.
// Concurrent refreshes for the same service collapse into one in-flight
// request; all callers share its result. On failure the stale token is left
// in place. On success the access token and expiry are replaced, the refresh
// token is replaced only if the server issued a new one, and the updated
// token is persisted.
func (m *Manager) RefreshToken(ctx context.Context, service string) (*Token, error) {
	result, err, _ := m.refreshGroup.Do(service, func() (interface{}, error) {
		return m.doRefresh(ctx, service)
	})
	if err != nil {
		return nil, err
	}
	return result.(*Token), nil
}

func (m *Manager) doRefresh(ctx context.Context, service string) (*Token, error) {
	config, err := m.registry.Get(service)
	if err != nil {
		return nil, err
	}

	current := m.tokens.Get(service)
	if current == nil {
		return nil, &RefreshError{Service: service, Reason: "no token"}
	}
	if current.RefreshToken == "" {
		return nil, &RefreshError{Service: service, Reason: "no refresh token"}
	}

	data := url.Values{}
	data.Set("grant_type", "refresh_token")
	data.Set("client_id", config.ClientID)
	data.Set("client_secret", config.ClientSecret)
	data.Set("refresh_token", current.RefreshToken)

	tr, status, err := m.postTokenRequest(ctx, config.TokenURL, data)
	if err != nil {
		logging.Error("OAuth", err, "Refresh request failed for service=%s", service)
		return nil, &RefreshError{Service: service, Err: err}
	}
	if status != 0 {
		logging.Warn("OAuth", "Refresh rejected for service=%s: status=%d", service, status)
		return nil, &RefreshError{Service: service, StatusCode: status}
	}
	if tr.AccessToken == "" {
		return nil, &RefreshError{Service: service, Err: &TokenExchangeError{Service: service, Detail: "response missing access_token"}}
	}

	updated := *current
	updated.AccessToken = tr.AccessToken
	updated.ExpiresIn = tr.ExpiresIn
	updated.ExpiresAt = time.Time{}
	updated.SetExpiresAtFromExpiresIn()
	if tr.RefreshToken != "" {
		updated.RefreshToken = tr.RefreshToken
	}
	if tr.Scope != "" {
		updated.Scope = tr.Scope
	}

	m.tokens.Save(service, &updated)

	logging.Info("OAuth", "Refreshed token for service=%s (expires_in=%d)", service, tr.ExpiresIn)
	return &updated, nil
}

// GetValidToken returns a valid token for the service, refreshing first if
// the stored token is expired. It returns nil when no token is on record or
// the refresh fails; refresh failures are logged, not propagated, and leave
// the stale token in the store. This is the single call site all outbound
// integration calls use before attaching credentials.
func (m *Manager) GetValidToken(ctx context.Context, service string) *Token {
	token := m.tokens.Get(service)
	if token == nil {
		return nil
	}

	if !token.IsExpired() {
		return token
	}

	refreshed, err := m.RefreshToken(ctx, service)
	if err != nil {
		logging.Warn("OAuth", "Failed to refresh expired token for service=%s: %v", service, err)
		return nil
	}
	return refreshed
}

// IsAuthenticated reports whether the service currently has a valid token.
// Defined purely in terms of GetValidToken.
func (m *Manager) IsAuthenticated(ctx context.Context, service string) bool {
	return m.GetValidToken(ctx, service) != nil
}

// Revoke removes the service's token locally and persists the updated set.
// Idempotent; it does not call the authorization server's revocation
// endpoint.
func (m *Manager) Revoke(service string) {
	m.tokens.Delete(service)
	logging.Info("OAuth", "Revoked token for service=%s", service)
}

// Stop releases the Manager's background resources.
func (m *Manager) Stop() {
	m.verifiers.Stop()
}

// tokenResponse is the JSON body returned by token endpoints for both the
// authorization_code and refresh_token grants.
type tokenResponse struct {
	AccessToken  string `json:"access_token"`
	TokenType    string `json:"token_type"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int    `json:"expires_in"`
	Scope        string `json:"scope"`
}

// postTokenRequest POSTs a form-encoded grant request to a token endpoint.
// It returns (response, 0, nil) on success, (nil, status, nil) for a
// non-success HTTP status, and (nil, 0, err) for transport failures or a
// malformed body. Callers map the latter two into their operation's error
// kind so transport and protocol failures stay distinguishable in detail.
func (m *Manager) postTokenRequest(ctx context.Context, tokenURL string, data url.Values) (*tokenResponse, int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, tokenURL, strings.NewReader(data.Encode()))
	if err != nil {
		return nil, 0, err
	}

	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	resp, err := m.httpClient.Do(req)
	if err != nil {
		return nil, 0, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, 0, err
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		// The body may contain error hints from the authorization server;
		// log it for debugging but keep it out of the returned error.
		logging.Debug("OAuth", "Token endpoint returned status=%d body=%s", resp.StatusCode, string(body))
		return nil, resp.StatusCode, nil
	}

	var tr tokenResponse
	if err := json.Unmarshal(body, &tr); err != nil {
		return nil, 0, err
	}

	return &tr, 0, nil
}

// tokenFromResponse builds a Token from a token endpoint response,
// defaulting the token type to Bearer and deriving the absolute expiry from
// expires_in when present.
func tokenFromResponse(tr *tokenResponse) *Token {
	token := &Token{
		AccessToken:  tr.AccessToken,
		TokenType:    tr.TokenType,
		RefreshToken: tr.RefreshToken,
		ExpiresIn:    tr.ExpiresIn,
		Scope:        tr.Scope,
	}
	if token.TokenType == "" {
		token.TokenType = "Bearer"
	}
	token.SetExpiresAtFromExpiresIn()
	return token
}
