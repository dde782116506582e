package oauth

import (
	"time"

	"golang.org/x/oauth2"
)

// DefaultExpiryMargin is the margin applied when checking token expiry.
// Tokens are treated as expired this long before their actual expiry to
// account for clock skew between systems and network latency.
const DefaultExpiryMargin = 30 * time.Second

// ServiceConfig holds the OAuth configuration for one service.
// Configs are created once at startup and never mutated; the
// ServiceConfigRegistry owns them exclusively.
type ServiceConfig struct {
	// ServiceName identifies the service and keys all lookups.
	ServiceName string `yaml:"name"`

	// ClientID is the OAuth client identifier issued by the service.
	ClientID string `yaml:"client_id"`

	// ClientSecret is the OAuth client secret. Never logged.
	ClientSecret string `yaml:"client_secret"`

	// AuthorizationURL is the service's authorization endpoint.
	AuthorizationURL string `yaml:"authorization_url"`

	// TokenURL is the service's token endpoint.
	TokenURL string `yaml:"token_url"`

	// RedirectURI is where the authorization server sends the user back.
	RedirectURI string `yaml:"redirect_uri"`

	// Scope is the space- or comma-separated scope string to request.
	Scope string `yaml:"scope"`
}

// Token represents an OAuth access token for one service.
type Token struct {
	// AccessToken is the bearer token used for authorization.
	AccessToken string `json:"access_token"`

	// TokenType is typically "Bearer".
	TokenType string `json:"token_type,omitempty"`

	// RefreshToken is used to obtain new access tokens (optional).
	RefreshToken string `json:"refresh_token,omitempty"`

	// ExpiresIn is the token lifetime in seconds as reported by the
	// token endpoint. Transient; ExpiresAt is derived from it once.
	ExpiresIn int `json:"expires_in,omitempty"`

	// ExpiresAt is the absolute expiration timestamp. Zero means the
	// token never expires.
	ExpiresAt time.Time `json:"expires_at,omitempty"`

	// Scope is the granted scope(s), if the server reported them.
	Scope string `json:"scope,omitempty"`
}

// IsExpired checks if the token has expired, applying DefaultExpiryMargin.
func (t *Token) IsExpired() bool {
	return t.IsExpiredWithMargin(DefaultExpiryMargin)
}

// IsExpiredWithMargin checks if the token has expired or will expire within
// the given margin. Tokens without an expiry timestamp never expire.
func (t *Token) IsExpiredWithMargin(margin time.Duration) bool {
	if t.ExpiresAt.IsZero() {
		return false
	}
	return time.Now().Add(margin).After(t.ExpiresAt)
}

// SetExpiresAtFromExpiresIn calculates and sets ExpiresAt from ExpiresIn.
func (t *Token) SetExpiresAtFromExpiresIn() {
	if t.ExpiresIn > 0 && t.ExpiresAt.IsZero() {
		t.ExpiresAt = time.Now().Add(time.Duration(t.ExpiresIn) * time.Second)
	}
}

// ToOAuth2Token converts the Token to an oauth2.Token for use with
// golang.org/x/oauth2 aware HTTP plumbing (e.g. Token.SetAuthHeader).
func (t *Token) ToOAuth2Token() *oauth2.Token {
	return &oauth2.Token{
		AccessToken:  t.AccessToken,
		TokenType:    t.TokenType,
		RefreshToken: t.RefreshToken,
		Expiry:       t.ExpiresAt,
	}
}
