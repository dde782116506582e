package integration

import (
	"context"
	"net/http"
	"time"
)

const defaultRequestTimeout = 30 * time.Second

// Client is the base HTTP client shared by all OAuth-backed integrations.
// It fetches a valid token from its TokenSource before every request and
// attaches it as a bearer credential; the refresh-if-expired logic lives
// entirely behind the TokenSource.
type Client struct {
	service    string
	tokens     TokenSource
	httpClient *http.Client
}

// NewClient creates a client for a service. A nil httpClient gets a default
// with a 30 second timeout.
func NewClient(service string, tokens TokenSource, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultRequestTimeout}
	}
	return &Client{
		service:    service,
		tokens:     tokens,
		httpClient: httpClient,
	}
}

// ServiceName returns the service this client authenticates as.
func (c *Client) ServiceName() string {
	return c.service
}

// IsAuthenticated reports whether a valid token is currently available.
func (c *Client) IsAuthenticated(ctx context.Context) bool {
	return c.tokens.GetValidToken(ctx, c.service) != nil
}

// Do sends the request with the service's bearer token attached. It returns
// a NotAuthenticatedError without sending anything when no valid token is
// available.
func (c *Client) Do(req *http.Request) (*http.Response, error) {
	token := c.tokens.GetValidToken(req.Context(), c.service)
	if token == nil {
		return nil, &NotAuthenticatedError{Service: c.service}
	}

	token.ToOAuth2Token().SetAuthHeader(req)
	return c.httpClient.Do(req)
}

// Get issues an authenticated GET request.
func (c *Client) Get(ctx context.Context, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	return c.Do(req)
}

var _ Authenticatable = (*Client)(nil)
