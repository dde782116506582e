package cmd

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bizlink/internal/oauth"
)

func newServeTestManager(t *testing.T) *oauth.Manager {
	t.Helper()

	registry := oauth.NewServiceConfigRegistry()
	registry.Register("slack", oauth.ServiceConfig{
		ClientID:         "client-id",
		ClientSecret:     "client-secret",
		AuthorizationURL: "https://slack.com/oauth/v2/authorize",
		TokenURL:         "https://slack.com/api/oauth.v2.access",
		RedirectURI:      "http://localhost:8080/oauth/callback/slack",
		Scope:            "chat:write",
	})

	store := oauth.NewTokenStore(filepath.Join(t.TempDir(), "tokens.json"))
	manager := oauth.NewManager(registry, store, oauth.ManagerOptions{})
	t.Cleanup(manager.Stop)
	return manager
}

func TestHandleStartRedirects(t *testing.T) {
	manager := newServeTestManager(t)

	req := httptest.NewRequest(http.MethodGet, "/oauth/start/slack", nil)
	rec := httptest.NewRecorder()
	handleStart(rec, req, manager)

	require.Equal(t, http.StatusFound, rec.Code)

	location, err := url.Parse(rec.Header().Get("Location"))
	require.NoError(t, err)
	assert.Equal(t, "slack.com", location.Host)
	assert.Equal(t, "code", location.Query().Get("response_type"))
	assert.NotEmpty(t, location.Query().Get("code_challenge"))
}

func TestHandleStartUnknownService(t *testing.T) {
	manager := newServeTestManager(t)

	req := httptest.NewRequest(http.MethodGet, "/oauth/start/nonexistent", nil)
	rec := httptest.NewRecorder()
	handleStart(rec, req, manager)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandleStatus(t *testing.T) {
	manager := newServeTestManager(t)
	manager.TokenStore().Save("slack", &oauth.Token{
		AccessToken: "tok1",
		ExpiresAt:   time.Now().Add(time.Hour),
	})

	req := httptest.NewRequest(http.MethodGet, "/status", nil)
	rec := httptest.NewRecorder()
	handleStatus(rec, req, manager)

	require.Equal(t, http.StatusOK, rec.Code)

	var status map[string]bool
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &status))
	assert.Equal(t, map[string]bool{"slack": true}, status)
}
