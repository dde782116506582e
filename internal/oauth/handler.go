package oauth

import (
	"errors"
	"fmt"
	"net/http"
	"path"

	"github.com/google/uuid"

	"bizlink/pkg/logging"
)

// CallbackHandler serves the OAuth redirect endpoint. The authorization
// server redirects the user's browser here with either an authorization code
// and state, or an error. The handler validates the callback parameters,
// drives the code exchange through the Manager, and renders a minimal HTML
// page telling the user whether the connection succeeded.
//
// Routes are of the form <prefix>/{service}; the final path element names
// the service being connected.
type CallbackHandler struct {
	manager *Manager

	// OnResult, when set, is called after every handled callback with the
	// service name and the outcome (nil on success). Used by the login
	// command to know when its one-shot callback server can shut down.
	OnResult func(service string, err error)
}

// NewCallbackHandler creates a callback handler backed by the given Manager.
func NewCallbackHandler(manager *Manager) *CallbackHandler {
	return &CallbackHandler{manager: manager}
}

func (h *CallbackHandler) notify(service string, err error) {
	if h.OnResult != nil {
		h.OnResult(service, err)
	}
}

// ServeHTTP handles the authorization server's redirect.
func (h *CallbackHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	// Correlation ID for tracing one callback through the logs without
	// ever logging codes or tokens.
	requestID := uuid.New().String()
	service := path.Base(r.URL.Path)

	query := r.URL.Query()

	if errParam := query.Get("error"); errParam != "" {
		desc := query.Get("error_description")
		logging.Warn("OAuthCallback", "[%s] Authorization denied for service=%s error=%s description=%s",
			requestID, service, errParam, desc)
		h.renderError(w, http.StatusBadRequest, service,
			fmt.Sprintf("The authorization server reported an error: %s", errParam))
		h.notify(service, fmt.Errorf("authorization denied: %s", errParam))
		return
	}

	code := query.Get("code")
	state := query.Get("state")
	if code == "" || state == "" {
		logging.Warn("OAuthCallback", "[%s] Malformed callback for service=%s (has_code=%t has_state=%t)",
			requestID, service, code != "", state != "")
		h.renderError(w, http.StatusBadRequest, service,
			"The callback is missing the authorization code or state parameter.")
		h.notify(service, fmt.Errorf("malformed callback"))
		return
	}

	token, err := h.manager.ExchangeCodeForToken(r.Context(), service, code, state)
	if err != nil {
		logging.Error("OAuthCallback", err, "[%s] Code exchange failed for service=%s", requestID, service)
		h.renderError(w, statusForError(err), service,
			"Completing the connection failed. Please start the authorization again.")
		h.notify(service, err)
		return
	}

	logging.Info("OAuthCallback", "[%s] Connected service=%s (expires: %v)", requestID, service, token.ExpiresAt)
	h.renderSuccess(w, service)
	h.notify(service, nil)
}

// statusForError maps exchange failures to an HTTP status for the browser
// page. State mismatches and unknown services are the client's fault; token
// endpoint failures are upstream's.
func statusForError(err error) int {
	var mismatchErr *StateMismatchError
	var configErr *ConfigurationError
	switch {
	case errors.As(err, &mismatchErr):
		return http.StatusBadRequest
	case errors.As(err, &configErr):
		return http.StatusNotFound
	default:
		return http.StatusBadGateway
	}
}

func (h *CallbackHandler) renderSuccess(w http.ResponseWriter, service string) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	fmt.Fprintf(w, `<!DOCTYPE html>
<html>
<head><title>Connected</title></head>
<body>
<h1>Connection successful</h1>
<p>Your <strong>%s</strong> account is now connected. You can close this window.</p>
</body>
</html>
`, service)
}

func (h *CallbackHandler) renderError(w http.ResponseWriter, status int, service, message string) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	fmt.Fprintf(w, `<!DOCTYPE html>
<html>
<head><title>Connection failed</title></head>
<body>
<h1>Connection failed</h1>
<p>Connecting your <strong>%s</strong> account did not complete.</p>
<p>%s</p>
</body>
</html>
`, service, message)
}
