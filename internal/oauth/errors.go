package oauth

import "fmt"

// ConfigurationError indicates a service was never registered with the
// ServiceConfigRegistry. This is a caller bug and must not be retried.
type ConfigurationError struct {
	Service string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("service %q is not configured", e.Service)
}

// StateMismatchError indicates the state presented during code exchange has
// no pending verifier: it was never issued, already consumed, expired, or
// forged. It must never be retried automatically; the user has to restart
// the authorization flow.
type StateMismatchError struct {
	Service string
}

func (e *StateMismatchError) Error() string {
	return fmt.Sprintf("no pending authorization for service %q matches the given state", e.Service)
}

// TokenExchangeError indicates the authorization-code exchange failed, either
// at the transport level (Err is set) or at the protocol level (StatusCode is
// set for a non-success response, or Detail describes a malformed body).
// Authorization codes are single-use, so this is never retried automatically.
type TokenExchangeError struct {
	Service    string
	StatusCode int
	Detail     string
	Err        error
}

func (e *TokenExchangeError) Error() string {
	switch {
	case e.Err != nil:
		return fmt.Sprintf("token exchange for service %q failed: %v", e.Service, e.Err)
	case e.StatusCode != 0:
		return fmt.Sprintf("token exchange for service %q failed with status %d", e.Service, e.StatusCode)
	default:
		return fmt.Sprintf("token exchange for service %q failed: %s", e.Service, e.Detail)
	}
}

func (e *TokenExchangeError) Unwrap() error { return e.Err }

// RefreshError indicates a token refresh could not be performed or was
// rejected. Callers must treat the service as unauthenticated and re-run the
// authorization flow; the stale token is left in place.
type RefreshError struct {
	Service    string
	Reason     string // "no token", "no refresh token", or "" for request failures
	StatusCode int
	Err        error
}

func (e *RefreshError) Error() string {
	switch {
	case e.Reason != "":
		return fmt.Sprintf("cannot refresh token for service %q: %s", e.Service, e.Reason)
	case e.Err != nil:
		return fmt.Sprintf("token refresh for service %q failed: %v", e.Service, e.Err)
	case e.StatusCode != 0:
		return fmt.Sprintf("token refresh for service %q failed with status %d", e.Service, e.StatusCode)
	default:
		return fmt.Sprintf("token refresh for service %q failed", e.Service)
	}
}

func (e *RefreshError) Unwrap() error { return e.Err }

// PersistenceError describes a failed token-store disk operation. It is only
// ever logged and counted; the in-memory state stays authoritative for the
// lifetime of the process and callers never see this error.
type PersistenceError struct {
	Path string
	Err  error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("token store %s: %v", e.Path, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }
