package oauth

import (
	"encoding/json"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"bizlink/pkg/logging"
)

// DefaultTokenStorePath is the default location of the persisted token file,
// relative to the working directory. Override with the BIZLINK_TOKEN_STORE
// environment variable (wired up by the config package).
const DefaultTokenStorePath = ".oauth_tokens.json"

// TokenStore holds one token per service and persists the full set to a
// single JSON file. The in-memory set is authoritative for the lifetime of
// the process; disk writes are best-effort and never fail the mutating
// operation that triggered them. Failed writes are logged and counted so
// silent data loss stays diagnosable.
type TokenStore struct {
	mu     sync.RWMutex
	path   string
	tokens map[string]*Token

	saveFailures atomic.Uint64
}

// storedToken is the on-disk representation of a Token. expires_at is
// serialized as an RFC 3339 instant or null.
type storedToken struct {
	AccessToken  string     `json:"access_token"`
	RefreshToken string     `json:"refresh_token,omitempty"`
	ExpiresAt    *time.Time `json:"expires_at"`
	TokenType    string     `json:"token_type,omitempty"`
	Scope        string     `json:"scope,omitempty"`
}

// NewTokenStore creates a token store persisting to the given file path.
// An empty path falls back to DefaultTokenStorePath.
func NewTokenStore(path string) *TokenStore {
	if path == "" {
		path = DefaultTokenStorePath
	}
	return &TokenStore{
		path:   path,
		tokens: make(map[string]*Token),
	}
}

// Path returns the path of the persisted token file.
func (s *TokenStore) Path() string {
	return s.path
}

// Load populates the in-memory token set from the persisted file. It is
// called once at startup. A missing or unparseable file is logged and
// treated as an empty token set; startup never fails on it.
func (s *TokenStore) Load() {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			logging.Warn("TokenStore", "Failed to read token file %s: %v", s.path, err)
		}
		return
	}

	var persisted map[string]storedToken
	if err := json.Unmarshal(data, &persisted); err != nil {
		logging.Warn("TokenStore", "Failed to parse token file %s, starting with no persisted tokens: %v", s.path, err)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.tokens = make(map[string]*Token, len(persisted))
	for service, st := range persisted {
		token := &Token{
			AccessToken:  st.AccessToken,
			RefreshToken: st.RefreshToken,
			TokenType:    st.TokenType,
			Scope:        st.Scope,
		}
		if st.ExpiresAt != nil {
			token.ExpiresAt = *st.ExpiresAt
		}
		s.tokens[service] = token
	}

	logging.Info("TokenStore", "Loaded persisted tokens for %d service(s)", len(s.tokens))
}

// Get returns the stored token for a service, expired or not, or nil if
// none is on record. Expiry handling is the Manager's business.
func (s *TokenStore) Get(service string) *Token {
	s.mu.RLock()
	defer s.mu.RUnlock()

	token, ok := s.tokens[service]
	if !ok {
		return nil
	}
	copy := *token
	return &copy
}

// Save stores the token for a service and persists the full current set.
func (s *TokenStore) Save(service string, token *Token) {
	s.mu.Lock()
	stored := *token
	s.tokens[service] = &stored
	s.persistLocked()
	s.mu.Unlock()

	logging.Debug("TokenStore", "Stored token for service=%s (expires: %v, has_refresh_token: %t)",
		service, token.ExpiresAt, token.RefreshToken != "")
}

// Delete removes the service's token and persists the updated set.
// It is a no-op if no token is on record.
func (s *TokenStore) Delete(service string) {
	s.mu.Lock()
	_, existed := s.tokens[service]
	delete(s.tokens, service)
	if existed {
		s.persistLocked()
	}
	s.mu.Unlock()

	if existed {
		logging.Debug("TokenStore", "Deleted token for service=%s", service)
	}
}

// Services returns the names of services with a token on record.
func (s *TokenStore) Services() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	names := make([]string, 0, len(s.tokens))
	for name := range s.tokens {
		names = append(names, name)
	}
	return names
}

// SaveFailures returns the number of persistence failures swallowed since
// the store was created. This is the observability hook for the best-effort
// persistence contract.
func (s *TokenStore) SaveFailures() uint64 {
	return s.saveFailures.Load()
}

// persistLocked writes the full token set to disk. Failures are logged and
// counted, never propagated. Requires s.mu to be held.
func (s *TokenStore) persistLocked() {
	persisted := make(map[string]storedToken, len(s.tokens))
	for service, token := range s.tokens {
		st := storedToken{
			AccessToken:  token.AccessToken,
			RefreshToken: token.RefreshToken,
			TokenType:    token.TokenType,
			Scope:        token.Scope,
		}
		if !token.ExpiresAt.IsZero() {
			expiresAt := token.ExpiresAt
			st.ExpiresAt = &expiresAt
		}
		persisted[service] = st
	}

	data, err := json.MarshalIndent(persisted, "", "  ")
	if err != nil {
		s.recordSaveFailure(&PersistenceError{Path: s.path, Err: err})
		return
	}

	// Owner read/write only: the file holds live credentials.
	if err := os.WriteFile(s.path, data, 0600); err != nil {
		s.recordSaveFailure(&PersistenceError{Path: s.path, Err: err})
		return
	}
}

func (s *TokenStore) recordSaveFailure(err error) {
	s.saveFailures.Add(1)
	logging.Warn("TokenStore", "Failed to persist tokens (in-memory state remains authoritative): %v", err)
}
