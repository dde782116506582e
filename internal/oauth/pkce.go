package oauth

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
)

// generateState creates a cryptographically random state parameter with 256
// bits of entropy, URL-safe encoded without padding.
func generateState() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}

// generatePKCE generates a PKCE code verifier and its S256 challenge.
// The verifier is 32 random bytes base64url-encoded without padding; the
// challenge is the base64url-no-padding SHA-256 digest of the verifier.
func generatePKCE() (verifier, challenge string, err error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", "", err
	}

	verifier = base64.RawURLEncoding.EncodeToString(buf)
	challenge = challengeFromVerifier(verifier)
	return verifier, challenge, nil
}

// challengeFromVerifier derives the S256 code challenge for a verifier.
func challengeFromVerifier(verifier string) string {
	hash := sha256.Sum256([]byte(verifier))
	return base64.RawURLEncoding.EncodeToString(hash[:])
}
