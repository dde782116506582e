package oauth

import (
	"crypto/sha256"
	"encoding/base64"
	"testing"
)

func TestGenerateState(t *testing.T) {
	state, err := generateState()
	if err != nil {
		t.Fatalf("generateState() error: %v", err)
	}

	decoded, err := base64.RawURLEncoding.DecodeString(state)
	if err != nil {
		t.Fatalf("state is not base64url without padding: %v", err)
	}
	if len(decoded) != 32 {
		t.Errorf("state entropy = %d bytes, want 32", len(decoded))
	}

	other, err := generateState()
	if err != nil {
		t.Fatalf("generateState() error: %v", err)
	}
	if state == other {
		t.Error("two generated states are identical")
	}
}

func TestGeneratePKCE(t *testing.T) {
	verifier, challenge, err := generatePKCE()
	if err != nil {
		t.Fatalf("generatePKCE() error: %v", err)
	}

	decoded, err := base64.RawURLEncoding.DecodeString(verifier)
	if err != nil {
		t.Fatalf("verifier is not base64url without padding: %v", err)
	}
	if len(decoded) != 32 {
		t.Errorf("verifier entropy = %d bytes, want 32", len(decoded))
	}

	hash := sha256.Sum256([]byte(verifier))
	want := base64.RawURLEncoding.EncodeToString(hash[:])
	if challenge != want {
		t.Errorf("challenge = %q, want S256 digest %q", challenge, want)
	}
}

func TestChallengeFromVerifier(t *testing.T) {
	// Reference vector from RFC 7636 appendix B.
	verifier := "dBjftJeZ4CVP-mB92K27uhbUJU1p1r_wW1gFWFOEjXk"
	want := "E9Melhoa2OwvFrEMTJguCHaoeK1t8URWbuGJSstw-cM"

	if got := challengeFromVerifier(verifier); got != want {
		t.Errorf("challengeFromVerifier() = %q, want %q", got, want)
	}
}
