package oauth

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestTokenStoreSaveAndGet(t *testing.T) {
	store := NewTokenStore(filepath.Join(t.TempDir(), "tokens.json"))

	token := &Token{
		AccessToken:  "tok1",
		RefreshToken: "ref1",
		TokenType:    "Bearer",
		ExpiresAt:    time.Now().Add(time.Hour),
	}
	store.Save("salesforce", token)

	got := store.Get("salesforce")
	if got == nil {
		t.Fatal("Get() = nil after Save()")
	}
	if got.AccessToken != "tok1" || got.RefreshToken != "ref1" {
		t.Errorf("Get() = %+v, want stored token", got)
	}

	// The returned token is a copy; mutating it must not affect the store.
	got.AccessToken = "mutated"
	if store.Get("salesforce").AccessToken != "tok1" {
		t.Error("mutating the returned token changed the stored token")
	}
}

func TestTokenStoreGetUnknownService(t *testing.T) {
	store := NewTokenStore(filepath.Join(t.TempDir(), "tokens.json"))

	if got := store.Get("nonexistent"); got != nil {
		t.Errorf("Get() = %+v for unknown service, want nil", got)
	}
}

func TestTokenStorePersistsAcrossRestart(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tokens.json")
	expiresAt := time.Now().Add(time.Hour).Truncate(time.Second)

	store := NewTokenStore(path)
	store.Save("salesforce", &Token{
		AccessToken:  "tok1",
		RefreshToken: "ref1",
		TokenType:    "Bearer",
		Scope:        "api",
		ExpiresAt:    expiresAt,
	})
	store.Save("slack", &Token{AccessToken: "tok2"})

	// Simulate a restart.
	reloaded := NewTokenStore(path)
	reloaded.Load()

	sf := reloaded.Get("salesforce")
	if sf == nil {
		t.Fatal("salesforce token not loaded after restart")
	}
	if sf.AccessToken != "tok1" || sf.RefreshToken != "ref1" || sf.Scope != "api" {
		t.Errorf("loaded token = %+v, want saved values", sf)
	}
	if !sf.ExpiresAt.Equal(expiresAt) {
		t.Errorf("loaded ExpiresAt = %v, want %v", sf.ExpiresAt, expiresAt)
	}

	slack := reloaded.Get("slack")
	if slack == nil {
		t.Fatal("slack token not loaded after restart")
	}
	if !slack.ExpiresAt.IsZero() {
		t.Errorf("token saved without expiry loaded with ExpiresAt = %v, want zero", slack.ExpiresAt)
	}
}

func TestTokenStoreFileFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tokens.json")

	store := NewTokenStore(path)
	store.Save("slack", &Token{AccessToken: "tok", TokenType: "Bearer"})

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("token file not written: %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0600 {
		t.Errorf("token file mode = %o, want 0600", perm)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading token file: %v", err)
	}
	var persisted map[string]map[string]any
	if err := json.Unmarshal(data, &persisted); err != nil {
		t.Fatalf("token file is not valid JSON: %v", err)
	}

	entry, ok := persisted["slack"]
	if !ok {
		t.Fatalf("token file has no slack entry: %v", persisted)
	}
	if entry["access_token"] != "tok" {
		t.Errorf("access_token = %v, want %q", entry["access_token"], "tok")
	}
	// A token with no expiry serializes expires_at as null.
	if v, present := entry["expires_at"]; !present || v != nil {
		t.Errorf("expires_at = %v (present=%t), want explicit null", v, present)
	}
}

func TestTokenStoreLoadMissingFile(t *testing.T) {
	store := NewTokenStore(filepath.Join(t.TempDir(), "does-not-exist.json"))
	store.Load()

	if len(store.Services()) != 0 {
		t.Errorf("Services() = %v after loading missing file, want empty", store.Services())
	}
}

func TestTokenStoreLoadCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tokens.json")
	if err := os.WriteFile(path, []byte("{not json"), 0600); err != nil {
		t.Fatal(err)
	}

	store := NewTokenStore(path)
	store.Load()

	// Corrupt persistence degrades to an empty set, never a failure.
	if len(store.Services()) != 0 {
		t.Errorf("Services() = %v after loading corrupt file, want empty", store.Services())
	}
}

func TestTokenStoreDelete(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tokens.json")

	store := NewTokenStore(path)
	store.Save("slack", &Token{AccessToken: "tok"})
	store.Delete("slack")

	if store.Get("slack") != nil {
		t.Error("Get() returned token after Delete()")
	}

	// Deletion is persisted too.
	reloaded := NewTokenStore(path)
	reloaded.Load()
	if reloaded.Get("slack") != nil {
		t.Error("deleted token reappeared after reload")
	}

	// Deleting again is a no-op.
	store.Delete("slack")
}

func TestTokenStoreSaveFailureIsBestEffort(t *testing.T) {
	// An unwritable path must not fail the save; the in-memory state stays
	// authoritative and the failure is counted.
	store := NewTokenStore(filepath.Join(t.TempDir(), "no-such-dir", "tokens.json"))
	store.Save("slack", &Token{AccessToken: "tok"})

	if got := store.Get("slack"); got == nil || got.AccessToken != "tok" {
		t.Errorf("Get() = %+v after failed persist, want in-memory token", got)
	}
	if store.SaveFailures() == 0 {
		t.Error("SaveFailures() = 0 after failed persist, want > 0")
	}
}
