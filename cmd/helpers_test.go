package cmd

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupManagerNoServices(t *testing.T) {
	t.Setenv("BIZLINK_TOKEN_STORE", filepath.Join(t.TempDir(), "tokens.json"))

	_, _, err := setupManager()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no services configured")
}

func TestSetupManagerFromEnvironment(t *testing.T) {
	t.Setenv("BIZLINK_TOKEN_STORE", filepath.Join(t.TempDir(), "tokens.json"))
	t.Setenv("SLACK_CLIENT_ID", "slack-id")
	t.Setenv("SLACK_CLIENT_SECRET", "slack-secret")

	manager, cfg, err := setupManager()
	require.NoError(t, err)
	defer manager.Stop()

	assert.ElementsMatch(t, []string{"slack"}, manager.Registry().Names())
	assert.Equal(t, cfg.TokenStorePath, manager.TokenStore().Path())
}
