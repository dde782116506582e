package cmd

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/spf13/cobra"

	"bizlink/internal/oauth"
	"bizlink/pkg/logging"
)

var loginTimeout time.Duration

// authLoginCmd runs the full authorization flow for one service.
var authLoginCmd = &cobra.Command{
	Use:   "login <service>",
	Short: "Authorize a service",
	Long: `Run the OAuth authorization flow for a service.

The command prints the authorization URL to open in a browser, starts a
temporary local server on the configured redirect URI, waits for the
authorization server to redirect back, and exchanges the code for a token.
The token is persisted, so later invocations and the serve command can use
it immediately.

Examples:
  bizlink auth login salesforce
  bizlink auth login slack --timeout 10m`,
	Args: cobra.ExactArgs(1),
	RunE: runAuthLogin,
}

func init() {
	authLoginCmd.Flags().DurationVar(&loginTimeout, "timeout", 5*time.Minute,
		"how long to wait for the browser authorization")
}

func runAuthLogin(cmd *cobra.Command, args []string) error {
	service := args[0]

	manager, cfg, err := setupManager()
	if err != nil {
		return err
	}
	defer manager.Stop()

	authURL, _, err := manager.GenerateAuthorizationURL(service, "")
	if err != nil {
		return err
	}

	redirect, err := url.Parse(cfg.RedirectURI)
	if err != nil {
		return fmt.Errorf("invalid redirect URI %q: %w", cfg.RedirectURI, err)
	}

	// One-shot callback server on the redirect URI's address. The handler
	// signals the first callback outcome; everything after that is a stray
	// request from the browser (favicon and the like).
	done := make(chan error, 1)
	handler := oauth.NewCallbackHandler(manager)
	handler.OnResult = func(_ string, err error) {
		select {
		case done <- err:
		default:
		}
	}

	mux := http.NewServeMux()
	mux.Handle(redirect.Path+"/", handler)

	server := &http.Server{Addr: redirect.Host, Handler: mux}
	serveErr := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serveErr <- err
		}
	}()
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		server.Shutdown(shutdownCtx)
	}()

	fmt.Fprintf(cmd.OutOrStdout(), "Open this URL in a browser to authorize %s:\n\n%s\n\nWaiting for authorization (timeout %v)...\n",
		service, authURL, loginTimeout)

	select {
	case err := <-done:
		if err != nil {
			return fmt.Errorf("authorization for %s failed: %w", service, err)
		}
	case err := <-serveErr:
		return fmt.Errorf("callback server on %s failed: %w", redirect.Host, err)
	case <-time.After(loginTimeout):
		return fmt.Errorf("timed out waiting for %s authorization", service)
	}

	logging.Info("CLI", "Authorization for service=%s completed", service)
	fmt.Fprintf(cmd.OutOrStdout(), "Successfully authorized %s.\n", service)
	return nil
}
