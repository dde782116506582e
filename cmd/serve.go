package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"os/signal"
	"path"
	"sort"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"bizlink/internal/oauth"
	"bizlink/pkg/logging"
)

var serveAddr string

// serveCmd runs the long-lived callback server.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the OAuth callback server",
	Long: `Run the HTTP server that completes OAuth authorizations.

Endpoints:
  GET /oauth/start/<service>     redirect the browser to the service's
                                 authorization page
  GET /oauth/callback/<service>  the redirect URI registered with the
                                 providers; completes the code exchange
  GET /status                    JSON authentication status per service

The server runs until interrupted. By default it listens on the host and
port of the configured redirect URI.

Examples:
  bizlink serve
  bizlink serve --addr :9090`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&serveAddr, "addr", "",
		"listen address (default: host and port of the redirect URI)")
}

func runServe(cmd *cobra.Command, args []string) error {
	manager, cfg, err := setupManager()
	if err != nil {
		return err
	}
	defer manager.Stop()

	redirect, err := url.Parse(cfg.RedirectURI)
	if err != nil {
		return fmt.Errorf("invalid redirect URI %q: %w", cfg.RedirectURI, err)
	}

	addr := serveAddr
	if addr == "" {
		addr = redirect.Host
	}

	mux := http.NewServeMux()
	mux.Handle(redirect.Path+"/", oauth.NewCallbackHandler(manager))
	mux.HandleFunc("/oauth/start/", func(w http.ResponseWriter, r *http.Request) {
		handleStart(w, r, manager)
	})
	mux.HandleFunc("/status", func(w http.ResponseWriter, r *http.Request) {
		handleStatus(w, r, manager)
	})

	server := &http.Server{
		Addr:         addr,
		Handler:      mux,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	serveErr := make(chan error, 1)
	go func() {
		logging.Info("Serve", "Listening on %s (callbacks at %s)", addr, redirect.Path)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serveErr <- err
		}
	}()

	select {
	case err := <-serveErr:
		return err
	case <-ctx.Done():
	}

	logging.Info("Serve", "Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

// handleStart redirects the browser to the service's authorization page.
func handleStart(w http.ResponseWriter, r *http.Request, manager *oauth.Manager) {
	service := path.Base(r.URL.Path)

	authURL, _, err := manager.GenerateAuthorizationURL(service, "")
	if err != nil {
		logging.Warn("Serve", "Cannot start authorization for service=%s: %v", service, err)
		http.Error(w, fmt.Sprintf("unknown service %q", service), http.StatusNotFound)
		return
	}

	http.Redirect(w, r, authURL, http.StatusFound)
}

// handleStatus reports the per-service authentication state as JSON.
func handleStatus(w http.ResponseWriter, r *http.Request, manager *oauth.Manager) {
	names := manager.Registry().Names()
	sort.Strings(names)

	status := make(map[string]bool, len(names))
	for _, service := range names {
		status[service] = manager.IsAuthenticated(r.Context(), service)
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(status)
}
