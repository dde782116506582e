package cmd

import (
	"github.com/spf13/cobra"
)

// authCmd groups the authentication subcommands.
var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Manage service authentication",
	Long: `Manage OAuth authentication for the configured services.

Run "bizlink auth login <service>" to authorize a service interactively, or
keep "bizlink serve" running and start authorizations from its endpoints.`,
}

func init() {
	rootCmd.AddCommand(authCmd)
	authCmd.AddCommand(authLoginCmd)
	authCmd.AddCommand(authStatusCmd)
	authCmd.AddCommand(authRevokeCmd)
}
