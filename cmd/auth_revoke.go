package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// authRevokeCmd removes the stored token for a service.
var authRevokeCmd = &cobra.Command{
	Use:   "revoke <service>",
	Short: "Remove the stored token for a service",
	Long: `Remove the stored token for a service from memory and from the persisted
token file. The service has to be authorized again before its API can be
used. Revoking a service with no stored token is a no-op.

Examples:
  bizlink auth revoke salesforce`,
	Args: cobra.ExactArgs(1),
	RunE: runAuthRevoke,
}

func runAuthRevoke(cmd *cobra.Command, args []string) error {
	service := args[0]

	manager, _, err := setupManager()
	if err != nil {
		return err
	}
	defer manager.Stop()

	manager.Revoke(service)
	fmt.Fprintf(cmd.OutOrStdout(), "Revoked token for %s.\n", service)
	return nil
}
