package cmd

import (
	"fmt"
	"sort"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
)

// authStatusCmd shows the authentication state of every configured service.
var authStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show authentication status",
	Long: `Show the authentication status for all configured services: whether a
valid token is held and when it expires. Services whose token is expired and
cannot be refreshed show as not authenticated.

Examples:
  bizlink auth status`,
	RunE: runAuthStatus,
}

func runAuthStatus(cmd *cobra.Command, args []string) error {
	manager, _, err := setupManager()
	if err != nil {
		return err
	}
	defer manager.Stop()

	names := manager.Registry().Names()
	sort.Strings(names)

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "SERVICE\tAUTHENTICATED\tEXPIRES")

	for _, service := range names {
		token := manager.GetValidToken(cmd.Context(), service)
		switch {
		case token == nil:
			fmt.Fprintf(w, "%s\tno\t-\n", service)
		case token.ExpiresAt.IsZero():
			fmt.Fprintf(w, "%s\tyes\tnever\n", service)
		default:
			fmt.Fprintf(w, "%s\tyes\t%s\n", service, token.ExpiresAt.Local().Format(time.RFC3339))
		}
	}

	return w.Flush()
}
