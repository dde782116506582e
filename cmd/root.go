package cmd

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"bizlink/internal/config"
	"bizlink/pkg/logging"
)

// Exit codes for CLI commands.
const (
	// ExitCodeSuccess indicates successful execution.
	ExitCodeSuccess = 0
	// ExitCodeError indicates a general error (command failed, invalid arguments).
	ExitCodeError = 1
)

// Flags shared by all commands.
var (
	servicesFile string
)

// rootCmd represents the base command for the bizlink application.
var rootCmd = &cobra.Command{
	Use:   "bizlink",
	Short: "Connect business services over OAuth",
	Long: `bizlink authenticates this application against the business services it
integrates with (Salesforce, Shopify, HubSpot, Slack, Calendly, Zendesk and
any service declared in a services file) using the OAuth authorization code
flow with PKCE, and keeps the obtained tokens fresh and persisted.`,
	// SilenceUsage prevents Cobra from printing the usage message on errors
	// that are handled by the application.
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// Credentials are commonly kept in a .env file during development.
		// A missing file is fine; the environment wins over the file.
		_ = godotenv.Load()

		// Initialized twice: config.Load logs invalid settings, so a
		// default-level logger has to exist before it runs.
		logging.InitForCLI(logging.LevelInfo, os.Stderr)
		logging.InitForCLI(startupLogLevel(), os.Stderr)
	},
}

// SetVersion sets the version for the root command. Called from main to
// inject the build version.
func SetVersion(v string) {
	rootCmd.Version = v
}

// Execute is the main entry point for the CLI application.
func Execute() {
	rootCmd.SetVersionTemplate(`{{printf "bizlink version %s\n" .Version}}`)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(ExitCodeError)
	}
}

// startupLogLevel is the log level the whole CLI runs at, as resolved by the
// config package from BIZLINK_LOG_LEVEL.
func startupLogLevel() logging.LogLevel {
	return config.Load().LogLevel
}

func init() {
	rootCmd.PersistentFlags().StringVar(&servicesFile, "services-file", "",
		"YAML file with additional service configurations")
}
