package cmd

import (
	"github.com/spf13/cobra"
	logger "github.com/winrmkit/winkrb/internal/logging"
)

var (
	configVerbose bool
	configDebug   bool
	ConfigLogger  logger.Logger

	// ConfigCmd is the top-level config command.
	ConfigCmd = &cobra.Command{
		Use:   "config",
		Short: "Manage the shared krb5.conf",
		Long: `Provides commands for inspecting and updating the krb5.conf that winkrb
manages on behalf of all local WinRM clients.

Use these commands to:
  - Show the managed realms and include directories (config show)
  - Merge KDCs into a realm without acquiring a ticket (config trust)
  - Register a directory of extra configuration (config include)

Examples:
  # Show the managed configuration
  winkrb config show

  # Add the KDCs of a trusted realm used for cross-realm authentication
  winkrb config trust --realm trusted.example.com --kdcs kdc.trusted.example.com

  # Include a directory of hand-written overrides
  winkrb config include /etc/krb5.conf.d`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			ConfigLogger = logger.Logger{
				Verbose: configVerbose,
				Debug:   configDebug,
			}
			ConfigLogger.Debugf("Initializing config command with verbose=%t, debug=%t", configVerbose, configDebug)
		},
	}
)

func init() {
	ConfigCmd.PersistentFlags().BoolVarP(&configVerbose, "verbose", "v", false, "enable verbose output")
	ConfigCmd.PersistentFlags().BoolVarP(&configDebug, "debug", "d", false, "enable debug output")

	ConfigCmd.AddCommand(configShowCmd)
	ConfigCmd.AddCommand(configTrustCmd)
	ConfigCmd.AddCommand(configIncludeCmd)
}

// GetConfigCmd returns the ConfigCmd for testing.
func GetConfigCmd() *cobra.Command {
	return ConfigCmd
}

// ResetConfigState resets the config command globals to their default values for testing.
func ResetConfigState() {
	configVerbose = false
	configDebug = false
	resetConfigTrustState()
}
