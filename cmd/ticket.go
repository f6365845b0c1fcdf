package cmd

import (
	"github.com/spf13/cobra"
	logger "github.com/winrmkit/winkrb/internal/logging"
)

var (
	verbose bool
	debug   bool
	Logger  logger.Logger

	TicketCmd = &cobra.Command{
		Use:   "ticket",
		Short: "Manage per-user Kerberos credential caches",
		Long: `Provides acquisition, inspection, and removal of Kerberos tickets.

Each username gets its own credential cache under the winkrb home, so one
user's acquisition never invalidates another's tickets. WinRM clients pick
the cache up through the KRB5CCNAME convention.

Examples:
  # Acquire a ticket, adding a KDC to the realm on the way
  winkrb ticket acquire --username user@example.com --kdcs kdc1.example.com

  # Show what a cache holds
  winkrb ticket list --username user@example.com

  # Print the cache path for scripting
  winkrb ticket path --username user@example.com`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			Logger = logger.Logger{
				Verbose: verbose,
				Debug:   debug,
			}
			Logger.Debugf("Initializing ticket command with verbose=%t, debug=%t", verbose, debug)
		},
	}
)

func init() {
	TicketCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	TicketCmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "enable debug output")

	TicketCmd.AddCommand(acquireCmd)
	TicketCmd.AddCommand(listCmd)
	TicketCmd.AddCommand(pathCmd)
	TicketCmd.AddCommand(destroyCmd)
}

// GetTicketCmd returns the TicketCmd for testing.
func GetTicketCmd() *cobra.Command {
	return TicketCmd
}

// ResetTicketState resets the ticket command globals to their default values for testing.
func ResetTicketState() {
	verbose = false
	debug = false
	listUsername = ""
	pathUsername = ""
	destroyUsername = ""
	resetAcquireCommandState()
}
