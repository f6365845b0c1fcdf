package main

import (
	"fmt"
	"os"

	"github.com/common-nighthawk/go-figure"
	"github.com/spf13/cobra"
	"github.com/winrmkit/winkrb/cmd"
)

var rootCmd = &cobra.Command{
	Use:   "winkrb",
	Short: "winkrb - Kerberos configuration and tickets for WinRM clients.",
	Long: `winkrb manages the krb5.conf shared by all local WinRM clients and
acquires per-user Kerberos credential caches for them.

Features:
  - Merge KDCs into realms with a simple delta syntax
  - Acquire tickets by driving kinit's password prompt
  - Keep one credential cache per user so acquisitions never collide

Usage:
  winkrb <command> [flags]

Available Commands:
  ticket     Acquire, inspect, and remove Kerberos tickets
  config     Inspect and update the managed krb5.conf

Run 'winkrb help <command>' for more details on a specific command.
`,
	Run: func(cmd *cobra.Command, args []string) {
		banner := figure.NewColorFigure("winkrb", "alligator2", "green", true)
		banner.Print()
		fmt.Println()
		fmt.Println("Run 'winkrb --help' to see available commands.")
	},
}

func main() {
	rootCmd.AddCommand(cmd.TicketCmd)
	rootCmd.AddCommand(cmd.ConfigCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
