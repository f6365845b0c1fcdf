package cmd

import (
	"github.com/spf13/cobra"
	"github.com/winrmkit/winkrb/internal/krbconf"
)

var pathUsername string

func init() {
	pathCmd.Flags().StringVarP(&pathUsername, "username", "u", "", "principal whose credential cache path to print")
}

var pathCmd = &cobra.Command{
	Use:   "path",
	Short: "Prints the user's credential cache path",
	Long: `Prints the path of the per-user credential cache, for wiring into
KRB5CCNAME in scripts and WinRM client configuration. The output is the
bare path so it can be command-substituted.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		username, err := resolveUsername(pathUsername)
		if err != nil {
			return Logger.ErrorfAndReturn("Failed to load user config: %v", err)
		}
		if username == "" {
			cmd.Println(missingUsernameMessage())
			return nil
		}

		cachePath, err := krbconf.CachePath(username)
		if err != nil {
			return Logger.ErrorfAndReturn("Failed to resolve credential cache path: %v", err)
		}
		cmd.Println(cachePath)
		return nil
	},
}
