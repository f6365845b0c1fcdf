package cmd

import (
	"github.com/spf13/cobra"
	"github.com/winrmkit/winkrb/internal/ccache"
	"github.com/winrmkit/winkrb/internal/krbconf"
	"github.com/winrmkit/winkrb/internal/ui"
)

var destroyUsername string

func init() {
	destroyCmd.Flags().StringVarP(&destroyUsername, "username", "u", "", "principal whose credential cache to remove")
}

var destroyCmd = &cobra.Command{
	Use:   "destroy",
	Short: "Removes the user's credential cache",
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting destroy command")

		username, err := resolveUsername(destroyUsername)
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
		Logger.Debugf("Removing credential cache at: %s", cachePath)

		if err := ccache.Destroy(cachePath); err != nil {
			return Logger.ErrorfAndReturn("Failed to remove credential cache: %v", err)
		}

		cmd.Println(ui.Success.Sprint("✓") + " Credential cache for " + ui.Highlight.Sprint(username) + " removed\n" +
			"    " + ui.Muted.Sprint(cachePath))
		return nil
	},
}
