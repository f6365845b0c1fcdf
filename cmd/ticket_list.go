package cmd

import (
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/winrmkit/winkrb/internal/ccache"
	"github.com/winrmkit/winkrb/internal/krbconf"
	"github.com/winrmkit/winkrb/internal/ui"
)

var listUsername string

func init() {
	listCmd.Flags().StringVarP(&listUsername, "username", "u", "", "principal whose credential cache to inspect")
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Shows the tickets held in the user's credential cache",
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting list command")

		username, err := resolveUsername(listUsername)
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
		Logger.Debugf("Credential cache path: %s", cachePath)

		if _, err := os.Stat(cachePath); os.IsNotExist(err) {
			cmd.Println(ui.Error.Sprint("✗") + " No credential cache for " + ui.Highlight.Sprint(username) + "\n" +
				ui.Info.Sprint("→") + " Acquire one with " + ui.Code.Sprint("winkrb ticket acquire --username "+username))
			return nil
		}

		summary, err := ccache.Inspect(cachePath)
		if err != nil {
			return Logger.ErrorfAndReturn("Failed to read credential cache: %v", err)
		}

		var out strings.Builder
		out.WriteString(ui.Success.Sprint("✓") + " Credential cache for " + ui.Highlight.Sprint(summary.Principal+"@"+summary.Realm) + "\n")
		out.WriteString("    cache: " + ui.Path.Sprint(summary.Path) + "\n")
		if len(summary.Entries) == 0 {
			out.WriteString("    " + ui.Muted.Sprint("no service tickets") + "\n")
		}
		for _, entry := range summary.Entries {
			state := ui.Success.Sprint("valid")
			if entry.Expired() {
				state = ui.Error.Sprint("expired")
			}
			out.WriteString("    " + entry.ServicePrincipal + "\n")
			out.WriteString("        " + state + ui.Muted.Sprint(" until "+entry.EndTime.Format(time.RFC1123)) + "\n")
		}
		cmd.Print(out.String())
		return nil
	},
}
