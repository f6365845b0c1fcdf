package cmd

import (
	"strings"

	"github.com/spf13/cobra"
	"github.com/winrmkit/winkrb/internal/krbconf"
	"github.com/winrmkit/winkrb/internal/ui"
)

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Shows the managed realms and include directories",
	RunE: func(cmd *cobra.Command, args []string) error {
		ConfigLogger.Infof("Starting config show command")

		store, err := krbconf.Open("", nil)
		if err != nil {
			return ConfigLogger.ErrorfAndReturn("Failed to open managed krb5.conf: %v", err)
		}
		snapshot := store.Snapshot()

		var out strings.Builder
		out.WriteString(ui.Success.Sprint("✓") + " Managed configuration at " + ui.Path.Sprint(store.Path()) + "\n\n")

		out.WriteString("Include directories:\n")
		for _, dir := range snapshot.IncludeDirList() {
			out.WriteString("    " + ui.Path.Sprint(dir) + "\n")
		}

		out.WriteString("\nRealms:\n")
		names := snapshot.RealmNames()
		if len(names) == 0 {
			out.WriteString("    " + ui.Muted.Sprint("none") + "\n")
		}
		for _, name := range names {
			realm := snapshot.Realms[name]
			out.WriteString("    " + ui.Highlight.Sprint(name) + "\n")
			for _, kdc := range realm.List() {
				marker := ""
				if kdc == realm.AdminServer {
					marker = ui.Muted.Sprint(" admin server")
				}
				out.WriteString("        " + kdc + marker + "\n")
			}
		}

		cmd.Print(out.String())
		return nil
	},
}
