package cmd

import (
	"github.com/spf13/cobra"
	"github.com/winrmkit/winkrb/internal/krbconf"
	"github.com/winrmkit/winkrb/internal/ui"
	"github.com/winrmkit/winkrb/internal/workflows"
)

var (
	trustRealm string
	trustKDCs  string
)

func init() {
	configTrustCmd.Flags().StringVarP(&trustRealm, "realm", "r", "", "realm to update (required)")
	configTrustCmd.Flags().StringVarP(&trustKDCs, "kdcs", "k", "", "comma-separated KDC delta: host adds, -host removes, *host adds and marks the admin server (required)")
	_ = configTrustCmd.MarkFlagRequired("realm")
	_ = configTrustCmd.MarkFlagRequired("kdcs")
}

// resetConfigTrustState resets the trust command's global state for testing.
func resetConfigTrustState() {
	trustRealm = ""
	trustKDCs = ""
}

var configTrustCmd = &cobra.Command{
	Use:   "trust",
	Short: "Merges KDCs for a trusted realm without acquiring a ticket",
	Long: `Applies a KDC delta to a realm used only for cross-realm authentication.
Windows environments with domain trusts need the trusted domain's KDCs in
krb5.conf even though no ticket is ever acquired for that realm directly.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ConfigLogger.Infof("Starting config trust command")
		spinner, cleanup := startSpinnerWithFlags("Updating realm "+trustRealm+"...", configVerbose, configDebug)
		defer cleanup()

		store, err := krbconf.Open("", nil)
		if err != nil {
			return ConfigLogger.ErrorfAndReturn("Failed to open managed krb5.conf: %v", err)
		}

		changed, err := workflows.AddTrustedRealm(store, trustRealm, trustKDCs)
		if err != nil {
			return ConfigLogger.ErrorfAndReturn("Failed to update trusted realm: %v", err)
		}

		if !changed {
			spinner.FinalMSG = ui.Success.Sprint("✓") + " Realm " + ui.Highlight.Sprint(trustRealm) + " already up to date"
			return nil
		}
		spinner.FinalMSG = ui.Success.Sprint("✓") + " Realm " + ui.Highlight.Sprint(trustRealm) + " updated\n" +
			ui.Info.Sprint("→") + " Review it with " + ui.Code.Sprint("winkrb config show")
		return nil
	},
}
