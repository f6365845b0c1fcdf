package cmd

import (
	"github.com/spf13/cobra"
	"github.com/winrmkit/winkrb/internal/configs"
	"github.com/winrmkit/winkrb/internal/kinit"
	"github.com/winrmkit/winkrb/internal/krbconf"
	"github.com/winrmkit/winkrb/internal/ui"
)

var configIncludeCmd = &cobra.Command{
	Use:   "include <directory>",
	Short: "Registers a directory of extra krb5 configuration",
	Long: `Adds an includedir line for the given directory to the managed krb5.conf,
then checks with klist that the Kerberos library can still read the
configuration. A directory the library cannot read is removed again,
because a broken include makes every later kinit fail.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir := args[0]
		ConfigLogger.Infof("Starting config include command for %s", dir)
		spinner, cleanup := startSpinnerWithFlags("Validating include directory...", configVerbose, configDebug)
		defer cleanup()

		userConfig, err := configs.LoadUserConfig()
		if err != nil {
			return ConfigLogger.ErrorfAndReturn("Failed to load user config: %v", err)
		}

		validator := &kinit.Validator{SearchPaths: userConfig.Programs.KlistPaths}
		store, err := krbconf.Open("", validator)
		if err != nil {
			return ConfigLogger.ErrorfAndReturn("Failed to open managed krb5.conf: %v", err)
		}

		kept, err := store.RegisterIncludeDir(cmd.Context(), dir)
		if err != nil {
			return ConfigLogger.ErrorfAndReturn("Failed to register include directory: %v", err)
		}

		if !kept {
			spinner.FinalMSG = ui.Error.Sprint("✗") + " Directory " + ui.Path.Sprint(dir) + " could not be read and was not kept\n" +
				ui.Info.Sprint("→") + " Check that it exists and every file in it parses as krb5 configuration"
			return nil
		}
		spinner.FinalMSG = ui.Success.Sprint("✓") + " Directory " + ui.Path.Sprint(dir) + " is now included"
		return nil
	},
}
