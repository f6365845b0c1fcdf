package cmd

import (
	"errors"

	"github.com/spf13/cobra"
	"github.com/winrmkit/winkrb/internal/configs"
	kerrors "github.com/winrmkit/winkrb/internal/errors"
	"github.com/winrmkit/winkrb/internal/kinit"
	"github.com/winrmkit/winkrb/internal/krbconf"
	"github.com/winrmkit/winkrb/internal/ui"
	"github.com/winrmkit/winkrb/internal/utils"
	"github.com/winrmkit/winkrb/internal/workflows"
)

var (
	acquireUsername      string
	acquireKDCs          string
	acquireIncludeDir    string
	acquirePasswordStdin bool
)

func init() {
	acquireCmd.Flags().StringVarP(&acquireUsername, "username", "u", "", "principal in user@REALM form (defaults to defaults.principal from config.toml)")
	acquireCmd.Flags().StringVarP(&acquireKDCs, "kdcs", "k", "", "comma-separated KDC delta: host adds, -host removes, *host adds and marks the admin server")
	acquireCmd.Flags().StringVar(&acquireIncludeDir, "include-dir", "", "directory of extra krb5 configuration to include (validated before keeping)")
	acquireCmd.Flags().BoolVar(&acquirePasswordStdin, "password-stdin", false, "read the password from stdin instead of prompting")
}

// resetAcquireCommandState resets the acquire command's global state for testing.
func resetAcquireCommandState() {
	acquireUsername = ""
	acquireKDCs = ""
	acquireIncludeDir = ""
	acquirePasswordStdin = false
}

var acquireCmd = &cobra.Command{
	Use:   "acquire",
	Short: "Acquires a Kerberos ticket into the user's private credential cache",
	Long: `Updates the managed krb5.conf with the given KDC delta, then runs kinit
with KRB5_CONFIG and KRB5CCNAME pointing at winkrb's managed paths and
answers its password prompt.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting acquire command")

		Logger.Debugf("Loading user config")
		userConfig, err := configs.LoadUserConfig()
		if err != nil {
			return Logger.ErrorfAndReturn("Failed to load user config: %v", err)
		}

		username := acquireUsername
		if username == "" {
			username = userConfig.Defaults.Principal
			Logger.Debugf("Using default principal from config: %s", username)
		}
		if username == "" {
			cmd.Println(missingUsernameMessage())
			return nil
		}

		// The password prompt must happen before the spinner owns the
		// terminal line.
		var password []byte
		if acquirePasswordStdin || !utils.IsTerminal() {
			Logger.Debugf("Reading password from stdin")
			password, err = utils.ReadPasswordFromStdin()
		} else {
			password, err = utils.ReadPassword("Password for " + username + ": ")
		}
		if err != nil {
			return Logger.ErrorfAndReturn("Failed to read password: %v", err)
		}

		spinner, cleanup := startSpinner("Acquiring ticket for "+username+"...", verbose)
		defer cleanup()

		kinitPaths := userConfig.Programs.KinitPaths
		klistPaths := userConfig.Programs.KlistPaths
		Logger.Debugf("Program overrides: kinit=%v klist=%v", kinitPaths, klistPaths)

		validator := &kinit.Validator{SearchPaths: klistPaths}
		Logger.Debugf("Opening managed configuration")
		store, err := krbconf.Open("", validator)
		if err != nil {
			return Logger.ErrorfAndReturn("Failed to open managed krb5.conf: %v", err)
		}
		Logger.Debugf("Managed configuration at: %s", store.Path())

		acquirer := &kinit.Acquirer{ConfPath: store.Path(), SearchPaths: kinitPaths}

		result, err := workflows.Acquire(cmd.Context(), store, acquirer, workflows.AcquireOptions{
			Username:   username,
			Password:   string(password),
			KDCs:       acquireKDCs,
			IncludeDir: acquireIncludeDir,
		})
		switch {
		case errors.Is(err, kerrors.ErrMalformedPrincipal):
			spinner.FinalMSG = ui.Error.Sprint("✗") + " " + ui.Highlight.Sprint(username) + " is not a valid principal\n" +
				ui.Info.Sprint("→") + " Use the " + ui.Code.Sprint("user@REALM") + " form, for example " + ui.Code.Sprint("administrator@EXAMPLE.COM")
			return nil
		case errors.Is(err, kerrors.ErrKinitNotFound):
			spinner.FinalMSG = ui.Error.Sprint("✗") + " kinit is not installed\n" +
				ui.Info.Sprint("→") + " Install the Kerberos workstation tools, for example " + ui.Code.Sprint("yum install krb5-workstation")
			return nil
		case errors.Is(err, kerrors.ErrPasswordExpired):
			spinner.FinalMSG = ui.Error.Sprint("✗") + " The password for " + ui.Highlight.Sprint(username) + " has expired\n" +
				ui.Info.Sprint("→") + " Change it with " + ui.Code.Sprint("kpasswd") + " or through your domain administrator, then try again"
			return nil
		case errors.Is(err, kerrors.ErrTicketAcquisition):
			spinner.FinalMSG = ui.Error.Sprint("✗") + " Ticket acquisition failed\n" +
				ui.Muted.Sprint(err.Error())
			return nil
		case err != nil:
			return Logger.ErrorfAndReturn("Failed to acquire ticket: %v", err)
		}

		Logger.Infof("Acquire command completed successfully for %s", result.Principal)

		includeNote := ""
		if !result.IncludeDirKept {
			includeNote = ui.Warning.Sprint("!") + " Include directory " + ui.Path.Sprint(acquireIncludeDir) +
				" could not be read and was not kept\n"
		}

		spinner.FinalMSG = ui.Success.Sprint("✓") + " Ticket acquired for " + ui.Highlight.Sprint(result.Principal) + "\n" +
			includeNote +
			"    cache: " + ui.Path.Sprint(result.CachePath) + "\n" +
			ui.Info.Sprint("→") + " Inspect it with " + ui.Code.Sprint("winkrb ticket list --username "+username)
		return nil
	},
}
