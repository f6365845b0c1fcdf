package cmd

import (
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/briandowns/spinner"
	"github.com/winrmkit/winkrb/internal/configs"
	"github.com/winrmkit/winkrb/internal/ui"
)

// resolveUsername returns the flag value, falling back to the configured
// default principal. An empty result means neither was given.
func resolveUsername(flagValue string) (string, error) {
	if flagValue != "" {
		return flagValue, nil
	}
	userConfig, err := configs.LoadUserConfig()
	if err != nil {
		return "", err
	}
	return userConfig.Defaults.Principal, nil
}

// missingUsernameMessage is the shared guidance when no principal could be
// resolved.
func missingUsernameMessage() string {
	return ui.Error.Sprint("✗") + " No username given\n" +
		ui.Info.Sprint("→") + " Pass " + ui.Flag.Sprint("--username") + " or set " +
		ui.Code.Sprint("defaults.principal") + " in " + ui.Path.Sprint(configs.UserConfigPath())
}

// startSpinner starts a progress spinner for a ticket command, suppressed
// when verbose or debug output would fight with it over the terminal line.
// The returned cleanup must be deferred; it stops the spinner and prints
// s.FinalMSG through ui.EnsureNewline, so FinalMSG never needs a trailing
// newline.
func startSpinner(message string, verbose bool) (*spinner.Spinner, func()) {
	Logger.Debugf("Starting spinner with message: %s", message)
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond)
	s.Suffix = " " + message

	if err := s.Color("cyan"); err != nil {
		Logger.Warnf("Failed to set spinner color: %v", err)
	}

	if !verbose && !debug {
		s.Start()
		// Stray stdlib log output would corrupt the spinner line.
		log.SetOutput(io.Discard)
	} else {
		Logger.Infof("Running in verbose or debug mode: %s", message)
	}

	cleanup := func() {
		if !verbose && !debug {
			log.SetOutput(os.Stdout)
		}

		// FinalMSG is printed by hand after Stop clears the spinner line;
		// left on the spinner it would race the line clearing.
		finalMsg := ""
		if s.FinalMSG != "" {
			finalMsg = ui.EnsureNewline(s.FinalMSG)
			s.FinalMSG = ""
		}

		if !verbose && !debug {
			s.Stop()
		}

		if finalMsg != "" {
			fmt.Print(finalMsg)
		}
	}

	return s, cleanup
}

// startSpinnerWithFlags is startSpinner for the config commands, which
// carry their own verbose/debug variables instead of the ticket group's.
func startSpinnerWithFlags(message string, verbose, debugFlag bool) (*spinner.Spinner, func()) {
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond)
	s.Suffix = " " + message
	_ = s.Color("cyan")

	if !verbose && !debugFlag {
		s.Start()
		log.SetOutput(io.Discard)
	}

	cleanup := func() {
		if !verbose && !debugFlag {
			log.SetOutput(os.Stdout)
		}

		finalMsg := ""
		if s.FinalMSG != "" {
			finalMsg = ui.EnsureNewline(s.FinalMSG)
			s.FinalMSG = ""
		}

		if !verbose && !debugFlag {
			s.Stop()
		}

		if finalMsg != "" {
			fmt.Print(finalMsg)
		}
	}

	return s, cleanup
}
