package command

import (
	"context"
	"errors"
	"fmt"

	"github.com/mchesser/termion/pkg/raw"
	"github.com/mchesser/termion/pkg/term"
	"github.com/spf13/cobra"
)

func Execute(ctx context.Context) error {
	if term.StdoutCanColor() {
		restore := term.EnableANSI()
		defer restore()
	}

	if err := RootCmd.ExecuteContext(ctx); err != nil {
		if !(errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)) {
			term.Error("Error:", err)
		}

		if herr := new(raw.HandleError); errors.As(err, &herr) && !hasTty {
			term.Info("termion needs a console; run it from an interactive terminal, not a pipe or redirect.")
		}
		return exitCodeOf(err)
	}

	if hasTty && term.HadWarnings() {
		term.FlushWarnings()
	}
	return nil
}

// exitCodeOf maps an error to the process exit code.
func exitCodeOf(err error) ExitCode {
	var code ExitCode
	if errors.As(err, &code) {
		return code
	}
	// IOError may wrap a HandleError, so it is checked first.
	if ioerr := new(raw.IOError); errors.As(err, &ioerr) {
		return exitSizeFailed
	}
	if herr := new(raw.HandleError); errors.As(err, &herr) {
		return exitNoHandle
	}
	if qerr := new(raw.ModeQueryError); errors.As(err, &qerr) {
		return exitModeFailed
	}
	if serr := new(raw.ModeSetError); errors.As(err, &serr) {
		return exitModeFailed
	}
	return exitFailure
}

func SetupCommands(version string) {
	readGlobals()

	RootCmd.Version = version
	RootCmd.PersistentFlags().Var(&colorMode, "color", fmt.Sprintf(`colorize output; one of %v`, allColorModes))
	RootCmd.PersistentFlags().BoolVar(&doDebug, "debug", doDebug, "debug logging for troubleshooting")
	RootCmd.PersistentFlags().BoolVar(&doJSON, "json", doJSON, "print results as JSON")

	RootCmd.AddCommand(sizeCmd)
	RootCmd.AddCommand(modeCmd)
	RootCmd.AddCommand(rawCmd)
	RootCmd.AddCommand(versionCmd)
}

var RootCmd = &cobra.Command{
	SilenceUsage:  true,
	SilenceErrors: true,
	Use:           "termion",
	Args:          cobra.NoArgs,
	Short:         "Inspect the terminal and try out raw mode.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		term.SetDebug(doDebug)
		term.SetJSON(doJSON)

		switch colorMode {
		case ColorNever:
			term.ForceColor(false)
		case ColorAlways:
			term.ForceColor(true)
		}

		term.Debug("backend profile:", profile.Name)
		return nil
	},
}
