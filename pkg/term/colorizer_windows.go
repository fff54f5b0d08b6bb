//go:build windows
// +build windows

package term

import (
	"github.com/muesli/termenv"
)

// EnableANSI turns on virtual terminal processing for stdout so colored
// output renders; the returned func puts the previous console mode back.
func EnableANSI() func() {
	mode, err := termenv.EnableWindowsANSIConsole()
	if err != nil {
		return func() {}
	}
	return func() {
		termenv.RestoreWindowsConsole(mode)
	}
}

// The Windows console does not export TERM.
func hasTermInEnv() bool {
	return true
}
