package command

import (
	"io"

	"github.com/joho/godotenv"
	"github.com/mchesser/termion/pkg"
	"github.com/mchesser/termion/pkg/raw"
	"github.com/mchesser/termion/pkg/term"
)

// GLOBALS
var (
	colorMode = ColorAuto
	doDebug   = false
	doJSON    = false
	hasTty    = term.IsTerminal()

	// The platform adapter and flag profile used by every command; tests
	// replace them with a raw.MemoryBackend.
	backend raw.Backend = raw.DefaultBackend()
	profile             = raw.DefaultProfile()

	newStdin = func() io.ReadCloser { return term.NewNonBlockingStdin() }
)

const rcfile = ".termionrc"

// readGlobals loads .termionrc into the environment (without overriding
// variables that are already set) and then reads the global defaults from
// the environment. Flags are applied on top by cobra.
func readGlobals() {
	if err := godotenv.Load(rcfile); err != nil {
		term.Debugf("could not load %s: %v", rcfile, err)
	} else {
		term.Debugf("loaded globals from %s", rcfile)
	}

	if err := colorMode.Set(pkg.Getenv("TERMION_COLOR", string(colorMode))); err != nil {
		term.Warn("ignoring TERMION_COLOR:", err)
	}
	doDebug = pkg.GetenvBool("TERMION_DEBUG")
	doJSON = pkg.GetenvBool("TERMION_JSON")
	hasTty = term.IsTerminal() && !pkg.GetenvBool("CI")
}
