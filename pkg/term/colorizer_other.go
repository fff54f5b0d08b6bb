//go:build !windows

package term

import "os"

// EnableANSI is a no-op outside Windows: escape sequences already render.
func EnableANSI() func() {
	return func() {}
}

// hasTermInEnv reports whether TERM names a terminal that can be driven
// interactively. "dumb" terminals (editor shells, some CI logs) cannot.
func hasTermInEnv() bool {
	name, ok := os.LookupEnv("TERM")
	return ok && name != "" && name != "dumb"
}
