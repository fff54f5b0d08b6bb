package main

import "runtime/debug"

var version = "development" // overwritten by -ldflags "-X main.version=..."

// GetVersion returns the version set at link time, or the module version
// when installed with go install.
func GetVersion() string {
	if version != "development" {
		return version
	}
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" && info.Main.Version != "(devel)" {
		return info.Main.Version
	}
	return version
}
