package command

import (
	"runtime"
	"strings"

	"github.com/mchesser/termion/pkg/term"
	"github.com/spf13/cobra"
	"golang.org/x/mod/semver"
)

func isGitRef(maybeVersion string) bool {
	return len(maybeVersion) >= 7 && !strings.Contains(maybeVersion, ".")
}

// normalizeVersion returns maybeVersion as a semver string with a "v"
// prefix, or unchanged and false for development builds.
func normalizeVersion(maybeVersion string) (string, bool) {
	version := maybeVersion
	if !strings.HasPrefix(version, "v") {
		version = "v" + version
	}
	if semver.IsValid(version) && !isGitRef(maybeVersion) {
		return version, true
	}
	return maybeVersion, false // leave as is
}

func GetCurrentVersion() string {
	version, _ := normalizeVersion(RootCmd.Version)
	return version
}

var versionCmd = &cobra.Command{
	Use:     "version",
	Args:    cobra.NoArgs,
	Aliases: []string{"ver"},
	Short:   "Print version information",
	RunE: func(cmd *cobra.Command, args []string) error {
		term.Printc(term.BrightCyan, "termion: ")
		term.Println(GetCurrentVersion())

		term.Printc(term.BrightCyan, "backend: ")
		term.Println(profile.Name, runtime.GOOS+"/"+runtime.GOARCH)
		return nil
	},
}
