package command

import (
	"github.com/mchesser/termion/pkg/raw"
	"github.com/mchesser/termion/pkg/term"
	"github.com/spf13/cobra"
)

type streamMode struct {
	Stream string `json:"stream"`
	Mode   string `json:"mode"`
	Flags  string `json:"flags"`
}

// readModes reads the current mode of both endpoints without changing them.
func readModes(b raw.Backend, p raw.Profile) ([]streamMode, error) {
	var modes []streamMode
	for _, s := range []raw.Stream{raw.Stdin, raw.Stdout} {
		h, err := b.Resolve(s)
		if err != nil {
			return nil, &raw.HandleError{Stream: s, Err: err}
		}
		m, err := b.GetMode(h)
		if err != nil {
			return nil, &raw.ModeQueryError{Stream: s, Err: err}
		}
		modes = append(modes, streamMode{
			Stream: s.String(),
			Mode:   m.String(),
			Flags:  p.DescribeString(s, m),
		})
	}
	return modes, nil
}

var modeCmd = &cobra.Command{
	Use:   "mode",
	Args:  cobra.NoArgs,
	Short: "Show the current input and output modes",
	RunE: func(cmd *cobra.Command, args []string) error {
		modes, err := readModes(backend, profile)
		if err != nil {
			return err
		}
		return term.Table(modes, "Stream", "Mode", "Flags")
	},
}
