package command

import (
	"github.com/mchesser/termion/pkg/raw"
	"github.com/mchesser/termion/pkg/term"
	"github.com/spf13/cobra"
)

var sizeCmd = &cobra.Command{
	Use:   "size",
	Args:  cobra.NoArgs,
	Short: "Print the terminal's columns and rows",
	RunE: func(cmd *cobra.Command, args []string) error {
		size, err := raw.TerminalSizeWith(backend)
		if err != nil {
			return err
		}
		term.Debug("terminal size:", size)

		if doJSON {
			return term.Table(size)
		}
		_, err = term.Printf("%d %d\n", size.Cols, size.Rows)
		return err
	},
}
