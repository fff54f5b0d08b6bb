package command

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/mchesser/termion/pkg/raw"
	"github.com/mchesser/termion/pkg/term"
	"github.com/spf13/cobra"
)

const (
	keyQuit = 'q'
	keyETX  = 0x03 // Ctrl-C, which raw mode delivers as input
)

var rawCmd = &cobra.Command{
	Use:   "raw",
	Args:  cobra.NoArgs,
	Short: "Enter raw mode and print the code of every key pressed",
	Long: `Enter raw mode and print the code of every key pressed.

Press q or Ctrl-C to leave raw mode. The terminal is restored on exit.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		term.Info("Press q or Ctrl-C to exit")
		err := raw.With(term.DefaultTerm.Stdout(), func(s *raw.Session[io.Writer]) error {
			// The reader adjusts the console input mode itself, so it is
			// opened inside the session and closed before the session
			// restores the mode found on entry.
			in := newStdin()
			defer in.Close()

			// Unblock the pending Read when the context is canceled.
			stop := context.AfterFunc(ctx, func() { in.Close() })
			defer stop()

			return echoKeys(ctx, in, s)
		}, raw.WithBackend(backend), raw.WithProfile(profile))
		if err != nil {
			return err
		}

		if term.DoDebug() {
			if modes, err := readModes(backend, profile); err == nil {
				for _, m := range modes {
					term.Debug("restored", m.Stream, "mode:", m.Mode, m.Flags)
				}
			}
		}
		return nil
	},
}

// echoKeys writes one line per byte read from in until q, Ctrl-C, EOF or
// cancellation of ctx. Output post-processing is off in raw mode, so every
// line ends with an explicit carriage return.
func echoKeys(ctx context.Context, in io.Reader, s *raw.Session[io.Writer]) error {
	buf := make([]byte, 64)
	for {
		n, err := in.Read(buf)
		for _, b := range buf[:n] {
			if b == keyQuit || b == keyETX {
				return s.Flush()
			}
			if _, err := fmt.Fprintf(s, "%s\r\n", describeKey(b)); err != nil {
				return err
			}
		}
		if ferr := s.Flush(); ferr != nil {
			return ferr
		}
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			if errors.Is(err, io.EOF) || errors.Is(err, term.ErrCanceled) {
				return nil
			}
			return err
		}
	}
}

func describeKey(b byte) string {
	if b >= 0x20 && b < 0x7f {
		return fmt.Sprintf("0x%02x %q", b, rune(b))
	}
	return fmt.Sprintf("0x%02x", b)
}
