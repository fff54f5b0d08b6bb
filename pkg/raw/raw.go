// Package raw switches the process's terminal between its default (cooked)
// mode and raw mode, and reports the terminal's dimensions.
//
// The terminal state is owned by the operating system and shared by the whole
// process. A Session captures the input and output modes it found, applies
// the raw flag set, and puts the captured modes back exactly once when it is
// closed:
//
//	s, err := raw.Enter(os.Stdout)
//	if err != nil {
//		return err
//	}
//	defer s.Close()
//
// Entering is all-or-nothing; leaving is best-effort and never returns an
// error. Failures during release are logged to the session's slog.Logger.
//
// Platform support is selected at build time: Windows uses the console mode
// API, Linux uses termios. Both are reached through the Backend interface,
// and the session algorithm only depends on the flag bits of a Profile.
package raw

import (
	"fmt"
	"strings"
)

// Stream names one of the standard terminal endpoints.
type Stream int

const (
	Stdin Stream = iota
	Stdout
)

func (s Stream) String() string {
	switch s {
	case Stdin:
		return "stdin"
	case Stdout:
		return "stdout"
	default:
		return fmt.Sprintf("stream(%d)", int(s))
	}
}

// Handle is a borrowed reference to a terminal endpoint. It is never closed
// by this package.
type Handle struct {
	stream Stream
	fd     uintptr
}

// NewHandle is for Backend implementations.
func NewHandle(s Stream, fd uintptr) Handle {
	return Handle{stream: s, fd: fd}
}

func (h Handle) Stream() Stream {
	return h.stream
}

func (h Handle) Fd() uintptr {
	return h.fd
}

// Mode is the bitmask of behavior flags of one endpoint. The meaning of each
// bit depends on the backend; see Profile.
type Mode uint64

// Has reports whether all bits of flags are set in m.
func (m Mode) Has(flags Mode) bool {
	return m&flags == flags
}

func (m Mode) String() string {
	return fmt.Sprintf("%#x", uint64(m))
}

// Backend is the platform adapter. Methods return the environment's error
// as-is; the caller classifies it.
type Backend interface {
	// Resolve returns the handle of a standard stream, or an error if the
	// environment has no valid handle for it.
	Resolve(s Stream) (Handle, error)
	// GetMode returns the full current bitmask of h.
	GetMode(h Handle) (Mode, error)
	// SetMode replaces the full bitmask of h. On error the endpoint is
	// presumed unchanged.
	SetMode(h Handle, m Mode) error
	// Geometry returns the dimensions reported for h.
	Geometry(h Handle) (Size, error)
}

// Flag names a group of bits in a Mode.
type Flag struct {
	Name string
	Mask Mode
}

// Profile holds the flag bits the raw-mode transition sets and clears on each
// endpoint, along with names for describing modes.
type Profile struct {
	Name string

	OutputSet   Mode
	OutputClear Mode
	InputClear  Mode
	InputSet    Mode

	OutputFlags []Flag
	InputFlags  []Flag
}

// Output computes the raw output mode from the mode found on entry.
func (p Profile) Output(prev Mode) Mode {
	return prev&^p.OutputClear | p.OutputSet
}

// Input computes the raw input mode from the mode found on entry.
func (p Profile) Input(prev Mode) Mode {
	return prev&^p.InputClear | p.InputSet
}

// Describe lists the names of the flags set in m for stream s. Bits with no
// known name are reported together as a hex value.
func (p Profile) Describe(s Stream, m Mode) []string {
	flags := p.InputFlags
	if s == Stdout {
		flags = p.OutputFlags
	}
	var names []string
	rest := m
	for _, f := range flags {
		if f.Mask != 0 && m.Has(f.Mask) {
			names = append(names, f.Name)
			rest &^= f.Mask
		}
	}
	if rest != 0 {
		names = append(names, rest.String())
	}
	return names
}

// DescribeString is Describe joined with "|", or "0" when no bit is set.
func (p Profile) DescribeString(s Stream, m Mode) string {
	names := p.Describe(s, m)
	if len(names) == 0 {
		return "0"
	}
	return strings.Join(names, "|")
}
