//go:build linux

package raw

import (
	"golang.org/x/sys/unix"
)

// DefaultBackend returns the termios backend.
func DefaultBackend() Backend {
	return termiosBackend{}
}

// DefaultProfile returns TermiosProfile.
func DefaultProfile() Profile {
	return TermiosProfile
}

// TermiosProfile is the raw-mode transition of a termios terminal, matching
// cfmakeraw(3) minus the character size and VMIN/VTIME settings.
//
// Input modes carry c_lflag in the low 32 bits and c_iflag in the high 32
// bits; output modes carry c_oflag.
var TermiosProfile = Profile{
	Name: "termios",

	OutputClear: unix.OPOST,

	InputClear: unix.ECHO | unix.ECHONL | unix.ICANON | unix.ISIG | unix.IEXTEN |
		iflag(unix.IGNBRK|unix.BRKINT|unix.PARMRK|unix.ISTRIP|unix.INLCR|unix.IGNCR|unix.ICRNL|unix.IXON),

	OutputFlags: []Flag{
		{"OPOST", unix.OPOST},
		{"ONLCR", unix.ONLCR},
		{"OCRNL", unix.OCRNL},
		{"ONOCR", unix.ONOCR},
		{"ONLRET", unix.ONLRET},
	},
	InputFlags: []Flag{
		{"ISIG", unix.ISIG},
		{"ICANON", unix.ICANON},
		{"ECHO", unix.ECHO},
		{"ECHOE", unix.ECHOE},
		{"ECHOK", unix.ECHOK},
		{"ECHONL", unix.ECHONL},
		{"NOFLSH", unix.NOFLSH},
		{"TOSTOP", unix.TOSTOP},
		{"ECHOCTL", unix.ECHOCTL},
		{"ECHOKE", unix.ECHOKE},
		{"IEXTEN", unix.IEXTEN},
		{"IGNBRK", iflag(unix.IGNBRK)},
		{"BRKINT", iflag(unix.BRKINT)},
		{"IGNPAR", iflag(unix.IGNPAR)},
		{"PARMRK", iflag(unix.PARMRK)},
		{"INPCK", iflag(unix.INPCK)},
		{"ISTRIP", iflag(unix.ISTRIP)},
		{"INLCR", iflag(unix.INLCR)},
		{"IGNCR", iflag(unix.IGNCR)},
		{"ICRNL", iflag(unix.ICRNL)},
		{"IXON", iflag(unix.IXON)},
		{"IXANY", iflag(unix.IXANY)},
		{"IXOFF", iflag(unix.IXOFF)},
		{"IMAXBEL", iflag(unix.IMAXBEL)},
		{"IUTF8", iflag(unix.IUTF8)},
	},
}

func iflag(f uint32) Mode {
	return Mode(f) << 32
}

type termiosBackend struct{}

func (termiosBackend) Resolve(s Stream) (Handle, error) {
	if s != Stdin && s != Stdout {
		return Handle{}, unix.EINVAL
	}
	fd := uintptr(s)
	if _, err := unix.FcntlInt(fd, unix.F_GETFD, 0); err != nil {
		return Handle{}, err
	}
	return NewHandle(s, fd), nil
}

func (termiosBackend) GetMode(h Handle) (Mode, error) {
	termios, err := unix.IoctlGetTermios(int(h.Fd()), unix.TCGETS)
	if err != nil {
		return 0, err
	}
	return pack(h.Stream(), termios), nil
}

// SetMode reads the current termios, replaces the fields h's mode covers and
// writes it back with a single TCSETS.
func (termiosBackend) SetMode(h Handle, m Mode) error {
	termios, err := unix.IoctlGetTermios(int(h.Fd()), unix.TCGETS)
	if err != nil {
		return err
	}
	unpack(h.Stream(), m, termios)
	return unix.IoctlSetTermios(int(h.Fd()), unix.TCSETS, termios)
}

func (termiosBackend) Geometry(h Handle) (Size, error) {
	ws, err := unix.IoctlGetWinsize(int(h.Fd()), unix.TIOCGWINSZ)
	if err != nil {
		return Size{}, err
	}
	return Size{Cols: ws.Col, Rows: ws.Row}, nil
}

func pack(s Stream, t *unix.Termios) Mode {
	if s == Stdout {
		return Mode(t.Oflag)
	}
	return Mode(t.Lflag) | iflag(t.Iflag)
}

func unpack(s Stream, m Mode, t *unix.Termios) {
	if s == Stdout {
		t.Oflag = uint32(m)
		return
	}
	t.Lflag = uint32(m)
	t.Iflag = uint32(m >> 32)
}
