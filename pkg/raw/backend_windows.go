//go:build windows

package raw

import (
	"golang.org/x/sys/windows"
)

// DefaultBackend returns the console API backend.
func DefaultBackend() Backend {
	return consoleBackend{}
}

// DefaultProfile returns ConsoleProfile.
func DefaultProfile() Profile {
	return ConsoleProfile
}

type consoleBackend struct{}

var stdHandles = [...]uint32{
	Stdin:  windows.STD_INPUT_HANDLE,
	Stdout: windows.STD_OUTPUT_HANDLE,
}

func (consoleBackend) Resolve(s Stream) (Handle, error) {
	if s < 0 || int(s) >= len(stdHandles) {
		return Handle{}, windows.ERROR_INVALID_PARAMETER
	}
	h, err := windows.GetStdHandle(stdHandles[s])
	if err != nil {
		return Handle{}, err
	}
	// A process without an attached stream gets a null handle and no error.
	if h == windows.InvalidHandle || h == 0 {
		return Handle{}, windows.ERROR_INVALID_HANDLE
	}
	return NewHandle(s, uintptr(h)), nil
}

func (consoleBackend) GetMode(h Handle) (Mode, error) {
	var mode uint32
	if err := windows.GetConsoleMode(windows.Handle(h.Fd()), &mode); err != nil {
		return 0, err
	}
	return Mode(mode), nil
}

func (consoleBackend) SetMode(h Handle, m Mode) error {
	return windows.SetConsoleMode(windows.Handle(h.Fd()), uint32(m))
}

func (consoleBackend) Geometry(h Handle) (Size, error) {
	var info windows.ConsoleScreenBufferInfo
	if err := windows.GetConsoleScreenBufferInfo(windows.Handle(h.Fd()), &info); err != nil {
		return Size{}, err
	}
	return Size{Cols: uint16(info.Size.X), Rows: uint16(info.Size.Y)}, nil
}
