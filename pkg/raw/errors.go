package raw

import (
	"errors"
	"fmt"
)

// ErrClosed is returned when a Session is used after it has been released.
var ErrClosed = errors.New("raw: session already restored")

// HandleError means the environment has no valid handle for a standard stream.
type HandleError struct {
	Stream Stream
	Err    error
}

func (e *HandleError) Error() string {
	return fmt.Sprintf("no valid %s handle: %v", e.Stream, e.Err)
}

func (e *HandleError) Unwrap() error {
	return e.Err
}

// ModeQueryError means the current mode of an endpoint could not be read.
type ModeQueryError struct {
	Stream Stream
	Err    error
}

func (e *ModeQueryError) Error() string {
	return fmt.Sprintf("reading %s mode: %v", e.Stream, e.Err)
}

func (e *ModeQueryError) Unwrap() error {
	return e.Err
}

// ModeSetError means an endpoint rejected a new mode.
type ModeSetError struct {
	Stream Stream
	Mode   Mode
	Err    error
}

func (e *ModeSetError) Error() string {
	return fmt.Sprintf("setting %s mode to %v: %v", e.Stream, e.Mode, e.Err)
}

func (e *ModeSetError) Unwrap() error {
	return e.Err
}

// IOError means the terminal geometry could not be read.
type IOError struct {
	Op  string
	Err error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("terminal size: %s: %v", e.Op, e.Err)
}

func (e *IOError) Unwrap() error {
	return e.Err
}
