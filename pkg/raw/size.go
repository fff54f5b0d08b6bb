package raw

import "fmt"

// Size is the terminal geometry at the moment it was queried.
type Size struct {
	Cols uint16 `json:"cols"`
	Rows uint16 `json:"rows"`
}

func (s Size) String() string {
	return fmt.Sprintf("%dx%d", s.Cols, s.Rows)
}

// TerminalSize returns the current dimensions of the terminal attached to
// stdout. The value is never cached; query again after a resize.
func TerminalSize() (Size, error) {
	return TerminalSizeWith(DefaultBackend())
}

// TerminalSizeWith is TerminalSize against an explicit backend.
func TerminalSizeWith(b Backend) (Size, error) {
	h, err := b.Resolve(Stdout)
	if err != nil {
		return Size{}, &IOError{Op: "resolve", Err: &HandleError{Stream: Stdout, Err: err}}
	}
	size, err := b.Geometry(h)
	if err != nil {
		return Size{}, &IOError{Op: "query", Err: err}
	}
	return size, nil
}
