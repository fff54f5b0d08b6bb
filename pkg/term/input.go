package term

import (
	"errors"
	"io"
	"os"

	"github.com/ross96D/cancelreader"
)

var ErrClosed = errors.New("closed")

// ErrCanceled is returned by Read on a non-blocking reader after Close.
var ErrCanceled = cancelreader.ErrCanceled

type nonBlockingReader struct {
	cancelreader.CancelReader
}

// NewNonBlockingReader wraps f so that a pending Read can be interrupted by
// Close. Where the platform cannot cancel reads on f, a duplicate of the
// descriptor is returned instead so that closing it never closes f.
func NewNonBlockingReader(f FileReader) io.ReadCloser {
	cr, err := cancelreader.NewReader(f)
	if err != nil {
		fd, err := dupFd(f.Fd())
		if err != nil {
			panic(err)
		}
		return os.NewFile(fd, "stdin-dup")
	}
	return &nonBlockingReader{cr}
}

func NewNonBlockingStdin() io.ReadCloser {
	return NewNonBlockingReader(os.Stdin)
}

func (n *nonBlockingReader) Close() error {
	if !n.CancelReader.Cancel() {
		return ErrClosed
	}
	return n.CancelReader.Close()
}
