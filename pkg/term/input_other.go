//go:build !windows

package term

import "golang.org/x/sys/unix"

// dupFd returns a close-on-exec copy of fd, so closing the fallback reader
// never closes the process's own stdin.
func dupFd(fd uintptr) (uintptr, error) {
	nfd, err := unix.FcntlInt(fd, unix.F_DUPFD_CLOEXEC, 0)
	if err != nil {
		return 0, err
	}
	return uintptr(nfd), nil
}
