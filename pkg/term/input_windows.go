//go:build windows

package term

import "golang.org/x/sys/windows"

// dupFd returns a non-inheritable duplicate of the console handle fd with
// the same access rights.
func dupFd(fd uintptr) (uintptr, error) {
	self := windows.CurrentProcess()
	var dup windows.Handle
	if err := windows.DuplicateHandle(self, windows.Handle(fd), self, &dup, 0, false, windows.DUPLICATE_SAME_ACCESS); err != nil {
		return 0, err
	}
	return uintptr(dup), nil
}
