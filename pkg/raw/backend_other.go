//go:build !windows && !linux

package raw

import "errors"

// DefaultBackend returns a backend whose every operation fails with
// errors.ErrUnsupported.
func DefaultBackend() Backend {
	return unsupportedBackend{}
}

// DefaultProfile returns a profile that changes nothing.
func DefaultProfile() Profile {
	return Profile{Name: "unsupported"}
}

type unsupportedBackend struct{}

func (unsupportedBackend) Resolve(Stream) (Handle, error) { return Handle{}, errors.ErrUnsupported }
func (unsupportedBackend) GetMode(Handle) (Mode, error) { return 0, errors.ErrUnsupported }
func (unsupportedBackend) SetMode(Handle, Mode) error { return errors.ErrUnsupported }
func (unsupportedBackend) Geometry(Handle) (Size, error) { return Size{}, errors.ErrUnsupported }
