//go:build !windows

package taskbar

import (
	"errors"
	"runtime"
)

// ErrUnsupported is returned where no taskbar shell integration exists
var ErrUnsupported = errors.New("taskbar pinning is not available on " + runtime.GOOS)

// ShellUnpinner has no shell to talk to outside of Windows
type ShellUnpinner struct{}

func NewUnpinner() *ShellUnpinner {
	return &ShellUnpinner{}
}

func (u *ShellUnpinner) Unpin(string) error {
	return ErrUnsupported
}
