// Package taskbar removes shortcuts pinned to the Windows taskbar.
package taskbar

// Unpinner removes a pinned shortcut from the taskbar shell integration
type Unpinner interface {
	Unpin(shortcut string) error
}

// UnpinFunc adapts a function to the Unpinner interface
type UnpinFunc func(shortcut string) error

func (f UnpinFunc) Unpin(shortcut string) error {
	return f(shortcut)
}
