// Package steps holds the cleanup steps used to remove a ClickOnce deployment.
//
// Every step is prepared first, which computes what would be deleted without touching the
// disk, and executed afterwards. PrintDebugInformation reports the prepared plan.
package steps

import "errors"

var (
	// ErrNotPrepared is returned when a step is executed or printed before a successful Prepare
	ErrNotPrepared = errors.New("call Prepare() first")
	// ErrFolderNotFound is returned when the ClickOnce cache folder cannot be located
	ErrFolderNotFound = errors.New("could not find ClickOnce folder")
)

// Step is one stage of a ClickOnce uninstall
type Step interface {
	// Prepare computes the deletion plan for the given component identifiers
	Prepare(components []string) error
	// Execute performs the planned deletions
	Execute() error
	// PrintDebugInformation logs the planned deletions
	PrintDebugInformation() error
}
