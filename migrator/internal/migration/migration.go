// Package migration moves a user from the ClickOnce deployment of the application to its
// Squirrel installation.
//
// The migration runs in two directions. The ClickOnce build of the app installs the Squirrel
// version and removes its own start menu shortcut. The Squirrel build later removes whatever
// is left of the ClickOnce deployment.
package migration

import (
	"fmt"
	"sync"

	log "github.com/sirupsen/logrus"

	"github.com/wunderlist/clickonce-to-squirrel/migrator/internal/uninstallinfo"
)

// State is the progress of a single migration run
type State int

const (
	StateStart State = iota
	StateInstallAttempted
	StateFailed
	StateInstalled
	StateShortcutCleanupAttempted
	StateDone
)

func (s State) String() string {
	switch s {
	case StateStart:
		return "start"
	case StateInstallAttempted:
		return "install-attempted"
	case StateFailed:
		return "failed"
	case StateInstalled:
		return "installed"
	case StateShortcutCleanupAttempted:
		return "shortcut-cleanup-attempted"
	case StateDone:
		return "done"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// MigrationError is returned when the Squirrel side of the migration could not be set up
type MigrationError struct {
	Op  string
	Err error
}

func (e *MigrationError) Error() string {
	return fmt.Sprintf("migration failed during %s: %v", e.Op, e.Err)
}

func (e *MigrationError) Unwrap() error {
	return e.Err
}

// clickOnceLookup finds the ClickOnce uninstall entry once per migrator
type clickOnceLookup struct {
	store   uninstallinfo.Store
	appName string

	once sync.Once
	info *uninstallinfo.UninstallInfo
	err  error
}

func (l *clickOnceLookup) get() (*uninstallinfo.UninstallInfo, error) {
	l.once.Do(func() {
		l.info, l.err = uninstallinfo.Find(l.store, l.appName)
		if l.err != nil {
			return
		}
		if l.info == nil {
			log.Infof("no ClickOnce installation of %s found", l.appName)
			return
		}
		if parsed, err := l.info.ParsedVersion(); err == nil {
			log.Debugf("found ClickOnce installation %s at version %s", l.info.Key(), parsed)
		} else {
			log.Debugf("found ClickOnce installation %s with unparsable version %q", l.info.Key(), l.info.Version())
		}
	})
	return l.info, l.err
}
