package migration

import (
	"context"

	log "github.com/sirupsen/logrus"

	"github.com/wunderlist/clickonce-to-squirrel/migrator/internal/shellfolders"
	"github.com/wunderlist/clickonce-to-squirrel/migrator/internal/squirrel"
	"github.com/wunderlist/clickonce-to-squirrel/migrator/internal/steps"
	"github.com/wunderlist/clickonce-to-squirrel/migrator/internal/taskbar"
	"github.com/wunderlist/clickonce-to-squirrel/migrator/internal/uninstallinfo"
	"github.com/wunderlist/clickonce-to-squirrel/util"
)

// InClickOnceAppMigrator runs inside the ClickOnce build of the app. It installs the
// Squirrel version and removes the ClickOnce start menu shortcut.
type InClickOnceAppMigrator struct {
	updateManager squirrel.UpdateManager
	lookup        *clickOnceLookup
	folders       shellfolders.Folders
	unpinner      taskbar.Unpinner

	state    State
	warnings error
}

func NewInClickOnceAppMigrator(updateManager squirrel.UpdateManager, clickOnceAppName string, store uninstallinfo.Store, folders shellfolders.Folders, unpinner taskbar.Unpinner) *InClickOnceAppMigrator {
	return &InClickOnceAppMigrator{
		updateManager: updateManager,
		lookup:        &clickOnceLookup{store: store, appName: clickOnceAppName},
		folders:       folders,
		unpinner:      unpinner,
		state:         StateStart,
	}
}

// State reports how far the last Execute got
func (m *InClickOnceAppMigrator) State() State {
	return m.state
}

// Warnings reports the shortcut deletions the last Execute could not complete, or nil
func (m *InClickOnceAppMigrator) Warnings() error {
	return m.warnings
}

// Execute installs the Squirrel app and cleans up the ClickOnce shortcut.
// Only a failed install is reported; registration and shortcut cleanup are best effort.
func (m *InClickOnceAppMigrator) Execute(ctx context.Context) error {
	ctx = util.WithSource(ctx, util.LegacySource)
	logger := log.WithContext(ctx)

	m.warnings = nil
	m.state = StateInstallAttempted
	if err := m.updateManager.FullInstall(ctx, true); err != nil {
		m.state = StateFailed
		logger.Errorf("failed to install the Squirrel app: %v", err)
		return &MigrationError{Op: "install", Err: err}
	}

	if err := m.updateManager.CreateUninstallerRegistryEntry(ctx); err != nil {
		logger.Errorf("failed to create the Squirrel uninstall entry: %v", err)
	}
	m.state = StateInstalled

	info, err := m.lookup.get()
	if err != nil {
		logger.Errorf("failed to look up the ClickOnce installation: %v", err)
		m.state = StateDone
		return nil
	}
	if info == nil {
		m.state = StateDone
		return nil
	}

	m.state = StateShortcutCleanupAttempted
	if err := m.removeShortcuts(info); err != nil {
		logger.Errorf("failed to remove ClickOnce shortcuts: %v", err)
	}
	if m.warnings != nil {
		logger.Warnf("ClickOnce shortcuts were only partly removed: %v", m.warnings)
	}
	m.state = StateDone
	return nil
}

func (m *InClickOnceAppMigrator) removeShortcuts(info *uninstallinfo.UninstallInfo) error {
	step := steps.NewRemoveStartMenuEntry(info, m.folders, m.unpinner)
	if err := step.Prepare(nil); err != nil {
		return err
	}
	if err := step.PrintDebugInformation(); err != nil {
		return err
	}
	if err := step.Execute(); err != nil {
		return err
	}
	m.warnings = step.Warnings()
	return nil
}
