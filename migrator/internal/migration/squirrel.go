package migration

import (
	"context"

	log "github.com/sirupsen/logrus"

	"github.com/wunderlist/clickonce-to-squirrel/migrator/internal/uninstallinfo"
	"github.com/wunderlist/clickonce-to-squirrel/util"
)

// Uninstaller removes a ClickOnce installation
type Uninstaller interface {
	Uninstall(ctx context.Context, info *uninstallinfo.UninstallInfo) error
}

// InSquirrelAppMigrator runs inside the Squirrel build of the app and removes the remaining
// ClickOnce deployment.
type InSquirrelAppMigrator struct {
	lookup      *clickOnceLookup
	uninstaller Uninstaller
}

func NewInSquirrelAppMigrator(clickOnceAppName string, store uninstallinfo.Store, uninstaller Uninstaller) *InSquirrelAppMigrator {
	return &InSquirrelAppMigrator{
		lookup:      &clickOnceLookup{store: store, appName: clickOnceAppName},
		uninstaller: uninstaller,
	}
}

// ClickOnceInfo returns the ClickOnce uninstall entry, nil when the app is not installed
func (m *InSquirrelAppMigrator) ClickOnceInfo() (*uninstallinfo.UninstallInfo, error) {
	return m.lookup.get()
}

// Execute uninstalls the ClickOnce app if it is still installed
func (m *InSquirrelAppMigrator) Execute(ctx context.Context) error {
	ctx = util.WithSource(ctx, util.SquirrelSource)

	info, err := m.lookup.get()
	if err != nil {
		return err
	}
	if info == nil {
		return nil
	}

	log.WithContext(ctx).Infof("uninstalling ClickOnce app %s", info)
	return m.uninstaller.Uninstall(ctx, info)
}
