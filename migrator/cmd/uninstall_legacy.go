package cmd

import (
	"github.com/spf13/cobra"

	"github.com/wunderlist/clickonce-to-squirrel/migrator/internal/migration"
	"github.com/wunderlist/clickonce-to-squirrel/migrator/internal/uninstaller"
)

const uninstallLegacyDirection = "uninstall-legacy"

var uninstallLegacyCmd = &cobra.Command{
	Use:   "uninstall-legacy",
	Short: "Removes the ClickOnce deployment",
	Long:  "Run from the Squirrel build of the application. Removes the ClickOnce application if it is still installed.",
	RunE:  uninstallLegacyFunc,
}

func uninstallLegacyFunc(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	env, err := newEnvironment(cfg)
	if err != nil {
		return err
	}

	ctx, cancel := commandContext(cmd)
	defer cancel()

	u := uninstaller.New(cfg.UninstallMode, env.store, env.folders, env.unpinner, env.runner)
	migrator := migration.NewInSquirrelAppMigrator(cfg.ClickOnceApp, env.store, u)

	info, err := migrator.ClickOnceInfo()
	if err != nil {
		return err
	}

	runErr := migrator.Execute(ctx)
	state := migration.StateDone
	if runErr != nil {
		state = migration.StateFailed
	}
	writeResult(ctx, cfg, migration.NewResult(uninstallLegacyDirection, state, runErr))
	if runErr != nil {
		return runErr
	}

	if info == nil {
		cmd.Printf("%s is not installed\n", cfg.ClickOnceApp)
		return nil
	}
	cmd.Printf("%s uninstalled\n", cfg.ClickOnceApp)
	return nil
}
