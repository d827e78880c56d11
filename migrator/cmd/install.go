package cmd

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/wunderlist/clickonce-to-squirrel/migrator/internal/migration"
	"github.com/wunderlist/clickonce-to-squirrel/migrator/internal/process"
	"github.com/wunderlist/clickonce-to-squirrel/migrator/internal/squirrel"
)

const (
	installDirection = "install"
	detachFlag       = "detach"
)

var (
	detach bool

	// newUpdateManager is replaced in tests
	newUpdateManager = func(cfg Config, env *environment) squirrel.UpdateManager {
		return squirrel.NewManager(cfg.squirrelConfig(), env.runner, env.store)
	}

	installCmd = &cobra.Command{
		Use:   "install",
		Short: "Installs the Squirrel app and removes the ClickOnce shortcut",
		Long:  "Run from the ClickOnce build of the application. Installs the Squirrel version, registers its uninstall entry and removes the ClickOnce start menu shortcut.",
		RunE:  installFunc,
	}
)

func init() {
	installCmd.Flags().BoolVar(&detach, detachFlag, false, "run the migration in a detached process so the ClickOnce app can exit")
}

func installFunc(cmd *cobra.Command, args []string) error {
	if detach {
		return relaunchDetached()
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if cfg.SquirrelApp == "" {
		return fmt.Errorf("--%s is required", squirrelAppFlag)
	}

	env, err := newEnvironment(cfg)
	if err != nil {
		return err
	}

	ctx, cancel := commandContext(cmd)
	defer cancel()

	migrator := migration.NewInClickOnceAppMigrator(newUpdateManager(cfg, env), cfg.ClickOnceApp, env.store, env.folders, env.unpinner)
	runErr := migrator.Execute(ctx)

	writeResult(ctx, cfg, migration.NewResult(installDirection, migrator.State(), runErr).WithWarnings(migrator.Warnings()))
	if runErr != nil {
		return runErr
	}

	cmd.Printf("%s installed\n", cfg.SquirrelApp)
	return nil
}

// relaunchDetached starts the same command line without --detach in a new process
func relaunchDetached() error {
	exe, err := os.Executable()
	if err != nil {
		return fmt.Errorf("locate executable: %w", err)
	}

	var args []string
	for _, arg := range os.Args[1:] {
		if arg == "--"+detachFlag || strings.HasPrefix(arg, "--"+detachFlag+"=") {
			continue
		}
		args = append(args, arg)
	}

	c := exec.Command(exe, args...)
	process.SetDetachedProcAttr(c)
	if err := c.Start(); err != nil {
		return fmt.Errorf("start detached migrator: %w", err)
	}
	log.Infof("started detached migrator with pid %d", c.Process.Pid)
	return c.Process.Release()
}

func writeResult(ctx context.Context, cfg Config, result migration.Result) {
	if cfg.ResultDir == "" {
		return
	}
	if err := migration.NewResultHandler(cfg.ResultDir).Write(ctx, result); err != nil {
		log.Warnf("failed to write migration result: %v", err)
	}
}
