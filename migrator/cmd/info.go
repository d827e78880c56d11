package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/wunderlist/clickonce-to-squirrel/migrator/internal/taskbar"
	"github.com/wunderlist/clickonce-to-squirrel/migrator/internal/uninstaller"
	"github.com/wunderlist/clickonce-to-squirrel/migrator/internal/uninstallinfo"
)

type deletionPlan interface {
	FilesToRemove() []string
	FoldersToRemove() []string
}

var infoCmd = &cobra.Command{
	Use:   "info",
	Short: "Shows the ClickOnce installation and what uninstall-legacy would remove",
	RunE:  infoFunc,
}

func infoFunc(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	env, err := newEnvironment(cfg)
	if err != nil {
		return err
	}

	info, err := uninstallinfo.Find(env.store, cfg.ClickOnceApp)
	if err != nil {
		return err
	}
	if info == nil {
		cmd.Printf("%s is not installed\n", cfg.ClickOnceApp)
		return nil
	}

	cmd.Printf("Uninstall entry: %s\n", info.Key())
	if parsed, err := info.ParsedVersion(); err == nil {
		cmd.Printf("Version: %s\n", parsed)
	} else {
		cmd.Printf("Version: %s (not a version number)\n", info.Version())
	}
	cmd.Printf("Uninstall string: %s\n", info.UninstallString())
	if deployment, err := info.DeploymentName(); err == nil {
		cmd.Printf("Deployment: %s\n", deployment)
	}
	cmd.Printf("Shortcut: %s\n", info.ShortcutPath(env.folders.Programs))

	token, err := info.PublicKeyToken()
	if err != nil {
		cmd.Printf("Public key token: %v\n", err)
		return nil
	}
	cmd.Printf("Public key token: %s\n", token)

	// a dry run must not touch the taskbar
	noUnpin := taskbar.UnpinFunc(func(string) error { return nil })
	u := uninstaller.New(cfg.UninstallMode, env.store, env.folders, noUnpin, env.runner)
	components, err := u.Components(info)
	if err != nil {
		return fmt.Errorf("list components: %w", err)
	}
	cmd.Printf("Components:\n%s", bulletList(components))

	for _, step := range u.Steps(info) {
		if err := step.Prepare(components); err != nil {
			return fmt.Errorf("prepare %T: %w", step, err)
		}
		if err := step.PrintDebugInformation(); err != nil {
			return err
		}

		plan, ok := step.(deletionPlan)
		if !ok {
			continue
		}
		cmd.Printf("%T would remove:\n%s%s", step, bulletList(plan.FoldersToRemove()), bulletList(plan.FilesToRemove()))
	}
	return nil
}

func bulletList(items []string) string {
	var b strings.Builder
	for _, item := range items {
		b.WriteString("  - ")
		b.WriteString(item)
		b.WriteString("\n")
	}
	return b.String()
}
