package cmd

import (
	"fmt"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/wunderlist/clickonce-to-squirrel/migrator/internal/squirrel"
	"github.com/wunderlist/clickonce-to-squirrel/migrator/internal/uninstaller"
	"github.com/wunderlist/clickonce-to-squirrel/util"
)

// Config is the optional JSON configuration of the migrator. Command line flags take
// precedence over values read from the file.
type Config struct {
	ClickOnceApp  string
	SquirrelApp   string
	Publisher     string
	UpdateExe     string
	PackagesDir   string
	RootDir       string
	ResultDir     string
	UninstallMode uninstaller.Mode
	// ProfileRoot redirects every shell folder below a copied user profile
	ProfileRoot string
}

func (c Config) squirrelConfig() squirrel.Config {
	return squirrel.Config{
		AppName:     c.SquirrelApp,
		UpdateExe:   c.UpdateExe,
		PackagesDir: c.PackagesDir,
		RootDir:     c.RootDir,
		Publisher:   c.Publisher,
	}
}

// loadConfig reads the configuration and validates the values every migration needs
func loadConfig(cmd *cobra.Command) (Config, error) {
	cfg, err := readConfig(cmd)
	if err != nil {
		return Config{}, err
	}

	switch cfg.UninstallMode {
	case uninstaller.ModeSteps, uninstaller.ModeCommand:
	default:
		return Config{}, fmt.Errorf("unknown uninstall mode %q", cfg.UninstallMode)
	}

	if cfg.ClickOnceApp == "" {
		return Config{}, fmt.Errorf("--%s is required", clickOnceAppFlag)
	}
	return cfg, nil
}

// readConfig reads configPath when it exists and overlays the flags the user set
func readConfig(cmd *cobra.Command) (Config, error) {
	var cfg Config
	if configPath != "" && util.FileExists(configPath) {
		if _, err := util.ReadJsonWithEnvSub(configPath, &cfg); err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", configPath, err)
		}
		log.Debugf("loaded config from %s", configPath)
	}

	flags := cmd.Flags()
	overlay := func(flag string, dst *string, value string) {
		if flags.Changed(flag) || *dst == "" {
			*dst = value
		}
	}
	overlay(clickOnceAppFlag, &cfg.ClickOnceApp, clickOnceApp)
	overlay(squirrelAppFlag, &cfg.SquirrelApp, squirrelApp)
	overlay(publisherFlag, &cfg.Publisher, publisher)
	overlay(updateExeFlag, &cfg.UpdateExe, updateExe)
	overlay(packagesDirFlag, &cfg.PackagesDir, packagesDir)
	overlay(rootDirFlag, &cfg.RootDir, rootDir)
	overlay(resultDirFlag, &cfg.ResultDir, resultDir)
	overlay(profileRootFlag, &cfg.ProfileRoot, profileRoot)

	mode := string(cfg.UninstallMode)
	overlay(uninstallModeFlag, &mode, uninstallMode)
	cfg.UninstallMode = uninstaller.Mode(mode)
	return cfg, nil
}
