package cmd

import (
	"github.com/wunderlist/clickonce-to-squirrel/migrator/internal/process"
	"github.com/wunderlist/clickonce-to-squirrel/migrator/internal/shellfolders"
	"github.com/wunderlist/clickonce-to-squirrel/migrator/internal/taskbar"
	"github.com/wunderlist/clickonce-to-squirrel/migrator/internal/uninstallinfo"
)

// environment bundles the OS facilities the commands operate on
type environment struct {
	store    uninstallinfo.ReadWriter
	folders  shellfolders.Folders
	unpinner taskbar.Unpinner
	runner   process.Runner
}

// newEnvironment is replaced in tests
var newEnvironment = systemEnvironment

func systemEnvironment(cfg Config) (*environment, error) {
	folders, err := resolveFolders(cfg)
	if err != nil {
		return nil, err
	}

	return &environment{
		store:    uninstallinfo.NewRegistryStore(),
		folders:  folders,
		unpinner: taskbar.NewUnpinner(),
		runner:   process.NewExecRunner(),
	}, nil
}

func resolveFolders(cfg Config) (shellfolders.Folders, error) {
	if cfg.ProfileRoot != "" {
		return shellfolders.UnderRoot(cfg.ProfileRoot), nil
	}
	return shellfolders.Resolve()
}
