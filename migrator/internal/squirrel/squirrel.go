// Package squirrel installs and registers the Squirrel.Windows version of the application by
// driving the Update.exe that ships with its packages.
package squirrel

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/wunderlist/clickonce-to-squirrel/migrator/internal/process"
	"github.com/wunderlist/clickonce-to-squirrel/migrator/internal/uninstallinfo"
)

//go:generate mockgen -destination=mock_updatemanager.go -package=squirrel . UpdateManager

// UpdateManager covers the Squirrel operations the migrator relies on
type UpdateManager interface {
	FullInstall(ctx context.Context, createShortcuts bool) error
	CreateUninstallerRegistryEntry(ctx context.Context) error
	FullUninstall(ctx context.Context) error
	RemoveUninstallerRegistryEntry(ctx context.Context) error
}

const (
	updateExeName     = "Update.exe"
	shortcutLocations = "StartMenu,Desktop"
)

// Config locates the Squirrel packages and the install root
type Config struct {
	// AppName is the Squirrel package id; the app is installed to RootDir\AppName
	AppName string
	// UpdateExe is the Update.exe shipped next to the packages, used for the first install
	UpdateExe string
	// PackagesDir holds RELEASES and the nupkg files
	PackagesDir string
	// RootDir is the install root, %LocalAppData% for per-user installs
	RootDir   string
	Publisher string
}

// Manager implements UpdateManager on top of Update.exe
type Manager struct {
	config  Config
	runner  process.Runner
	entries uninstallinfo.Writer
	now     func() time.Time
}

func NewManager(config Config, runner process.Runner, entries uninstallinfo.Writer) *Manager {
	return &Manager{
		config:  config,
		runner:  runner,
		entries: entries,
		now:     time.Now,
	}
}

// AppDir is the folder the application is installed to
func (m *Manager) AppDir() string {
	return filepath.Join(m.config.RootDir, m.config.AppName)
}

func (m *Manager) installedUpdateExe() string {
	return filepath.Join(m.AppDir(), updateExeName)
}

func (m *Manager) FullInstall(ctx context.Context, createShortcuts bool) error {
	log.Infof("installing %s from %s", m.config.AppName, m.config.PackagesDir)

	if err := m.runner.Run(ctx, m.config.UpdateExe, "--install="+m.config.PackagesDir, "--silent"); err != nil {
		return fmt.Errorf("install %s: %w", m.config.AppName, err)
	}

	if !createShortcuts {
		return nil
	}

	err := m.runner.Run(ctx, m.installedUpdateExe(),
		"--createShortcut="+m.config.AppName+".exe",
		"--shortcut-locations="+shortcutLocations)
	if err != nil {
		return fmt.Errorf("create shortcuts for %s: %w", m.config.AppName, err)
	}
	return nil
}

func (m *Manager) CreateUninstallerRegistryEntry(ctx context.Context) error {
	if ctx.Err() != nil {
		return ctx.Err()
	}

	entries, err := ReadReleasesFile(filepath.Join(m.config.PackagesDir, ReleasesFileName))
	if err != nil {
		return fmt.Errorf("read releases: %w", err)
	}
	latest, err := LatestFullRelease(entries)
	if err != nil {
		return err
	}

	uninstallCommand := fmt.Sprintf(`"%s" --uninstall`, m.installedUpdateExe())
	values := uninstallinfo.Values{
		Strings: map[string]string{
			uninstallinfo.DisplayNameValue:     m.config.AppName,
			uninstallinfo.DisplayVersionValue:  latest.Version.String(),
			uninstallinfo.UninstallStringValue: uninstallCommand,
			"QuietUninstallString":             uninstallCommand + " -s",
			"InstallDate":                      m.now().Format("20060102"),
			"InstallLocation":                  m.AppDir(),
			"DisplayIcon":                      filepath.Join(m.AppDir(), m.config.AppName+".exe"),
			"Publisher":                        m.config.Publisher,
		},
		DWords: map[string]uint32{
			"EstimatedSize": uint32(latest.Filesize / 1024),
			"NoModify":      1,
			"NoRepair":      1,
			"Language":      0x0409,
		},
	}

	if err := m.entries.WriteKey(m.config.AppName, values); err != nil {
		return fmt.Errorf("write uninstall entry %s: %w", m.config.AppName, err)
	}
	log.Infof("registered uninstall entry %s version %s", m.config.AppName, latest.Version)
	return nil
}

func (m *Manager) FullUninstall(ctx context.Context) error {
	if err := m.runner.Run(ctx, m.installedUpdateExe(), "--uninstall", "--silent"); err != nil {
		return fmt.Errorf("uninstall %s: %w", m.config.AppName, err)
	}
	return nil
}

func (m *Manager) RemoveUninstallerRegistryEntry(ctx context.Context) error {
	if ctx.Err() != nil {
		return ctx.Err()
	}

	err := m.entries.DeleteKey(m.config.AppName)
	if err != nil && !errors.Is(err, uninstallinfo.ErrKeyNotFound) {
		return fmt.Errorf("remove uninstall entry %s: %w", m.config.AppName, err)
	}
	return nil
}
