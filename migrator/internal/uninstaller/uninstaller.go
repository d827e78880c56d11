// Package uninstaller removes a ClickOnce deployment without going through the
// interactive maintenance dialog of the ClickOnce engine.
package uninstaller

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/wunderlist/clickonce-to-squirrel/migrator/internal/process"
	"github.com/wunderlist/clickonce-to-squirrel/migrator/internal/shellfolders"
	"github.com/wunderlist/clickonce-to-squirrel/migrator/internal/steps"
	"github.com/wunderlist/clickonce-to-squirrel/migrator/internal/taskbar"
	"github.com/wunderlist/clickonce-to-squirrel/migrator/internal/uninstallinfo"
)

// Mode selects how the ClickOnce deployment is removed
type Mode string

const (
	// ModeSteps removes files, shortcuts and the uninstall entry directly
	ModeSteps Mode = "steps"
	// ModeCommand runs the uninstall string of the entry, which shows the ClickOnce dialog
	ModeCommand Mode = "command"
)

// Uninstaller removes an installed ClickOnce application
type Uninstaller struct {
	mode     Mode
	store    uninstallinfo.ReadWriter
	folders  shellfolders.Folders
	unpinner taskbar.Unpinner
	runner   process.Runner
}

func New(mode Mode, store uninstallinfo.ReadWriter, folders shellfolders.Folders, unpinner taskbar.Unpinner, runner process.Runner) *Uninstaller {
	return &Uninstaller{
		mode:     mode,
		store:    store,
		folders:  folders,
		unpinner: unpinner,
		runner:   runner,
	}
}

// Uninstall removes the application described by info
func (u *Uninstaller) Uninstall(ctx context.Context, info *uninstallinfo.UninstallInfo) error {
	if u.mode == ModeCommand {
		log.Infof("running uninstall string of %s", info.Key())
		if err := u.runner.RunCommandLine(ctx, info.UninstallString()); err != nil {
			return fmt.Errorf("run uninstall string: %w", err)
		}
		return nil
	}

	components, err := u.Components(info)
	if err != nil {
		return err
	}
	log.Infof("found %d ClickOnce components of %s", len(components), info.Key())

	for _, step := range u.Steps(info) {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if err := runStep(step, components); err != nil {
			return err
		}
	}

	return nil
}

// Steps returns the uninstall pipeline for info, in execution order
func (u *Uninstaller) Steps(info *uninstallinfo.UninstallInfo) []steps.Step {
	return []steps.Step{
		steps.NewRemoveFiles(u.folders.Apps20Folder(), u.folders.Apps20DataFolder()),
		steps.NewRemoveStartMenuEntry(info, u.folders, u.unpinner),
		steps.NewRemoveUninstallEntry(info, u.store),
	}
}

// Components lists the cache entries that belong to the application. ClickOnce names every
// component folder and manifest <short name>_<public key token>_<version>_<culture>_<hash>,
// where long names are shortened to their first and last four characters joined by "..".
// The token only identifies the publisher, so entries are also matched on the deployment name,
// and entries another installed deployment of the same publisher could own are kept.
func (u *Uninstaller) Components(info *uninstallinfo.UninstallInfo) ([]string, error) {
	own, err := deploymentOf(info)
	if err != nil {
		return nil, err
	}
	siblings, err := u.siblings(info, own)
	if err != nil {
		return nil, err
	}

	appFolder, err := steps.LocateCacheFolder(u.folders.Apps20Folder())
	if err != nil {
		return nil, err
	}
	dataFolder, err := steps.LocateCacheFolder(u.folders.Apps20DataFolder())
	if err != nil {
		return nil, err
	}

	seen := map[string]struct{}{}
	var components []string
	add := func(name string) {
		if !own.owns(name) {
			return
		}
		if _, ok := seen[name]; ok {
			return
		}
		seen[name] = struct{}{}
		for _, sibling := range siblings {
			if sibling.owns(name) {
				log.Warnf("keeping component %s, it may belong to %s", name, sibling.name)
				return
			}
		}
		components = append(components, name)
	}

	for _, folder := range []string{appFolder, dataFolder, filepath.Join(appFolder, "manifests")} {
		entries, err := os.ReadDir(folder)
		if err != nil {
			return nil, fmt.Errorf("list %s: %w", folder, err)
		}
		for _, entry := range entries {
			name := entry.Name()
			if !entry.IsDir() {
				name = strings.TrimSuffix(name, filepath.Ext(name))
			}
			add(name)
		}
	}

	return components, nil
}

// siblings returns the other installed deployments signed with the same key
func (u *Uninstaller) siblings(info *uninstallinfo.UninstallInfo, own deployment) ([]deployment, error) {
	infos, err := uninstallinfo.List(u.store)
	if err != nil {
		return nil, err
	}

	var siblings []deployment
	for _, other := range infos {
		if other.Key() == info.Key() {
			continue
		}
		d, err := deploymentOf(other)
		if err != nil || d.token != own.token {
			continue
		}
		siblings = append(siblings, d)
	}
	return siblings, nil
}

// deployment identifies the cache entries of one ClickOnce deployment
type deployment struct {
	name  string
	token string
	stem  string
}

func deploymentOf(info *uninstallinfo.UninstallInfo) (deployment, error) {
	token, err := info.PublicKeyToken()
	if err != nil {
		return deployment{}, err
	}
	name, err := info.DeploymentName()
	if err != nil {
		return deployment{}, err
	}
	return deployment{
		name:  name,
		token: strings.ToLower(token),
		stem:  strings.TrimSuffix(strings.ToLower(name), ".application"),
	}, nil
}

func (d deployment) owns(component string) bool {
	component = strings.ToLower(component)
	i := strings.Index(component, "_"+d.token+"_")
	if i <= 0 {
		return false
	}
	short := component[:i]

	if head, _, shortened := strings.Cut(short, ".."); shortened {
		return head != "" && strings.HasPrefix(d.stem, head)
	}
	return short == d.stem || strings.HasPrefix(short, d.stem+".")
}

func runStep(step steps.Step, components []string) error {
	if err := step.Prepare(components); err != nil {
		return fmt.Errorf("prepare %T: %w", step, err)
	}
	if err := step.PrintDebugInformation(); err != nil {
		return fmt.Errorf("print %T: %w", step, err)
	}
	if err := step.Execute(); err != nil {
		return fmt.Errorf("execute %T: %w", step, err)
	}
	if w, ok := step.(warner); ok {
		if err := w.Warnings(); err != nil {
			log.Warnf("%T finished with warnings: %v", step, err)
		}
	}
	return nil
}

// warner is implemented by steps that tolerate some failures
type warner interface {
	Warnings() error
}
