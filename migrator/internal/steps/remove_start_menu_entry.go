package steps

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/hashicorp/go-multierror"
	log "github.com/sirupsen/logrus"

	migerrors "github.com/wunderlist/clickonce-to-squirrel/migrator/errors"
	"github.com/wunderlist/clickonce-to-squirrel/migrator/internal/shellfolders"
	"github.com/wunderlist/clickonce-to-squirrel/migrator/internal/taskbar"
	"github.com/wunderlist/clickonce-to-squirrel/migrator/internal/uninstallinfo"
	"github.com/wunderlist/clickonce-to-squirrel/util"
)

// RemoveStartMenuEntry deletes the start menu, desktop and taskbar shortcuts of a ClickOnce
// application, together with the start menu folders they leave empty
type RemoveStartMenuEntry struct {
	info     *uninstallinfo.UninstallInfo
	folders  shellfolders.Folders
	unpinner taskbar.Unpinner

	prepared        bool
	filesToRemove   []string
	foldersToRemove []string
	warnings        *multierror.Error
}

func NewRemoveStartMenuEntry(info *uninstallinfo.UninstallInfo, folders shellfolders.Folders, unpinner taskbar.Unpinner) *RemoveStartMenuEntry {
	return &RemoveStartMenuEntry{
		info:     info,
		folders:  folders,
		unpinner: unpinner,
	}
}

// Prepare ignores the component list; the shortcuts are derived from the uninstall entry.
func (r *RemoveStartMenuEntry) Prepare([]string) error {
	programsFolder := r.folders.Programs
	folder := filepath.Join(programsFolder, r.info.ShortcutFolderName())
	suiteFolder := r.info.SuiteFolder(programsFolder)
	shortcut := r.info.ShortcutPath(programsFolder)
	supportShortcut := r.info.SupportShortcutPath(programsFolder)
	shortcutName := r.info.ShortcutFileName() + uninstallinfo.ShortcutExtension
	desktopShortcut := filepath.Join(r.folders.Desktop, shortcutName)
	taskbarShortcut := filepath.Join(r.folders.TaskbarPinnedFolder(), shortcutName)

	if util.FileExists(taskbarShortcut) && r.unpinner != nil {
		if err := r.unpinner.Unpin(taskbarShortcut); err != nil {
			log.Errorf("Failed to unpin shortcut %s: %v", taskbarShortcut, err)
		}
	}

	var files []string
	for _, candidate := range []string{shortcut, supportShortcut, desktopShortcut, taskbarShortcut} {
		if util.FileExists(candidate) && !util.Contains(files, candidate) {
			files = append(files, candidate)
		}
	}

	var folders []string
	// the Programs folder itself is never a candidate
	if suiteFolder != programsFolder && util.DirExists(suiteFolder) {
		suiteFiles, _, err := listFolder(suiteFolder)
		if err != nil {
			return err
		}

		if allContained(suiteFiles, files) {
			folders = append(folders, suiteFolder)

			if suiteFolder != folder && folder != programsFolder {
				parentFiles, parentDirs, err := listFolder(folder)
				if err != nil {
					return err
				}
				if len(parentDirs) == 1 && len(parentFiles) == 0 {
					folders = append(folders, folder)
				}
			}
		}
	}

	r.filesToRemove = files
	r.foldersToRemove = folders
	r.warnings = nil
	r.prepared = true
	return nil
}

func (r *RemoveStartMenuEntry) Execute() error {
	if !r.prepared {
		return ErrNotPrepared
	}

	for _, file := range r.filesToRemove {
		if err := os.Remove(file); err != nil {
			log.Warnf("Failed to remove shortcut file %s: %v", file, err)
			r.warnings = multierror.Append(r.warnings, fmt.Errorf("remove shortcut file %s: %w", file, err))
		}
	}

	for _, folder := range r.foldersToRemove {
		if err := os.Remove(folder); err != nil {
			log.Warnf("Failed to remove folder %s: %v", folder, err)
			r.warnings = multierror.Append(r.warnings, fmt.Errorf("remove folder %s: %w", folder, err))
		}
	}

	return nil
}

func (r *RemoveStartMenuEntry) PrintDebugInformation() error {
	if !r.prepared {
		return ErrNotPrepared
	}

	log.Infof("Remove start menu entries from %s", r.folders.Programs)
	for _, file := range r.filesToRemove {
		log.Infof("Delete file %s", file)
	}
	for _, folder := range r.foldersToRemove {
		log.Infof("Delete folder %s", folder)
	}

	return nil
}

// FilesToRemove returns the planned file deletions
func (r *RemoveStartMenuEntry) FilesToRemove() []string {
	return append([]string(nil), r.filesToRemove...)
}

// FoldersToRemove returns the planned folder deletions
func (r *RemoveStartMenuEntry) FoldersToRemove() []string {
	return append([]string(nil), r.foldersToRemove...)
}

// Warnings returns the deletion failures of the last Execute, or nil
func (r *RemoveStartMenuEntry) Warnings() error {
	return migerrors.FormatErrorOrNil(r.warnings)
}

func listFolder(folder string) (files []string, dirs []string, err error) {
	entries, err := os.ReadDir(folder)
	if err != nil {
		return nil, nil, fmt.Errorf("list %s: %w", folder, err)
	}

	for _, entry := range entries {
		path := filepath.Join(folder, entry.Name())
		if entry.IsDir() {
			dirs = append(dirs, path)
		} else {
			files = append(files, path)
		}
	}
	return files, dirs, nil
}

func allContained(items, set []string) bool {
	for _, item := range items {
		if !util.Contains(set, item) {
			return false
		}
	}
	return true
}
