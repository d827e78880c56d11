package steps

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/wunderlist/clickonce-to-squirrel/util"
)

// cacheFolderNameLength is the length of the two random folder names the ClickOnce engine
// places below Apps\2.0 (e.g. Apps\2.0\Q7XA2J0D.6KP\OYBV3DLG.N0W).
// TODO: revalidate against installs made by current .NET Framework versions.
const cacheFolderNameLength = 12

const manifestsFolderName = "manifests"

// RemoveFiles deletes the application and data folders and the manifests of ClickOnce
// components from the ClickOnce application cache
type RemoveFiles struct {
	apps20Folder     string
	apps20DataFolder string

	clickOnceFolder     string
	clickOnceDataFolder string
	foldersToRemove     []string
	filesToRemove       []string

	// removeAll is replaced in tests
	removeAll func(string) error
}

// NewRemoveFiles creates the step for the given Apps\2.0 and Apps\2.0\Data cache roots
func NewRemoveFiles(apps20Folder, apps20DataFolder string) *RemoveFiles {
	return &RemoveFiles{
		apps20Folder:     apps20Folder,
		apps20DataFolder: apps20DataFolder,
		removeAll:        os.RemoveAll,
	}
}

func (r *RemoveFiles) Prepare(components []string) error {
	r.clickOnceFolder = ""
	r.foldersToRemove = nil
	r.filesToRemove = nil

	clickOnceFolder, err := LocateCacheFolder(r.apps20Folder)
	if err != nil {
		return err
	}
	clickOnceDataFolder, err := LocateCacheFolder(r.apps20DataFolder)
	if err != nil {
		return err
	}

	var folders []string
	for _, base := range []string{clickOnceFolder, clickOnceDataFolder} {
		matches, err := matchingSubfolders(base, components)
		if err != nil {
			return err
		}
		folders = append(folders, matches...)
	}

	files, err := matchingManifests(filepath.Join(clickOnceFolder, manifestsFolderName), components)
	if err != nil {
		return err
	}

	r.clickOnceFolder = clickOnceFolder
	r.clickOnceDataFolder = clickOnceDataFolder
	r.foldersToRemove = folders
	r.filesToRemove = files
	return nil
}

func (r *RemoveFiles) Execute() error {
	if err := r.checkPrepared(); err != nil {
		return err
	}

	for _, folder := range r.foldersToRemove {
		if err := r.removeAll(folder); err != nil {
			if errors.Is(err, fs.ErrPermission) {
				log.Warnf("access denied while removing folder %s: %v", folder, err)
				continue
			}
			return fmt.Errorf("remove folder %s: %w", folder, err)
		}
	}

	for _, file := range r.filesToRemove {
		if err := os.Remove(file); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("remove file %s: %w", file, err)
		}
	}

	return nil
}

func (r *RemoveFiles) PrintDebugInformation() error {
	if err := r.checkPrepared(); err != nil {
		return err
	}

	log.Infof("Remove files from %s", r.clickOnceFolder)
	log.Infof("Remove files from %s", r.clickOnceDataFolder)

	for _, folder := range r.foldersToRemove {
		log.Infof("Delete folder %s", r.relative(folder))
	}
	for _, file := range r.filesToRemove {
		log.Infof("Delete file %s", r.relative(file))
	}

	return nil
}

// FoldersToRemove returns the planned folder deletions
func (r *RemoveFiles) FoldersToRemove() []string {
	return append([]string(nil), r.foldersToRemove...)
}

// FilesToRemove returns the planned file deletions
func (r *RemoveFiles) FilesToRemove() []string {
	return append([]string(nil), r.filesToRemove...)
}

func (r *RemoveFiles) checkPrepared() error {
	if r.clickOnceFolder == "" || !util.DirExists(r.clickOnceFolder) {
		return ErrNotPrepared
	}
	return nil
}

// relative reports path relative to the application folder; data folder paths share no
// prefix with it and are reported unchanged.
func (r *RemoveFiles) relative(path string) string {
	rel, err := filepath.Rel(r.clickOnceFolder, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return path
	}
	return rel
}

// LocateCacheFolder returns the first <12 chars>\<12 chars> folder below baseFolder
func LocateCacheFolder(baseFolder string) (string, error) {
	if !util.DirExists(baseFolder) {
		return "", fmt.Errorf("%w: %s does not exist", ErrFolderNotFound, baseFolder)
	}

	subFolders, err := subfolders(baseFolder)
	if err != nil {
		return "", err
	}

	for _, subFolder := range subFolders {
		if len(filepath.Base(subFolder)) != cacheFolderNameLength {
			continue
		}

		subSubFolders, err := subfolders(subFolder)
		if err != nil {
			return "", err
		}
		for _, subSubFolder := range subSubFolders {
			if len(filepath.Base(subSubFolder)) == cacheFolderNameLength {
				return subSubFolder, nil
			}
		}
	}

	return "", fmt.Errorf("%w below %s", ErrFolderNotFound, baseFolder)
}

func subfolders(folder string) ([]string, error) {
	entries, err := os.ReadDir(folder)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", folder, err)
	}

	var folders []string
	for _, entry := range entries {
		if entry.IsDir() {
			folders = append(folders, filepath.Join(folder, entry.Name()))
		}
	}
	return folders, nil
}

func matchingSubfolders(folder string, components []string) ([]string, error) {
	folders, err := subfolders(folder)
	if err != nil {
		return nil, err
	}

	var matches []string
	for _, subFolder := range folders {
		if util.Contains(components, filepath.Base(subFolder)) {
			matches = append(matches, subFolder)
		}
	}
	return matches, nil
}

func matchingManifests(manifestsFolder string, components []string) ([]string, error) {
	entries, err := os.ReadDir(manifestsFolder)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", manifestsFolder, err)
	}

	var matches []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if util.Contains(components, strings.TrimSuffix(name, filepath.Ext(name))) {
			matches = append(matches, filepath.Join(manifestsFolder, name))
		}
	}
	return matches, nil
}
