package shellfolders

import (
	"fmt"

	"golang.org/x/sys/windows"
)

// Resolve reads the known folder locations of the current user
func Resolve() (Folders, error) {
	var folders Folders
	targets := []struct {
		id   *windows.KNOWNFOLDERID
		dest *string
	}{
		{windows.FOLDERID_Programs, &folders.Programs},
		{windows.FOLDERID_Desktop, &folders.Desktop},
		{windows.FOLDERID_RoamingAppData, &folders.RoamingAppData},
		{windows.FOLDERID_LocalAppData, &folders.LocalAppData},
	}

	for _, target := range targets {
		path, err := windows.KnownFolderPath(target.id, windows.KF_FLAG_DEFAULT)
		if err != nil {
			return Folders{}, fmt.Errorf("resolve known folder: %w", err)
		}
		*target.dest = path
	}

	return folders, nil
}
