// Package shellfolders resolves the per-user shell folders the migrator cleans up.
package shellfolders

import (
	"path/filepath"
)

// Folders holds the per-user shell folder locations
type Folders struct {
	Programs       string
	Desktop        string
	RoamingAppData string
	LocalAppData   string
}

// TaskbarPinnedFolder is the roaming folder holding shortcuts pinned to the taskbar
func (f Folders) TaskbarPinnedFolder() string {
	return filepath.Join(f.RoamingAppData, "Microsoft", "Internet Explorer", "Quick Launch", "User Pinned", "TaskBar")
}

// Apps20Folder is the root of the ClickOnce application cache
func (f Folders) Apps20Folder() string {
	return filepath.Join(f.LocalAppData, "Apps", "2.0")
}

// Apps20DataFolder is the root of the ClickOnce per-user data cache
func (f Folders) Apps20DataFolder() string {
	return filepath.Join(f.Apps20Folder(), "Data")
}

// UnderRoot places every folder below root, mirroring a user profile. Used for dry runs
// against a copied profile.
func UnderRoot(root string) Folders {
	return Folders{
		Programs:       filepath.Join(root, "AppData", "Roaming", "Microsoft", "Windows", "Start Menu", "Programs"),
		Desktop:        filepath.Join(root, "Desktop"),
		RoamingAppData: filepath.Join(root, "AppData", "Roaming"),
		LocalAppData:   filepath.Join(root, "AppData", "Local"),
	}
}
