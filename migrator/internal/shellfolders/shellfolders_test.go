package shellfolders

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUnderRoot(t *testing.T) {
	root := t.TempDir()
	folders := UnderRoot(root)

	assert.Equal(t, filepath.Join(root, "AppData", "Local", "Apps", "2.0"), folders.Apps20Folder())
	assert.Equal(t, filepath.Join(root, "AppData", "Local", "Apps", "2.0", "Data"), folders.Apps20DataFolder())
	assert.Equal(t,
		filepath.Join(root, "AppData", "Roaming", "Microsoft", "Internet Explorer", "Quick Launch", "User Pinned", "TaskBar"),
		folders.TaskbarPinnedFolder())
	assert.Equal(t, filepath.Join(root, "Desktop"), folders.Desktop)
}

func TestResolve(t *testing.T) {
	folders, err := Resolve()
	assert.NoError(t, err)
	assert.NotEmpty(t, folders.Programs)
	assert.NotEmpty(t, folders.Desktop)
	assert.NotEmpty(t, folders.RoamingAppData)
	assert.NotEmpty(t, folders.LocalAppData)
}
