package steps

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type clickOnceCache struct {
	apps20     string
	data20     string
	appFolder  string
	dataFolder string
	manifests  string
}

func newClickOnceCache(t *testing.T) clickOnceCache {
	t.Helper()
	root := t.TempDir()
	c := clickOnceCache{
		apps20: filepath.Join(root, "Apps", "2.0"),
	}
	c.data20 = filepath.Join(c.apps20, "Data")
	c.appFolder = filepath.Join(c.apps20, "Q7XA2J0D.6KP", "OYBV3DLG.N0W")
	c.dataFolder = filepath.Join(c.data20, "L2T4VNB1.QAZ", "JK8M1X0P.4RT")
	c.manifests = filepath.Join(c.appFolder, manifestsFolderName)

	mkdirs(t,
		// folders with other name lengths are ignored while descending
		filepath.Join(c.apps20, "short", "Q7XA2J0D.6KP"),
		filepath.Join(c.appFolder, "clic..tion_0123456789abcdef_0001.0000_none_5e3c1a"),
		filepath.Join(c.appFolder, "clic..exe_0123456789abcdef_0001.0000_none_77aa02"),
		filepath.Join(c.appFolder, "othe..tion_fedcba9876543210_0002.0000_none_123456"),
		filepath.Join(c.dataFolder, "clic..tion_0123456789abcdef_0001.0000_none_5e3c1a"),
		filepath.Join(c.dataFolder, "othe..tion_fedcba9876543210_0002.0000_none_123456"),
	)
	touch(t,
		filepath.Join(c.appFolder, "clic..tion_0123456789abcdef_0001.0000_none_5e3c1a", "ClickOnceApp.exe"),
		filepath.Join(c.manifests, "clic..tion_0123456789abcdef_0001.0000_none_5e3c1a.manifest"),
		filepath.Join(c.manifests, "clic..tion_0123456789abcdef_0001.0000_none_5e3c1a.cdf-ms"),
		filepath.Join(c.manifests, "othe..tion_fedcba9876543210_0002.0000_none_123456.manifest"),
	)
	return c
}

var clickOnceComponents = []string{
	"clic..tion_0123456789abcdef_0001.0000_none_5e3c1a",
	"clic..exe_0123456789abcdef_0001.0000_none_77aa02",
}

func TestRemoveFiles_Prepare(t *testing.T) {
	c := newClickOnceCache(t)
	step := NewRemoveFiles(c.apps20, c.data20)

	require.NoError(t, step.Prepare(clickOnceComponents))

	assert.ElementsMatch(t, []string{
		filepath.Join(c.appFolder, "clic..tion_0123456789abcdef_0001.0000_none_5e3c1a"),
		filepath.Join(c.appFolder, "clic..exe_0123456789abcdef_0001.0000_none_77aa02"),
		filepath.Join(c.dataFolder, "clic..tion_0123456789abcdef_0001.0000_none_5e3c1a"),
	}, step.FoldersToRemove())
	assert.ElementsMatch(t, []string{
		filepath.Join(c.manifests, "clic..tion_0123456789abcdef_0001.0000_none_5e3c1a.manifest"),
		filepath.Join(c.manifests, "clic..tion_0123456789abcdef_0001.0000_none_5e3c1a.cdf-ms"),
	}, step.FilesToRemove())
}

func TestRemoveFiles_PrepareWithoutMatches(t *testing.T) {
	c := newClickOnceCache(t)
	step := NewRemoveFiles(c.apps20, c.data20)

	require.NoError(t, step.Prepare(nil))
	assert.Empty(t, step.FoldersToRemove())
	assert.Empty(t, step.FilesToRemove())
}

func TestRemoveFiles_Execute(t *testing.T) {
	c := newClickOnceCache(t)
	step := NewRemoveFiles(c.apps20, c.data20)
	require.NoError(t, step.Prepare(clickOnceComponents))

	// already-missing files are tolerated
	require.NoError(t, os.Remove(filepath.Join(c.manifests, "clic..tion_0123456789abcdef_0001.0000_none_5e3c1a.cdf-ms")))

	require.NoError(t, step.Execute())

	for _, path := range append(step.FoldersToRemove(), step.FilesToRemove()...) {
		assert.NoFileExists(t, path)
		assert.NoDirExists(t, path)
	}
	assert.DirExists(t, filepath.Join(c.appFolder, "othe..tion_fedcba9876543210_0002.0000_none_123456"))
	assert.DirExists(t, filepath.Join(c.dataFolder, "othe..tion_fedcba9876543210_0002.0000_none_123456"))
	assert.FileExists(t, filepath.Join(c.manifests, "othe..tion_fedcba9876543210_0002.0000_none_123456.manifest"))
}

func TestRemoveFiles_ExecuteSkipsAccessDeniedFolders(t *testing.T) {
	c := newClickOnceCache(t)
	step := NewRemoveFiles(c.apps20, c.data20)
	require.NoError(t, step.Prepare(clickOnceComponents))

	folders := step.FoldersToRemove()
	require.Len(t, folders, 3)
	denied := folders[0]
	step.removeAll = func(path string) error {
		if path == denied {
			return &fs.PathError{Op: "unlinkat", Path: path, Err: fs.ErrPermission}
		}
		return os.RemoveAll(path)
	}

	require.NoError(t, step.Execute())

	assert.DirExists(t, denied)
	for _, folder := range folders[1:] {
		assert.NoDirExists(t, folder)
	}
	for _, file := range step.FilesToRemove() {
		assert.NoFileExists(t, file)
	}
}

func TestRemoveFiles_ExecutePropagatesFolderErrors(t *testing.T) {
	c := newClickOnceCache(t)
	step := NewRemoveFiles(c.apps20, c.data20)
	require.NoError(t, step.Prepare(clickOnceComponents))

	ioErr := errors.New("input/output error")
	var attempted []string
	step.removeAll = func(path string) error {
		attempted = append(attempted, path)
		return &fs.PathError{Op: "unlinkat", Path: path, Err: ioErr}
	}

	err := step.Execute()
	require.ErrorIs(t, err, ioErr)
	assert.Contains(t, err.Error(), step.FoldersToRemove()[0])
	assert.Len(t, attempted, 1)
	for _, file := range step.FilesToRemove() {
		assert.FileExists(t, file)
	}
}

func TestRemoveFiles_ExecutePropagatesFileErrors(t *testing.T) {
	c := newClickOnceCache(t)
	step := NewRemoveFiles(c.apps20, c.data20)
	require.NoError(t, step.Prepare(clickOnceComponents))

	manifest := filepath.Join(c.manifests, "clic..tion_0123456789abcdef_0001.0000_none_5e3c1a.manifest")
	require.NoError(t, os.Remove(manifest))
	touch(t, filepath.Join(manifest, "blocker"))

	assert.Error(t, step.Execute())
}

func TestRemoveFiles_FolderNotFound(t *testing.T) {
	t.Run("missing cache root", func(t *testing.T) {
		root := t.TempDir()
		step := NewRemoveFiles(filepath.Join(root, "Apps", "2.0"), filepath.Join(root, "Apps", "2.0", "Data"))
		assert.ErrorIs(t, step.Prepare(clickOnceComponents), ErrFolderNotFound)
	})

	t.Run("no second level folder", func(t *testing.T) {
		root := t.TempDir()
		apps20 := filepath.Join(root, "Apps", "2.0")
		mkdirs(t, filepath.Join(apps20, "Q7XA2J0D.6KP", "tooshort"))
		step := NewRemoveFiles(apps20, filepath.Join(apps20, "Data"))
		assert.ErrorIs(t, step.Prepare(clickOnceComponents), ErrFolderNotFound)
	})

	t.Run("missing data folder", func(t *testing.T) {
		root := t.TempDir()
		apps20 := filepath.Join(root, "Apps", "2.0")
		mkdirs(t, filepath.Join(apps20, "Q7XA2J0D.6KP", "OYBV3DLG.N0W", manifestsFolderName))
		step := NewRemoveFiles(apps20, filepath.Join(apps20, "Data"))
		assert.ErrorIs(t, step.Prepare(clickOnceComponents), ErrFolderNotFound)
	})
}

func TestRemoveFiles_NotPrepared(t *testing.T) {
	c := newClickOnceCache(t)
	step := NewRemoveFiles(c.apps20, c.data20)

	assert.ErrorIs(t, step.Execute(), ErrNotPrepared)
	assert.ErrorIs(t, step.PrintDebugInformation(), ErrNotPrepared)

	// a failed Prepare leaves the step unprepared
	require.NoError(t, os.RemoveAll(c.data20))
	require.Error(t, step.Prepare(clickOnceComponents))
	assert.ErrorIs(t, step.Execute(), ErrNotPrepared)
}

func TestRemoveFiles_PrintDebugInformation(t *testing.T) {
	hook := test.NewGlobal()
	defer hook.Reset()

	c := newClickOnceCache(t)
	step := NewRemoveFiles(c.apps20, c.data20)
	require.NoError(t, step.Prepare(clickOnceComponents))
	require.NoError(t, step.PrintDebugInformation())

	var messages []string
	for _, entry := range hook.AllEntries() {
		if entry.Level == logrus.InfoLevel {
			messages = append(messages, entry.Message)
		}
	}

	assert.Contains(t, messages, "Remove files from "+c.appFolder)
	assert.Contains(t, messages, "Remove files from "+c.dataFolder)
	assert.Contains(t, messages, "Delete folder clic..exe_0123456789abcdef_0001.0000_none_77aa02")
	assert.Contains(t, messages, "Delete file "+filepath.Join(manifestsFolderName, "clic..tion_0123456789abcdef_0001.0000_none_5e3c1a.manifest"))
}
