package steps

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/wunderlist/clickonce-to-squirrel/migrator/internal/uninstallinfo"
)

func mkdirs(t *testing.T, paths ...string) {
	t.Helper()
	for _, path := range paths {
		require.NoError(t, os.MkdirAll(path, 0o755))
	}
}

func touch(t *testing.T, paths ...string) {
	t.Helper()
	for _, path := range paths {
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))
	}
}

func findInfo(t *testing.T, store *uninstallinfo.MemoryStore, strings map[string]string) *uninstallinfo.UninstallInfo {
	t.Helper()
	strings[uninstallinfo.DisplayNameValue] = "ClickOnceApp"
	require.NoError(t, store.WriteKey("a1b2c3", uninstallinfo.Values{Strings: strings}))

	info, err := uninstallinfo.Find(store, "ClickOnceApp")
	require.NoError(t, err)
	require.NotNil(t, info)
	return info
}
