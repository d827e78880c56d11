// Package testutil holds helpers shared by the migrator tests.
package testutil

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

const (
	// TempEnv overrides the base directory of WithTempDirectory
	TempEnv = "SQUIRREL_TEMP"

	cjkFirst = 0x4E00
	cjkLast  = 0x9FCC
)

// DirectoryChars lists the single-character directory names WithTempDirectory tries,
// ASCII letters first and then CJK unified ideographs.
func DirectoryChars() []rune {
	chars := make([]rune, 0, 26+cjkLast-cjkFirst)
	for c := 'a'; c <= 'z'; c++ {
		chars = append(chars, c)
	}
	for c := rune(cjkFirst); c < cjkLast; c++ {
		chars = append(chars, c)
	}
	return chars
}

// WithTempDirectory creates a fresh directory with a one-character name below the
// SQUIRREL_TEMP directory, or below a test temp directory when it is unset. Non-ASCII
// names catch path handling that only works for ASCII profiles.
// The directory is removed when the test finishes.
func WithTempDirectory(t testing.TB) string {
	t.Helper()

	base := os.Getenv(TempEnv)
	if base == "" {
		base = t.TempDir()
	}
	require.DirExists(t, base, "%s must point to an existing directory", TempEnv)

	for _, c := range DirectoryChars() {
		target := filepath.Join(base, string(c))
		if _, err := os.Lstat(target); err == nil {
			continue
		}
		if err := os.Mkdir(target, 0o755); err != nil {
			if os.IsExist(err) {
				continue
			}
			require.NoError(t, err)
		}

		t.Cleanup(func() {
			if err := os.RemoveAll(target); err != nil {
				t.Logf("failed to remove %s: %v", target, err)
			}
		})
		return target
	}

	t.Fatalf("no free directory name left in %s", base)
	return ""
}

// HasNonASCII reports whether path contains characters outside ASCII
func HasNonASCII(path string) bool {
	return strings.IndexFunc(path, func(r rune) bool { return r > 0x7f }) >= 0
}
