//go:build !windows

package shellfolders

import (
	"fmt"

	"github.com/mitchellh/go-homedir"
)

// Resolve lays the Windows profile folders out below the home directory. There is no
// shell integration outside Windows, so nothing is expected to exist there.
func Resolve() (Folders, error) {
	home, err := homedir.Dir()
	if err != nil {
		return Folders{}, fmt.Errorf("resolve home directory: %w", err)
	}
	return UnderRoot(home), nil
}
