//go:build !windows

package uninstallinfo

import (
	"errors"
	"runtime"
)

// ErrUnsupported is returned for writes on platforms without a per-user uninstall registry
var ErrUnsupported = errors.New("uninstall registry is not available on " + runtime.GOOS)

// RegistryStore has no backing registry outside of Windows and reports no entries
type RegistryStore struct{}

func NewRegistryStore() *RegistryStore {
	return &RegistryStore{}
}

func (s *RegistryStore) SubKeys() ([]string, error) {
	return nil, nil
}

func (s *RegistryStore) StringValue(string, string) (string, error) {
	return "", ErrKeyNotFound
}

func (s *RegistryStore) WriteKey(string, Values) error {
	return ErrUnsupported
}

func (s *RegistryStore) DeleteKey(string) error {
	return ErrUnsupported
}
