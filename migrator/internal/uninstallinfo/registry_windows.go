package uninstallinfo

import (
	"errors"
	"fmt"

	log "github.com/sirupsen/logrus"
	"golang.org/x/sys/windows/registry"
)

// RegistryStore reads and writes the uninstall entries of the current user
type RegistryStore struct {
	root registry.Key
	path string
}

func NewRegistryStore() *RegistryStore {
	return &RegistryStore{
		root: registry.CURRENT_USER,
		path: UninstallRegistryPath,
	}
}

func (s *RegistryStore) SubKeys() ([]string, error) {
	k, err := registry.OpenKey(s.root, s.path, registry.ENUMERATE_SUB_KEYS)
	if err != nil {
		if errors.Is(err, registry.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("open %s: %w", s.path, err)
	}
	defer closeKey(k)

	return k.ReadSubKeyNames(-1)
}

func (s *RegistryStore) StringValue(key, name string) (string, error) {
	k, err := registry.OpenKey(s.root, s.path+`\`+key, registry.QUERY_VALUE)
	if err != nil {
		if errors.Is(err, registry.ErrNotExist) {
			return "", ErrKeyNotFound
		}
		return "", fmt.Errorf("open %s: %w", key, err)
	}
	defer closeKey(k)

	value, _, err := k.GetStringValue(name)
	switch {
	case errors.Is(err, registry.ErrNotExist):
		return "", ErrValueNotFound
	case errors.Is(err, registry.ErrUnexpectedType):
		return "", ErrValueNotFound
	case err != nil:
		return "", fmt.Errorf("read %s\\%s: %w", key, name, err)
	}
	return value, nil
}

func (s *RegistryStore) WriteKey(key string, values Values) error {
	k, _, err := registry.CreateKey(s.root, s.path+`\`+key, registry.SET_VALUE)
	if err != nil {
		return fmt.Errorf("create %s: %w", key, err)
	}
	defer closeKey(k)

	for name, value := range values.Strings {
		if err := k.SetStringValue(name, value); err != nil {
			return fmt.Errorf("set %s\\%s: %w", key, name, err)
		}
	}
	for name, value := range values.DWords {
		if err := k.SetDWordValue(name, value); err != nil {
			return fmt.Errorf("set %s\\%s: %w", key, name, err)
		}
	}
	return nil
}

func (s *RegistryStore) DeleteKey(key string) error {
	err := registry.DeleteKey(s.root, s.path+`\`+key)
	if errors.Is(err, registry.ErrNotExist) {
		return ErrKeyNotFound
	}
	return err
}

func closeKey(k registry.Key) {
	if err := k.Close(); err != nil {
		log.Warnf("Error closing registry key: %v", err)
	}
}
