// Package uninstallinfo looks up ClickOnce applications in the per-user "installed programs"
// store and exposes the shortcut metadata recorded for them.
package uninstallinfo

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	v "github.com/hashicorp/go-version"
	log "github.com/sirupsen/logrus"
)

const (
	// UninstallRegistryPath is relative to HKEY_CURRENT_USER
	UninstallRegistryPath = `Software\Microsoft\Windows\CurrentVersion\Uninstall`

	DisplayNameValue             = "DisplayName"
	DisplayVersionValue          = "DisplayVersion"
	UninstallStringValue         = "UninstallString"
	ShortcutFolderNameValue      = "ShortcutFolderName"
	ShortcutSuiteNameValue       = "ShortcutSuiteName"
	ShortcutFileNameValue        = "ShortcutFileName"
	SupportShortcutFileNameValue = "SupportShortcutFileName"

	// ShortcutExtension is the extension of ClickOnce application references
	ShortcutExtension = ".appref-ms"
	// SupportShortcutExtension is the extension of the support link next to the shortcut
	SupportShortcutExtension = ".url"

	publicKeyTokenPrefix = "PublicKeyToken="
	maintainCommand      = "ShArpMaintain "
	publicKeyTokenLength = 16
)

// ErrInvalidUninstallString is returned when the uninstall string carries no well-formed public key token
var ErrInvalidUninstallString = errors.New("invalid uninstall string")

// UninstallInfo identifies one installed ClickOnce application
type UninstallInfo struct {
	key                     string
	shortcutFolderName      string
	shortcutSuiteName       string
	shortcutFileName        string
	supportShortcutFileName string
	version                 string
	uninstallString         string
}

// Find scans the store for the first entry whose DisplayName equals appName.
// It returns nil and no error when no entry matches.
func Find(store Store, appName string) (*UninstallInfo, error) {
	keys, err := store.SubKeys()
	if err != nil {
		return nil, fmt.Errorf("list uninstall entries: %w", err)
	}

	for _, key := range keys {
		displayName, err := store.StringValue(key, DisplayNameValue)
		if err != nil {
			if !errors.Is(err, ErrValueNotFound) {
				log.Debugf("skipping uninstall entry %s: %v", key, err)
			}
			continue
		}
		if displayName != appName {
			continue
		}

		log.Debugf("found uninstall entry %s for %s", key, appName)
		return load(store, key), nil
	}

	return nil, nil
}

// List returns every entry of the store that carries an uninstall string
func List(store Store) ([]*UninstallInfo, error) {
	keys, err := store.SubKeys()
	if err != nil {
		return nil, fmt.Errorf("list uninstall entries: %w", err)
	}

	var infos []*UninstallInfo
	for _, key := range keys {
		info := load(store, key)
		if info.uninstallString == "" {
			continue
		}
		infos = append(infos, info)
	}
	return infos, nil
}

func load(store Store, key string) *UninstallInfo {
	return &UninstallInfo{
		key:                     key,
		uninstallString:         optionalValue(store, key, UninstallStringValue),
		shortcutFolderName:      optionalValue(store, key, ShortcutFolderNameValue),
		shortcutSuiteName:       optionalValue(store, key, ShortcutSuiteNameValue),
		shortcutFileName:        optionalValue(store, key, ShortcutFileNameValue),
		supportShortcutFileName: optionalValue(store, key, SupportShortcutFileNameValue),
		version:                 optionalValue(store, key, DisplayVersionValue),
	}
}

func optionalValue(store Store, key, name string) string {
	value, err := store.StringValue(key, name)
	if err != nil {
		if !errors.Is(err, ErrValueNotFound) {
			log.Debugf("failed to read %s of uninstall entry %s: %v", name, key, err)
		}
		return ""
	}
	return value
}

func (i *UninstallInfo) Key() string                     { return i.key }
func (i *UninstallInfo) ShortcutFolderName() string      { return i.shortcutFolderName }
func (i *UninstallInfo) ShortcutSuiteName() string       { return i.shortcutSuiteName }
func (i *UninstallInfo) ShortcutFileName() string        { return i.shortcutFileName }
func (i *UninstallInfo) SupportShortcutFileName() string { return i.supportShortcutFileName }
func (i *UninstallInfo) Version() string                 { return i.version }
func (i *UninstallInfo) UninstallString() string         { return i.uninstallString }

// PublicKeyToken extracts the 16 character token from the PublicKeyToken= segment of the
// uninstall string.
func (i *UninstallInfo) PublicKeyToken() (string, error) {
	for _, segment := range strings.Split(i.uninstallString, ",") {
		segment = strings.TrimSpace(segment)
		if !strings.HasPrefix(segment, publicKeyTokenPrefix) {
			continue
		}

		token := strings.TrimPrefix(segment, publicKeyTokenPrefix)
		if len(token) != publicKeyTokenLength {
			return "", fmt.Errorf("%w: public key token %q has %d characters", ErrInvalidUninstallString, token, len(token))
		}
		return token, nil
	}

	return "", fmt.Errorf("%w: no %s segment", ErrInvalidUninstallString, publicKeyTokenPrefix)
}

// DeploymentName extracts the deployment manifest name, e.g. MyApp.application, that the
// uninstall string hands to the ClickOnce maintenance entry point.
func (i *UninstallInfo) DeploymentName() (string, error) {
	for _, segment := range strings.Split(i.uninstallString, ",") {
		segment = strings.TrimSpace(segment)
		if len(segment) <= len(maintainCommand) || !strings.EqualFold(segment[:len(maintainCommand)], maintainCommand) {
			continue
		}
		if name := strings.TrimSpace(segment[len(maintainCommand):]); name != "" {
			return name, nil
		}
	}

	return "", fmt.Errorf("%w: no deployment name", ErrInvalidUninstallString)
}

// ParsedVersion parses the DisplayVersion of the entry
func (i *UninstallInfo) ParsedVersion() (*v.Version, error) {
	return v.NewVersion(i.version)
}

// SuiteFolder is the start menu folder holding the shortcut, below the given Programs folder
func (i *UninstallInfo) SuiteFolder(programsFolder string) string {
	return filepath.Join(programsFolder, i.shortcutFolderName, i.shortcutSuiteName)
}

// ShortcutPath is the start menu shortcut of the application, below the given Programs folder
func (i *UninstallInfo) ShortcutPath(programsFolder string) string {
	return filepath.Join(i.SuiteFolder(programsFolder), i.shortcutFileName+ShortcutExtension)
}

// SupportShortcutPath is the support link placed next to the start menu shortcut
func (i *UninstallInfo) SupportShortcutPath(programsFolder string) string {
	return filepath.Join(i.SuiteFolder(programsFolder), i.supportShortcutFileName+SupportShortcutExtension)
}

func (i *UninstallInfo) String() string {
	return fmt.Sprintf("%s (%s, version %s)", i.shortcutFileName, i.key, i.version)
}
