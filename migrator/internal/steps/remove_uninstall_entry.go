package steps

import (
	"errors"
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/wunderlist/clickonce-to-squirrel/migrator/internal/uninstallinfo"
)

// RemoveUninstallEntry deletes the uninstall entry of the ClickOnce application so it no
// longer shows up in the installed programs list
type RemoveUninstallEntry struct {
	info  *uninstallinfo.UninstallInfo
	store uninstallinfo.ReadWriter

	prepared bool
	exists   bool
}

func NewRemoveUninstallEntry(info *uninstallinfo.UninstallInfo, store uninstallinfo.ReadWriter) *RemoveUninstallEntry {
	return &RemoveUninstallEntry{
		info:  info,
		store: store,
	}
}

// Prepare ignores the component list and checks whether the entry is still present
func (r *RemoveUninstallEntry) Prepare([]string) error {
	_, err := r.store.StringValue(r.info.Key(), uninstallinfo.DisplayNameValue)
	switch {
	case err == nil, errors.Is(err, uninstallinfo.ErrValueNotFound):
		r.exists = true
	case errors.Is(err, uninstallinfo.ErrKeyNotFound):
		r.exists = false
	default:
		return fmt.Errorf("read uninstall entry %s: %w", r.info.Key(), err)
	}

	r.prepared = true
	return nil
}

func (r *RemoveUninstallEntry) Execute() error {
	if !r.prepared {
		return ErrNotPrepared
	}
	if !r.exists {
		return nil
	}

	if err := r.store.DeleteKey(r.info.Key()); err != nil && !errors.Is(err, uninstallinfo.ErrKeyNotFound) {
		return fmt.Errorf("delete uninstall entry %s: %w", r.info.Key(), err)
	}
	return nil
}

func (r *RemoveUninstallEntry) PrintDebugInformation() error {
	if !r.prepared {
		return ErrNotPrepared
	}

	if r.exists {
		log.Infof("Delete uninstall entry %s\\%s", uninstallinfo.UninstallRegistryPath, r.info.Key())
	} else {
		log.Infof("Uninstall entry %s already removed", r.info.Key())
	}
	return nil
}
