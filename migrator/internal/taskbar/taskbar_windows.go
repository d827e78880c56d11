package taskbar

import (
	"fmt"
	"path/filepath"
	"runtime"

	"github.com/go-ole/go-ole"
	"github.com/go-ole/go-ole/oleutil"
	log "github.com/sirupsen/logrus"
)

const unpinVerb = "taskbarunpin"

// ShellUnpinner invokes the taskbarunpin verb of the shortcut through Shell.Application
type ShellUnpinner struct{}

func NewUnpinner() *ShellUnpinner {
	return &ShellUnpinner{}
}

func (u *ShellUnpinner) Unpin(shortcut string) error {
	// COM apartments are per thread
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	if err := ole.CoInitializeEx(0, ole.COINIT_APARTMENTTHREADED); err != nil {
		if oleErr, ok := err.(*ole.OleError); !ok || oleErr.Code() != 1 { // S_FALSE: already initialized
			return fmt.Errorf("initialize COM: %w", err)
		}
	}
	defer ole.CoUninitialize()

	unknown, err := oleutil.CreateObject("Shell.Application")
	if err != nil {
		return fmt.Errorf("create Shell.Application: %w", err)
	}
	defer unknown.Release()

	shell, err := unknown.QueryInterface(ole.IID_IDispatch)
	if err != nil {
		return fmt.Errorf("query shell dispatch: %w", err)
	}
	defer shell.Release()

	folderVariant, err := oleutil.CallMethod(shell, "NameSpace", filepath.Dir(shortcut))
	if err != nil {
		return fmt.Errorf("open shell folder: %w", err)
	}
	defer clearVariant(folderVariant)
	folder := folderVariant.ToIDispatch()
	if folder == nil {
		return fmt.Errorf("shell folder %s not found", filepath.Dir(shortcut))
	}

	itemVariant, err := oleutil.CallMethod(folder, "ParseName", filepath.Base(shortcut))
	if err != nil {
		return fmt.Errorf("parse shell item: %w", err)
	}
	defer clearVariant(itemVariant)
	item := itemVariant.ToIDispatch()
	if item == nil {
		return fmt.Errorf("shell item %s not found", shortcut)
	}

	result, err := oleutil.CallMethod(item, "InvokeVerb", unpinVerb)
	if err != nil {
		return fmt.Errorf("invoke %s: %w", unpinVerb, err)
	}
	clearVariant(result)

	log.Infof("unpinned %s from the taskbar", shortcut)
	return nil
}

func clearVariant(v *ole.VARIANT) {
	if v == nil {
		return
	}
	if err := v.Clear(); err != nil {
		log.Debugf("failed to clear variant: %v", err)
	}
}
