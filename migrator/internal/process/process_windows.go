package process

import (
	"context"
	"os/exec"
	"syscall"
)

// commandFromLine keeps the argument string untouched; rundll32 style entries rely on
// their own quoting.
func commandFromLine(ctx context.Context, commandLine string) (*exec.Cmd, error) {
	name, _, err := SplitCommandLine(commandLine)
	if err != nil {
		return nil, err
	}

	cmd := exec.CommandContext(ctx, name)
	cmd.SysProcAttr = &syscall.SysProcAttr{CmdLine: commandLine}
	return cmd, nil
}

// SetDetachedProcAttr configures cmd to run detached from the parent process
func SetDetachedProcAttr(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{
		CreationFlags: syscall.CREATE_NEW_PROCESS_GROUP | 0x00000008, // 0x00000008 is DETACHED_PROCESS
	}
}
