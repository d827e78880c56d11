//go:build !windows

package process

import (
	"context"
	"os/exec"
	"strings"
	"syscall"
)

func commandFromLine(ctx context.Context, commandLine string) (*exec.Cmd, error) {
	name, rest, err := SplitCommandLine(commandLine)
	if err != nil {
		return nil, err
	}
	return exec.CommandContext(ctx, name, strings.Fields(rest)...), nil
}

// SetDetachedProcAttr configures cmd to run in a new session, independent of the parent
func SetDetachedProcAttr(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{
		Setsid: true,
	}
}
