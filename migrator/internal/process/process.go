// Package process runs external installer and uninstaller commands.
package process

import (
	"context"
	"fmt"
	"os/exec"
	"strings"

	log "github.com/sirupsen/logrus"
)

// Runner starts an external command and waits for it to finish
type Runner interface {
	// Run executes name with args
	Run(ctx context.Context, name string, args ...string) error
	// RunCommandLine executes a raw command line, as stored in an uninstall entry
	RunCommandLine(ctx context.Context, commandLine string) error
}

// ExecRunner runs commands through os/exec
type ExecRunner struct {
	// Dir is the working directory of started commands, the current one when empty
	Dir string
}

func NewExecRunner() *ExecRunner {
	return &ExecRunner{}
}

func (r *ExecRunner) Run(ctx context.Context, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	return r.run(cmd)
}

func (r *ExecRunner) RunCommandLine(ctx context.Context, commandLine string) error {
	cmd, err := commandFromLine(ctx, commandLine)
	if err != nil {
		return err
	}
	return r.run(cmd)
}

func (r *ExecRunner) run(cmd *exec.Cmd) error {
	cmd.Dir = r.Dir
	log.Infof("run %s", strings.Join(cmd.Args, " "))

	output, err := cmd.CombinedOutput()
	if err != nil {
		log.Debugf("command output: %s", string(output))
		return fmt.Errorf("run %s: %w", cmd.Path, err)
	}
	log.Debugf("command finished: %s", cmd.Path)
	return nil
}

// SplitCommandLine splits a command line into the executable and its remaining arguments.
// The executable may be double quoted; the remainder is returned verbatim.
func SplitCommandLine(commandLine string) (string, string, error) {
	commandLine = strings.TrimSpace(commandLine)
	if commandLine == "" {
		return "", "", fmt.Errorf("empty command line")
	}

	if strings.HasPrefix(commandLine, `"`) {
		end := strings.Index(commandLine[1:], `"`)
		if end < 0 {
			return "", "", fmt.Errorf("unterminated quote in command line %q", commandLine)
		}
		return commandLine[1 : end+1], strings.TrimSpace(commandLine[end+2:]), nil
	}

	name, rest, _ := strings.Cut(commandLine, " ")
	return name, strings.TrimSpace(rest), nil
}
