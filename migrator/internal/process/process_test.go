package process

import (
	"context"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitCommandLine(t *testing.T) {
	testMatrix := []struct {
		name         string
		commandLine  string
		expectedName string
		expectedArgs string
		expectErr    bool
	}{
		{
			name:         "dfshim uninstall string",
			commandLine:  "rundll32.exe dfshim.dll,ShArpMaintain ClickOnceApp.application, Culture=neutral, PublicKeyToken=0123456789abcdef",
			expectedName: "rundll32.exe",
			expectedArgs: "dfshim.dll,ShArpMaintain ClickOnceApp.application, Culture=neutral, PublicKeyToken=0123456789abcdef",
		},
		{
			name:         "quoted executable",
			commandLine:  `"C:\Users\me\AppData\Local\SquirrelApp\Update.exe" --uninstall`,
			expectedName: `C:\Users\me\AppData\Local\SquirrelApp\Update.exe`,
			expectedArgs: "--uninstall",
		},
		{
			name:         "no arguments",
			commandLine:  "  Update.exe ",
			expectedName: "Update.exe",
		},
		{
			name:        "empty",
			commandLine: " ",
			expectErr:   true,
		},
		{
			name:        "unterminated quote",
			commandLine: `"Update.exe --uninstall`,
			expectErr:   true,
		},
	}

	for _, c := range testMatrix {
		t.Run(c.name, func(t *testing.T) {
			name, args, err := SplitCommandLine(c.commandLine)
			if c.expectErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, c.expectedName, name)
			assert.Equal(t, c.expectedArgs, args)
		})
	}
}

func TestExecRunner(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("uses POSIX utilities")
	}

	runner := NewExecRunner()
	assert.NoError(t, runner.Run(context.Background(), "true"))
	assert.Error(t, runner.Run(context.Background(), "false"))
	assert.NoError(t, runner.RunCommandLine(context.Background(), "test -d /"))
	assert.Error(t, runner.RunCommandLine(context.Background(), "test -f /"))
}
