package util

import (
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlagNameToEnvVar(t *testing.T) {
	assert.Equal(t, "C2S_CLICKONCE_APP", FlagNameToEnvVar("clickonce-app", EnvPrefix))
	assert.Equal(t, "C2S_LOG_LEVEL", FlagNameToEnvVar("log-level", EnvPrefix))
}

func TestSetFlagsFromEnvVars(t *testing.T) {
	var app, level string
	root := &cobra.Command{Use: "root"}
	root.PersistentFlags().StringVar(&app, "clickonce-app", "default", "")
	child := &cobra.Command{Use: "child"}
	child.Flags().StringVar(&level, "log-level", "info", "")
	root.AddCommand(child)

	t.Setenv("C2S_CLICKONCE_APP", "Legacy")
	t.Setenv("C2S_LOG_LEVEL", "debug")

	SetFlagsFromEnvVars(child)

	require.Equal(t, "Legacy", app)
	assert.Equal(t, "debug", level)
}
