package cmd

import (
	"github.com/spf13/cobra"

	"github.com/wunderlist/clickonce-to-squirrel/migrator/internal/legacyhost"
	"github.com/wunderlist/clickonce-to-squirrel/migrator/internal/process"
)

// newLegacyHost is replaced in tests
var newLegacyHost = func(deployment string) legacyhost.Host {
	return legacyhost.NewDfshimHost(deployment, process.NewExecRunner())
}

var installLegacyCmd = &cobra.Command{
	Use:   "install-legacy <deployment manifest>",
	Short: "Installs a ClickOnce deployment",
	Long:  "Installs the ClickOnce deployment at the given .application URL or path. Used to prepare a machine for testing the migration.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := commandContext(cmd)
		defer cancel()

		if err := (legacyhost.Installer{}).Install(ctx, newLegacyHost(args[0])); err != nil {
			return err
		}
		cmd.Printf("installed %s\n", args[0])
		return nil
	},
}
