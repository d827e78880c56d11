package cmd

import (
	"github.com/spf13/cobra"

	"github.com/wunderlist/clickonce-to-squirrel/version"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "prints the migrator version",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Println(version.MigratorVersion())
	},
}
