package cmd

import (
	"context"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/wunderlist/clickonce-to-squirrel/migrator/internal/uninstaller"
	"github.com/wunderlist/clickonce-to-squirrel/util"
)

const (
	clickOnceAppFlag  = "clickonce-app"
	squirrelAppFlag   = "squirrel-app"
	publisherFlag     = "publisher"
	updateExeFlag     = "update-exe"
	packagesDirFlag   = "packages-dir"
	rootDirFlag       = "root-dir"
	resultDirFlag     = "result-dir"
	profileRootFlag   = "profile-root"
	uninstallModeFlag = "uninstall-mode"
)

var (
	configPath     string
	logLevel       string
	logFile        string
	defaultLogFile string
	clickOnceApp   string
	squirrelApp    string
	publisher      string
	updateExe      string
	packagesDir    string
	rootDir        string
	resultDir      string
	profileRoot    string
	uninstallMode  string
	rootCmd        = &cobra.Command{
		Use:          "clickonce-migrator",
		Short:        "Migrates a ClickOnce deployment to Squirrel.Windows",
		Long:         "clickonce-migrator installs the Squirrel version of an application from inside its ClickOnce build and removes the ClickOnce deployment once the Squirrel build runs.",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			util.SetFlagsFromEnvVars(cmd)
			return util.InitLog(logLevel, logFile)
		},
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	defaultDataDir := filepath.Join(os.TempDir(), "clickonce-migrator")
	defaultRootDir := os.Getenv("LOCALAPPDATA")
	defaultUpdateExe := "Update.exe"
	if exe, err := os.Executable(); err == nil {
		defaultUpdateExe = filepath.Join(filepath.Dir(exe), "Update.exe")
	}
	defaultLogFile = filepath.Join(defaultDataDir, "migrator.log")

	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "JSON config file, values may reference environment variables as {{ .NAME }}")
	rootCmd.PersistentFlags().StringVarP(&logLevel, "log-level", "l", "info", "sets the log level")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", defaultLogFile, "sets the log path. If console is specified the log will be output to stdout")
	rootCmd.PersistentFlags().StringVar(&clickOnceApp, clickOnceAppFlag, "", "DisplayName of the ClickOnce uninstall entry")
	rootCmd.PersistentFlags().StringVar(&squirrelApp, squirrelAppFlag, "", "Squirrel package id of the application")
	rootCmd.PersistentFlags().StringVar(&publisher, publisherFlag, "", "publisher written to the Squirrel uninstall entry")
	rootCmd.PersistentFlags().StringVar(&updateExe, updateExeFlag, defaultUpdateExe, "Update.exe shipped next to the Squirrel packages")
	rootCmd.PersistentFlags().StringVar(&packagesDir, packagesDirFlag, "packages", "folder holding RELEASES and the nupkg files")
	rootCmd.PersistentFlags().StringVar(&rootDir, rootDirFlag, defaultRootDir, "Squirrel install root")
	rootCmd.PersistentFlags().StringVar(&resultDir, resultDirFlag, defaultDataDir, "folder the run result is written to")
	rootCmd.PersistentFlags().StringVar(&profileRoot, profileRootFlag, "", "resolve shell folders below this copied user profile instead of the current user")
	rootCmd.PersistentFlags().StringVar(&uninstallMode, uninstallModeFlag, string(uninstaller.ModeSteps), "how the ClickOnce app is removed [steps|command]")

	rootCmd.AddCommand(installCmd)
	rootCmd.AddCommand(uninstallLegacyCmd)
	rootCmd.AddCommand(infoCmd)
	rootCmd.AddCommand(installLegacyCmd)
	rootCmd.AddCommand(waitCmd)
	rootCmd.AddCommand(versionCmd)
}

// commandContext is cancelled when the command returns or the process is interrupted
func commandContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	parent := cmd.Context()
	if parent == nil {
		parent = context.Background()
	}
	ctx, cancel := context.WithCancel(util.WithSource(parent, util.SystemSource))
	SetupCloseHandler(ctx, cancel)
	return ctx, cancel
}

// SetupCloseHandler cancels the context on SIGINT or SIGTERM
func SetupCloseHandler(ctx context.Context, cancel context.CancelFunc) {
	termCh := make(chan os.Signal, 1)
	signal.Notify(termCh, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		done := ctx.Done()
		select {
		case <-done:
		case <-termCh:
		}

		log.Info("shutdown signal received")
		cancel()
	}()
}
