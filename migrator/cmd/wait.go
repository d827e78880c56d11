package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/wunderlist/clickonce-to-squirrel/migrator/internal/migration"
)

var (
	waitTimeout time.Duration

	waitCmd = &cobra.Command{
		Use:   "wait",
		Short: "Waits for a detached migration to finish and prints its result",
		RunE:  waitFunc,
	}
)

func init() {
	waitCmd.Flags().DurationVar(&waitTimeout, "timeout", 10*time.Minute, "how long to wait for the result")
}

func waitFunc(cmd *cobra.Command, args []string) error {
	cfg, err := readConfig(cmd)
	if err != nil {
		return err
	}

	ctx, cancel := commandContext(cmd)
	defer cancel()

	ctx, cancelTimeout := context.WithTimeout(ctx, waitTimeout)
	defer cancelTimeout()

	result, err := migration.NewResultHandler(cfg.ResultDir).Watch(ctx)
	if err != nil {
		return fmt.Errorf("wait for result: %w", err)
	}

	cmd.Printf("%s finished in state %s at %s\n", result.Direction, result.State, result.ExecutedAt.Format(time.RFC3339))
	if !result.Success {
		return fmt.Errorf("%s failed: %s", result.Direction, result.Error)
	}
	if result.Warnings != "" {
		cmd.Printf("warnings: %s\n", result.Warnings)
	}
	return nil
}
