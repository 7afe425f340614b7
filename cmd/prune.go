package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mind-engage/pizzaquiz/internal/retention"
)

var pruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Delete user records idle longer than RETENTION_IDLE_TTL",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		ctx := context.Background()
		a, err := newApp(ctx, cfg)
		if err != nil {
			return err
		}
		defer a.Close()

		if cfg.RetentionIdleTTL <= 0 {
			a.log.Warn("RETENTION_IDLE_TTL is 0; nothing is ever idle")
		}
		n, err := retention.New(a.trainer, cfg.PruneInterval, a.log).RunOnce(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "removed %d idle record(s)\n", n)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(pruneCmd)
}
