package cmd

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mind-engage/pizzaquiz/internal/store"
)

var statusCmd = &cobra.Command{
	Use:   "status <user-id>",
	Short: "Print a user's mastery summary",
	Args:  cobra.ExactArgs(1),
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

		st, err := a.trainer.Lookup(ctx, args[0])
		if errors.Is(err, store.ErrNotFound) {
			return fmt.Errorf("no record for user %q", args[0])
		}
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Mastered:  %s\n", strings.Join(st.Mastered, ", "))
		fmt.Fprintf(out, "Learning:  %s\n", strings.Join(st.Learning, ", "))
		fmt.Fprintf(out, "Need help: %s\n", strings.Join(st.NeedHelp, ", "))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
