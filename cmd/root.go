package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mind-engage/pizzaquiz/internal/config"
)

var envFile string

var rootCmd = &cobra.Command{
	Use:           "pizzaquiz",
	Short:         "Pizza topping trainer: review, quiz, track mastery",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "optional dotenv file loaded before reading the environment")
}

// Execute runs the root command and exits non-zero on error.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func loadConfig() (config.Config, error) {
	cfg, err := config.Load(envFile)
	if err != nil {
		return config.Config{}, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}
