package main

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/lowaak/hiit-timer/internal/config"
)

// newRootCmd builds the command tree around a fresh viper instance, so every
// invocation sees only its own flags, environment and config file
func newRootCmd() *cobra.Command {
	v := config.NewViper()

	rootCmd := &cobra.Command{
		Use:   "hiit-timer",
		Short: "Terminal interval timer for high intensity interval training",
		Long: "hiit-timer builds a workout from warmup, high/low intervals grouped into blocks\n" +
			"and a cooldown, then counts it down with tones and spoken cues.\n\n" +
			"Settings come from flags, HIIT_* environment variables and hiit-timer.yaml.",
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTimer(v)
		},
	}

	if err := config.BindFlags(v, rootCmd.PersistentFlags()); err != nil {
		// Flag names are constants, a failure here is a programming error
		panic(err)
	}

	rootCmd.AddCommand(newRunCmd(v))
	rootCmd.AddCommand(newPlanCmd(v))
	return rootCmd
}

func newRunCmd(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Open the timer (default command)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTimer(v)
		},
	}
}

// Execute runs the root command. Exits with code 1 on error.
func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
