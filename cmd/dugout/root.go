package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

var configFile string

var rootCmd = &cobra.Command{
	Use:   "dugout",
	Short: "Dugout - MLB data agent",
	Long: `Dugout answers natural-language questions about MLB baseball by
orchestrating calls to the MLB Stats API through a model-driven
workflow, streaming progress to clients as it works.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command with SIGINT/SIGTERM wired to context
// cancellation.
func Execute(ctx context.Context) error {
	ctx, cancel := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	return rootCmd.ExecuteContext(ctx)
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "path to config file")
}
