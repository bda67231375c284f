package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dugout-ai/dugout/internal/config"
	"github.com/dugout-ai/dugout/internal/mlb"
	"github.com/dugout-ai/dugout/internal/observability"
	"github.com/dugout-ai/dugout/internal/planner"
	"github.com/dugout-ai/dugout/internal/server"
	"github.com/dugout-ai/dugout/internal/tool"
	"github.com/dugout-ai/dugout/internal/workflow"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the agent HTTP server",
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	cfg, err := config.NewLoader(config.NewValidator()).LoadWithDefaults(configFile)
	if err != nil {
		return err
	}

	logger := observability.NewLogger(os.Stderr, cfg.Logging.Level, cfg.Logging.Format)

	client := mlb.NewClient(mlb.RetryPolicy{
		MaxAttempts:   cfg.MLB.Retry.MaxAttempts,
		BackoffFactor: cfg.MLB.Retry.BackoffFactor,
		RetryStatuses: cfg.MLB.Retry.RetryStatuses,
	}, mlb.WithLogger(logger), mlb.WithTimeout(cfg.MLB.Timeout))

	registry, err := tool.NewRegistry(client, tool.BaseURLs{
		V1:  cfg.MLB.APIBaseV1,
		V11: cfg.MLB.APIBaseV11,
	}, tool.Builtins())
	if err != nil {
		return err
	}

	graph, err := workflow.NewAgentGraph(registry.Names())
	if err != nil {
		return err
	}

	model, err := planner.NewGoogleModel(ctx, cfg.LLM.Model, cfg.LLM.APIKeyEnv)
	if err != nil {
		return err
	}
	plan := planner.NewLLMPlanner(model, registry.Descriptors())

	engine := workflow.NewEngine(graph, registry, plan,
		workflow.WithLogger(logger),
		workflow.WithMaxToolCycles(cfg.Agent.MaxToolCycles))

	handler := server.NewHandler(engine, cfg.Agent.PollInterval, logger)
	srv := server.New(cfg.Server, handler, logger)

	logger.Info("dugout starting",
		"addr", cfg.Server.Addr,
		"tools", len(registry.Names()),
		"model", cfg.LLM.Model)

	if err := srv.Run(ctx); err != nil {
		return fmt.Errorf("server: %w", err)
	}
	return nil
}
