package main

import (
	"github.com/spf13/cobra"

	"github.com/dugout-ai/dugout/internal/tool"
	"github.com/dugout-ai/dugout/internal/workflow"
)

var graphCmd = &cobra.Command{
	Use:   "graph",
	Short: "Print the agent workflow graph as a Mermaid flowchart",
	RunE:  runGraph,
}

func init() {
	rootCmd.AddCommand(graphCmd)
}

func runGraph(cmd *cobra.Command, args []string) error {
	names := make([]string, 0, len(tool.Builtins()))
	for _, b := range tool.Builtins() {
		names = append(names, b.Name)
	}

	g, err := workflow.NewAgentGraph(names)
	if err != nil {
		return err
	}

	cmd.Print(g.Mermaid())
	return nil
}
