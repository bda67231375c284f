package main

import (
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/dugout-ai/dugout/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration as YAML",
	Long: `Print the configuration the server would run with: defaults merged
with the config file, after environment variable interpolation.`,
	RunE: runConfig,
}

func init() {
	rootCmd.AddCommand(configCmd)
}

func runConfig(cmd *cobra.Command, args []string) error {
	cfg, err := config.NewLoader(config.NewValidator()).LoadWithDefaults(configFile)
	if err != nil {
		return err
	}

	out, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	cmd.Print(string(out))
	return nil
}
