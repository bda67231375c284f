package main

import (
	"github.com/spf13/cobra"
)

// Version is set at build time via -ldflags.
var Version = "dev"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the dugout version",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Printf("dugout %s\n", Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
