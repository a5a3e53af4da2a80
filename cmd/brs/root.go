package main

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "brs",
	Short: "brs-agent - versioned BRS documents for an AI editing agent",
	Long:  "brs-agent stores Business Requirements Specification documents as immutable version histories and serves the editing API used by the chat UI.",
}

func init() {
	rootCmd.AddCommand(newServeCmd())
	rootCmd.AddCommand(newMcpCmd())
	rootCmd.AddCommand(newCreateCmd())
	rootCmd.AddCommand(newInitCmd())
	rootCmd.AddCommand(newGetCmd())
	rootCmd.AddCommand(newListCmd())
	rootCmd.AddCommand(newExportCmd())
	rootCmd.AddCommand(newDeleteCmd())
}
