package main

import (
	"github.com/spf13/cobra"

	"github.com/acroford/brs-agent/internal/config"
	"github.com/acroford/brs-agent/internal/generator"
	"github.com/acroford/brs-agent/internal/mcp"
)

func newMcpCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "mcp",
		Short: "Run the MCP server on stdio",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var gen generator.Generator
			if key := config.OpenAIAPIKey(); key != "" {
				gen = generator.NewOpenAIGenerator(key, config.OpenAIModel())
			}

			srv, err := mcp.NewServer(gen)
			if err != nil {
				return err
			}
			return srv.Run(cmd.Context())
		},
	}
}
