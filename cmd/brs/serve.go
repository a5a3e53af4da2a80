package main

import (
	"log"

	"github.com/spf13/cobra"

	"github.com/acroford/brs-agent/internal/config"
	"github.com/acroford/brs-agent/internal/database"
	"github.com/acroford/brs-agent/internal/generator"
	"github.com/acroford/brs-agent/internal/server"
)

func newServeCmd() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the document versioning HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			dbCtx, err := database.CreateDatabase("")
			if err != nil {
				return err
			}
			defer func() {
				_ = database.CloseDatabase(dbCtx)
			}()

			var gen generator.Generator
			if key := config.OpenAIAPIKey(); key != "" {
				gen = generator.NewOpenAIGenerator(key, config.OpenAIModel())
			} else {
				log.Println("OPENAI_API_KEY is not set; implementOverview will be unavailable")
			}

			if addr == "" {
				addr = config.ListenAddr()
			}

			return server.New(dbCtx, gen, log.Default()).Run(addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Address to listen on (default from BRS_LISTEN_ADDR or :8090)")

	return cmd
}
