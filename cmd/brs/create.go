package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/acroford/brs-agent/internal/database"
	"github.com/acroford/brs-agent/internal/usecase"
)

func newCreateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "create <file_name>",
		Short: "Create a new document record with no versions",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fileName := args[0]

			dbCtx, err := database.CreateDatabase("")
			if err != nil {
				return err
			}
			defer func() {
				_ = database.CloseDatabase(dbCtx)
			}()

			uc := usecase.NewDocument(dbCtx, nil)
			if _, err := uc.Create(context.Background(), fileName); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "created %s (no versions yet, run 'brs init %s' to publish v1)\n", fileName, fileName)
			return nil
		},
	}
}
