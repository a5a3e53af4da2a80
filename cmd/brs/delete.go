package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/acroford/brs-agent/internal/database"
	"github.com/acroford/brs-agent/internal/filesystem"
	"github.com/acroford/brs-agent/internal/usecase"
)

func newDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <file_name>",
		Short: "Delete a document and its exported snapshots",
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
			deleted, err := uc.Delete(context.Background(), fileName)
			if err != nil {
				return err
			}
			if !deleted {
				return fmt.Errorf("document not found: %s", fileName)
			}

			if err := filesystem.DeleteDocumentFiles(fileName); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "deleted %s\n", fileName)
			return nil
		},
	}
}
