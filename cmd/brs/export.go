package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/acroford/brs-agent/internal/database"
	"github.com/acroford/brs-agent/internal/filesystem"
	"github.com/acroford/brs-agent/internal/usecase"
)

func newExportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "export <file_name>",
		Short: "Write every version of a document to the objects directory",
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
			record, err := uc.Get(context.Background(), fileName)
			if err != nil {
				return err
			}
			if !record.Versioned() {
				return fmt.Errorf("document %s has no versions to export", fileName)
			}

			for v := int64(1); v <= record.Data.LatestVersion; v++ {
				text, ok := record.Data.Version(v)
				if !ok {
					return fmt.Errorf("document %s is missing version %d", fileName, v)
				}
				path, hash, err := filesystem.SaveVersion(fileName, v, text)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "v%d\t%s\t%s\n", v, path, hash[:12])
			}

			return nil
		},
	}
}
