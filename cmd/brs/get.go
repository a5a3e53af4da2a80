package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/acroford/brs-agent/internal/database"
	"github.com/acroford/brs-agent/internal/document"
	"github.com/acroford/brs-agent/internal/usecase"
)

func newGetCmd() *cobra.Command {
	var versionFlag int64

	cmd := &cobra.Command{
		Use:   "get <file_name>",
		Short: "Print a document version (latest by default)",
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

			var nav *document.Navigator
			if record.Versioned() {
				nav = document.NewNavigator(*record.Data)
			} else {
				nav = document.NewLegacyNavigator(record.Content)
			}

			if cmd.Flags().Changed("ver") {
				if !nav.SelectVersion(versionFlag) {
					return fmt.Errorf("version %d of %s not found (latest is %d)", versionFlag, fileName, nav.Latest())
				}
			}

			fmt.Fprint(cmd.OutOrStdout(), nav.Content)
			return nil
		},
	}

	cmd.Flags().Int64VarP(&versionFlag, "ver", "v", 0, "Specific version to retrieve")

	return cmd
}
