package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/acroford/brs-agent/internal/database"
	"github.com/acroford/brs-agent/internal/usecase"
)

func newInitCmd() *cobra.Command {
	var filePath string

	cmd := &cobra.Command{
		Use:   "init <file_name>",
		Short: "Publish version 1 of an existing document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fileName := args[0]

			content, err := readContent(cmd, filePath)
			if err != nil {
				return err
			}

			dbCtx, err := database.CreateDatabase("")
			if err != nil {
				return err
			}
			defer func() {
				_ = database.CloseDatabase(dbCtx)
			}()

			uc := usecase.NewDocument(dbCtx, nil)
			if err := uc.Initialize(context.Background(), fileName, content); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s initialized at v1\n", fileName)
			return nil
		},
	}

	cmd.Flags().StringVarP(&filePath, "file", "f", "", "Read content from file instead of stdin")

	return cmd
}

func readContent(cmd *cobra.Command, filePath string) (string, error) {
	if filePath != "" {
		bytes, err := os.ReadFile(filePath)
		if err != nil {
			return "", err
		}
		return string(bytes), nil
	}

	stat, err := os.Stdin.Stat()
	if err == nil && (stat.Mode()&os.ModeCharDevice) != 0 {
		fmt.Fprintln(cmd.ErrOrStderr(), "Enter content (Ctrl-D when done):")
	}

	bytes, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}
