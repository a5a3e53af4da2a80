package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/acroford/brs-agent/internal/database"
	"github.com/acroford/brs-agent/internal/usecase"
)

func newListCmd() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List documents",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			dbCtx, err := database.CreateDatabase("")
			if err != nil {
				return err
			}
			defer func() {
				_ = database.CloseDatabase(dbCtx)
			}()

			uc := usecase.NewDocument(dbCtx, nil)
			records, err := uc.List(context.Background())
			if err != nil {
				return err
			}

			switch format {
			case "json":
				return outputJSON(cmd, records)
			case "table":
				outputTable(cmd, records)
				return nil
			default:
				return fmt.Errorf("invalid format: %s (valid values: table, json)", format)
			}
		},
	}

	cmd.Flags().StringVar(&format, "format", "table", "Output format: table or json")

	return cmd
}

type listOutputEntry struct {
	FileName      string `json:"file_name"`
	LatestVersion int64  `json:"latestVersion"`
	Updated       string `json:"updated"`
}

func outputJSON(cmd *cobra.Command, records []database.DocumentRecord) error {
	var output []listOutputEntry

	for _, record := range records {
		item := listOutputEntry{
			FileName: record.FileName,
			Updated:  record.UpdatedAt.Format(time.RFC3339),
		}
		if record.Versioned() {
			item.LatestVersion = record.Data.LatestVersion
		}
		output = append(output, item)
	}

	encoder := json.NewEncoder(cmd.OutOrStdout())
	encoder.SetIndent("", "  ")
	return encoder.Encode(output)
}

func getTerminalWidth() int {
	if width, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && width > 0 {
		return width
	}
	return 80
}

func outputTable(cmd *cobra.Command, records []database.DocumentRecord) {
	t := table.NewWriter()
	t.SetOutputMirror(cmd.OutOrStdout())
	t.SetStyle(table.StyleLight)

	// Leave room for the version and date columns plus borders.
	nameWidth := getTerminalWidth() - 40
	if nameWidth < 15 {
		nameWidth = 15
	}

	t.AppendHeader(table.Row{"File", "Latest", "Updated"})

	for _, record := range records {
		latest := "-"
		if record.Versioned() {
			latest = fmt.Sprintf("v%d", record.Data.LatestVersion)
		}
		t.AppendRow(table.Row{
			runewidth.Truncate(record.FileName, nameWidth, "..."),
			latest,
			record.UpdatedAt.Format("2006-01-02 15:04:05"),
		})
	}

	t.Render()
}
