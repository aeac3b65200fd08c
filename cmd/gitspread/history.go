package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/gitspread/gitspread/internal/store"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List previously planned runs",
	Args:  cobra.NoArgs,
	RunE:  runHistory,
}

func runHistory(cmd *cobra.Command, args []string) error {
	archive, err := store.Open(cfg.ArchivePath)
	if err != nil {
		return err
	}
	defer archive.Close()

	runs, err := archive.List()
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		return nil
	}

	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.AppendHeader(table.Row{"When", "Run", "Repos", "Commits", "Std dev", "Warnings"})
	for _, rec := range runs {
		t.AppendRow(table.Row{
			rec.StartedAt.Format("2006-01-02 15:04"),
			shortID(rec.ID),
			strings.Join(rec.Repos, ", "),
			rec.TotalCommits,
			fmt.Sprintf("%.2f → %.2f", rec.StdDevBefore, rec.StdDevAfter),
			rec.Warnings,
		})
	}
	t.Render()
	return nil
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
