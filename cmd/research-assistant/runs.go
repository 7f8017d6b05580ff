// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/research-assistant/internal/store"
)

var runsCmd = &cobra.Command{
	Use:   "runs [text]",
	Short: "List stored runs, or search stored survey rows",
	Long: `Runs lists recorded digests, newest first. With arguments it instead
searches every stored survey row whose title or summary contains
the text.`,
	RunE: runRuns,
}

func init() {
	runsCmd.Flags().Int("limit", 20, "maximum number of runs to list")

	rootCmd.AddCommand(runsCmd)
}

func runRuns(cmd *cobra.Command, args []string) error {
	st, err := store.Open(cfg.Store)
	if err != nil {
		return err
	}
	defer st.Close()

	if text := strings.TrimSpace(strings.Join(args, " ")); text != "" {
		rows, err := st.SearchRows(cmd.Context(), text)
		if err != nil {
			return err
		}
		if len(rows) == 0 {
			fmt.Println("No results found.")
			return nil
		}
		for _, r := range rows {
			fmt.Fprintf(os.Stdout, "%-14s  %s\n  %s\n", truncate(r.Section, 14), r.Title, r.Link)
		}
		return nil
	}

	limit, _ := cmd.Flags().GetInt("limit")
	runs, err := st.Runs(cmd.Context(), limit)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("No runs recorded.")
		return nil
	}
	fmt.Fprintf(os.Stdout, "%-4s  %-16s  %-40s  %s\n", "ID", "Created", "Query", "Report")
	fmt.Fprintln(os.Stdout, strings.Repeat("-", 90))
	for _, r := range runs {
		fmt.Fprintf(os.Stdout, "%-4d  %-16s  %-40s  %s\n",
			r.ID, r.CreatedAt.Local().Format("2006-01-02 15:04"), truncate(r.Query, 40), r.ReportPath)
	}
	return nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-3] + "..."
}
