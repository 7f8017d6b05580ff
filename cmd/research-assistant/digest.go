// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/research-assistant/internal/pipeline"
)

var digestCmd = &cobra.Command{
	Use:   "digest [query]",
	Short: "Run the full pipeline: search, summarize, survey, and report",
	Long: `Digest searches arXiv for a topic and, for each paper, asks the model for a
summary, advantages and disadvantages, a quality review, and recommendations.
Replies are cleaned and classified, then combined into an IEEE-style report
PDF, a survey table PDF, and a survey CSV under the output directory. The run
is recorded in the database.

With --diagrams each paper PDF is downloaded and its images are attached to
the report.`,
	RunE: runDigest,
}

func init() {
	digestCmd.Flags().String("query", "", "free-text research topic")
	digestCmd.Flags().Int("max-results", 0, "maximum number of papers (default 5)")
	digestCmd.Flags().String("output-dir", "", "directory for report and survey files (default output)")
	digestCmd.Flags().Bool("diagrams", false, "download PDFs and attach extracted diagrams")
	digestCmd.Flags().Bool("warn-orphans", false, "log diagrams and tables no section claimed")
	digestCmd.Flags().String("tables", "", "YAML file of tables keyed by section heading")

	viper.BindPFlag("report.output_dir", digestCmd.Flags().Lookup("output-dir"))
	viper.BindPFlag("report.diagrams", digestCmd.Flags().Lookup("diagrams"))
	viper.BindPFlag("report.warn_orphans", digestCmd.Flags().Lookup("warn-orphans"))

	rootCmd.AddCommand(digestCmd)
}

func runDigest(cmd *cobra.Command, args []string) error {
	query, err := queryArg(cmd, args)
	if err != nil {
		return err
	}
	maxResults, _ := cmd.Flags().GetInt("max-results")
	if maxResults <= 0 {
		maxResults = cfg.Search.MaxResults
	}
	tablesPath, _ := cmd.Flags().GetString("tables")
	tables, err := readTables(tablesPath)
	if err != nil {
		return err
	}

	deps, st, err := pipelineDeps()
	if err != nil {
		return err
	}
	defer st.Close()

	res, err := pipeline.Run(cmd.Context(), deps, pipeline.Request{
		Query:       query,
		MaxResults:  maxResults,
		OutputDir:   cfg.Report.OutputDir,
		Diagrams:    cfg.Report.Diagrams,
		WarnOrphans: cfg.Report.WarnOrphans,
		Tables:      tables,
	}, os.Stdout)
	if errors.Is(err, pipeline.ErrNoPapers) {
		return nil
	}
	if err != nil {
		return err
	}

	if res.FallbackText != "" {
		fmt.Println("\nThe report could not be rendered as PDF. Report text follows.")
		fmt.Println(res.FallbackText)
	}
	if res.Failed > 0 {
		return fmt.Errorf("%d paper(s) failed analysis", res.Failed)
	}
	return nil
}
