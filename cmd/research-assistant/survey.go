// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/research-assistant/internal/render"
	"github.com/pdiddy/research-assistant/internal/store"
	"github.com/pdiddy/research-assistant/internal/survey"
	"github.com/pdiddy/research-assistant/pkg/types"
)

var surveyCmd = &cobra.Command{
	Use:   "survey",
	Short: "Export the literature survey table of a stored run",
	Long: `Survey exports the survey rows of a stored run as CSV, YAML, or PDF.
Without --run the most recent run is used. CSV and YAML go to stdout unless
--output is set; PDF requires --output.`,
	RunE: runSurvey,
}

func init() {
	surveyCmd.Flags().Int64("run", 0, "run id (default latest)")
	surveyCmd.Flags().String("format", "csv", "export format: csv, yaml, or pdf")
	surveyCmd.Flags().String("output", "", "output file (default stdout for csv and yaml)")

	rootCmd.AddCommand(surveyCmd)
}

func runSurvey(cmd *cobra.Command, args []string) error {
	runID, _ := cmd.Flags().GetInt64("run")
	format, _ := cmd.Flags().GetString("format")
	output, _ := cmd.Flags().GetString("output")

	st, err := store.Open(cfg.Store)
	if err != nil {
		return err
	}
	defer st.Close()

	run, err := loadRun(cmd.Context(), st, runID)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	switch format {
	case "csv":
		err = survey.WriteCSV(&buf, run.Rows)
	case "yaml":
		err = survey.WriteYAML(&buf, run.Rows)
	case "pdf":
		if output == "" {
			return fmt.Errorf("--output is required for pdf")
		}
		var data []byte
		data, err = render.NewPDFRenderer(logger).RenderSurvey(run.Rows)
		buf.Write(data)
	default:
		return fmt.Errorf("unknown format %q: use csv, yaml, or pdf", format)
	}
	if err != nil {
		return err
	}
	return writeOutput(output, buf.Bytes(), os.Stdout)
}

func loadRun(ctx context.Context, st *store.Store, id int64) (*types.Run, error) {
	var (
		run *types.Run
		err error
	)
	if id == 0 {
		run, err = st.LatestRun(ctx)
	} else {
		run, err = st.Run(ctx, id)
	}
	if errors.Is(err, store.ErrNotFound) {
		if id == 0 {
			return nil, fmt.Errorf("no runs recorded yet: run digest first")
		}
		return nil, fmt.Errorf("run %d not found", id)
	}
	return run, err
}

// writeOutput writes data to path, or to w when path is empty.
func writeOutput(path string, data []byte, w io.Writer) error {
	if path == "" {
		_, err := w.Write(data)
		return err
	}
	if err := render.WriteFile(path, data); err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "Wrote %s\n", path)
	return nil
}
