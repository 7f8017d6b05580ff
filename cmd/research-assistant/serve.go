// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/research-assistant/internal/pipeline"
	"github.com/pdiddy/research-assistant/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the web form",
	Long: `Serve starts the web form. Submitting a topic runs the full digest and
shows the per-paper results with download links for the report, the survey
PDF, and the survey CSV. Feedback left on the form is stored in the database.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().String("addr", "", "listen address (default :8080)")

	viper.BindPFlag("server.addr", serveCmd.Flags().Lookup("addr"))

	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	deps, st, err := pipelineDeps()
	if err != nil {
		return err
	}
	defer st.Close()

	digest := server.DigestFunc(func(ctx context.Context, query string, w io.Writer) (*pipeline.Result, error) {
		return pipeline.Run(ctx, deps, pipeline.Request{
			Query:       query,
			MaxResults:  cfg.Search.MaxResults,
			OutputDir:   cfg.Report.OutputDir,
			Diagrams:    cfg.Report.Diagrams,
			WarnOrphans: cfg.Report.WarnOrphans,
		}, w)
	})

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := server.New(digest, st, logger)
	return server.ListenAndServe(ctx, cfg.Server.Addr, srv.Handler(), logger)
}
