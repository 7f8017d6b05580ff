// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/research-assistant/internal/store"
)

var feedbackCmd = &cobra.Command{
	Use:   "feedback",
	Short: "Record and export user feedback",
}

var feedbackAddCmd = &cobra.Command{
	Use:   "add [text]",
	Short: "Record a feedback note",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runFeedbackAdd,
}

var feedbackExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export all feedback as CSV",
	RunE:  runFeedbackExport,
}

func init() {
	feedbackAddCmd.Flags().String("page", "CLI", "page or surface the feedback refers to")
	feedbackExportCmd.Flags().String("output", "", "output CSV file (default stdout)")

	feedbackCmd.AddCommand(feedbackAddCmd)
	feedbackCmd.AddCommand(feedbackExportCmd)

	rootCmd.AddCommand(feedbackCmd)
}

func runFeedbackAdd(cmd *cobra.Command, args []string) error {
	page, _ := cmd.Flags().GetString("page")
	st, err := store.Open(cfg.Store)
	if err != nil {
		return err
	}
	defer st.Close()

	id, err := st.AddFeedback(cmd.Context(), page, strings.Join(args, " "))
	if err != nil {
		return err
	}
	fmt.Printf("Thank you for your feedback! (#%d)\n", id)
	return nil
}

func runFeedbackExport(cmd *cobra.Command, args []string) error {
	output, _ := cmd.Flags().GetString("output")
	st, err := store.Open(cfg.Store)
	if err != nil {
		return err
	}
	defer st.Close()

	var buf bytes.Buffer
	if err := st.ExportFeedbackCSV(cmd.Context(), &buf); err != nil {
		return err
	}
	return writeOutput(output, buf.Bytes(), os.Stdout)
}
