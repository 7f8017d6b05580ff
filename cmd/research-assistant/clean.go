// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdiddy/research-assistant/internal/classify"
	"github.com/pdiddy/research-assistant/internal/clean"
)

var cleanCmd = &cobra.Command{
	Use:   "clean [file|-]",
	Short: "Remove reasoning traces and formatting noise from model output",
	Long: `Clean reads raw model output from a file or stdin and prints the normalized
text: reasoning blocks and markers, bold markers, field labels, and
first-person planning lines are removed and blank-line runs collapsed.

With --trace every pass is printed with its output.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runClean,
}

var classifyCmd = &cobra.Command{
	Use:   "classify [file|-]",
	Short: "Group cleaned model outputs under report section headings",
	Long: `Classify reads raw model outputs separated by blank lines, cleans each one,
tags it with a report section by keyword, and prints the outputs grouped by
section in canonical order.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runClassify,
}

func init() {
	cleanCmd.Flags().Bool("trace", false, "print the output of every pass")

	rootCmd.AddCommand(cleanCmd)
	rootCmd.AddCommand(classifyCmd)
}

func runClean(cmd *cobra.Command, args []string) error {
	text, err := readInput(args)
	if err != nil {
		return err
	}
	trace, _ := cmd.Flags().GetBool("trace")
	if !trace {
		fmt.Println(clean.NormalizeText(text))
		return nil
	}
	for _, step := range clean.Trace(text) {
		fmt.Printf("--- %s ---\n%s\n", step.Pass, step.Text)
	}
	return nil
}

func runClassify(cmd *cobra.Command, args []string) error {
	text, err := readInput(args)
	if err != nil {
		return err
	}
	blocks := splitBlocks(text)
	raw := make([]any, len(blocks))
	for i, b := range blocks {
		raw[i] = b
	}
	classify.Group(raw).Format(cmd.OutOrStdout())
	return nil
}
