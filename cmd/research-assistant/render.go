// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/research-assistant/internal/assemble"
	"github.com/pdiddy/research-assistant/internal/render"
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Assemble heading-tagged text into a report PDF",
	Long: `Render reads cleaned report text whose sections start with the fixed
headings (Title, Abstract, Keywords, Introduction, ...), splits it into
sections, attaches diagrams and tables to the sections they name, and writes
a PDF.

Diagrams and tables are read from YAML files. Each diagram and table is
inserted at most once; leftovers are reported with --warn-orphans.`,
	RunE: runRender,
}

func init() {
	renderCmd.Flags().String("input", "-", "text file to render (- for stdin)")
	renderCmd.Flags().String("output", "summarized_research_paper.pdf", "output PDF path")
	renderCmd.Flags().String("tables", "", "YAML file of tables keyed by section heading")
	renderCmd.Flags().String("diagrams", "", "YAML list of diagrams (image_path, caption, section)")
	renderCmd.Flags().Bool("warn-orphans", false, "log diagrams and tables no section claimed")
	renderCmd.Flags().Bool("dump", false, "print the assembled document as YAML instead of rendering")

	rootCmd.AddCommand(renderCmd)
}

func runRender(cmd *cobra.Command, args []string) error {
	input, _ := cmd.Flags().GetString("input")
	output, _ := cmd.Flags().GetString("output")
	tablesPath, _ := cmd.Flags().GetString("tables")
	diagramsPath, _ := cmd.Flags().GetString("diagrams")
	warn, _ := cmd.Flags().GetBool("warn-orphans")
	dump, _ := cmd.Flags().GetBool("dump")

	text, err := readInput([]string{input})
	if err != nil {
		return err
	}
	tables, err := readTables(tablesPath)
	if err != nil {
		return err
	}
	diagrams, err := readDiagrams(diagramsPath)
	if err != nil {
		return err
	}
	opts := []assemble.Option{
		assemble.WithLogger(logger),
		assemble.WithOrphanWarnings(warn || cfg.Report.WarnOrphans),
	}

	if dump {
		doc, err := assemble.Assemble(splitLines(text), diagrams, tables, opts...)
		if err != nil {
			return err
		}
		enc := yaml.NewEncoder(os.Stdout)
		enc.SetIndent(2)
		defer enc.Close()
		return enc.Encode(doc)
	}

	data, _, err := assemble.Build(text, render.NewPDFRenderer(logger), diagrams, tables, opts...)
	if err != nil {
		return err
	}
	if err := render.WriteFile(output, data); err != nil {
		return err
	}
	fmt.Printf("Wrote %s (%d bytes)\n", output, len(data))
	return nil
}
