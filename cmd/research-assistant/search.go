// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/research-assistant/pkg/types"
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search arXiv for papers on a topic",
	Long: `Search queries the arXiv API for papers matching a topic. Every word of the
query must appear in the paper. Results are in relevance order.`,
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().String("query", "", "free-text research topic")
	searchCmd.Flags().Int("max-results", 0, "maximum number of results (default 5)")
	searchCmd.Flags().Bool("json", false, "output results as JSON")

	viper.BindPFlag("search.max_results", searchCmd.Flags().Lookup("max-results"))

	rootCmd.AddCommand(searchCmd)
}

// queryArg returns --query, or the positional args joined.
func queryArg(cmd *cobra.Command, args []string) (string, error) {
	q, _ := cmd.Flags().GetString("query")
	if q == "" {
		q = strings.Join(args, " ")
	}
	q = strings.TrimSpace(q)
	if q == "" {
		return "", fmt.Errorf("provide a research topic with --query or as arguments")
	}
	return q, nil
}

func runSearch(cmd *cobra.Command, args []string) error {
	query, err := queryArg(cmd, args)
	if err != nil {
		return err
	}
	papers := arxivClient().Search(cmd.Context(), query, cfg.Search.MaxResults)

	jsonOutput, _ := cmd.Flags().GetBool("json")
	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(papers)
	}
	printPapers(papers)
	return nil
}

func printPapers(papers []types.Paper) {
	if len(papers) == 0 {
		fmt.Println("No papers found. Try another topic.")
		return
	}
	for i, p := range papers {
		fmt.Printf("%d. %s\n", i+1, p.Title)
		if len(p.Authors) > 0 {
			fmt.Printf("   %s\n", strings.Join(p.Authors, ", "))
		}
		fmt.Printf("   %s\n", p.Link)
	}
}
