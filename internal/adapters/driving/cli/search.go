package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/docnav/internal/core/domain"
)

var (
	searchLimit    int
	searchCategory string
	searchJSON     bool
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search documents",
	Long: `Performs fuzzy search over document titles, tags, categories and
descriptions. Every query word must match; small typos are tolerated.`,
	Args: cobra.ExactArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().IntVarP(&searchLimit, "limit", "n", 0, "maximum number of results (0 = configured default)")
	searchCmd.Flags().StringVarP(&searchCategory, "category", "c", "", "only return results from this category")
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "output results as JSON")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	s, err := corpusServices()
	if err != nil {
		return err
	}

	query := args[0]
	opts := domain.SearchOptions{
		Limit:    searchLimit,
		Category: searchCategory,
	}

	results, err := s.Search.Search(cmd.Context(), query, opts)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if searchJSON {
		if results == nil {
			results = []domain.SearchResult{}
		}
		return writeJSON(cmd, results)
	}

	return outputSearchTable(newPrinter(cmd), results)
}

func outputSearchTable(p *printer, results []domain.SearchResult) error {
	if len(results) == 0 {
		p.println("No results found.")
		return nil
	}

	p.println(p.title("Results:"))
	p.println()
	for i := range results {
		// Format: [N] Title (Score)
		p.printf("  [%d] %s %s\n", i+1, results[i].Title, p.muted(fmt.Sprintf("(%.2f)", results[i].Score)))
		p.printf("      %s  %s\n", results[i].ID, p.muted(results[i].Category))
		if results[i].Description != "" {
			p.printf("      %s\n", results[i].Description)
		}
		p.println()
	}

	return nil
}
