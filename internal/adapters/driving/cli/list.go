package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/docnav/internal/core/domain"
)

var (
	listCategory string
	listJSON     bool
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List documents in navigation order",
	Long: `Lists every document grouped by category, in the same order as the
navigation. Use --category to list a single category.`,
	Args: cobra.NoArgs,
	RunE: runList,
}

func init() {
	listCmd.Flags().StringVarP(&listCategory, "category", "c", "", "only list this category")
	listCmd.Flags().BoolVar(&listJSON, "json", false, "output as JSON")
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, _ []string) error {
	s, err := corpusServices()
	if err != nil {
		return err
	}

	var docs []domain.Summary
	if listCategory != "" {
		docs, err = s.Corpus.ListByCategory(cmd.Context(), listCategory)
	} else {
		docs, err = s.Corpus.ListAll(cmd.Context())
	}
	if err != nil {
		return fmt.Errorf("failed to list documents: %w", err)
	}

	if listJSON {
		if docs == nil {
			docs = []domain.Summary{}
		}
		return writeJSON(cmd, docs)
	}

	p := newPrinter(cmd)
	if len(docs) == 0 {
		p.println("No documents found.")
		return nil
	}

	category := ""
	for i := range docs {
		if i == 0 || docs[i].Category != category {
			category = docs[i].Category
			if i > 0 {
				p.println()
			}
			p.println(p.subtitle(category))
		}
		p.printf("  %s %s\n", docs[i].Title, p.muted(fmt.Sprintf("(%s, %d min)", docs[i].ID, docs[i].ReadingTimeMinutes)))
	}

	p.println()
	p.printf("Total: %d documents\n", len(docs))
	return nil
}
