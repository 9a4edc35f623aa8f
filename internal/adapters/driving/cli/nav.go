package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/docnav/internal/core/domain"
)

var navJSON bool

var navCmd = &cobra.Command{
	Use:   "nav",
	Short: "Show the navigation tree",
	Long: `Shows categories and their documents in navigation order:
explicit order first, then title.`,
	Args: cobra.NoArgs,
	RunE: runNav,
}

func init() {
	navCmd.Flags().BoolVar(&navJSON, "json", false, "output as JSON")
	rootCmd.AddCommand(navCmd)
}

func runNav(cmd *cobra.Command, _ []string) error {
	s, err := corpusServices()
	if err != nil {
		return err
	}

	groups, err := s.Corpus.Navigation(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to build navigation: %w", err)
	}

	if navJSON {
		if groups == nil {
			groups = []domain.NavigationGroup{}
		}
		return writeJSON(cmd, groups)
	}

	p := newPrinter(cmd)
	if len(groups) == 0 {
		p.println("No documents found.")
		return nil
	}

	for i, g := range groups {
		if i > 0 {
			p.println()
		}
		p.printf("%s %s\n", p.subtitle(g.Category), p.muted(fmt.Sprintf("(%d)", len(g.Items))))
		for n, item := range g.Items {
			p.printf("  %2d. %s %s\n", n+1, item.Title, p.muted(item.ID))
		}
	}
	return nil
}
