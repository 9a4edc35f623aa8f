package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/docnav/internal/core/domain"
)

var (
	getJSON   bool
	getNoBody bool
)

var getCmd = &cobra.Command{
	Use:   "get [doc-id]",
	Short: "Show a document",
	Long: `Shows a document's metadata, outline and previous/next neighbours,
followed by its markdown body.`,
	Args: cobra.ExactArgs(1),
	RunE: runGet,
}

func init() {
	getCmd.Flags().BoolVar(&getJSON, "json", false, "output as JSON")
	getCmd.Flags().BoolVar(&getNoBody, "no-body", false, "omit the markdown body")
	rootCmd.AddCommand(getCmd)
}

// documentView is a document together with its navigation links.
type documentView struct {
	*domain.Document
	Previous string `json:"previous,omitempty"`
	Next     string `json:"next,omitempty"`
}

func runGet(cmd *cobra.Command, args []string) error {
	s, err := corpusServices()
	if err != nil {
		return err
	}

	id := args[0]
	doc, err := s.Corpus.Get(cmd.Context(), id)
	if err != nil {
		return fmt.Errorf("failed to get document %q: %w", id, err)
	}

	links, err := s.Corpus.Links(cmd.Context(), doc.ID)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return fmt.Errorf("failed to get links: %w", err)
	}

	view := documentView{Document: doc, Previous: links.Previous, Next: links.Next}
	if getJSON {
		if getNoBody {
			copied := *doc
			copied.Body = ""
			view.Document = &copied
		}
		return writeJSON(cmd, view)
	}

	printDocument(newPrinter(cmd), &view, !getNoBody)
	return nil
}

func printDocument(p *printer, view *documentView, withBody bool) {
	doc := view.Document

	p.println(p.title(doc.Title))
	p.printf("  ID:           %s\n", doc.ID)
	p.printf("  Path:         %s\n", doc.Path)
	p.printf("  Category:     %s\n", doc.Category)
	if doc.Description != "" {
		p.printf("  Description:  %s\n", doc.Description)
	}
	if len(doc.Tags) > 0 {
		p.printf("  Tags:         %s\n", strings.Join(doc.Tags, ", "))
	}
	if doc.Difficulty != "" {
		p.printf("  Difficulty:   %s\n", doc.Difficulty)
	}
	p.printf("  Reading time: %d min (%d words)\n", doc.ReadingTimeMinutes, doc.WordCount)
	if !doc.LastModified.IsZero() {
		p.printf("  Modified:     %s\n", doc.LastModified.Format("2006-01-02 15:04:05"))
	}

	if len(doc.Outline) > 0 {
		p.println()
		p.println(p.subtitle("Outline"))
		for _, item := range doc.Outline {
			indent := "  "
			if item.Level == 3 {
				indent = "    "
			}
			p.printf("%s%s %s\n", indent, item.Title, p.muted("#"+item.Slug))
		}
	}

	if view.Previous != "" || view.Next != "" {
		p.println()
		if view.Previous != "" {
			p.printf("  Previous: %s\n", view.Previous)
		}
		if view.Next != "" {
			p.printf("  Next:     %s\n", view.Next)
		}
	}

	if withBody {
		p.println()
		p.println(p.muted(strings.Repeat("-", 40)))
		p.println(doc.Body)
	}
}
