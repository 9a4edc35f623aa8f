package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var indexJSON bool

var indexCmd = &cobra.Command{
	Use:   "index",
	Short: "Rebuild the corpus index and report",
	Long: `Scans the corpus root, extracts metadata and outlines, and builds the
navigation and search index. Files that could not be read are listed as
warnings; identifier collisions fail the build.`,
	Args: cobra.NoArgs,
	RunE: runIndex,
}

func init() {
	indexCmd.Flags().BoolVar(&indexJSON, "json", false, "output the build report as JSON")
	rootCmd.AddCommand(indexCmd)
}

func runIndex(cmd *cobra.Command, _ []string) error {
	s, err := corpusServices()
	if err != nil {
		return err
	}

	report, err := s.Corpus.Rebuild(cmd.Context())
	if err != nil {
		return fmt.Errorf("index failed: %w", err)
	}

	if indexJSON {
		return writeJSON(cmd, report)
	}

	p := newPrinter(cmd)
	p.printf("%s %d documents in %d categories %s\n",
		p.success("Indexed"), report.Documents, report.Categories,
		p.muted(fmt.Sprintf("(%s, generation %s)", report.Duration.Round(time.Millisecond), report.Generation)))

	if len(report.Warnings) > 0 {
		p.println()
		p.println(p.warning(fmt.Sprintf("%d skipped:", len(report.Warnings))))
		for _, w := range report.Warnings {
			p.printf("  %s\n", w)
		}
	}
	return nil
}
