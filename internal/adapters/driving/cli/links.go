package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var linksJSON bool

var linksCmd = &cobra.Command{
	Use:   "links",
	Short: "Check internal markdown links",
	Long: `Checks every internal markdown link in the corpus and lists links whose
target file does not exist. External, mailto and anchor-only links are
skipped. Exits with an error when broken links are found.`,
	Args: cobra.NoArgs,
	RunE: runLinks,
}

func init() {
	linksCmd.Flags().BoolVar(&linksJSON, "json", false, "output the report as JSON")
	rootCmd.AddCommand(linksCmd)
}

func runLinks(cmd *cobra.Command, _ []string) error {
	s, err := corpusServices()
	if err != nil {
		return err
	}
	if s.Links == nil {
		return fmt.Errorf("link checker not configured")
	}

	report, err := s.Links.Check(cmd.Context())
	if err != nil {
		return fmt.Errorf("link check failed: %w", err)
	}

	if linksJSON {
		if err := writeJSON(cmd, report); err != nil {
			return err
		}
	} else {
		p := newPrinter(cmd)
		p.printf("Files scanned: %d\n", report.FilesScanned)
		p.printf("Links checked: %d\n", report.TotalLinks)
		p.printf("Valid:         %d (%.1f%%)\n", report.Valid(), report.SuccessRate())

		if len(report.Broken) == 0 {
			p.println(p.success("No broken links."))
			return nil
		}

		p.println()
		p.println(p.failure(fmt.Sprintf("Broken links (%d):", len(report.Broken))))
		for _, b := range report.Broken {
			p.printf("  %s:%d  [%s](%s)\n", b.Path, b.Line, b.Text, b.Target)
		}
	}

	if len(report.Broken) > 0 {
		return fmt.Errorf("%d broken links", len(report.Broken))
	}
	return nil
}
