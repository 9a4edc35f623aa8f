package cli

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage application settings",
	Long: `View and configure the corpus root, search limits and background refresh.

Settings are stored in ~/.docnav/config.toml unless --config is given.`,
	RunE: runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE:  runSettingsShow,
}

var settingsRootCmd = &cobra.Command{
	Use:   "set-root [path]",
	Short: "Set the corpus root directory",
	Args:  cobra.ExactArgs(1),
	RunE:  runSettingsSetRoot,
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsRootCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	s, err := loadServices()
	if err != nil {
		return err
	}
	if s.Settings == nil {
		return errors.New("settings service not configured")
	}

	settings, err := s.Settings.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	p := newPrinter(cmd)
	p.println(p.title("Current Settings"))
	p.println()

	root := settings.Corpus.Root
	if root == "" {
		root = "(not set)"
	}

	p.println(p.subtitle("[Corpus]"))
	p.printf("  Root:             %s\n", root)
	p.printf("  Extensions:       %s\n", strings.Join(settings.Corpus.Extensions, " "))
	p.printf("  Exclude:          %s\n", listOrNone(settings.Corpus.Exclude))
	p.printf("  Skip dirs:        %s\n", listOrNone(settings.Corpus.SkipDirs))
	p.printf("  Default category: %s\n", settings.Corpus.DefaultCategory)
	p.printf("  Category order:   %s\n", listOrNone(settings.Corpus.CategoryOrder))
	p.println()

	p.println(p.subtitle("[Search]"))
	p.printf("  Default limit: %d\n", settings.Search.DefaultLimit)
	p.printf("  Max limit:     %d\n", settings.Search.MaxLimit)
	p.println()

	p.println(p.subtitle("[Refresh]"))
	interval := "off"
	if settings.Refresh.Interval > 0 {
		interval = settings.Refresh.Interval.String()
	}
	p.printf("  Interval:     %s\n", interval)
	p.printf("  Watch:        %t\n", settings.Refresh.Watch)
	p.printf("  Min interval: %s\n", settings.Refresh.MinInterval)
	p.println()

	if err := s.Settings.Validate(); err != nil {
		p.printf("%s %v\n", p.warning("Warning:"), err)
		p.println("Run 'docnav settings set-root <path>' or pass --root.")
	} else {
		p.println(p.success("Configuration is valid."))
	}

	return nil
}

func runSettingsSetRoot(cmd *cobra.Command, args []string) error {
	s, err := loadServices()
	if err != nil {
		return err
	}
	if s.Settings == nil {
		return errors.New("settings service not configured")
	}

	root, err := filepath.Abs(args[0])
	if err != nil {
		return fmt.Errorf("resolving %s: %w", args[0], err)
	}
	if err := s.Settings.SetCorpusRoot(root); err != nil {
		return fmt.Errorf("failed to set corpus root: %w", err)
	}

	newPrinter(cmd).printf("Corpus root set to %s\n", root)
	return nil
}

func listOrNone(values []string) string {
	if len(values) == 0 {
		return "(none)"
	}
	return strings.Join(values, ", ")
}
