// Package cli provides the docnav command line interface.
package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/docnav/internal/core/domain"
	"github.com/custodia-labs/docnav/internal/core/ports/driving"
	"github.com/custodia-labs/docnav/internal/logger"
)

// version is set at build time.
var version = "dev"

// Services holds the driving ports the commands use.
type Services struct {
	Corpus    driving.CorpusService
	Search    driving.SearchService
	Links     driving.LinkService
	Refresher driving.Refresher
	Settings  driving.SettingsService

	// Unavailable explains why the corpus services are nil,
	// typically a missing corpus root.
	Unavailable error

	// Close releases resources held by the services. May be nil.
	Close func() error
}

// Options carries the global flags to the bootstrap function.
type Options struct {
	// Root overrides corpus.root when set.
	Root string

	// ConfigPath is a config file or directory; empty means ~/.docnav.
	ConfigPath string

	// Watch enables rebuilds on file changes.
	Watch bool
}

// BootstrapFunc wires the services for the given options.
type BootstrapFunc func(opts Options) (*Services, error)

var (
	bootstrap  BootstrapFunc
	services   *Services
	globalOpts Options
	verbose    bool
)

var rootCmd = &cobra.Command{
	Use:   "docnav",
	Short: "Browse, search and serve a markdown knowledge base",
	Long: `docnav indexes a directory of markdown documents and serves them
with metadata, outlines, previous/next navigation and fuzzy search.

The corpus root comes from corpus.root in ~/.docnav/config.toml or
from the --root flag.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&globalOpts.Root, "root", "", "corpus root directory (overrides corpus.root)")
	rootCmd.PersistentFlags().StringVar(&globalOpts.ConfigPath, "config", "", "config file or directory (default ~/.docnav)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "print debug output to stderr")
}

// SetBootstrap registers the function that wires services on first use.
func SetBootstrap(fn BootstrapFunc) {
	bootstrap = fn
}

// SetVersion sets the version reported by the version command.
func SetVersion(v string) {
	if v != "" {
		version = v
	}
}

// Execute runs the root command and releases services afterwards.
func Execute() error {
	defer closeServices()
	return rootCmd.Execute()
}

// loadServices bootstraps services once, using the parsed global flags.
func loadServices() (*Services, error) {
	if services != nil {
		return services, nil
	}
	if bootstrap == nil {
		return nil, errors.New("services not configured")
	}

	s, err := bootstrap(globalOpts)
	if err != nil {
		return nil, err
	}
	services = s
	return s, nil
}

// corpusServices returns services that can serve the corpus.
func corpusServices() (*Services, error) {
	s, err := loadServices()
	if err != nil {
		return nil, err
	}
	if s.Unavailable != nil {
		return nil, s.Unavailable
	}
	if s.Corpus == nil || s.Search == nil {
		return nil, fmt.Errorf("corpus: %w", domain.ErrServiceUnavailable)
	}
	return s, nil
}

func closeServices() {
	if services == nil || services.Close == nil {
		return
	}
	if err := services.Close(); err != nil {
		logger.Warn("closing services: %v", err)
	}
}
