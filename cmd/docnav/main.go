// Command docnav indexes a markdown corpus and serves it over a CLI and MCP.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/custodia-labs/docnav/internal/adapters/driven/config/file"
	"github.com/custodia-labs/docnav/internal/adapters/driven/search/fuzzy"
	"github.com/custodia-labs/docnav/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/docnav/internal/adapters/driving/cli"
	"github.com/custodia-labs/docnav/internal/connectors/filesystem"
	"github.com/custodia-labs/docnav/internal/core/services"
	"github.com/custodia-labs/docnav/internal/logger"
	"github.com/custodia-labs/docnav/internal/normalisers/markdown"
)

// version is set at build time via -ldflags "-X main.version=...".
var version = "dev"

func main() {
	cli.SetVersion(version)
	cli.SetBootstrap(bootstrap)

	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// bootstrap wires adapters into services. A missing or invalid corpus root
// leaves the corpus services unset so settings commands still work.
func bootstrap(opts cli.Options) (*cli.Services, error) {
	configStore, err := file.NewConfigStore(opts.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	logger.Debug("config: %s", configStore.Path())

	settingsService := services.NewSettingsService(configStore)
	settings, err := settingsService.Get()
	if err != nil {
		return nil, fmt.Errorf("loading settings: %w", err)
	}
	if opts.Root != "" {
		settings.Corpus.Root = opts.Root
	}
	if opts.Watch {
		settings.Refresh.Watch = true
	}

	wired := &cli.Services{Settings: settingsService}
	if err := services.ValidateSettings(settings); err != nil {
		wired.Unavailable = err
		return wired, nil
	}

	root, err := filepath.Abs(settings.Corpus.Root)
	if err != nil {
		return nil, fmt.Errorf("resolving corpus root: %w", err)
	}
	logger.Debug("corpus root: %s", root)

	source := filesystem.New(root, filesystem.OptionsFromSettings(settings.Corpus))
	indexer := services.NewIndexer(
		source,
		markdown.New(),
		memory.StoreBuilder{},
		fuzzy.NewBuilder(nil),
		settings.Corpus.CategoryOrder,
	)
	corpus := services.NewCorpusService(indexer)

	wired.Corpus = corpus
	wired.Search = services.NewSearchService(corpus, settings.Search)
	wired.Links = services.NewLinkService(source)
	if settings.Refresh.Interval > 0 || settings.Refresh.Watch {
		wired.Refresher = services.NewRefresher(corpus, source, settings.Refresh)
	}
	wired.Close = source.Close

	return wired, nil
}
