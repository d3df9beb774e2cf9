// Command reposearch searches GitHub repositories from the terminal.
package main

import (
	"fmt"
	"os"

	"github.com/custodia-labs/reposearch/internal/adapters/driven/auth"
	"github.com/custodia-labs/reposearch/internal/adapters/driven/config/file"
	"github.com/custodia-labs/reposearch/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/reposearch/internal/adapters/driving/cli"
	"github.com/custodia-labs/reposearch/internal/connectors/github"
	"github.com/custodia-labs/reposearch/internal/core/ports/driven"
	"github.com/custodia-labs/reposearch/internal/core/ports/driving"
	"github.com/custodia-labs/reposearch/internal/core/services"
)

// version is set at build time via -ldflags "-X main.version=...".
var version = "dev"

// envConfigDir overrides the default ~/.reposearch config directory.
const envConfigDir = "REPOSEARCH_CONFIG_DIR"

func main() {
	wire()
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}

// wire builds the adapters and services and hands them to the CLI.
func wire() {
	var store driven.ConfigStore
	fileStore, err := file.NewConfigStore(os.Getenv(envConfigDir))
	if err != nil {
		// Searching works without a config file; settings just won't persist.
		fmt.Fprintf(os.Stderr, "warning: config unavailable, using defaults: %v\n", err)
		store = memory.NewConfigStore()
	} else {
		store = fileStore
	}

	settingsService := services.NewSettingsService(store)
	tokens := auth.NewPATProvider(store)
	client := github.NewClient(github.ConfigFromSettings(settingsService.Get()), tokens)
	searcher := github.NewSearcher(client)

	cli.SetVersion(version)
	cli.SetServices(cli.Services{
		Search:       services.NewRepositorySearchService(searcher),
		Settings:     settingsService,
		ResultAction: services.NewResultActionService(),
		NewReactor: func() driving.SearchReactor {
			return services.NewSearchReactor(searcher)
		},
		TokenSource: tokens.Source,
		WatchConfig: store.Watch,
	})
}
