package cli

import (
	"bytes"
	"testing"

	"github.com/custodia-labs/reposearch/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/reposearch/internal/core/domain"
	"github.com/custodia-labs/reposearch/internal/core/ports/driving"
	"github.com/custodia-labs/reposearch/internal/core/services"
)

// testEnv holds the in-memory backends behind the test services.
type testEnv struct {
	searcher *memory.Searcher
	store    *memory.ConfigStore
	source   string
}

func testRepositories() []domain.Repository {
	return []domain.Repository{
		{ID: 1, FullName: "spf13/cobra", URL: "https://github.com/spf13/cobra"},
		{ID: 2, FullName: "spf13/viper", URL: "https://github.com/spf13/viper"},
		{ID: 3, FullName: "spf13/pflag", URL: "https://github.com/spf13/pflag"},
	}
}

// setupTestServices wires the real services over in-memory stores and
// resets command flags, undoing both when the test ends.
func setupTestServices(t *testing.T) *testEnv {
	t.Helper()

	env := &testEnv{
		searcher: memory.NewSearcher(2, testRepositories()...),
		store:    memory.NewConfigStore(),
	}

	SetServices(Services{
		Search:       services.NewRepositorySearchService(env.searcher),
		Settings:     services.NewSettingsService(env.store),
		ResultAction: services.NewResultActionService(),
		NewReactor: func() driving.SearchReactor {
			return services.NewSearchReactor(env.searcher)
		},
		TokenSource: func() string { return env.source },
		WatchConfig: env.store.Watch,
	})

	searchPage, searchPages, searchJSON = 1, 1, false
	versionShort = false

	t.Cleanup(func() {
		SetServices(Services{})
		searchPage, searchPages, searchJSON = 1, 1, false
		versionShort = false
		rootCmd.SetIn(nil)
	})
	return env
}

// executeCommand runs the root command with args and returns its output.
func executeCommand(args ...string) (string, error) {
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	defer rootCmd.SetArgs(nil)

	err := rootCmd.Execute()
	return buf.String(), err
}
