// Package cli is the cobra command tree of the reposearch binary. Commands
// reach the core only through the services installed with SetServices.
package cli

import (
	"bufio"
	"context"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/reposearch/internal/core/ports/driving"
	"github.com/custodia-labs/reposearch/internal/logger"
)

// version is set at build time via -ldflags.
var version = "dev"

// verbose enables debug logging for every command.
var verbose bool

// Services wired by main. Commands report "not configured" when one is nil.
var (
	searchService       driving.RepositorySearchService
	settingsService     driving.SettingsService
	resultActionService driving.ResultActionService
	newReactor          func() driving.SearchReactor
	tokenSource         func() string
	watchConfig         func(ctx context.Context, onChange func()) error
)

// Services holds the driving ports the commands use.
type Services struct {
	Search       driving.RepositorySearchService
	Settings     driving.SettingsService
	ResultAction driving.ResultActionService

	// NewReactor builds a fresh reactor for each interactive session.
	NewReactor func() driving.SearchReactor

	// TokenSource reports where the active token comes from
	// ("env", "config" or ""). Optional.
	TokenSource func() string

	// WatchConfig reloads the config file whenever it changes and blocks
	// until ctx is done. Long-running commands run it in the background.
	// Optional.
	WatchConfig func(ctx context.Context, onChange func()) error
}

// SetServices installs the services used by all commands.
func SetServices(s Services) {
	searchService = s.Search
	settingsService = s.Settings
	resultActionService = s.ResultAction
	newReactor = s.NewReactor
	tokenSource = s.TokenSource
	watchConfig = s.WatchConfig
}

// SetVersion sets the version reported by the version command.
func SetVersion(v string) {
	if v != "" {
		version = v
	}
}

var rootCmd = &cobra.Command{
	Use:   "reposearch",
	Short: "Search GitHub repositories from the terminal",
	Long: `reposearch searches GitHub repositories by name and description.

Run "reposearch tui" for an interactive search that updates as you type and
loads more results as you scroll, or "reposearch search <query>" for a
one-off search.

A GitHub token raises the API rate limit. Set GITHUB_TOKEN or run
"reposearch config token".`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}

// Execute runs the root command. SIGINT and SIGTERM cancel the command's
// context so servers and the TUI shut down cleanly.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return rootCmd.ExecuteContext(ctx)
}

// startConfigWatch keeps settings current for the lifetime of ctx.
func startConfigWatch(ctx context.Context) {
	if watchConfig == nil {
		return
	}
	go func() {
		if err := watchConfig(ctx, func() { logger.Debug("config reloaded") }); err != nil {
			logger.Warn("config watch stopped: %v", err)
		}
	}()
}

// readPassword reads one line from in, without echo when in is a terminal.
func readPassword(in io.Reader) string {
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		b, err := term.ReadPassword(int(f.Fd()))
		if err != nil {
			return ""
		}
		return strings.TrimSpace(string(b))
	}

	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && line == "" {
		return ""
	}
	return strings.TrimSpace(line)
}
