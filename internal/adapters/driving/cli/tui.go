package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/custodia-labs/reposearch/internal/adapters/driving/tui"
	"github.com/custodia-labs/reposearch/internal/logger"
)

var errNoReactor = errors.New("search reactor not configured")

// tuiLogName is the file verbose logs go to while the TUI owns the screen.
const tuiLogName = "reposearch-tui.log"

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Search interactively as you type",
	Long: `Open the interactive search screen.

The query is sent once you pause typing; Enter sends it at once. Moving
onto the last result loads the next page. While GitHub's rate limit is
hit a banner is shown and paging stops until the next search.

Keys while typing:   enter search now, esc/↓ go to results
Keys on results:     ↑/k ↓/j move, m more, enter/o open, c copy url,
                     / new search, ? help, q quit`,
	Args: cobra.NoArgs,
	RunE: runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, _ []string) error {
	if newReactor == nil {
		return errNoReactor
	}

	if logger.IsVerbose() {
		path := filepath.Join(os.TempDir(), tuiLogName)
		f, err := tea.LogToFile(path, "")
		if err != nil {
			return fmt.Errorf("opening debug log: %w", err)
		}
		logger.SetOutput(f)
		defer func() {
			logger.SetOutput(os.Stderr)
			_ = f.Close()
		}()
		fmt.Fprintf(cmd.ErrOrStderr(), "debug log: %s\n", path)
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()
	startConfigWatch(ctx)

	reactor := newReactor()
	reactor.Start(ctx)
	defer func() { _ = reactor.Close() }()

	app, err := tui.NewApp(tui.NewPorts(reactor, resultActionService, settingsService))
	if err != nil {
		return fmt.Errorf("starting tui: %w", err)
	}
	defer app.Close()

	if err := app.WithContext(ctx).Run(); err != nil {
		return fmt.Errorf("tui: %w", err)
	}
	return nil
}
