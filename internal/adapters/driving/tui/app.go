package tui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/reposearch/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/reposearch/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/reposearch/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/reposearch/internal/adapters/driving/tui/views/search"
	"github.com/custodia-labs/reposearch/internal/core/domain"
)

// App is the main TUI application following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type App struct {
	// ports provides access to core services via driving ports.
	ports *Ports

	// ctx is the context for cancellation.
	ctx context.Context

	styles *styles.Styles
	keymap *keymap.KeyMap
	help   help.Model

	// searchView is the query input and result list.
	searchView *search.View

	// feed delivers reactor snapshots as StateChanged messages.
	feed        *stateFeed
	unsubscribe func()

	// currentView tracks which view is active.
	currentView messages.ViewType

	// err holds the last error that occurred.
	err error

	// width and height are terminal dimensions.
	width  int
	height int

	// ready indicates if the app has initialised.
	ready bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a new TUI application with the given ports and subscribes
// to the reactor. Call Close once the program has finished.
func NewApp(ports *Ports) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	debounce := domain.DefaultDebounce
	if ports.Settings != nil {
		debounce = ports.Settings.Get().Debounce
	}

	s := styles.DefaultStyles()
	km := keymap.DefaultKeyMap()
	feed := newStateFeed()
	h := help.New()
	h.ShowAll = true

	return &App{
		ports:       ports,
		ctx:         context.Background(),
		styles:      s,
		keymap:      km,
		help:        h,
		searchView:  search.NewView(s, km, ports.Reactor, ports.ResultAction, debounce),
		feed:        feed,
		unsubscribe: ports.Reactor.Subscribe(feed.push),
		currentView: messages.ViewSearch,
	}, nil
}

// WithContext sets the context for the app.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	a.searchView.WithContext(ctx)
	return a
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	return tea.Batch(
		tea.SetWindowTitle("reposearch"),
		a.searchView.Init(),
		a.feed.next(),
	)
}

// Update implements tea.Model.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.SetDimensions(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		// Global quit with ctrl+c
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}
		if a.currentView == messages.ViewHelp {
			return a.updateHelp(msg)
		}
		a.searchView, cmd = a.searchView.Update(msg)
		a.err = a.searchView.Err()
		return a, cmd

	case messages.StateChanged:
		a.searchView, cmd = a.searchView.Update(msg)
		a.err = nil
		return a, tea.Batch(cmd, a.feed.next())

	case messages.ViewChanged:
		a.currentView = msg.View
		return a, nil

	case messages.ErrorOccurred:
		a.err = msg.Err
		a.searchView, cmd = a.searchView.Update(msg)
		return a, cmd

	case messages.Quit:
		return a, tea.Quit
	}

	// Timers, action results and cursor blinks belong to the search view
	a.searchView, cmd = a.searchView.Update(msg)
	return a, cmd
}

func (a *App) updateHelp(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	keyStr := msg.String()
	switch {
	case keymap.Matches(keyStr, a.keymap.Quit):
		return a, tea.Quit
	case keymap.Matches(keyStr, a.keymap.Back), keymap.Matches(keyStr, a.keymap.Help):
		a.currentView = messages.ViewSearch
	}
	return a, nil
}

// View implements tea.Model.
func (a *App) View() string {
	if !a.ready {
		return "Initialising..."
	}

	switch a.currentView {
	case messages.ViewHelp:
		return a.viewHelp()
	case messages.ViewSearch:
		return a.searchView.View()
	default:
		return a.searchView.View()
	}
}

// viewHelp renders every binding in columns, followed by a short note on
// how searching behaves.
func (a *App) viewHelp() string {
	return a.styles.Help.Render(lipgloss.JoinVertical(lipgloss.Left,
		a.styles.Title.Render("Help"),
		"",
		a.help.View(a.keymap),
		"",
		"Typing pauses for a moment before searching. Scrolling to the",
		"last repository loads the next page.",
		"",
		a.styles.Muted.Render("[esc] back to search"),
	))
}

// Run starts the TUI application.
func (a *App) Run() error {
	p := tea.NewProgram(a, tea.WithAltScreen(), tea.WithContext(a.ctx))
	_, err := p.Run()
	return err
}

// Close unsubscribes from the reactor and releases a pending state command.
// It is safe to call more than once.
func (a *App) Close() {
	if a.unsubscribe != nil {
		a.unsubscribe()
		a.unsubscribe = nil
	}
	a.feed.close()
}

// Query returns the text in the search input.
func (a *App) Query() string {
	return a.searchView.Query()
}

// State returns the last reactor snapshot rendered.
func (a *App) State() domain.SearchState {
	return a.searchView.State()
}

// Repositories returns the repositories on screen.
func (a *App) Repositories() []domain.Repository {
	return a.searchView.Repositories()
}

// SelectedIndex returns the currently selected repository index.
func (a *App) SelectedIndex() int {
	return a.searchView.SelectedIndex()
}

// CurrentView returns the current view type.
func (a *App) CurrentView() messages.ViewType {
	return a.currentView
}

// Err returns the last error that occurred.
func (a *App) Err() error {
	return a.err
}

// Ready returns whether the app has been initialised.
func (a *App) Ready() bool {
	return a.ready
}

// SetDimensions sets the terminal dimensions.
func (a *App) SetDimensions(width, height int) {
	a.width = width
	a.height = height
	a.ready = true
	a.help.Width = width
	a.searchView.SetDimensions(width, height)
}
