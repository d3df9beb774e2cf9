// Package search provides the main search view for the TUI.
//
// The view owns no search logic. Typing schedules a debounced InputQuery,
// moving onto the last repository sends LoadNextPage, and every state
// snapshot published by the reactor is rendered as it arrives.
package search

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/reposearch/internal/adapters/driving/tui/components/input"
	"github.com/custodia-labs/reposearch/internal/adapters/driving/tui/components/list"
	"github.com/custodia-labs/reposearch/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/reposearch/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/reposearch/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/reposearch/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/reposearch/internal/core/domain"
	"github.com/custodia-labs/reposearch/internal/core/ports/driving"
)

// LimitExceededMessage is shown while the rate limit flag is set.
const LimitExceededMessage = "GitHub API rate limit exceeded. Wait for 60 seconds and try again."

// View represents the search view with input, results list, and status bar.
type View struct {
	styles    *styles.Styles
	keymap    *keymap.KeyMap
	input     *input.SearchInput
	list      *list.ResultList
	statusbar *status.Bar

	reactor       driving.SearchReactor
	actionService driving.ResultActionService
	ctx           context.Context

	debounce  time.Duration
	seq       int    // bumped on every edit; stale debounce timers carry an older value
	sentQuery string // last query handed to the reactor
	state     domain.SearchState

	width      int
	height     int
	ready      bool
	err        error
	focusInput bool // true = input mode (typing), false = results mode (navigating)
}

// NewView creates a new search view.
func NewView(
	s *styles.Styles,
	km *keymap.KeyMap,
	reactor driving.SearchReactor,
	actionService driving.ResultActionService,
	debounce time.Duration,
) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}
	if debounce < 0 {
		debounce = domain.DefaultDebounce
	}

	return &View{
		styles:        s,
		keymap:        km,
		input:         input.NewSearchInput(s),
		list:          list.NewResultList(s),
		statusbar:     status.NewBar(s, km),
		reactor:       reactor,
		actionService: actionService,
		ctx:           context.Background(),
		debounce:      debounce,
		width:         80,
		height:        24,
		focusInput:    true,
	}
}

// WithContext sets the context for the view.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return v.input.Init()
}

// Update handles messages for the search view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case messages.StateChanged:
		v.applyState(msg.State)
		return v, nil

	case messages.QueryDebounced:
		if msg.Seq != v.seq || msg.Query == v.sentQuery {
			return v, nil
		}
		return v, v.send(domain.InputQuery{Query: msg.Query})

	case messages.ActionCompleted:
		if msg.Err != nil {
			v.statusbar.SetMessage(msg.Err.Error())
		} else {
			v.statusbar.SetMessage(msg.Message)
		}
		return v, nil

	case messages.ErrorOccurred:
		v.err = msg.Err
		v.statusbar.SetState(status.StateError)
		v.statusbar.SetMessage(msg.Err.Error())
		return v, nil
	}

	// Forward anything else (cursor blink) to the input
	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	return v, cmd
}

// handleKeyMsg processes keyboard input.
func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	if v.focusInput {
		return v.handleInputKey(msg)
	}
	return v.handleResultsKey(msg)
}

func (v *View) handleInputKey(msg tea.KeyMsg) (*View, tea.Cmd) {
	//nolint:exhaustive // handling only relevant key types
	switch msg.Type {
	case tea.KeyEnter:
		// Submit at once; also retries the same query after a rate limit.
		v.seq++
		cmd := v.send(domain.InputQuery{Query: v.input.Value()})
		v.focusResults()
		return v, cmd

	case tea.KeyEsc, tea.KeyDown:
		v.focusResults()
		return v, nil
	}

	changed, cmd := v.input.UpdateValue(msg)
	if !changed {
		return v, cmd
	}
	return v, tea.Batch(cmd, v.scheduleQuery())
}

func (v *View) handleResultsKey(msg tea.KeyMsg) (*View, tea.Cmd) {
	keyStr := msg.String()

	switch {
	case keymap.Matches(keyStr, v.keymap.Up):
		v.list.MoveUp()
		return v, nil

	case keymap.Matches(keyStr, v.keymap.Down):
		v.list.MoveDown()
		if v.list.AtEnd() {
			return v, v.loadNextPage()
		}
		return v, nil

	case keymap.Matches(keyStr, v.keymap.LoadMore):
		return v, v.loadNextPage()

	case keymap.Matches(keyStr, v.keymap.Open):
		return v, v.openSelected()

	case keymap.Matches(keyStr, v.keymap.Copy):
		return v, v.copySelected()

	case keymap.Matches(keyStr, v.keymap.NewSearch), keymap.Matches(keyStr, v.keymap.Back):
		v.focusInput = true
		return v, v.input.Focus()

	case keymap.Matches(keyStr, v.keymap.Help):
		return v, func() tea.Msg { return messages.ViewChanged{View: messages.ViewHelp} }

	case keymap.Matches(keyStr, v.keymap.Quit):
		return v, func() tea.Msg { return messages.Quit{} }
	}

	return v, nil
}

func (v *View) focusResults() {
	if v.list.IsEmpty() && v.state.Query == "" && v.input.Value() == "" {
		return
	}
	v.focusInput = false
	v.input.Blur()
}

// scheduleQuery starts a debounce timer for the current input value.
func (v *View) scheduleQuery() tea.Cmd {
	v.seq++
	seq, query := v.seq, v.input.Value()
	fire := func(time.Time) tea.Msg {
		return messages.QueryDebounced{Seq: seq, Query: query}
	}
	if v.debounce == 0 {
		return func() tea.Msg { return fire(time.Now()) }
	}
	return tea.Tick(v.debounce, fire)
}

func (v *View) loadNextPage() tea.Cmd {
	if !v.state.CanLoadNextPage() {
		return nil
	}
	return v.send(domain.LoadNextPage{})
}

// send hands an action to the reactor. Sending never blocks; results
// arrive later as StateChanged messages.
func (v *View) send(action domain.Action) tea.Cmd {
	if v.reactor == nil {
		return func() tea.Msg { return messages.ErrorOccurred{Err: ErrNoReactor} }
	}
	if q, ok := action.(domain.InputQuery); ok {
		v.sentQuery = q.Query
	}
	if err := v.reactor.Send(action); err != nil {
		return func() tea.Msg { return messages.ErrorOccurred{Err: err} }
	}
	return nil
}

func (v *View) openSelected() tea.Cmd {
	repo := v.list.SelectedRepository()
	if repo == nil {
		return nil
	}
	if v.actionService == nil {
		return func() tea.Msg { return messages.ActionCompleted{Err: ErrNoActionService} }
	}
	ctx, svc := v.ctx, v.actionService
	return func() tea.Msg {
		if err := svc.OpenRepository(ctx, repo); err != nil {
			return messages.ActionCompleted{Err: err}
		}
		return messages.ActionCompleted{Message: "Opened " + repo.FullName}
	}
}

func (v *View) copySelected() tea.Cmd {
	repo := v.list.SelectedRepository()
	if repo == nil {
		return nil
	}
	if v.actionService == nil {
		return func() tea.Msg { return messages.ActionCompleted{Err: ErrNoActionService} }
	}
	ctx, svc := v.ctx, v.actionService
	return func() tea.Msg {
		if err := svc.CopyURL(ctx, repo); err != nil {
			return messages.ActionCompleted{Err: err}
		}
		return messages.ActionCompleted{Message: "Copied " + repo.URL}
	}
}

// applyState renders a reactor snapshot.
func (v *View) applyState(state domain.SearchState) {
	// Action feedback outlives loading flips; it goes once the results move on.
	changed := state.Query != v.state.Query || !domain.SameRepositories(state.Repositories, v.state.Repositories)
	if changed || v.err != nil {
		v.statusbar.SetMessage("")
	}

	v.state = state
	v.err = nil

	v.list.SetRepositories(state.Repositories)
	v.list.SetLoading(state.IsLoading)

	v.statusbar.SetResultCount(len(state.Repositories), state.HasNextPage())
	switch {
	case state.IsLimitExceeded:
		v.statusbar.SetState(status.StateLimited)
	case state.IsLoading:
		v.statusbar.SetState(status.StateLoading)
	case len(state.Repositories) > 0:
		v.statusbar.SetState(status.StateResults)
	default:
		v.statusbar.SetState(status.StateReady)
	}
}

// View renders the search view.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	sections := make([]string, 0, 10)

	sections = append(sections, v.styles.Title.Render("reposearch"), "")
	sections = append(sections, v.input.View(), "")

	if v.state.IsLimitExceeded {
		sections = append(sections, v.styles.Banner.Render(LimitExceededMessage), "")
	}

	if v.err != nil {
		sections = append(sections, v.styles.Error.Render("Error: "+v.err.Error()), "")
	}

	sections = append(sections, v.list.View(), "", v.statusbar.View())

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true

	v.input.SetWidth(width)
	v.list.SetDimensions(width, height-10) // Reserve space for header, input, status
	v.statusbar.SetWidth(width)
}

// Width returns the current width.
func (v *View) Width() int {
	return v.width
}

// Height returns the current height.
func (v *View) Height() int {
	return v.height
}

// Ready returns whether the view is ready to render.
func (v *View) Ready() bool {
	return v.ready
}

// Query returns the text in the input.
func (v *View) Query() string {
	return v.input.Value()
}

// SetQuery sets the input text without sending it.
func (v *View) SetQuery(query string) {
	v.input.SetValue(query)
}

// State returns the last rendered reactor snapshot.
func (v *View) State() domain.SearchState {
	return v.state
}

// Repositories returns the repositories on screen.
func (v *View) Repositories() []domain.Repository {
	return v.list.Repositories()
}

// SelectedIndex returns the index of the selected repository.
func (v *View) SelectedIndex() int {
	return v.list.Selected()
}

// SelectedRepository returns the currently selected repository.
func (v *View) SelectedRepository() *domain.Repository {
	return v.list.SelectedRepository()
}

// StatusState returns the state shown in the status bar.
func (v *View) StatusState() status.State {
	return v.statusbar.State()
}

// StatusMessage returns the transient status bar message.
func (v *View) StatusMessage() string {
	return v.statusbar.Message()
}

// Err returns the current error, if any.
func (v *View) Err() error {
	return v.err
}

// InputFocused returns whether the input has focus.
func (v *View) InputFocused() bool {
	return v.focusInput
}
