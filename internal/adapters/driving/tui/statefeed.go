package tui

import (
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/reposearch/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/reposearch/internal/core/domain"
)

// stateFeed carries reactor snapshots into the Bubbletea program.
//
// The reactor calls push from its loop goroutine and must never block on the
// UI, so the feed keeps only the latest snapshot. next returns a command that
// waits for a snapshot newer than the last one delivered; the app re-arms it
// after every StateChanged.
type stateFeed struct {
	mu     sync.Mutex
	latest domain.SearchState

	ready     chan struct{}
	done      chan struct{}
	closeOnce sync.Once
}

func newStateFeed() *stateFeed {
	return &stateFeed{
		ready: make(chan struct{}, 1),
		done:  make(chan struct{}),
	}
}

// push records state and wakes a pending next. It never blocks.
func (f *stateFeed) push(state domain.SearchState) {
	f.mu.Lock()
	f.latest = state
	f.mu.Unlock()

	select {
	case f.ready <- struct{}{}:
	default:
	}
}

// next waits for the next snapshot. After close it yields nil, which
// Bubbletea discards.
func (f *stateFeed) next() tea.Cmd {
	return func() tea.Msg {
		select {
		case <-f.ready:
			f.mu.Lock()
			state := f.latest
			f.mu.Unlock()
			return messages.StateChanged{State: state}
		case <-f.done:
			return nil
		}
	}
}

func (f *stateFeed) close() {
	f.closeOnce.Do(func() { close(f.done) })
}
