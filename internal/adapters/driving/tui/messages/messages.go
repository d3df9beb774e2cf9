// Package messages holds the tea.Msg types exchanged between the app and
// the search view.
package messages

import (
	"github.com/custodia-labs/reposearch/internal/core/domain"
)

// StateChanged delivers the latest reactor snapshot.
type StateChanged struct {
	State domain.SearchState
}

// QueryDebounced fires when a debounce timer expires. Seq identifies the
// edit that started the timer; a newer edit makes it stale.
type QueryDebounced struct {
	Seq   int
	Query string
}

// ActionCompleted is the outcome of opening or copying a repository.
// Exactly one of Message and Err is set.
type ActionCompleted struct {
	Message string
	Err     error
}

// ErrorOccurred reports a failure worth showing in the status bar.
type ErrorOccurred struct {
	Err error
}

// ViewChanged switches the screen.
type ViewChanged struct {
	View ViewType
}

// Quit asks the app to exit.
type Quit struct{}

// ViewType names a screen of the app.
type ViewType int

const (
	ViewSearch ViewType = iota
	ViewHelp
)

var viewNames = map[ViewType]string{
	ViewSearch: "search",
	ViewHelp:   "help",
}

func (v ViewType) String() string {
	if name, ok := viewNames[v]; ok {
		return name
	}
	return "unknown"
}
