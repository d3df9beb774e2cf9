package tui

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/reposearch/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/reposearch/internal/core/domain"
)

func TestStateFeed_DeliversLatest(t *testing.T) {
	feed := newStateFeed()

	feed.push(domain.SearchState{Query: "a"})
	feed.push(domain.SearchState{Query: "ab"})
	feed.push(domain.SearchState{Query: "abc", IsLoading: true})

	msg := feed.next()()
	require.IsType(t, messages.StateChanged{}, msg)
	assert.Equal(t, "abc", msg.(messages.StateChanged).State.Query)
	assert.True(t, msg.(messages.StateChanged).State.IsLoading)
}

func TestStateFeed_NextWaitsForPush(t *testing.T) {
	feed := newStateFeed()
	got := make(chan any, 1)

	go func() { got <- feed.next()() }()

	select {
	case <-got:
		t.Fatal("next returned before any push")
	case <-time.After(20 * time.Millisecond):
	}

	feed.push(domain.SearchState{Query: "go"})

	select {
	case msg := <-got:
		assert.Equal(t, messages.StateChanged{State: domain.SearchState{Query: "go"}}, msg)
	case <-time.After(time.Second):
		t.Fatal("next did not return after push")
	}
}

func TestStateFeed_CloseReleasesNext(t *testing.T) {
	feed := newStateFeed()
	got := make(chan any, 1)

	go func() { got <- feed.next()() }()
	feed.close()
	feed.close()

	select {
	case msg := <-got:
		assert.Nil(t, msg)
	case <-time.After(time.Second):
		t.Fatal("next did not return after close")
	}
}

func TestStateFeed_PushNeverBlocks(t *testing.T) {
	feed := newStateFeed()
	done := make(chan struct{})

	go func() {
		for i := 0; i < 100; i++ {
			feed.push(domain.SearchState{NextPage: i})
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("push blocked without a reader")
	}
}
