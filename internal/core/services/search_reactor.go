package services

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"

	"github.com/custodia-labs/reposearch/internal/core/domain"
	"github.com/custodia-labs/reposearch/internal/core/ports/driven"
	"github.com/custodia-labs/reposearch/internal/core/ports/driving"
	"github.com/custodia-labs/reposearch/internal/logger"
)

// Ensure SearchReactor implements the interface.
var _ driving.SearchReactor = (*SearchReactor)(nil)

// event is one unit of work for the processing loop: either an action from
// the view or the mutations produced by a finished fetch.
type event struct {
	action domain.Action
	result *fetchResult
}

// fetchResult carries the mutations of a completed fetch, tagged with the
// query generation that started it.
type fetchResult struct {
	generation uint64
	mutations  []Mutation
}

type observerEntry struct {
	id       int
	observer driving.StateObserver
}

// SearchReactor is the query, pagination and rate-limit state machine.
//
// Actions are queued by Send and handled one at a time on a single loop
// goroutine. Fetches run on their own goroutines and post their mutations
// back to the same queue, so every Reduce happens on the loop. Each
// InputQuery starts a new query generation; results from older generations
// are dropped before they reach Reduce.
type SearchReactor struct {
	searcher driven.RepositorySearcher
	log      *logger.Logger

	queueMu sync.Mutex
	queue   []event
	closed  bool
	wake    chan struct{}

	stateMu sync.RWMutex
	state   domain.SearchState

	// notifyMu orders state changes and subscriptions so every observer
	// sees snapshots in fold order.
	notifyMu    sync.Mutex
	observersMu sync.Mutex
	observers   []observerEntry
	nextID      int

	// Owned by the loop goroutine.
	generation uint64
	genCtx     context.Context
	cancelGen  context.CancelFunc

	startOnce sync.Once
	closeOnce sync.Once
	cancel    context.CancelFunc
	done      chan struct{}
	fetches   sync.WaitGroup
}

// NewSearchReactor creates a reactor backed by searcher.
// Call Start before expecting any state changes.
func NewSearchReactor(searcher driven.RepositorySearcher) *SearchReactor {
	return &SearchReactor{
		searcher: searcher,
		log:      logger.Named("reactor " + uuid.NewString()[:8]),
		wake:     make(chan struct{}, 1),
		state: domain.SearchState{
			Repositories: []domain.Repository{},
		},
	}
}

// Start launches the processing loop. Actions sent earlier are handled in
// order once the loop runs. Calling Start more than once has no effect.
func (r *SearchReactor) Start(ctx context.Context) {
	r.startOnce.Do(func() {
		loopCtx, cancel := context.WithCancel(ctx)
		r.cancel = cancel
		r.genCtx = loopCtx
		r.cancelGen = func() {}
		r.done = make(chan struct{})
		go r.run(loopCtx)
		r.signal()
	})
}

// Close stops the loop, cancels in-flight fetches and waits for every
// goroutine the reactor started. Later Send calls fail with
// domain.ErrReactorClosed. Cancelling the context given to Start has the
// same effect on Send.
func (r *SearchReactor) Close() error {
	r.closeOnce.Do(func() {
		r.queueMu.Lock()
		r.closed = true
		r.queue = nil
		r.queueMu.Unlock()

		// Prevent a late Start from launching the loop.
		r.startOnce.Do(func() {})

		if r.cancel != nil {
			r.cancel()
			<-r.done
		}
		r.fetches.Wait()
	})
	return nil
}

// Send enqueues an action. It never blocks on the loop.
func (r *SearchReactor) Send(action domain.Action) error {
	if action == nil {
		return domain.ErrInvalidInput
	}
	if !r.enqueue(event{action: action}) {
		return domain.ErrReactorClosed
	}
	return nil
}

// State returns a snapshot of the current state.
func (r *SearchReactor) State() domain.SearchState {
	r.stateMu.RLock()
	defer r.stateMu.RUnlock()
	return r.state
}

// Subscribe registers observer and immediately delivers the current state.
// Observers run on the loop goroutine; they may call State, Send and the
// returned unsubscribe function but must not call Subscribe.
func (r *SearchReactor) Subscribe(observer driving.StateObserver) func() {
	r.notifyMu.Lock()
	defer r.notifyMu.Unlock()

	r.observersMu.Lock()
	id := r.nextID
	r.nextID++
	r.observers = append(r.observers, observerEntry{id: id, observer: observer})
	r.observersMu.Unlock()

	observer(r.State())

	return func() {
		r.observersMu.Lock()
		defer r.observersMu.Unlock()
		for i, e := range r.observers {
			if e.id == id {
				r.observers = append(r.observers[:i:i], r.observers[i+1:]...)
				return
			}
		}
	}
}

func (r *SearchReactor) enqueue(ev event) bool {
	r.queueMu.Lock()
	if r.closed {
		r.queueMu.Unlock()
		return false
	}
	r.queue = append(r.queue, ev)
	r.queueMu.Unlock()

	r.signal()
	return true
}

func (r *SearchReactor) signal() {
	select {
	case r.wake <- struct{}{}:
	default:
	}
}

func (r *SearchReactor) dequeue() (event, bool) {
	r.queueMu.Lock()
	defer r.queueMu.Unlock()
	if len(r.queue) == 0 {
		return event{}, false
	}
	ev := r.queue[0]
	r.queue[0] = event{}
	r.queue = r.queue[1:]
	return ev, true
}

func (r *SearchReactor) run(ctx context.Context) {
	defer close(r.done)
	defer func() { r.cancelGen() }()
	defer r.shutdown()

	for {
		select {
		case <-ctx.Done():
			return
		case <-r.wake:
		}

		for {
			if ctx.Err() != nil {
				return
			}
			ev, ok := r.dequeue()
			if !ok {
				break
			}
			r.handle(ctx, ev)
		}
	}
}

// shutdown refuses further events once the loop has exited, whether through
// Close or because the context given to Start ended.
func (r *SearchReactor) shutdown() {
	r.queueMu.Lock()
	defer r.queueMu.Unlock()
	r.closed = true
	r.queue = nil
}

func (r *SearchReactor) handle(ctx context.Context, ev event) {
	if ev.result != nil {
		r.handleResult(ev.result)
		return
	}

	switch a := ev.action.(type) {
	case domain.InputQuery:
		r.handleInputQuery(ctx, a)
	case domain.LoadNextPage:
		r.handleLoadNextPage()
	default:
		r.log.Warn("ignoring unknown action %T", a)
	}
}

// handleInputQuery starts a new query generation. Cancelling the previous
// generation's context stops its fetch; anything it still posts is dropped
// by handleResult.
func (r *SearchReactor) handleInputQuery(ctx context.Context, a domain.InputQuery) {
	r.cancelGen()
	r.generation++
	r.genCtx, r.cancelGen = context.WithCancel(ctx)

	r.log.Debug("generation %d: query %q", r.generation, a.Query)

	r.apply(SetQuery{Query: a.Query})
	r.startFetch(a.Query, 1, false)
}

// handleLoadNextPage fetches the stored cursor unless pagination is
// exhausted, a fetch is in flight, or the rate limit flag is set.
func (r *SearchReactor) handleLoadNextPage() {
	state := r.State()
	if !state.CanLoadNextPage() {
		r.log.Debug("load next page ignored (next=%d loading=%t limited=%t)",
			state.NextPage, state.IsLoading, state.IsLimitExceeded)
		return
	}
	r.startFetch(state.Query, state.NextPage, true)
}

// startFetch applies the leading mutations of a fetch sequence on the loop
// and runs the search on a separate goroutine.
func (r *SearchReactor) startFetch(query string, page int, appendPage bool) {
	r.apply(SetLoading{Loading: true})
	r.apply(SetLimitExceeded{Exceeded: false})

	ctx := r.genCtx
	generation := r.generation

	r.fetches.Add(1)
	go func() {
		defer r.fetches.Done()

		mutations := r.fetch(ctx, query, page, appendPage)
		if mutations == nil {
			return
		}
		r.enqueue(event{result: &fetchResult{generation: generation, mutations: mutations}})
	}()
}

// fetch calls the searcher and maps the outcome to the trailing mutations
// of the sequence. It returns nil when the fetch was cancelled.
func (r *SearchReactor) fetch(ctx context.Context, query string, page int, appendPage bool) []Mutation {
	result, err := r.searcher.SearchRepositories(ctx, query, page)
	if ctx.Err() != nil {
		return nil
	}

	switch {
	case err == nil:
		var m Mutation = SetRepositories{Repositories: result.Repositories, NextPage: result.NextPage}
		if appendPage {
			m = AppendRepositories{Repositories: result.Repositories, NextPage: result.NextPage}
		}
		return []Mutation{m, SetLoading{Loading: false}}

	case errors.Is(err, domain.ErrLimitExceeded):
		r.log.Info("rate limit exceeded on page %d of %q", page, query)
		return []Mutation{SetLimitExceeded{Exceeded: true}, SetLoading{Loading: false}}

	default:
		r.log.Warn("search page %d of %q failed: %v", page, query, err)
		return []Mutation{SetLoading{Loading: false}}
	}
}

func (r *SearchReactor) handleResult(res *fetchResult) {
	if res.generation != r.generation {
		r.log.Debug("dropping result of stale generation %d (current %d)", res.generation, r.generation)
		return
	}
	for _, m := range res.mutations {
		r.apply(m)
	}
}

// apply folds one mutation and notifies observers with the new snapshot.
func (r *SearchReactor) apply(m Mutation) {
	r.notifyMu.Lock()
	defer r.notifyMu.Unlock()

	r.stateMu.Lock()
	r.state = Reduce(r.state, m)
	snapshot := r.state
	r.stateMu.Unlock()

	r.observersMu.Lock()
	observers := make([]driving.StateObserver, len(r.observers))
	for i, e := range r.observers {
		observers[i] = e.observer
	}
	r.observersMu.Unlock()

	for _, observer := range observers {
		observer(snapshot)
	}
}
