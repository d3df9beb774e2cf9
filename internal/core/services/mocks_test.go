package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/reposearch/internal/core/domain"
	"github.com/custodia-labs/reposearch/internal/core/ports/driven"
)

// funcSearcher answers every call synchronously with fn.
type funcSearcher struct {
	mu    sync.Mutex
	calls []searchCall
	fn    func(query string, page int) (domain.SearchPage, error)
}

type searchCall struct {
	query string
	page  int
}

func (s *funcSearcher) SearchRepositories(_ context.Context, query string, page int) (domain.SearchPage, error) {
	s.mu.Lock()
	s.calls = append(s.calls, searchCall{query: query, page: page})
	s.mu.Unlock()
	return s.fn(query, page)
}

func (s *funcSearcher) Calls() []searchCall {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]searchCall(nil), s.calls...)
}

// gatedSearcher parks every call until the test responds to it.
type gatedSearcher struct {
	calls chan *pendingCall
}

type pendingCall struct {
	query   string
	page    int
	respond chan searchResponse
}

type searchResponse struct {
	page domain.SearchPage
	err  error
}

func newGatedSearcher() *gatedSearcher {
	return &gatedSearcher{calls: make(chan *pendingCall, 16)}
}

func (g *gatedSearcher) SearchRepositories(ctx context.Context, query string, page int) (domain.SearchPage, error) {
	call := &pendingCall{query: query, page: page, respond: make(chan searchResponse, 1)}
	g.calls <- call

	select {
	case res := <-call.respond:
		return res.page, res.err
	case <-ctx.Done():
		return domain.SearchPage{}, ctx.Err()
	}
}

func (g *gatedSearcher) next(t *testing.T) *pendingCall {
	t.Helper()
	select {
	case call := <-g.calls:
		return call
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for a search call")
		return nil
	}
}

func (g *gatedSearcher) expectNoCall(t *testing.T, within time.Duration) {
	t.Helper()
	select {
	case call := <-g.calls:
		t.Fatalf("unexpected search call: query=%q page=%d", call.query, call.page)
	case <-time.After(within):
	}
}

func (c *pendingCall) succeed(repos []domain.Repository, next int) {
	c.respond <- searchResponse{page: domain.SearchPage{Repositories: repos, NextPage: next}}
}

func (c *pendingCall) fail(err error) {
	c.respond <- searchResponse{err: err}
}

// stateRecorder collects every snapshot delivered to an observer.
type stateRecorder struct {
	mu     sync.Mutex
	states []domain.SearchState
}

func (r *stateRecorder) observe(s domain.SearchState) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.states = append(r.states, s)
}

func (r *stateRecorder) States() []domain.SearchState {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]domain.SearchState(nil), r.states...)
}

func repo(id int64, name string) domain.Repository {
	return domain.Repository{ID: id, FullName: name, URL: "https://github.com/" + name}
}

func startReactor(t *testing.T, searcher driven.RepositorySearcher) *SearchReactor {
	t.Helper()
	r := NewSearchReactor(searcher)
	r.Start(context.Background())
	t.Cleanup(func() { _ = r.Close() })
	return r
}

func waitForState(t *testing.T, r *SearchReactor, cond func(domain.SearchState) bool) domain.SearchState {
	t.Helper()
	var got domain.SearchState
	require.Eventually(t, func() bool {
		got = r.State()
		return cond(got)
	}, 2*time.Second, 5*time.Millisecond, "state never matched, last: %+v", got)
	return got
}

func idle(s domain.SearchState) bool {
	return !s.IsLoading
}

// mockConfigStore is an in-memory driven.ConfigStore.
type mockConfigStore struct {
	data   map[string]any
	setErr error
}

func newMockConfigStore() *mockConfigStore {
	return &mockConfigStore{data: make(map[string]any)}
}

func (m *mockConfigStore) Get(key string) (any, bool) {
	v, ok := m.data[key]
	return v, ok
}

func (m *mockConfigStore) GetString(key string) string {
	s, _ := m.data[key].(string)
	return s
}

func (m *mockConfigStore) GetInt(key string) int {
	switch v := m.data[key].(type) {
	case int64:
		return int(v)
	case int:
		return v
	default:
		return 0
	}
}

func (m *mockConfigStore) Set(key string, value any) error {
	if m.setErr != nil {
		return m.setErr
	}
	m.data[key] = value
	return nil
}

func (m *mockConfigStore) Keys() []string {
	keys := make([]string, 0, len(m.data))
	for k := range m.data {
		keys = append(keys, k)
	}
	return keys
}

func (m *mockConfigStore) Load() error { return nil }

func (m *mockConfigStore) Watch(ctx context.Context, _ func()) error {
	<-ctx.Done()
	return nil
}

func (m *mockConfigStore) Path() string { return "memory" }
