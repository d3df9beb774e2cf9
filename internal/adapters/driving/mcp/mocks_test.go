package mcp

import (
	"context"
	"time"

	"github.com/custodia-labs/reposearch/internal/core/domain"
)

// mockSearchService is a mock implementation of driving.RepositorySearchService.
type mockSearchService struct {
	result domain.SearchPage
	err    error

	lastQuery string
	lastPage  int
}

func (m *mockSearchService) Search(_ context.Context, query string, page int) (domain.SearchPage, error) {
	m.lastQuery = query
	m.lastPage = page
	return m.result, m.err
}

func (m *mockSearchService) SearchPages(_ context.Context, query string, _ int) (domain.SearchPage, error) {
	m.lastQuery = query
	m.lastPage = 1
	return m.result, m.err
}

// mockSettingsService is a mock implementation of driving.SettingsService.
type mockSettingsService struct {
	settings domain.AppSettings
}

func (m *mockSettingsService) Get() domain.AppSettings { return m.settings }

func (m *mockSettingsService) SetToken(string) error { return nil }

func (m *mockSettingsService) Set(string, string) error { return nil }

func (m *mockSettingsService) Values() map[string]string {
	return map[string]string{domain.KeyGitHubToken: "****abcd"}
}

func testSettings() domain.AppSettings {
	return domain.AppSettings{
		BaseURL:           domain.DefaultGitHubBaseURL,
		PerPage:           50,
		RequestsPerMinute: 10,
		Debounce:          300 * time.Millisecond,
	}
}

func testPage() domain.SearchPage {
	return domain.SearchPage{
		Repositories: []domain.Repository{
			{ID: 10, FullName: "modelcontextprotocol/go-sdk", URL: "https://github.com/modelcontextprotocol/go-sdk"},
		},
		NextPage: 2,
	}
}
